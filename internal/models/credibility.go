package models

// CredibilityTier is the trust bucket derived from the positive review ratio
type CredibilityTier string

const (
	TierTrusted       CredibilityTier = "Trusted"
	TierRisky         CredibilityTier = "Risky"
	TierScam          CredibilityTier = "Scam"
	TierIndeterminate CredibilityTier = "Indeterminate"
)

// CredibilityReport is what the credibility screen and endpoint show.
type CredibilityReport struct {
	Tier            CredibilityTier `json:"tier"`
	Positive        int             `json:"positive"`
	Negative        int             `json:"negative"`
	PositivePercent float64         `json:"positive_percent"` // 0 when there are no labeled reviews
}
