// Package credibility turns review sentiment counts into a trust tier.
package credibility

import "earnershub/internal/models"

// Distribution counts reviews labeled exactly "positive" and exactly "negative".
// Any other label is ignored.
func Distribution(reviews []models.Review) (positive, negative int) {
	for _, r := range reviews {
		switch r.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		}
	}
	return positive, negative
}

// Tier buckets the positive ratio: >= 0.70 Trusted, >= 0.40 Risky, else Scam.
// The thresholds are compared in integers so 7/10 and 4/10 land exactly on the boundary.
func Tier(positive, negative int) models.CredibilityTier {
	total := positive + negative
	switch {
	case total == 0:
		return models.TierIndeterminate
	case 10*positive >= 7*total:
		return models.TierTrusted
	case 10*positive >= 4*total:
		return models.TierRisky
	default:
		return models.TierScam
	}
}

// Score returns the credibility tier of a review dataset.
func Score(reviews []models.Review) models.CredibilityTier {
	return Tier(Distribution(reviews))
}

// Summary builds the full report shown on the credibility screen.
func Summary(reviews []models.Review) models.CredibilityReport {
	p, n := Distribution(reviews)
	report := models.CredibilityReport{
		Tier:     Tier(p, n),
		Positive: p,
		Negative: n,
	}
	if p+n > 0 {
		report.PositivePercent = float64(p) / float64(p+n) * 100
	}
	return report
}
