package models

// DateLayout is the on-disk format of every Date column.
const DateLayout = "2006-01-02"

// Sentiment labels produced by the seed data and the classifier.
// The label set is open: any string found in the reviews file is a valid label.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
)

// ReviewColumns is the header row of the reviews file.
var ReviewColumns = []string{"Date", "Review", "Sentiment"}

// Review is a single submitted review of an earning app
type Review struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Text      string `json:"review"`
	Sentiment string `json:"sentiment"`
}

// ReviewRequest for review submission and dry-run classification
type ReviewRequest struct {
	Text string `json:"text" form:"text"`
}

// SubmitResult is returned after a review has been classified and persisted.
type SubmitResult struct {
	Sentiment  string            `json:"sentiment"`
	Review     Review            `json:"review"`
	TierBefore CredibilityTier   `json:"tier_before"`
	Report     CredibilityReport `json:"credibility"`
}
