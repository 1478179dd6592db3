package repository

import (
	"fmt"
	"time"

	"earnershub/internal/models"

	"go.uber.org/zap"
)

// ReviewStore persists reviews in a Date,Review,Sentiment CSV file.
type ReviewStore = CSVTable[models.Review]

// NewReviewStore creates the review store for the file at path
func NewReviewStore(path string, logger *zap.Logger) *ReviewStore {
	return NewCSVTable[models.Review](path, ReviewCodec{}, logger)
}

// ReviewCodec maps reviews to the reviews file columns
type ReviewCodec struct{}

func (ReviewCodec) Columns() []string { return models.ReviewColumns }

func (ReviewCodec) Decode(row []string) (models.Review, error) {
	if err := validateDate(row[0]); err != nil {
		return models.Review{}, err
	}
	return models.Review{Date: row[0], Text: row[1], Sentiment: row[2]}, nil
}

func (ReviewCodec) Encode(r models.Review) []string {
	return []string{r.Date, r.Text, r.Sentiment}
}

func validateDate(value string) error {
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return fmt.Errorf("invalid date %q", value)
	}
	return nil
}
