package models

import "time"

// PredictionRecord is an audit row written for every classification.
// It is never read back for training; the reviews file stays the source of truth.
type PredictionRecord struct {
	ID             string    `json:"id" db:"id"`
	RequestID      string    `json:"request_id,omitempty" db:"request_id"`
	Text           string    `json:"text" db:"text"`
	Label          string    `json:"label" db:"label"`
	Persisted      bool      `json:"persisted" db:"persisted"` // false for dry-run classifications
	TrainingRows   int       `json:"training_rows" db:"training_rows"`
	VocabularySize int       `json:"vocabulary_size" db:"vocabulary_size"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
