package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"earnershub/internal/classifier"
	"earnershub/internal/credibility"
	"earnershub/internal/models"
	"earnershub/internal/notify"
	"earnershub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PredictionRecorder receives an audit record for each classification
type PredictionRecorder interface {
	Record(ctx context.Context, rec *models.PredictionRecord) error
}

// ReviewService handles the review workflow: every call reloads the reviews file,
// retrains the classifier on it and performs one action.
type ReviewService struct {
	store       *repository.ReviewStore
	predictions PredictionRecorder
	notifier    notify.Notifier
	logger      *zap.Logger
	now         func() time.Time
}

// NewReviewService creates a new review service. predictions may be nil.
func NewReviewService(
	store *repository.ReviewStore,
	predictions PredictionRecorder,
	notifier notify.Notifier,
	logger *zap.Logger,
) *ReviewService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &ReviewService{
		store:       store,
		predictions: predictions,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit classifies text, appends it to the reviews file and returns the new credibility.
func (s *ReviewService) Submit(ctx context.Context, text string) (*models.SubmitResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &models.FieldError{Field: "text", Reason: "please write a review first"}
	}
	text = normalizeNewlines(text)

	var (
		result models.SubmitResult
		model  *classifier.Model
	)
	_, err := s.store.Update(ctx, func(reviews []models.Review) ([]models.Review, error) {
		m, err := classifier.TrainOnReviews(reviews)
		if err != nil {
			return nil, err
		}
		label := m.Classify(text)
		review := models.Review{
			Date:      s.now().Format(models.DateLayout),
			Text:      text,
			Sentiment: label,
		}
		next := repository.Append(reviews, review)

		model = m
		result = models.SubmitResult{
			Sentiment:  label,
			Review:     review,
			TierBefore: credibility.Score(reviews),
			Report:     credibility.Summary(next),
		}
		return next, nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	s.logger.Info("Review submitted",
		zap.String("sentiment", result.Sentiment),
		zap.Int("training_rows", model.TrainingRows()),
		zap.String("tier", string(result.Report.Tier)))

	s.recordPrediction(ctx, text, result.Sentiment, model, true)

	if result.TierBefore != result.Report.Tier {
		if err := s.notifier.TierChanged(ctx, result.TierBefore, result.Report); err != nil {
			s.logger.Warn("Failed to send tier change notification", zap.Error(err))
		}
	}
	return &result, nil
}

// Classify predicts the sentiment of text without persisting anything.
func (s *ReviewService) Classify(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &models.FieldError{Field: "text", Reason: "please write a review first"}
	}
	text = normalizeNewlines(text)

	reviews, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load reviews: %w", err)
	}
	model, err := classifier.TrainOnReviews(reviews)
	if err != nil {
		return "", err
	}

	label := model.Classify(text)
	s.recordPrediction(ctx, text, label, model, false)
	return label, nil
}

// List returns every review in file order
func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	return reviews, nil
}

// Credibility returns the tier and sentiment counts of the current reviews
func (s *ReviewService) Credibility(ctx context.Context) (models.CredibilityReport, error) {
	reviews, err := s.store.Load(ctx)
	if err != nil {
		return models.CredibilityReport{}, fmt.Errorf("load reviews: %w", err)
	}
	return credibility.Summary(reviews), nil
}

func (s *ReviewService) recordPrediction(ctx context.Context, text, label string, model *classifier.Model, persisted bool) {
	if s.predictions == nil {
		return
	}
	rec := &models.PredictionRecord{
		ID:             uuid.NewString(),
		RequestID:      RequestID(ctx),
		Text:           text,
		Label:          label,
		Persisted:      persisted,
		TrainingRows:   model.TrainingRows(),
		VocabularySize: model.VocabularySize(),
		CreatedAt:      s.now().UTC(),
	}
	if err := s.predictions.Record(ctx, rec); err != nil {
		s.logger.Warn("Failed to record prediction", zap.Error(err))
	}
}

// normalizeNewlines turns CRLF line breaks into LF. The CSV reader does the same
// inside quoted fields, so a stored row reads back exactly as it was built.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
