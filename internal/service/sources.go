package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"earnershub/internal/models"
	"earnershub/internal/notify"
	"earnershub/internal/repository"

	"go.uber.org/zap"
)

// SourceService handles browsing and adding earning sources
type SourceService struct {
	store    *repository.SourceStore
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewSourceService creates a new source directory service
func NewSourceService(store *repository.SourceStore, notifier notify.Notifier, logger *zap.Logger) *SourceService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &SourceService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Browse returns the sources matching selector ("All" or a source type).
// An empty selector means "All"; matching of the selector is case-insensitive.
// Besides the known types, any type present in the file can be selected.
func (s *SourceService) Browse(ctx context.Context, selector string) ([]models.Source, string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		selector = models.SourceTypeAll
	}

	sources, err := s.store.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load sources: %w", err)
	}

	choices := append([]string{models.SourceTypeAll}, models.SourceTypes...)
	for _, src := range sources {
		if !slices.Contains(choices, src.Type) {
			choices = append(choices, src.Type)
		}
	}
	canonical, ok := canonicalChoice(selector, choices)
	if !ok {
		return nil, "", &models.FieldError{Field: "type", Reason: fmt.Sprintf("unknown source type %q", selector)}
	}
	return repository.FilterSources(sources, canonical), canonical, nil
}

// Add validates req and appends it to the directory. Duplicates are allowed.
func (s *SourceService) Add(ctx context.Context, req models.SourceRequest) (*models.Source, error) {
	source, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	_, err = s.store.Update(ctx, func(sources []models.Source) ([]models.Source, error) {
		return repository.Append(sources, *source), nil
	})
	if err != nil {
		return nil, fmt.Errorf("add source: %w", err)
	}

	s.logger.Info("Source added",
		zap.String("name", source.Name),
		zap.String("type", source.Type),
		zap.String("trust_status", source.TrustStatus))

	if source.TrustStatus == models.TrustStatusScam {
		if err := s.notifier.ScamSourceAdded(ctx, *source); err != nil {
			s.logger.Warn("Failed to send scam report notification", zap.Error(err))
		}
	}
	return source, nil
}

func (s *SourceService) validate(req models.SourceRequest) (*models.Source, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"type", req.Type},
		{"link", req.Link},
		{"submitted_by", req.SubmittedBy},
		{"trust_status", req.TrustStatus},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, &models.FieldError{Field: f.name, Reason: "must not be blank"}
		}
	}

	sourceType, ok := canonicalChoice(req.Type, models.SourceTypes)
	if !ok {
		return nil, &models.FieldError{Field: "type", Reason: fmt.Sprintf("must be one of %s", strings.Join(models.SourceTypes, ", "))}
	}
	trust, ok := canonicalChoice(req.TrustStatus, models.TrustStatuses)
	if !ok {
		return nil, &models.FieldError{Field: "trust_status", Reason: fmt.Sprintf("must be one of %s", strings.Join(models.TrustStatuses, ", "))}
	}

	return &models.Source{
		Date:        s.now().Format(models.DateLayout),
		Name:        normalizeNewlines(strings.TrimSpace(req.Name)),
		Type:        sourceType,
		Link:        normalizeNewlines(strings.TrimSpace(req.Link)),
		SubmittedBy: normalizeNewlines(strings.TrimSpace(req.SubmittedBy)),
		TrustStatus: trust,
	}, nil
}

// canonicalChoice maps value to the matching entry of choices, ignoring case and surrounding space.
func canonicalChoice(value string, choices []string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, c := range choices {
		if strings.EqualFold(value, c) {
			return c, true
		}
	}
	return "", false
}
