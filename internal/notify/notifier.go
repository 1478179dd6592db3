// Package notify sends operator alerts about credibility changes and scam reports.
package notify

import (
	"context"

	"earnershub/internal/models"
)

// Notifier is told about events an operator may want to react to.
// Implementations must not block the interaction for long; callers log and ignore errors.
type Notifier interface {
	TierChanged(ctx context.Context, from models.CredibilityTier, report models.CredibilityReport) error
	ScamSourceAdded(ctx context.Context, source models.Source) error
}

// Nop discards every notification
type Nop struct{}

func (Nop) TierChanged(context.Context, models.CredibilityTier, models.CredibilityReport) error {
	return nil
}

func (Nop) ScamSourceAdded(context.Context, models.Source) error { return nil }
