package notify

import (
	"context"
	"fmt"

	"earnershub/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts notifications to a single chat
type Telegram struct {
	api    sender
	chatID int64
	logger *zap.Logger
}

// NewTelegram authorizes the bot token and returns a notifier for chatID
func NewTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))

	return &Telegram{
		api:    botAPI,
		chatID: chatID,
		logger: logger,
	}, nil
}

// TierChanged reports a credibility tier transition
func (t *Telegram) TierChanged(ctx context.Context, from models.CredibilityTier, report models.CredibilityReport) error {
	text := fmt.Sprintf("📊 Credibility changed: %s → %s\n👍 %d positive / 👎 %d negative (%.1f%% positive)",
		from, report.Tier, report.Positive, report.Negative, report.PositivePercent)
	return t.send(ctx, text)
}

// ScamSourceAdded reports a directory entry submitted with the Scam status
func (t *Telegram) ScamSourceAdded(ctx context.Context, source models.Source) error {
	text := fmt.Sprintf("🚨 New scam report\n%s (%s)\n%s\nSubmitted by %s on %s",
		source.Name, source.Type, source.Link, source.SubmittedBy, source.Date)
	return t.send(ctx, text)
}

func (t *Telegram) send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	t.logger.Debug("Telegram notification sent", zap.Int64("chat_id", t.chatID))
	return nil
}
