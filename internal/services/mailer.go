package services

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Mailer is the outbound-mail collaborator. Actual delivery is an external
// integration; the service only depends on this interface.
type Mailer interface {
	SendTemporaryPassword(ctx context.Context, recipient, temporaryPassword, loginURL string) error
	SendOnboardingReminder(ctx context.Context, recipient, loginURL string) error
}

// logMailer logs instead of sending. Used when no mail integration is
// configured.
type logMailer struct{}

func NewLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) SendTemporaryPassword(ctx context.Context, recipient, temporaryPassword, loginURL string) error {
	log.Info().Str("recipient", recipient).Str("login_url", loginURL).
		Msg("temporary password mail suppressed (no mailer configured)")
	return nil
}

func (m *logMailer) SendOnboardingReminder(ctx context.Context, recipient, loginURL string) error {
	log.Info().Str("recipient", recipient).Str("login_url", loginURL).
		Msg("onboarding reminder mail suppressed (no mailer configured)")
	return nil
}
