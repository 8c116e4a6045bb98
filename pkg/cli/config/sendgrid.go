package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/service/notify"
)

// SendGrid holds SendGrid configuration for the email channel
type SendGrid struct {
	APIKey    string
	FromEmail string
}

// Flags returns CLI flags for SendGrid configuration
func (s *SendGrid) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sendgrid-api-key",
			Usage:       "SendGrid API key",
			Category:    "SendGrid",
			Sources:     cli.EnvVars("MANDAP_SENDGRID_API_KEY"),
			Destination: &s.APIKey,
		},
		&cli.StringFlag{
			Name:        "sendgrid-from-email",
			Usage:       "Sender email address",
			Category:    "SendGrid",
			Sources:     cli.EnvVars("MANDAP_SENDGRID_FROM_EMAIL"),
			Destination: &s.FromEmail,
		},
	}
}

// Configure creates the email sender, or nil when unconfigured
func (s *SendGrid) Configure(event *model.EventConfig) interfaces.Sender {
	if !s.IsConfigured() {
		return nil
	}
	return notify.NewSendGridEmail(s.APIKey, s.FromEmail, event)
}

// IsConfigured checks if SendGrid is configured
func (s *SendGrid) IsConfigured() bool {
	return s.APIKey != "" && s.FromEmail != ""
}

// LogValue returns structured log value
func (s SendGrid) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_api_key", s.APIKey != ""),
		slog.Bool("has_from_email", s.FromEmail != ""),
	)
}
