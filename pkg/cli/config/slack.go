package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/service/slackops"
)

// Slack holds Slack configuration for operator notices
type Slack struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for ops notices",
			Category:    "Slack",
			Sources:     cli.EnvVars("MANDAP_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID for ops notices",
			Category:    "Slack",
			Sources:     cli.EnvVars("MANDAP_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// Configure creates the ops notifier; a no-op notifier when Slack is not
// configured
func (s *Slack) Configure(logger *slog.Logger) interfaces.OpsNotifier {
	if !s.IsConfigured() {
		logger.Warn("Slack not configured - ops notices disabled")
		return slackops.Nop{}
	}
	return slackops.New(s.OAuthToken, s.Channel)
}

// IsConfigured checks if Slack is properly configured
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.Channel != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
	)
}
