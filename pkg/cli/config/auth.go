package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Auth holds dashboard authentication configuration
type Auth struct {
	Password string
}

// Flags returns CLI flags for Auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dashboard-password",
			Usage:       "Shared dashboard password",
			Category:    "Auth",
			Sources:     cli.EnvVars("MANDAP_DASHBOARD_PASSWORD"),
			Destination: &a.Password,
		},
	}
}

// IsConfigured checks if authentication is configured
func (a *Auth) IsConfigured() bool {
	return a.Password != ""
}

// LogValue returns structured log value
func (a Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_password", a.Password != ""),
	)
}
