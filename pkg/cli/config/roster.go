package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/service/roster"
)

// Roster holds roster source configuration
type Roster struct {
	SourceURL string
}

// Flags returns CLI flags for Roster configuration
func (r *Roster) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "roster-url",
			Usage:       "CSV export URL of the group roster spreadsheet",
			Category:    "Roster",
			Sources:     cli.EnvVars("MANDAP_ROSTER_URL"),
			Destination: &r.SourceURL,
		},
	}
}

// Configure creates the roster source, or nil when unconfigured. The
// groups endpoint then degrades to a 500 instead of the process failing
// to start.
func (r *Roster) Configure() interfaces.RosterSource {
	if !r.IsConfigured() {
		return nil
	}
	return roster.NewSource(r.SourceURL)
}

// IsConfigured checks if the roster source is configured
func (r *Roster) IsConfigured() bool {
	return r.SourceURL != ""
}

// LogValue returns structured log value
func (r Roster) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_source_url", r.SourceURL != ""),
	)
}
