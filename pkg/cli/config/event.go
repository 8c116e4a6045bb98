package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// Event holds the event wording configuration
type Event struct {
	ConfigFile string
	DryRun     bool
}

// Flags returns CLI flags for Event configuration
func (e *Event) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "event-config",
			Usage:       "Path to YAML file with event wording (couple, station, message templates)",
			Category:    "Event",
			Sources:     cli.EnvVars("MANDAP_EVENT_CONFIG"),
			Destination: &e.ConfigFile,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Simulate notifications without contacting providers",
			Category:    "Event",
			Sources:     cli.EnvVars("MANDAP_DRY_RUN"),
			Destination: &e.DryRun,
		},
	}
}

// Configure loads the event config file, falling back to built-in
// wording when no file is given. Missing fields in the file inherit the
// defaults.
func (e *Event) Configure() (*model.EventConfig, error) {
	event := model.DefaultEventConfig()

	if e.ConfigFile != "" {
		data, err := os.ReadFile(e.ConfigFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read event config file",
				goerr.V("path", e.ConfigFile))
		}
		if err := yaml.Unmarshal(data, event); err != nil {
			return nil, goerr.Wrap(err, "failed to parse event config file",
				goerr.V("path", e.ConfigFile))
		}
	}

	if err := event.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid event config")
	}

	return event, nil
}

// LogValue returns structured log value
func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config_file", e.ConfigFile),
		slog.Bool("dry_run", e.DryRun),
	)
}
