package config

import (
	"github.com/urfave/cli/v3"

	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

// Trigger holds what started this run and where the build outputs are.
type Trigger struct {
	Tag       string
	Scheduled bool
	Workspace string
	Manifest  string
}

// Flags returns CLI flags for trigger configuration
func (c *Trigger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "Trigger tag of this run; leave empty for a no-op",
			Destination: &c.Tag,
			Sources:     cli.EnvVars("TUGBOAT_TAG"),
		},
		&cli.BoolFlag{
			Name:        "scheduled",
			Usage:       "Mark this run as started by a scheduler",
			Destination: &c.Scheduled,
			Sources:     cli.EnvVars("TUGBOAT_SCHEDULED"),
		},
		&cli.StringFlag{
			Name:        "workspace",
			Usage:       "Build workspace holding the artifacts",
			Value:       ".",
			Destination: &c.Workspace,
			Sources:     cli.EnvVars("TUGBOAT_WORKSPACE", "GITHUB_WORKSPACE"),
		},
		&cli.StringFlag{
			Name:        "manifest",
			Usage:       "Path to the release manifest",
			Value:       "release-manifest.toml",
			Destination: &c.Manifest,
			Sources:     cli.EnvVars("TUGBOAT_MANIFEST"),
		},
	}
}

// Model converts the configuration into the domain trigger.
func (c *Trigger) Model() model.Trigger {
	return model.Trigger{
		Tag:       c.Tag,
		Scheduled: c.Scheduled,
		Workspace: c.Workspace,
	}
}
