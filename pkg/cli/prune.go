package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/tugboat-ci/tugboat/pkg/cli/config"
	"github.com/tugboat-ci/tugboat/pkg/domain/model"
	"github.com/tugboat-ci/tugboat/pkg/usecase"
)

func cmdPrune(loggerCfg *config.Logger) *cli.Command {
	var (
		githubCfg config.GitHub
		workspace string
		prefix    string
		keep      string
		dryRun    bool
	)

	flags := append(githubCfg.Flags(),
		&cli.StringFlag{
			Name:        "workspace",
			Usage:       "Git checkout to prune tags in",
			Value:       ".",
			Destination: &workspace,
			Sources:     cli.EnvVars("TUGBOAT_WORKSPACE", "GITHUB_WORKSPACE"),
		},
		&cli.StringFlag{
			Name:        "prefix",
			Usage:       "Tag prefix to prune",
			Value:       model.DailyTagPrefix,
			Destination: &prefix,
			Sources:     cli.EnvVars("TUGBOAT_PRUNE_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "keep",
			Usage:       "Tag to keep, normally the current daily tag",
			Destination: &keep,
			Sources:     cli.EnvVars("TUGBOAT_PRUNE_KEEP"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "List the tags that would be deleted without touching anything",
			Destination: &dryRun,
		},
	)

	return &cli.Command{
		Name:    "prune",
		Usage:   "Delete stale prefixed tags locally and on the remote",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := githubCfg.Validate(); err != nil {
				return err
			}

			gitToken, err := resolveGitToken(ctx, &githubCfg)
			if err != nil {
				return err
			}

			ctx, err = rebuildLogger(ctx, loggerCfg, githubCfg.Token, githubCfg.AppPrivateKey, gitToken)
			if err != nil {
				return err
			}
			logger := ctxlog.From(ctx)

			tags, err := buildTagService(&githubCfg, workspace, gitToken)
			if err != nil {
				return err
			}

			uc := usecase.NewPrune(tags)
			pruned, err := uc.Prune(ctx, prefix, keep, dryRun)
			if err != nil {
				return err
			}

			logger.Info("Prune finished",
				slog.String("prefix", prefix),
				slog.Int("pruned", len(pruned)),
				slog.Bool("dry_run", dryRun),
			)
			return nil
		},
	}
}
