package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/tugboat-ci/tugboat/pkg/cli/config"
	"github.com/tugboat-ci/tugboat/pkg/domain/model"
	"github.com/tugboat-ci/tugboat/pkg/usecase"
)

func cmdVerify() *cli.Command {
	var triggerCfg config.Trigger

	return &cli.Command{
		Name:    "verify",
		Aliases: []string{"v"},
		Usage:   "Check that every manifest artifact exists in the workspace",
		Flags:   triggerCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			manifest, err := model.LoadManifest(triggerCfg.Manifest)
			if err != nil {
				return err
			}

			uc := usecase.NewVerify()
			report, err := uc.Verify(ctx, triggerCfg.Workspace, manifest)
			if err != nil {
				return err
			}

			printVerifySummary(report)
			if !report.OK() {
				return goerr.New("artifacts missing from the workspace",
					goerr.V("missing", report.MissingCount()),
					goerr.V("workspace", triggerCfg.Workspace))
			}

			logger.Info("All artifacts present",
				slog.Int("count", len(report.Results)),
				slog.String("workspace", triggerCfg.Workspace),
			)
			return nil
		},
	}
}
