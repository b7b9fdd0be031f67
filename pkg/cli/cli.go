package cli

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/tugboat-ci/tugboat/pkg/cli/config"
	"github.com/tugboat-ci/tugboat/pkg/domain/types"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
		flush     = func() {}
	)

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "tugboat",
		Usage:   "Publish CI build artifacts as GitHub releases",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			if flush, err = sentryCfg.Configure(); err != nil {
				return nil, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdPublish(&loggerCfg),
			cmdVerify(),
			cmdPrune(&loggerCfg),
		},
	}

	err := app.Run(ctx, args)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))

		if hub := sentry.CurrentHub(); hub.Client() != nil {
			hub.CaptureException(err)
		}
	}
	flush()
	return err
}

// rebuildLogger reconfigures the logger once credential values are known so
// the redaction filter covers each of them verbatim.
func rebuildLogger(ctx context.Context, loggerCfg *config.Logger, secrets ...string) (context.Context, error) {
	loggerCfg.HideSecrets(secrets...)
	logger, err := loggerCfg.Configure()
	if err != nil {
		return ctx, err
	}
	slog.SetDefault(logger)
	return ctxlog.With(ctx, logger), nil
}
