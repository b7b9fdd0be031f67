package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/tugboat-ci/tugboat/pkg/cli/config"
	"github.com/tugboat-ci/tugboat/pkg/domain/interfaces"
	"github.com/tugboat-ci/tugboat/pkg/domain/model"
	gitinfra "github.com/tugboat-ci/tugboat/pkg/infra/git"
	githubinfra "github.com/tugboat-ci/tugboat/pkg/infra/github"
	"github.com/tugboat-ci/tugboat/pkg/infra/notify"
	"github.com/tugboat-ci/tugboat/pkg/usecase"
)

func cmdPublish(loggerCfg *config.Logger) *cli.Command {
	var (
		githubCfg  config.GitHub
		triggerCfg config.Trigger
		notifyCfg  config.Notify
		strict     bool
		reportPath string
	)

	flags := append(githubCfg.Flags(), triggerCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Fail the run when the release id cannot be resolved",
			Destination: &strict,
			Sources:     cli.EnvVars("TUGBOAT_STRICT"),
		},
		&cli.StringFlag{
			Name:        "report",
			Usage:       "Write the machine-readable run report to this file",
			Destination: &reportPath,
			Sources:     cli.EnvVars("TUGBOAT_REPORT"),
		},
	)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Create or update the release for the trigger tag and upload its artifacts",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := githubCfg.Validate(); err != nil {
				return err
			}

			manifest, err := model.LoadManifest(triggerCfg.Manifest)
			if err != nil {
				return err
			}

			releases, err := buildReleaseService(&githubCfg)
			if err != nil {
				return err
			}
			gitToken, err := resolveGitToken(ctx, &githubCfg)
			if err != nil {
				return err
			}

			ctx, err = rebuildLogger(ctx, loggerCfg,
				githubCfg.Token, githubCfg.AppPrivateKey, notifyCfg.SlackWebhookURL, gitToken)
			if err != nil {
				return err
			}
			logger := ctxlog.From(ctx)

			logger.Info("Starting publish run",
				slog.String("repo", githubCfg.Repo),
				slog.String("tag", triggerCfg.Tag),
				slog.Bool("scheduled", triggerCfg.Scheduled),
				slog.String("workspace", triggerCfg.Workspace),
				slog.Int("manifest_files", manifest.FileCount()),
			)

			tags, err := buildTagService(&githubCfg, triggerCfg.Workspace, gitToken)
			if err != nil {
				return err
			}

			var notifier interfaces.Notifier
			if notifyCfg.Enabled() {
				notifier = notify.NewSlack(notifyCfg.SlackWebhookURL, githubCfg.Repo)
			}

			uc := usecase.NewPublish(releases, tags, notifier, usecase.WithStrict(strict))
			report, runErr := uc.Publish(ctx, triggerCfg.Model(), manifest)

			if report != nil {
				if reportPath != "" {
					if werr := writeReport(reportPath, report); werr != nil {
						if runErr == nil {
							runErr = werr
						} else {
							logger.Warn("Failed to write run report",
								slog.String("path", reportPath),
								slog.Any("error", werr),
							)
						}
					}
				}
				printSummary(report)
			}
			return runErr
		},
	}
}

// appPrivateKey returns the App key PEM bytes, reading the file variant when
// set.
func appPrivateKey(cfg *config.GitHub) ([]byte, error) {
	if cfg.AppPrivateKeyFile != "" {
		key, err := os.ReadFile(cfg.AppPrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read App private key file",
				goerr.V("path", cfg.AppPrivateKeyFile))
		}
		return key, nil
	}
	return []byte(cfg.AppPrivateKey), nil
}

func enterpriseOpts(cfg *config.GitHub) []githubinfra.Option {
	if cfg.APIURL == "" {
		return nil
	}
	return []githubinfra.Option{githubinfra.WithBaseURL(cfg.APIURL, cfg.UploadURL)}
}

func buildReleaseService(cfg *config.GitHub) (interfaces.ReleaseService, error) {
	owner, name, err := cfg.ParseRepo()
	if err != nil {
		return nil, err
	}

	opts := enterpriseOpts(cfg)
	if cfg.HasAppAuth() {
		appID, installationID, err := cfg.AppCredentials()
		if err != nil {
			return nil, err
		}
		key, err := appPrivateKey(cfg)
		if err != nil {
			return nil, err
		}
		return githubinfra.NewAppClient(appID, installationID, key, owner, name, opts...)
	}
	return githubinfra.NewTokenClient(cfg.Token, owner, name, opts...)
}

// resolveGitToken returns the token git pushes authenticate with. In App mode
// a fresh installation token is minted.
func resolveGitToken(ctx context.Context, cfg *config.GitHub) (string, error) {
	if !cfg.HasAppAuth() {
		return cfg.Token, nil
	}
	appID, installationID, err := cfg.AppCredentials()
	if err != nil {
		return "", err
	}
	key, err := appPrivateKey(cfg)
	if err != nil {
		return "", err
	}
	return githubinfra.InstallationToken(ctx, appID, installationID, key, enterpriseOpts(cfg)...)
}

// buildTagService wires the git checkout in the workspace with a push URL
// carrying the token.
func buildTagService(cfg *config.GitHub, workspace, token string) (interfaces.TagService, error) {
	owner, name, err := cfg.ParseRepo()
	if err != nil {
		return nil, err
	}
	host, err := cfg.ServerHost()
	if err != nil {
		return nil, err
	}
	remoteURL := gitinfra.AuthRemoteURL(host, owner, name, token)
	return gitinfra.New(workspace, remoteURL), nil
}

func writeReport(path string, report *model.PublishReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal run report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write run report", goerr.V("path", path))
	}
	return nil
}
