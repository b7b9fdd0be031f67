package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/tugboat-ci/tugboat/pkg/domain/interfaces"
	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

type publishUseCase struct {
	releases interfaces.ReleaseService
	tags     interfaces.TagService
	notifier interfaces.Notifier
	strict   bool
}

// PublishOption adjusts publish behavior.
type PublishOption func(*publishUseCase)

// WithStrict makes an unresolved release id a hard failure instead of a
// logged soft failure.
func WithStrict(strict bool) PublishOption {
	return func(uc *publishUseCase) {
		uc.strict = strict
	}
}

// NewPublish creates the publish pipeline. The notifier may be nil when no
// notification channel is configured.
func NewPublish(
	releases interfaces.ReleaseService,
	tags interfaces.TagService,
	notifier interfaces.Notifier,
	opts ...PublishOption,
) interfaces.PublishUseCase {
	uc := &publishUseCase{
		releases: releases,
		tags:     tags,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Publish runs the pipeline stages strictly in order: intent resolution,
// release upsert, asset sync, daily tag pruning, notification. The release id
// is the only state carried between stages.
func (uc *publishUseCase) Publish(ctx context.Context, trigger model.Trigger, manifest *model.Manifest) (*model.PublishReport, error) {
	report := &model.PublishReport{
		RunID:  uuid.NewString(),
		Intent: model.ResolveIntent(trigger),
	}

	logger := ctxlog.From(ctx).With("run_id", report.RunID)
	ctx = ctxlog.With(ctx, logger)

	if report.Intent.IsNoOp() {
		report.Outcome = model.OutcomeNoOp
		if trigger.Scheduled {
			logger.Info("Scheduled run without a trigger tag, nothing to publish")
		} else {
			logger.Info("No trigger tag, nothing to publish")
		}
		return report, nil
	}

	logger.Info("Resolved release intent",
		"kind", report.Intent.Kind,
		"tag", report.Intent.TagName,
		"release_name", report.Intent.ReleaseName,
		"draft", report.Intent.Draft,
		"prerelease", report.Intent.Prerelease,
	)

	release, created, err := uc.upsertRelease(ctx, report.Intent)
	if err != nil || release == nil || release.ID == 0 {
		if uc.strict {
			if err == nil {
				err = goerr.New("release id unresolved",
					goerr.V("release_name", report.Intent.ReleaseName))
			}
			report.Outcome = model.OutcomeFailed
			return report, goerr.Wrap(err, "failed to resolve a release id")
		}
		report.Outcome = model.OutcomeReleaseUnresolved
		logger.Warn("Could not resolve a release id, skipping asset upload",
			"release_name", report.Intent.ReleaseName,
			"error", err,
		)
		return report, nil
	}
	report.ReleaseID = release.ID
	report.ReleaseCreated = created

	report.Assets = uc.syncAssets(ctx, release.ID, manifest.Assets(trigger.Workspace))

	if report.Intent.Kind == model.IntentDailyBuild {
		pruned, err := pruneTags(ctx, uc.tags, model.DailyTagPrefix, report.Intent.TagName, false)
		report.PrunedTags = pruned
		if err != nil {
			report.Outcome = model.OutcomeFailed
			return report, goerr.Wrap(err, "daily tag pruning failed")
		}
	}

	report.Outcome = model.OutcomePublished
	uc.notify(ctx, report)

	logger.Info("Publish run finished",
		"release_id", report.ReleaseID,
		"release_created", report.ReleaseCreated,
		"uploaded", report.UploadedCount(),
		"failed_assets", len(report.FailedAssets()),
		"pruned_tags", len(report.PrunedTags),
	)
	return report, nil
}

// upsertRelease resolves the release by name, creating it when absent. On a
// pre-existing release only the tag is moved; name, draft and prerelease stay
// as they are.
func (uc *publishUseCase) upsertRelease(ctx context.Context, intent model.ReleaseIntent) (*model.Release, bool, error) {
	logger := ctxlog.From(ctx)

	releases, err := uc.releases.ListReleases(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to list releases")
	}

	existing, dupes := selectByName(releases, intent.ReleaseName)
	if existing == nil {
		created, err := uc.releases.CreateRelease(ctx, &intent)
		if err != nil {
			return nil, false, goerr.Wrap(err, "failed to create release",
				goerr.V("release_name", intent.ReleaseName))
		}
		logger.Info("Created release",
			"release_id", created.ID,
			"release_name", intent.ReleaseName,
			"tag", intent.TagName,
			"draft", intent.Draft,
			"prerelease", intent.Prerelease,
		)
		return created, true, nil
	}

	if dupes > 1 {
		logger.Warn("Multiple releases share the same name, using the most recently created",
			"release_name", intent.ReleaseName,
			"count", dupes,
			"release_id", existing.ID,
		)
	}

	if err := uc.releases.UpdateReleaseTag(ctx, existing.ID, intent.TagName); err != nil {
		return nil, false, goerr.Wrap(err, "failed to update release tag",
			goerr.V("release_id", existing.ID),
			goerr.V("tag", intent.TagName))
	}
	logger.Info("Updated existing release",
		"release_id", existing.ID,
		"release_name", existing.Name,
		"tag", intent.TagName,
	)
	return existing, false, nil
}

// selectByName returns the release whose name matches exactly, plus how many
// matched. When the remote holds several releases with the same name, the
// most recently created one wins.
func selectByName(releases []*model.Release, name string) (*model.Release, int) {
	var match *model.Release
	count := 0
	for _, r := range releases {
		if r.Name != name {
			continue
		}
		count++
		if match == nil || r.CreatedAt.After(match.CreatedAt) {
			match = r
		}
	}
	return match, count
}

// notify is best-effort: a failed notification never fails the run.
func (uc *publishUseCase) notify(ctx context.Context, report *model.PublishReport) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyPublished(ctx, report); err != nil {
		ctxlog.From(ctx).Warn("Failed to send publish notification", "error", err)
	}
}
