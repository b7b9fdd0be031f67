package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/tugboat-ci/tugboat/pkg/domain/interfaces"
)

type pruneUseCase struct {
	tags interfaces.TagService
}

// NewPrune creates the standalone tag pruning use case.
func NewPrune(tags interfaces.TagService) interfaces.PruneUseCase {
	return &pruneUseCase{tags: tags}
}

// Prune deletes every tag with the prefix except keep, locally and remotely.
func (uc *pruneUseCase) Prune(ctx context.Context, prefix, keep string, dryRun bool) ([]string, error) {
	return pruneTags(ctx, uc.tags, prefix, keep, dryRun)
}

// pruneTags walks the prefixed tags in lexicographic order and deletes each
// one except keep: local delete first, then a push of the remote deletion.
// The first failing push aborts the pass; a half-pruned remote must surface
// loudly rather than be papered over. A failed local delete only warns, the
// remote deletion is still attempted.
func pruneTags(ctx context.Context, tags interfaces.TagService, prefix, keep string, dryRun bool) ([]string, error) {
	logger := ctxlog.From(ctx)

	all, err := tags.ListTags(ctx, prefix)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags", goerr.V("prefix", prefix))
	}

	var pruned []string
	for _, tag := range all {
		if tag == keep {
			continue
		}

		if dryRun {
			logger.Info("Would delete tag", "tag", tag)
			pruned = append(pruned, tag)
			continue
		}

		if err := tags.DeleteLocalTag(ctx, tag); err != nil {
			logger.Warn("Failed to delete local tag, still deleting it on the remote",
				"tag", tag,
				"error", err,
			)
		}
		if err := tags.PushTagDeletion(ctx, tag); err != nil {
			return pruned, goerr.Wrap(err, "failed to delete tag on remote", goerr.V("tag", tag))
		}

		pruned = append(pruned, tag)
		logger.Info("Pruned tag", "tag", tag)
	}

	return pruned, nil
}
