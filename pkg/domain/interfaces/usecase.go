package interfaces

import (
	"context"

	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

// PublishUseCase runs the full publish pipeline: intent resolution, release
// upsert, asset sync and daily tag pruning.
type PublishUseCase interface {
	Publish(ctx context.Context, trigger model.Trigger, manifest *model.Manifest) (*model.PublishReport, error)
}

// PruneUseCase deletes stale prefixed tags locally and remotely, keeping one.
type PruneUseCase interface {
	Prune(ctx context.Context, prefix, keep string, dryRun bool) ([]string, error)
}

// VerifyUseCase checks that every manifest artifact exists in the workspace.
type VerifyUseCase interface {
	Verify(ctx context.Context, workspace string, manifest *model.Manifest) (*model.VerifyReport, error)
}
