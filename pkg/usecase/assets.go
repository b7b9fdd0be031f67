package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

// syncAssets replaces the remote asset set with the manifest's build outputs.
// Stale assets for every manifest file are deleted in one full pass, then
// uploads run in manifest order. Every delete and upload is independent: a
// failure is recorded on its asset and the pass moves on. No retries.
func (uc *publishUseCase) syncAssets(ctx context.Context, releaseID int64, assets []model.Asset) []model.AssetResult {
	logger := ctxlog.From(ctx)

	results := make([]model.AssetResult, len(assets))
	for i, a := range assets {
		results[i] = model.AssetResult{Name: a.Name}
	}

	remote, err := uc.releases.ListAssets(ctx, releaseID)
	if err != nil {
		// The delete pass degrades to a no-op; uploads still run.
		logger.Warn("Failed to list remote assets, skipping stale asset cleanup",
			"release_id", releaseID,
			"error", err,
		)
	}
	byName := make(map[string]int64, len(remote))
	for _, ra := range remote {
		byName[ra.Name] = ra.ID
	}

	for i, a := range assets {
		id, ok := byName[a.Name]
		if !ok {
			continue
		}
		if err := uc.releases.DeleteAsset(ctx, id); err != nil {
			results[i].Error = err.Error()
			logger.Warn("Failed to delete stale asset",
				"asset", a.Name,
				"asset_id", id,
				"error", err,
			)
			continue
		}
		results[i].Replaced = true
		logger.Debug("Deleted stale asset", "asset", a.Name, "asset_id", id)
	}

	for i, a := range assets {
		uploaded, err := uc.releases.UploadAsset(ctx, releaseID, a)
		if err != nil {
			results[i].Error = err.Error()
			logger.Warn("Failed to upload asset",
				"asset", a.Name,
				"path", a.Path,
				"error", err,
			)
			continue
		}
		results[i].Uploaded = true
		logger.Info("Uploaded asset",
			"asset", a.Name,
			"asset_id", uploaded.ID,
			"content_type", a.ContentType,
		)
	}

	return results
}
