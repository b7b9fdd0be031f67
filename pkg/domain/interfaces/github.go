package interfaces

import (
	"context"

	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

// ReleaseService defines the remote releases surface tugboat depends on.
type ReleaseService interface {
	// ListReleases returns every release of the repository, including drafts.
	ListReleases(ctx context.Context) ([]*model.Release, error)

	// CreateRelease creates a release from the intent. The target commitish is
	// deliberately omitted: the trigger tag must already exist remotely.
	CreateRelease(ctx context.Context, intent *model.ReleaseIntent) (*model.Release, error)

	// UpdateReleaseTag points an existing release at a new tag. Name, draft and
	// prerelease flags are left untouched.
	UpdateReleaseTag(ctx context.Context, releaseID int64, tag string) error

	// ListAssets returns the assets attached to a release.
	ListAssets(ctx context.Context, releaseID int64) ([]*model.RemoteAsset, error)

	// DeleteAsset removes a single release asset by id.
	DeleteAsset(ctx context.Context, assetID int64) error

	// UploadAsset uploads the local file behind the asset as binary data named
	// after the asset.
	UploadAsset(ctx context.Context, releaseID int64, asset model.Asset) (*model.RemoteAsset, error)
}
