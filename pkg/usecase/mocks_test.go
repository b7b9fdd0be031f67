package usecase_test

import (
	"context"

	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

// mockReleaseService is a hand-written ReleaseService mock. Behavior comes
// from the func fields; every call is recorded for assertions.
type mockReleaseService struct {
	listReleasesFunc func(ctx context.Context) ([]*model.Release, error)
	createFunc       func(ctx context.Context, intent *model.ReleaseIntent) (*model.Release, error)
	updateTagFunc    func(ctx context.Context, releaseID int64, tag string) error
	listAssetsFunc   func(ctx context.Context, releaseID int64) ([]*model.RemoteAsset, error)
	deleteAssetFunc  func(ctx context.Context, assetID int64) error
	uploadFunc       func(ctx context.Context, releaseID int64, asset model.Asset) (*model.RemoteAsset, error)

	listReleaseCalls int
	listAssetCalls   int
	createCalls      []model.ReleaseIntent
	updateCalls      []updateTagCall
	deleteCalls      []int64
	uploadCalls      []uploadCall
}

type updateTagCall struct {
	ReleaseID int64
	Tag       string
}

type uploadCall struct {
	ReleaseID int64
	Asset     model.Asset
}

func (m *mockReleaseService) ListReleases(ctx context.Context) ([]*model.Release, error) {
	m.listReleaseCalls++
	if m.listReleasesFunc != nil {
		return m.listReleasesFunc(ctx)
	}
	return nil, nil
}

func (m *mockReleaseService) CreateRelease(ctx context.Context, intent *model.ReleaseIntent) (*model.Release, error) {
	m.createCalls = append(m.createCalls, *intent)
	if m.createFunc != nil {
		return m.createFunc(ctx, intent)
	}
	return &model.Release{
		ID:         101,
		Name:       intent.ReleaseName,
		TagName:    intent.TagName,
		Draft:      intent.Draft,
		Prerelease: intent.Prerelease,
	}, nil
}

func (m *mockReleaseService) UpdateReleaseTag(ctx context.Context, releaseID int64, tag string) error {
	m.updateCalls = append(m.updateCalls, updateTagCall{ReleaseID: releaseID, Tag: tag})
	if m.updateTagFunc != nil {
		return m.updateTagFunc(ctx, releaseID, tag)
	}
	return nil
}

func (m *mockReleaseService) ListAssets(ctx context.Context, releaseID int64) ([]*model.RemoteAsset, error) {
	m.listAssetCalls++
	if m.listAssetsFunc != nil {
		return m.listAssetsFunc(ctx, releaseID)
	}
	return nil, nil
}

func (m *mockReleaseService) DeleteAsset(ctx context.Context, assetID int64) error {
	m.deleteCalls = append(m.deleteCalls, assetID)
	if m.deleteAssetFunc != nil {
		return m.deleteAssetFunc(ctx, assetID)
	}
	return nil
}

func (m *mockReleaseService) UploadAsset(ctx context.Context, releaseID int64, asset model.Asset) (*model.RemoteAsset, error) {
	m.uploadCalls = append(m.uploadCalls, uploadCall{ReleaseID: releaseID, Asset: asset})
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, releaseID, asset)
	}
	return &model.RemoteAsset{ID: int64(1000 + len(m.uploadCalls)), Name: asset.Name}, nil
}

// mockTagService records local deletions and remote deletion pushes.
type mockTagService struct {
	listTagsFunc     func(ctx context.Context, prefix string) ([]string, error)
	deleteLocalFunc  func(ctx context.Context, name string) error
	pushDeletionFunc func(ctx context.Context, name string) error

	listCalls    []string
	localDeletes []string
	pushDeletes  []string
}

func (m *mockTagService) ListTags(ctx context.Context, prefix string) ([]string, error) {
	m.listCalls = append(m.listCalls, prefix)
	if m.listTagsFunc != nil {
		return m.listTagsFunc(ctx, prefix)
	}
	return nil, nil
}

func (m *mockTagService) DeleteLocalTag(ctx context.Context, name string) error {
	m.localDeletes = append(m.localDeletes, name)
	if m.deleteLocalFunc != nil {
		return m.deleteLocalFunc(ctx, name)
	}
	return nil
}

func (m *mockTagService) PushTagDeletion(ctx context.Context, name string) error {
	m.pushDeletes = append(m.pushDeletes, name)
	if m.pushDeletionFunc != nil {
		return m.pushDeletionFunc(ctx, name)
	}
	return nil
}

// mockNotifier records publish notifications.
type mockNotifier struct {
	err     error
	reports []*model.PublishReport
}

func (m *mockNotifier) NotifyPublished(ctx context.Context, report *model.PublishReport) error {
	m.reports = append(m.reports, report)
	return m.err
}

// testManifest is the fixed four-category manifest used across the tests.
func testManifest() *model.Manifest {
	return &model.Manifest{
		Groups: []model.AssetGroup{
			{
				Name:        "libraries",
				Directory:   "build/libs",
				ContentType: "application/java-archive",
				Files:       []string{"core.jar", "extras.jar"},
			},
			{
				Name:        "examples",
				Directory:   "build/dist",
				ContentType: "application/zip",
				Files:       []string{"examples.zip"},
			},
			{
				Name:        "tutorials",
				Directory:   "build/dist",
				ContentType: "application/zip",
				Files:       []string{"tutorials.zip"},
			},
			{
				Name:        "documentation",
				Directory:   "build/docs",
				ContentType: "application/zip",
				Files:       []string{"apidocs.zip"},
			},
		},
	}
}
