package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"

	"github.com/tugboat-ci/tugboat/pkg/domain/interfaces"
	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

type client struct {
	gh    *github.Client
	owner string
	repo  string
}

type options struct {
	apiURL    string
	uploadURL string
}

// Option adjusts how the underlying GitHub client is built.
type Option func(*options)

// WithBaseURL points the client at a GitHub Enterprise Server instance. Pass
// the full API base (e.g. https://ghe.example.com/api/v3/) and upload base
// (e.g. https://ghe.example.com/api/uploads/).
func WithBaseURL(apiURL, uploadURL string) Option {
	return func(o *options) {
		o.apiURL = apiURL
		o.uploadURL = uploadURL
	}
}

// NewTokenClient creates a release client authenticated with a plain token,
// typically the installation token GitHub Actions provides as GITHUB_TOKEN.
func NewTokenClient(token, owner, repo string, opts ...Option) (interfaces.ReleaseService, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	gh := github.NewClient(nil).WithAuthToken(token)
	if o.apiURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(o.apiURL, o.uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to set enterprise URLs: %w", err)
		}
	}
	return &client{gh: gh, owner: owner, repo: repo}, nil
}

// NewAppClient creates a release client authenticated as a GitHub App
// installation.
func NewAppClient(appID, installationID int64, privateKey []byte, owner, repo string, opts ...Option) (interfaces.ReleaseService, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}

	gh := github.NewClient(&http.Client{Transport: itr})
	if o.apiURL != "" {
		// The App transport mints installation tokens against the same API.
		itr.BaseURL = strings.TrimSuffix(o.apiURL, "/")
		gh, err = gh.WithEnterpriseURLs(o.apiURL, o.uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to set enterprise URLs: %w", err)
		}
	}
	return &client{gh: gh, owner: owner, repo: repo}, nil
}

// InstallationToken mints a short-lived installation token. Git pushes need
// one when the client itself authenticates as a GitHub App.
func InstallationToken(ctx context.Context, appID, installationID int64, privateKey []byte, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	if o.apiURL != "" {
		itr.BaseURL = strings.TrimSuffix(o.apiURL, "/")
	}

	token, err := itr.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to mint installation token: %w", err)
	}
	return token, nil
}

// ListReleases returns every release of the repository, drafts included,
// following pagination to the end.
func (c *client) ListReleases(ctx context.Context) ([]*model.Release, error) {
	var all []*model.Release
	opts := &github.ListOptions{PerPage: 100}

	for {
		releases, resp, err := c.gh.Repositories.ListReleases(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list releases for %s/%s: %w", c.owner, c.repo, err)
		}
		for _, r := range releases {
			all = append(all, toRelease(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *client) CreateRelease(ctx context.Context, intent *model.ReleaseIntent) (*model.Release, error) {
	req := &github.RepositoryRelease{
		TagName:    github.Ptr(intent.TagName),
		Name:       github.Ptr(intent.ReleaseName),
		Draft:      github.Ptr(intent.Draft),
		Prerelease: github.Ptr(intent.Prerelease),
	}
	created, _, err := c.gh.Repositories.CreateRelease(ctx, c.owner, c.repo, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create release %q: %w", intent.ReleaseName, err)
	}
	return toRelease(created), nil
}

// UpdateReleaseTag moves the release to a new tag. Only tag_name is sent so
// the release keeps its name, body and draft/prerelease state.
func (c *client) UpdateReleaseTag(ctx context.Context, releaseID int64, tag string) error {
	req := &github.RepositoryRelease{TagName: github.Ptr(tag)}
	if _, _, err := c.gh.Repositories.EditRelease(ctx, c.owner, c.repo, releaseID, req); err != nil {
		return fmt.Errorf("failed to retag release %d to %s: %w", releaseID, tag, err)
	}
	return nil
}

func (c *client) ListAssets(ctx context.Context, releaseID int64) ([]*model.RemoteAsset, error) {
	var all []*model.RemoteAsset
	opts := &github.ListOptions{PerPage: 100}

	for {
		assets, resp, err := c.gh.Repositories.ListReleaseAssets(ctx, c.owner, c.repo, releaseID, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list assets of release %d: %w", releaseID, err)
		}
		for _, a := range assets {
			all = append(all, &model.RemoteAsset{ID: a.GetID(), Name: a.GetName()})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *client) DeleteAsset(ctx context.Context, assetID int64) error {
	if _, err := c.gh.Repositories.DeleteReleaseAsset(ctx, c.owner, c.repo, assetID); err != nil {
		return fmt.Errorf("failed to delete asset %d: %w", assetID, err)
	}
	return nil
}

// UploadAsset streams the artifact file to the release. go-github sets the
// Content-Length from the file stat, so the file must be a regular file.
func (c *client) UploadAsset(ctx context.Context, releaseID int64, asset model.Asset) (*model.RemoteAsset, error) {
	f, err := os.Open(asset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact %s: %w", asset.Path, err)
	}
	defer f.Close()

	opts := &github.UploadOptions{Name: asset.Name, MediaType: asset.ContentType}
	uploaded, _, err := c.gh.Repositories.UploadReleaseAsset(ctx, c.owner, c.repo, releaseID, opts, f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset %s: %w", asset.Name, err)
	}
	return &model.RemoteAsset{ID: uploaded.GetID(), Name: uploaded.GetName()}, nil
}

func toRelease(r *github.RepositoryRelease) *model.Release {
	return &model.Release{
		ID:         r.GetID(),
		Name:       r.GetName(),
		TagName:    r.GetTagName(),
		Draft:      r.GetDraft(),
		Prerelease: r.GetPrerelease(),
		CreatedAt:  r.GetCreatedAt().Time,
	}
}
