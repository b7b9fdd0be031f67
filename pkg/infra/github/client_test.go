package github_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/tugboat-ci/tugboat/pkg/domain/interfaces"
	"github.com/tugboat-ci/tugboat/pkg/domain/model"
	githubinfra "github.com/tugboat-ci/tugboat/pkg/infra/github"
)

// newTestClient wires a token client against a local httptest server. The
// go-github enterprise URLs put the REST API under /api/v3/ and uploads under
// /api/uploads/.
func newTestClient(t *testing.T, handler http.Handler) interfaces.ReleaseService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := githubinfra.NewTokenClient("test-token", "processing", "processing4",
		githubinfra.WithBaseURL(server.URL, server.URL))
	gt.NoError(t, err)
	return client
}

func TestClientCreateRelease(t *testing.T) {
	var captured map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v3/repos/processing/processing4/releases", func(w http.ResponseWriter, r *http.Request) {
		gt.String(t, r.Header.Get("Authorization")).Contains("test-token")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":42,"name":"v2.1.0","tag_name":"v2.1.0","draft":true,"prerelease":false,"created_at":"2026-08-25T10:00:00Z"}`)
	})
	client := newTestClient(t, mux)

	intent := &model.ReleaseIntent{
		Kind:        model.IntentManualDraft,
		TagName:     "v2.1.0",
		ReleaseName: "v2.1.0",
		Draft:       true,
		Prerelease:  false,
	}
	release, err := client.CreateRelease(context.Background(), intent)
	gt.NoError(t, err)

	gt.Equal(t, release.ID, int64(42))
	gt.True(t, release.Draft)

	// The create request must carry all four release fields.
	gt.Equal(t, captured["tag_name"], "v2.1.0")
	gt.Equal(t, captured["name"], "v2.1.0")
	gt.Equal(t, captured["draft"], true)
	gt.Equal(t, captured["prerelease"], false)
}

func TestClientUpdateReleaseTagSendsOnlyTagName(t *testing.T) {
	var captured map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/v3/repos/processing/processing4/releases/7", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":7,"tag_name":"daily/20260825"}`)
	})
	client := newTestClient(t, mux)

	gt.NoError(t, client.UpdateReleaseTag(context.Background(), 7, "daily/20260825"))

	// Anything beyond tag_name would clobber the release name or flags.
	gt.Equal(t, captured, map[string]any{"tag_name": "daily/20260825"})
}

func TestClientListReleasesFollowsPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/processing/processing4/releases", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			io.WriteString(w, `[{"id":3,"name":"v2.0.0","tag_name":"v2.0.0","created_at":"2026-01-10T00:00:00Z"}]`)
			return
		}
		w.Header().Set("Link", `<http://`+r.Host+r.URL.Path+`?page=2>; rel="next"`)
		io.WriteString(w, `[{"id":7,"name":"Daily Build","tag_name":"daily/20260824","prerelease":true,"created_at":"2026-08-24T03:00:00Z"}]`)
	})
	client := newTestClient(t, mux)

	releases, err := client.ListReleases(context.Background())
	gt.NoError(t, err)

	gt.Equal(t, len(releases), 2)
	gt.Equal(t, releases[0].ID, int64(7))
	gt.Equal(t, releases[0].Name, "Daily Build")
	gt.True(t, releases[0].Prerelease)
	gt.Equal(t, releases[0].CreatedAt.Year(), 2026)
	gt.Equal(t, releases[1].TagName, "v2.0.0")
}

func TestClientListAndDeleteAssets(t *testing.T) {
	deleted := []string{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/processing/processing4/releases/7/assets", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":201,"name":"core.jar"},{"id":202,"name":"apidocs.zip"}]`)
	})
	mux.HandleFunc("DELETE /api/v3/repos/processing/processing4/releases/assets/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)

	assets, err := client.ListAssets(context.Background(), 7)
	gt.NoError(t, err)
	gt.Equal(t, len(assets), 2)
	gt.Equal(t, assets[0].Name, "core.jar")

	gt.NoError(t, client.DeleteAsset(context.Background(), 201))
	gt.Equal(t, deleted, []string{"201"})
}

func TestClientUploadAsset(t *testing.T) {
	artifact := filepath.Join(t.TempDir(), "core.jar")
	gt.NoError(t, os.WriteFile(artifact, []byte("jar bytes"), 0o644))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/uploads/repos/processing/processing4/releases/7/assets", func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Query().Get("name"), "core.jar")
		gt.Equal(t, r.Header.Get("Content-Type"), "application/java-archive")

		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gt.Equal(t, string(body), "jar bytes")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":301,"name":"core.jar"}`)
	})
	client := newTestClient(t, mux)

	asset := model.Asset{Name: "core.jar", ContentType: "application/java-archive", Path: artifact}
	uploaded, err := client.UploadAsset(context.Background(), 7, asset)
	gt.NoError(t, err)

	gt.Equal(t, uploaded.ID, int64(301))
	gt.Equal(t, uploaded.Name, "core.jar")
}

func TestClientUploadAssetMissingFile(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	asset := model.Asset{Name: "core.jar", ContentType: "application/java-archive", Path: "/no/such/file"}
	_, err := client.UploadAsset(context.Background(), 7, asset)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to open artifact")
}
