package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/tugboat-ci/tugboat/pkg/domain/model"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "release-manifest.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
[[group]]
name = "libraries"
directory = "build/libs"
content_type = "application/java-archive"
files = ["worldview.jar", "worldview-ext.jar"]

[[group]]
name = "examples"
directory = "build/dist"
content_type = "application/zip"
files = ["examples.zip"]

[[group]]
name = "tutorials"
directory = "build/dist"
content_type = "application/zip"
files = ["tutorials.zip"]

[[group]]
name = "documentation"
directory = "build/docs"
content_type = "application/zip"
files = ["javadoc.zip"]
`)

	m, err := model.LoadManifest(path)
	gt.NoError(t, err)
	gt.Value(t, len(m.Groups)).Equal(4)
	gt.Value(t, m.FileCount()).Equal(5)

	// Group order from the file is preserved: it drives upload order.
	gt.Value(t, m.Groups[0].Name).Equal("libraries")
	gt.Value(t, m.Groups[1].Name).Equal("examples")
	gt.Value(t, m.Groups[2].Name).Equal("tutorials")
	gt.Value(t, m.Groups[3].Name).Equal("documentation")

	assets := m.Assets("/work")
	gt.Value(t, len(assets)).Equal(5)
	gt.Value(t, assets[0]).Equal(model.Asset{
		Name:        "worldview.jar",
		ContentType: "application/java-archive",
		Path:        filepath.Join("/work", "build/libs", "worldview.jar"),
	})
	gt.Value(t, assets[4].Name).Equal("javadoc.zip")
}

func TestLoadManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "no groups",
			body: ``,
		},
		{
			name: "group without name",
			body: `
[[group]]
directory = "build"
content_type = "application/zip"
files = ["a.zip"]
`,
		},
		{
			name: "group without content type",
			body: `
[[group]]
name = "libraries"
directory = "build"
files = ["a.zip"]
`,
		},
		{
			name: "group without files",
			body: `
[[group]]
name = "libraries"
directory = "build"
content_type = "application/zip"
files = []
`,
		},
		{
			name: "duplicate filename across groups",
			body: `
[[group]]
name = "libraries"
directory = "build/libs"
content_type = "application/zip"
files = ["a.zip"]

[[group]]
name = "documentation"
directory = "build/docs"
content_type = "application/zip"
files = ["a.zip"]
`,
		},
		{
			name: "broken toml",
			body: `[[group`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.LoadManifest(writeManifest(t, tt.body))
			gt.Error(t, err)
		})
	}
}

func TestLoadManifest_FileMissing(t *testing.T) {
	_, err := model.LoadManifest(filepath.Join(t.TempDir(), "nope.toml"))
	gt.Error(t, err)
}
