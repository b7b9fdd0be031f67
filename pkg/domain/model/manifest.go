package model

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// AssetGroup is one category of build artifacts sharing a local directory and
// a content type. Groups are uploaded in manifest order.
type AssetGroup struct {
	Name        string   `toml:"name"`
	Directory   string   `toml:"directory"`
	ContentType string   `toml:"content_type"`
	Files       []string `toml:"files"`
}

// Manifest enumerates every artifact a release carries. It is loaded once at
// startup and passed explicitly through the pipeline.
type Manifest struct {
	Groups []AssetGroup `toml:"group"`
}

// Asset is a single publishable artifact: remote name, media type, local path.
type Asset struct {
	Name        string
	ContentType string
	Path        string
}

// LoadManifest reads and validates a TOML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read manifest", goerr.V("path", path))
	}

	var m Manifest
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, goerr.Wrap(err, "failed to parse manifest", goerr.V("path", path))
	}

	if err := m.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid manifest", goerr.V("path", path))
	}

	return &m, nil
}

// Validate checks structural manifest rules. Remote asset names are flat per
// release, so the same filename may not appear in two groups.
func (m *Manifest) Validate() error {
	if len(m.Groups) == 0 {
		return goerr.New("manifest has no asset groups")
	}

	seen := map[string]string{}
	for _, g := range m.Groups {
		if g.Name == "" {
			return goerr.New("asset group without a name")
		}
		if g.ContentType == "" {
			return goerr.New("asset group without a content type", goerr.V("group", g.Name))
		}
		if len(g.Files) == 0 {
			return goerr.New("asset group without files", goerr.V("group", g.Name))
		}
		for _, f := range g.Files {
			if f == "" {
				return goerr.New("empty filename in asset group", goerr.V("group", g.Name))
			}
			if prev, ok := seen[f]; ok {
				return goerr.New("duplicate filename across groups",
					goerr.V("file", f),
					goerr.V("groups", []string{prev, g.Name}),
				)
			}
			seen[f] = g.Name
		}
	}

	return nil
}

// Assets flattens the manifest in group order, resolving each local path
// against the workspace root.
func (m *Manifest) Assets(workspace string) []Asset {
	var assets []Asset
	for _, g := range m.Groups {
		for _, f := range g.Files {
			assets = append(assets, Asset{
				Name:        f,
				ContentType: g.ContentType,
				Path:        filepath.Join(workspace, g.Directory, f),
			})
		}
	}
	return assets
}

// FileCount returns the number of artifact files across all groups.
func (m *Manifest) FileCount() int {
	n := 0
	for _, g := range m.Groups {
		n += len(g.Files)
	}
	return n
}
