// Package assets supplies build-pipeline stylesheet URLs to the adapter.
// The pipeline exposes asset filenames and a public base path; this
// package joins them and filters for CSS.
package assets

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/srediag/plugin-css/api"
)

// Manifest is the asset list a build pipeline emits.
type Manifest struct {
	// PublicPath is the base URL assets are served under.
	PublicPath string `yaml:"publicPath"`
	// Assets are the emitted asset filenames, CSS or otherwise.
	Assets []string `yaml:"assets"`
}

var _ api.AssetProvider = (*Manifest)(nil)

// LoadManifest reads a yaml manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- manifest path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: parse manifest: %w", err)
	}
	return &m, nil
}

// CSSURLs returns the manifest's CSS assets joined with the public path.
func (m *Manifest) CSSURLs() ([]string, error) {
	var urls []string
	for _, name := range m.Assets {
		if !strings.HasSuffix(name, ".css") {
			continue
		}
		urls = append(urls, joinURL(m.PublicPath, name))
	}
	return urls, nil
}

func joinURL(base, name string) string {
	name = strings.TrimPrefix(name, "/")
	if base == "" {
		return name
	}
	return strings.TrimSuffix(base, "/") + "/" + name
}

// Static is a fixed URL list implementing api.AssetProvider, for tests
// and pipelines that resolve URLs themselves.
type Static []string

var _ api.AssetProvider = (Static)(nil)

// CSSURLs returns a copy of the list.
func (s Static) CSSURLs() ([]string, error) {
	return append([]string(nil), s...), nil
}
