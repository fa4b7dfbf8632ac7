package admin

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// CatalogManifest models a YAML document seeding scenarios and resources.
type CatalogManifest struct {
	Version   string                `json:"version" yaml:"version"`
	Name      string                `json:"name,omitempty" yaml:"name,omitempty"`
	Scenarios []CreateScenarioInput `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	Resources []CreateResourceInput `json:"resources,omitempty" yaml:"resources,omitempty"`
	Source    string                `json:"-" yaml:"-"`
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*CatalogManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("admin: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("admin: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*CatalogManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("admin: manifest is empty")
		}
		return nil, fmt.Errorf("admin: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the version and runs each entry through the same input
// validation the catalogs apply, so a bad manifest fails before any store
// call.
func (doc *CatalogManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("admin: unsupported manifest version %q", doc.Version)
	}
	for idx, scenario := range doc.Scenarios {
		if err := scenario.Validate(); err != nil {
			return fmt.Errorf("admin: manifest scenario at index %d: %w", idx, err)
		}
	}
	for idx, resource := range doc.Resources {
		if err := resource.Validate(); err != nil {
			return fmt.Errorf("admin: manifest resource at index %d: %w", idx, err)
		}
	}
	return nil
}

// Empty reports whether the manifest seeds nothing.
func (doc *CatalogManifest) Empty() bool {
	return len(doc.Scenarios) == 0 && len(doc.Resources) == 0
}

func (doc *CatalogManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
