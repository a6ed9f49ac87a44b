package chefs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EmbeddedCatalogReference identifies the built-in catalog source.
	EmbeddedCatalogReference      = "embedded chef catalog"
	catalogUnmarshalErrorFormat   = "unmarshal chef catalog %s: %w"
	catalogMissingIDErrorFormat   = "chef catalog %s: entry %d has no id"
	catalogMissingNameErrorFormat = "chef catalog %s: chef %q has no name"
	catalogReadErrorFormat        = "read chef catalog %s: %w"
)

var (
	//go:embed default_catalog.yaml
	embeddedCatalogBytes []byte

	errEmptyCatalog = errors.New("chef catalog has no chefs")
)

type catalogDocument struct {
	Chefs []catalogEntry `yaml:"chefs"`
}

type catalogEntry struct {
	Profile   `yaml:",inline"`
	Influence map[Tier]string `yaml:"influence"`
}

// Parse decodes a YAML catalog document. The reference names the source in errors.
func Parse(reference string, content []byte) (Catalog, error) {
	var document catalogDocument
	if err := yaml.Unmarshal(content, &document); err != nil {
		return Catalog{}, fmt.Errorf(catalogUnmarshalErrorFormat, reference, err)
	}
	if len(document.Chefs) == 0 {
		return Catalog{}, fmt.Errorf("%s: %w", reference, errEmptyCatalog)
	}
	profiles := make([]Profile, 0, len(document.Chefs))
	descriptors := make(InfluenceDescriptors, len(document.Chefs))
	for index, entry := range document.Chefs {
		entry.ID = strings.TrimSpace(entry.ID)
		if entry.ID == "" {
			return Catalog{}, fmt.Errorf(catalogMissingIDErrorFormat, reference, index)
		}
		if strings.TrimSpace(entry.Name) == "" {
			return Catalog{}, fmt.Errorf(catalogMissingNameErrorFormat, reference, entry.ID)
		}
		profiles = append(profiles, entry.Profile)
		if len(entry.Influence) > 0 {
			descriptors[entry.ID] = entry.Influence
		}
	}
	return NewCatalog(profiles, descriptors), nil
}

// Default returns the built-in catalog of eight chefs.
func Default() (Catalog, error) {
	return Parse(EmbeddedCatalogReference, embeddedCatalogBytes)
}

// Load reads a catalog from disk, or returns the built-in one when path is empty.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Catalog{}, fmt.Errorf(catalogReadErrorFormat, path, err)
	}
	return Parse(path, content)
}
