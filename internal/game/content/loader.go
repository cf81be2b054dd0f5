package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile is the top-level YAML structure for content files. A file may
// carry any combination of catalogs; LoadDir merges across files.
type catalogFile struct {
	Items     []*Item     `yaml:"items"`
	Actions   []*Action   `yaml:"actions"`
	Locations []*Location `yaml:"locations"`
	Quirks    []*Quirk    `yaml:"quirks"`
	Incidents []*Incident `yaml:"incidents"`
}

// ParseCatalogs parses one content YAML document.
//
// Precondition: data must be valid YAML conforming to the catalog schema.
// Postcondition: Returns the parsed (unvalidated) catalogs or a non-nil error.
func ParseCatalogs(data []byte) (Catalogs, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Catalogs{}, fmt.Errorf("parsing content YAML: %w", err)
	}
	return Catalogs{
		Items:     file.Items,
		Actions:   file.Actions,
		Locations: file.Locations,
		Quirks:    file.Quirks,
		Incidents: file.Incidents,
	}, nil
}

// LoadRegistry reads every YAML file in dir (lexicographic order), merges the
// catalogs, and returns a validated Registry.
//
// Precondition: dir must be a readable directory containing at least one
// .yaml/.yml file.
// Postcondition: Returns a validated Registry or the first error encountered.
func LoadRegistry(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no content files found in %s", dir)
	}

	var merged Catalogs
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading content file %s: %w", name, err)
		}
		c, err := ParseCatalogs(data)
		if err != nil {
			return nil, fmt.Errorf("loading content from %s: %w", name, err)
		}
		merged.Items = append(merged.Items, c.Items...)
		merged.Actions = append(merged.Actions, c.Actions...)
		merged.Locations = append(merged.Locations, c.Locations...)
		merged.Quirks = append(merged.Quirks, c.Quirks...)
		merged.Incidents = append(merged.Incidents, c.Incidents...)
	}

	reg, err := NewRegistry(merged)
	if err != nil {
		return nil, fmt.Errorf("validating content: %w", err)
	}
	return reg, nil
}
