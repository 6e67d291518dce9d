// YAML catalog support. The XML format in loader.go is the interchange
// format; YAML is the convenient authoring format for locally maintained
// rule sets.

package fingerprint

import (
	"gopkg.in/yaml.v3"
)

// yamlFingerprint mirrors one catalog entry in YAML form.
type yamlFingerprint struct {
	Pattern     string    `yaml:"pattern"`
	Description string    `yaml:"description"`
	Params      []Param   `yaml:"params"`
	Examples    []Example `yaml:"examples"`
}

// ParseYAML parses a YAML fingerprint catalog. It accepts either a bare
// list of fingerprints or a document with a top-level "fingerprints" key.
// Declaration order is preserved.
func ParseYAML(data []byte) (*Database, error) {
	var entries []yamlFingerprint

	if err := yaml.Unmarshal(data, &entries); err != nil || len(entries) == 0 {
		var wrapper struct {
			Fingerprints []yamlFingerprint `yaml:"fingerprints"`
		}
		if err := yaml.Unmarshal(data, &wrapper); err != nil {
			return nil, NewInvalidCatalogError("parse YAML: %v", err)
		}
		entries = wrapper.Fingerprints
	}

	if len(entries) == 0 {
		return nil, NewInvalidCatalogError("no fingerprints found")
	}

	db := NewDatabase()
	for i, entry := range entries {
		if entry.Pattern == "" {
			return nil, NewInvalidCatalogError("fingerprint %d: missing pattern", i)
		}
		fp, err := NewFingerprint(entry.Pattern, entry.Description)
		if err != nil {
			return nil, err
		}
		for _, p := range entry.Params {
			fp.AddParam(p)
		}
		for _, e := range entry.Examples {
			fp.AddExample(e)
		}
		db.Add(fp)
	}

	return db, nil
}
