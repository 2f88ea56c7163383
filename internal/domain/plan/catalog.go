package plan

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Plans []Plan `yaml:"plans"`
}

// Catalog returns the built-in plan tiers
func Catalog() ([]Plan, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog decodes and validates a YAML plan catalog
func ParseCatalog(data []byte) ([]Plan, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode plan catalog: %w", err)
	}

	seen := make(map[Code]bool, len(f.Plans))
	for _, p := range f.Plans {
		if !p.Code.Valid() {
			return nil, fmt.Errorf("plan %q: unknown code", p.Code)
		}
		if seen[p.Code] {
			return nil, fmt.Errorf("plan %q: duplicate code", p.Code)
		}
		seen[p.Code] = true
		if p.ID == "" || p.PriceCents <= 0 || p.DurationDays <= 0 {
			return nil, fmt.Errorf("plan %q: id, price and duration are required", p.Code)
		}
	}
	return f.Plans, nil
}
