// Package store persists the supplier registry, per-supplier column
// mappings and the Shopify template schema as JSON documents.
package store

import (
	"sort"

	"github.com/etecplus/datafeeds/internal/mapping"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

// Supplier describes a registered feed source. Keywords are matched
// against incoming file names to attribute a feed to its supplier.
type Supplier struct {
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords,omitempty"`
	Filename    string   `json:"filename,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Store is the persistence boundary for feed configuration. Loads on
// missing data return empty values rather than errors so a fresh
// workspace behaves like an empty configuration.
type Store interface {
	LoadSuppliers() (map[string]Supplier, error)
	SaveSuppliers(suppliers map[string]Supplier) error

	LoadMappings() (map[string]mapping.RuleSet, error)
	SaveMappings(mappings map[string]mapping.RuleSet) error

	LoadTemplate() (domain.Schema, error)
	SaveTemplate(schema domain.Schema) error
}

// SupplierKeys returns the registry keys in sorted order so callers
// iterate suppliers deterministically.
func SupplierKeys(suppliers map[string]Supplier) []string {
	keys := make([]string, 0, len(suppliers))
	for k := range suppliers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DetectionKeywords flattens the registry into the keyword table used
// for file name matching. A known feed filename counts as a keyword; a
// supplier with neither matches on its own key.
func DetectionKeywords(suppliers map[string]Supplier) map[string][]string {
	keywords := make(map[string][]string, len(suppliers))
	for key, s := range suppliers {
		kw := append([]string(nil), s.Keywords...)
		if s.Filename != "" {
			kw = append(kw, s.Filename)
		}
		if len(kw) == 0 {
			kw = []string{key}
		}
		keywords[key] = kw
	}
	return keywords
}
