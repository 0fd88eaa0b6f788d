// Package quotes builds the cross-supplier price-comparison index: a
// flattened, non-deduplicated view of every mapped supplier row, searchable
// by SKU.
package quotes

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/etecplus/datafeeds/pkg/normalize"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

// Index holds one entry per original supplier record. Titles and handles are
// never rewritten here; colliding titles all stay searchable.
type Index struct {
	entries []domain.QuoteEntry
	bySKU   map[string][]int
}

// BuildIndex flattens mapped rows from every supplier, tagging each entry
// with its supplier identity. No information is lost: every row becomes
// exactly one entry.
func BuildIndex(perSupplier [][]domain.MappedRow) *Index {
	ix := &Index{bySKU: make(map[string][]int)}
	for _, rows := range perSupplier {
		for i := range rows {
			cost, known := normalize.Cost(rows[i].Get(domain.FieldCostPerItem))
			entry := domain.QuoteEntry{
				Supplier:  rows[i].Supplier,
				Row:       rows[i],
				Cost:      cost,
				CostKnown: known,
			}
			key := skuKey(rows[i].SKU())
			ix.bySKU[key] = append(ix.bySKU[key], len(ix.entries))
			ix.entries = append(ix.entries, entry)
		}
	}
	return ix
}

// Len returns the number of entries in the index.
func (ix *Index) Len() int { return len(ix.entries) }

// Entries returns every entry in build order.
func (ix *Index) Entries() []domain.QuoteEntry {
	return append([]domain.QuoteEntry(nil), ix.entries...)
}

// Lookup returns every entry matching the SKU exactly (case-insensitive),
// sorted ascending by cost with the cheapest priced entry flagged as best
// price. Unknown SKUs yield an empty result, never an error.
func (ix *Index) Lookup(sku string) []domain.QuoteEntry {
	idxs := ix.bySKU[skuKey(sku)]
	if len(idxs) == 0 {
		return nil
	}

	matches := make([]domain.QuoteEntry, len(idxs))
	for i, idx := range idxs {
		matches[i] = ix.entries[idx]
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return rankCost(matches[a]) < rankCost(matches[b])
	})
	if matches[0].CostKnown {
		matches[0].BestPrice = true
	}
	return matches
}

// LookupAll resolves a batch of SKUs in one call. Every requested SKU has a
// key in the result; unmatched SKUs map to an empty slice.
func (ix *Index) LookupAll(skus []string) map[string][]domain.QuoteEntry {
	results := make(map[string][]domain.QuoteEntry, len(skus))
	for _, sku := range skus {
		results[sku] = ix.Lookup(sku)
	}
	return results
}

// WriteCSV serializes the full index with the schema columns plus a trailing
// Supplier column.
func (ix *Index) WriteCSV(w io.Writer, schema domain.Schema) error {
	cw := csv.NewWriter(w)

	header := append(append([]string(nil), schema.Fields...), "_Supplier")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(header))
	for i := range ix.entries {
		for j, field := range schema.Fields {
			record[j] = ix.entries[i].Row.Get(field)
		}
		record[len(record)-1] = ix.entries[i].Supplier
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing entry %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func skuKey(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func rankCost(e domain.QuoteEntry) float64 {
	if !e.CostKnown {
		// Unpriced entries sort after every priced one.
		return math.Inf(1)
	}
	return e.Cost
}
