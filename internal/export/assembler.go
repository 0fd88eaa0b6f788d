// Package export merges mapped supplier rows into the final Shopify export
// table: cross-supplier SKU deduplication, duplicate-title resolution, vendor
// statistics, and CSV serialization.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/etecplus/datafeeds/internal/dedupe"
	"github.com/etecplus/datafeeds/pkg/normalize"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

// Assemble concatenates per-supplier mapped rows (supplier order first,
// per-supplier row order preserved), deduplicates by Variant SKU keeping the
// cheaper entry, resolves duplicate titles, and computes run statistics.
// The same input always yields the same table and stats.
func Assemble(
	schema domain.Schema,
	perSupplier [][]domain.MappedRow,
) (*domain.ExportTable, *domain.ExportStats, error) {
	var combined []domain.MappedRow
	for _, rows := range perSupplier {
		combined = append(combined, rows...)
	}

	stats := &domain.ExportStats{
		RowsProcessed: len(combined),
		VendorCounts:  make(map[string]int),
	}

	kept := dedupeBySKU(combined, stats)

	resolved, retitled, err := dedupe.Resolve(kept)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving duplicate titles: %w", err)
	}
	stats.TitlesRetitled = retitled

	for i := range resolved {
		fillSchemaFields(schema, resolved[i])
		stats.VendorCounts[vendorOf(resolved[i])]++
	}

	table := &domain.ExportTable{Schema: schema, Rows: resolved}
	return table, stats, nil
}

// dedupeBySKU keeps, for every non-empty SKU, the cheapest row (first seen on
// cost ties) at its original position. Discarded rows donate their image URLs
// to the kept row when it has none, and their cost difference is recorded as
// savings.
func dedupeBySKU(rows []domain.MappedRow, stats *domain.ExportStats) []domain.MappedRow {
	type group struct {
		keep     int
		keepCost float64
		members  []int
	}

	groups := make(map[string]*group)
	var skuOrder []string
	for i := range rows {
		sku := rows[i].SKU()
		if sku == "" {
			// No identity, never deduplicated.
			continue
		}
		cost := costOf(rows[i])
		g, ok := groups[sku]
		if !ok {
			groups[sku] = &group{keep: i, keepCost: cost, members: []int{i}}
			skuOrder = append(skuOrder, sku)
			continue
		}
		g.members = append(g.members, i)
		if cost < g.keepCost {
			g.keep = i
			g.keepCost = cost
		}
	}

	dropped := make(map[int]bool)
	for _, sku := range skuOrder {
		g := groups[sku]
		if len(g.members) < 2 {
			continue
		}
		keptRow := rows[g.keep]
		stats.ImagesPreserved += preserveImages(keptRow, g.members, g.keep, rows)
		for _, idx := range g.members {
			if idx == g.keep {
				continue
			}
			dropped[idx] = true
			stats.DuplicatesRemoved++
			recordRemoval(stats, rows[idx], keptRow)
		}
	}

	kept := make([]domain.MappedRow, 0, len(rows)-len(dropped))
	for i := range rows {
		if !dropped[i] {
			kept = append(kept, rows[i])
		}
	}
	return kept
}

func recordRemoval(stats *domain.ExportStats, removed, kept domain.MappedRow) {
	removedCost, removedOK := normalize.Cost(removed.Get(domain.FieldCostPerItem))
	keptCost, keptOK := normalize.Cost(kept.Get(domain.FieldCostPerItem))

	detail := domain.RemovedDuplicate{
		SKU:           removed.SKU(),
		Title:         removed.Title(),
		VendorRemoved: vendorOf(removed),
		VendorKept:    vendorOf(kept),
	}
	if removedOK && keptOK {
		detail.CostRemoved = removedCost
		detail.CostKept = keptCost
		detail.Savings = removedCost - keptCost
		stats.TotalSavings += detail.Savings
	}
	stats.RemovedDuplicates = append(stats.RemovedDuplicates, detail)
}

// preserveImages backfills empty image fields on the kept row from the
// discarded duplicates, cheapest donor first. Returns the number of fields
// filled.
func preserveImages(kept domain.MappedRow, members []int, keepIdx int, rows []domain.MappedRow) int {
	donors := make([]int, 0, len(members)-1)
	for _, idx := range members {
		if idx != keepIdx {
			donors = append(donors, idx)
		}
	}
	sortByCost(donors, rows)

	filled := 0
	for _, field := range domain.ImageFields {
		if usableImage(kept.Get(field)) {
			continue
		}
		for _, idx := range donors {
			if v := rows[idx].Get(field); usableImage(v) {
				kept.Set(field, v)
				filled++
				break
			}
		}
	}
	return filled
}

func sortByCost(idxs []int, rows []domain.MappedRow) {
	sort.SliceStable(idxs, func(a, b int) bool {
		return costOf(rows[idxs[a]]) < costOf(rows[idxs[b]])
	})
}

func usableImage(v string) bool {
	s := strings.TrimSpace(v)
	switch strings.ToLower(s) {
	case "", "none", "null", "n/a":
		return false
	}
	if strings.HasPrefix(s, "http") || strings.HasPrefix(s, "www.") ||
		strings.HasPrefix(s, "ftp://") {
		return true
	}
	return strings.Contains(s, ".")
}

func costOf(row domain.MappedRow) float64 {
	v, ok := normalize.Cost(row.Get(domain.FieldCostPerItem))
	if !ok {
		return math.Inf(1)
	}
	return v
}

func vendorOf(row domain.MappedRow) string {
	if v := row.Get(domain.FieldVendor); v != "" {
		return v
	}
	return row.Supplier
}

func fillSchemaFields(schema domain.Schema, row domain.MappedRow) {
	for _, field := range schema.Fields {
		if _, ok := row.Fields[field]; !ok {
			row.Set(field, "")
		}
	}
}
