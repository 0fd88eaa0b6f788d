// Package domain defines the core business types for the supplier datafeed
// export pipeline.
package domain

import "time"

// Shopify import schema field names used throughout the pipeline.
const (
	FieldHandle           = "Handle"
	FieldTitle            = "Title"
	FieldVendor           = "Vendor"
	FieldTags             = "Tags"
	FieldPublished        = "Published"
	FieldOption1Name      = "Option1 Name"
	FieldOption1Value     = "Option1 Value"
	FieldVariantSKU       = "Variant SKU"
	FieldVariantGrams     = "Variant Grams"
	FieldVariantInventory = "Variant Inventory Qty"
	FieldVariantPrice     = "Variant Price"
	FieldCostPerItem      = "Cost per item"
	FieldImageSrc         = "Image Src"
	FieldStatus           = "Status"
)

// ImageFields are the columns that may carry product image URLs, checked in
// order of preference.
var ImageFields = []string{
	"Image Src", "Variant Image", "Image", "Product Image", "Image URL",
}

// Schema is the ordered list of target fields from the Shopify CSV template.
// Field order is the canonical column order of every export.
type Schema struct {
	Fields []string
}

// NewSchema builds a Schema from a template header row.
func NewSchema(fields []string) Schema {
	return Schema{Fields: append([]string(nil), fields...)}
}

// Has reports whether the schema defines the given field.
func (s Schema) Has(field string) bool {
	for _, f := range s.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// RawRow is one record read from a supplier feed file. Columns preserves the
// source header order; Values maps column name to cell text.
type RawRow struct {
	Columns []string
	Values  map[string]string
}

// Get returns the cell for a column, or "" when the column is absent.
func (r RawRow) Get(column string) string {
	return r.Values[column]
}

// MappedRow is a supplier record transformed onto the Shopify schema.
// Field order is carried by the Schema, not the row itself.
type MappedRow struct {
	Supplier string
	Fields   map[string]string
}

// NewMappedRow returns an empty mapped row for the given supplier.
func NewMappedRow(supplier string) MappedRow {
	return MappedRow{Supplier: supplier, Fields: make(map[string]string)}
}

// Get returns the value of a schema field, or "" when unset.
func (m MappedRow) Get(field string) string {
	return m.Fields[field]
}

// Set assigns a schema field value.
func (m MappedRow) Set(field, value string) {
	m.Fields[field] = value
}

// Title returns the row's product title.
func (m MappedRow) Title() string { return m.Fields[FieldTitle] }

// SKU returns the row's variant SKU.
func (m MappedRow) SKU() string { return m.Fields[FieldVariantSKU] }

// Clone returns a deep copy of the row.
func (m MappedRow) Clone() MappedRow {
	c := NewMappedRow(m.Supplier)
	for k, v := range m.Fields {
		c.Fields[k] = v
	}
	return c
}

// ExportTable is the final ordered sequence of rows after duplicate
// resolution, ready for CSV serialization. No two rows share a Handle.
type ExportTable struct {
	Schema Schema
	Rows   []MappedRow
}

// RemovedDuplicate records one row dropped by cross-supplier SKU
// deduplication, with the cost difference saved by keeping the cheaper entry.
type RemovedDuplicate struct {
	SKU           string  `json:"variant_sku"`
	Title         string  `json:"title"`
	VendorRemoved string  `json:"vendor_removed"`
	CostRemoved   float64 `json:"cost_removed"`
	VendorKept    string  `json:"vendor_kept"`
	CostKept      float64 `json:"cost_kept"`
	Savings       float64 `json:"savings"`
}

// ExportStats summarizes one export run. Reproducible and deterministic for
// the same inputs.
type ExportStats struct {
	RowsProcessed     int                `json:"rows_processed"`
	VendorCounts      map[string]int     `json:"vendor_counts"`
	DuplicatesRemoved int                `json:"duplicates_removed"`
	TotalSavings      float64            `json:"total_savings"`
	TitlesRetitled    int                `json:"titles_retitled"`
	ImagesPreserved   int                `json:"images_preserved"`
	Warnings          int                `json:"warnings"`
	RemovedDuplicates []RemovedDuplicate `json:"removed_duplicates,omitempty"`
}

// QuoteEntry is one supplier's priced offering for a SKU, used for
// cross-supplier price comparison. Entries are never deduplicated.
type QuoteEntry struct {
	Supplier  string    `json:"supplier"`
	Row       MappedRow `json:"row"`
	Cost      float64   `json:"cost"`
	CostKnown bool      `json:"cost_known"`
	BestPrice bool      `json:"best_price"`
}

// RunResult reports the outcome of one export or quote-build run.
type RunResult struct {
	RunID      string        `json:"run_id"`
	Suppliers  []string      `json:"suppliers"`
	Skipped    []string      `json:"skipped_files,omitempty"`
	Stats      *ExportStats  `json:"stats,omitempty"`
	QuoteCount int           `json:"quote_count,omitempty"`
	Duration   time.Duration `json:"duration"`
}
