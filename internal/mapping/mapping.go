// Package mapping applies per-supplier column mapping rules to raw feed rows,
// producing rows in the Shopify import schema.
package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etecplus/datafeeds/pkg/normalize"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

// ConfigError reports a setup problem in a mapping rule set or schema. It
// aborts the whole mapping operation; it is never a per-row data error.
type ConfigError struct {
	Supplier string
	Field    string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Supplier == "" {
		return fmt.Sprintf("mapping config: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("mapping config for %s: field %q: %s", e.Supplier, e.Field, e.Reason)
}

// Rule maps one target schema field from the supplier feed. Exactly one of
// Column, Literal, or Columns must be set.
type Rule struct {
	// Column copies a single source column.
	Column string `json:"column,omitempty" yaml:"column,omitempty"`
	// Literal sets a constant value for every row.
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	// Columns concatenates several source columns in order.
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	// Separator joins Columns values. Defaults to a single space.
	Separator string `json:"separator,omitempty" yaml:"separator,omitempty"`
}

// RuleSet is the persisted mapping configuration for one supplier.
type RuleSet struct {
	Supplier string          `json:"supplier" yaml:"supplier"`
	Rules    map[string]Rule `json:"rules"    yaml:"rules"`
}

// requiredFields must appear in every schema for the export to be usable.
var requiredFields = []string{
	domain.FieldHandle,
	domain.FieldTitle,
	domain.FieldVariantSKU,
	domain.FieldCostPerItem,
	domain.FieldOption1Name,
	domain.FieldOption1Value,
}

// ValidateSchema checks that the template carries the fields the pipeline
// depends on.
func ValidateSchema(schema domain.Schema) error {
	for _, f := range requiredFields {
		if !schema.Has(f) {
			return &ConfigError{Field: f, Reason: "required schema field missing from template"}
		}
	}
	return nil
}

// Validate checks every rule in the set. A rule with no variant set, or with
// more than one, is a configuration error naming the offending field.
func (rs RuleSet) Validate() error {
	for field, rule := range rs.Rules {
		set := 0
		if rule.Column != "" {
			set++
		}
		if rule.Literal != "" {
			set++
		}
		if len(rule.Columns) > 0 {
			set++
		}
		switch {
		case set == 0:
			return &ConfigError{
				Supplier: rs.Supplier,
				Field:    field,
				Reason:   "rule sets none of column, literal, or columns",
			}
		case set > 1:
			return &ConfigError{
				Supplier: rs.Supplier,
				Field:    field,
				Reason:   "rule sets more than one of column, literal, and columns",
			}
		}
	}
	return nil
}

// defaultValues are the static Shopify import defaults stamped onto every
// mapped row when the field exists in the schema.
var defaultValues = map[string]string{
	domain.FieldPublished:         "true",
	domain.FieldOption1Name:       "Title",
	"Variant Inventory Tracker":   "shopify",
	"Variant Inventory Policy":    "deny",
	"Variant Fulfillment Service": "manual",
	"Variant Requires Shipping":   "true",
	"Variant Taxable":             "true",
	"Gift Card":                   "false",
	domain.FieldStatus:            "active",
}

// ApplyAll validates the rule set and maps every raw row onto the schema.
// Data-quality problems surface as warnings, never as errors.
func ApplyAll(
	schema domain.Schema,
	rs RuleSet,
	rows []domain.RawRow,
) ([]domain.MappedRow, []normalize.Warning, error) {
	if err := ValidateSchema(schema); err != nil {
		return nil, nil, err
	}
	if err := rs.Validate(); err != nil {
		return nil, nil, err
	}

	mapped := make([]domain.MappedRow, 0, len(rows))
	var warnings []normalize.Warning
	for i := range rows {
		row, warns := applyRow(schema, rs, rows[i])
		mapped = append(mapped, row)
		warnings = append(warnings, warns...)
	}
	return mapped, warnings, nil
}

// Apply maps a single raw row. The rule set must already be validated; use
// ApplyAll for the fail-fast contract.
func Apply(schema domain.Schema, rs RuleSet, row domain.RawRow) (domain.MappedRow, []normalize.Warning) {
	return applyRow(schema, rs, row)
}

func applyRow(schema domain.Schema, rs RuleSet, raw domain.RawRow) (domain.MappedRow, []normalize.Warning) {
	out := domain.NewMappedRow(rs.Supplier)
	var warnings []normalize.Warning

	for _, field := range schema.Fields {
		value, warn := resolveField(field, rs, raw)
		out.Set(field, value)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
	}

	applyDefaults(schema, out)
	return out, warnings
}

// resolveField resolves one target field through its rule and normalizes the
// result. Missing source columns yield empty strings, never errors.
func resolveField(field string, rs RuleSet, raw domain.RawRow) (string, *normalize.Warning) {
	rule, ok := rs.Rules[field]
	if !ok {
		return "", nil
	}

	// The tag field gets token-level cleanup across all its parts.
	if field == domain.FieldTags {
		return normalize.Tags(resolveParts(rule, raw)...), nil
	}

	var value string
	switch {
	case rule.Column != "":
		value = raw.Get(rule.Column)
	case rule.Literal != "":
		value = rule.Literal
	default:
		sep := rule.Separator
		if sep == "" {
			sep = " "
		}
		value = strings.Join(nonEmpty(resolveParts(rule, raw)), sep)
	}

	return normalizeField(field, value)
}

func resolveParts(rule Rule, raw domain.RawRow) []string {
	if rule.Literal != "" {
		return []string{rule.Literal}
	}
	if rule.Column != "" {
		return []string{raw.Get(rule.Column)}
	}
	parts := make([]string, 0, len(rule.Columns))
	for _, col := range rule.Columns {
		parts = append(parts, raw.Get(col))
	}
	return parts
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

func normalizeField(field, value string) (string, *normalize.Warning) {
	switch field {
	case domain.FieldTitle:
		return normalize.Title(value), nil
	case domain.FieldVariantGrams:
		return normalize.WeightGrams(value)
	case domain.FieldVariantInventory:
		return normalize.Quantity(value), nil
	case domain.FieldCostPerItem, domain.FieldVariantPrice:
		return normalizeNumeric(field, value)
	}
	for _, img := range domain.ImageFields {
		if field == img {
			return normalize.ImageURL(value), nil
		}
	}
	return strings.TrimSpace(value), nil
}

// normalizeNumeric rewrites parsable monetary values as plain decimals and
// flags the rest. Unparsable costs stay in the row; ranking treats them as
// infinitely expensive later.
func normalizeNumeric(field, value string) (string, *normalize.Warning) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	v, ok := normalize.Cost(trimmed)
	if !ok {
		return trimmed, &normalize.Warning{
			Field:  field,
			Value:  value,
			Reason: "unparsable numeric value",
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

func applyDefaults(schema domain.Schema, row domain.MappedRow) {
	if schema.Has(domain.FieldVendor) && row.Get(domain.FieldVendor) == "" {
		row.Set(domain.FieldVendor, row.Supplier)
	}
	for field, value := range defaultValues {
		if schema.Has(field) {
			row.Set(field, value)
		}
	}
}
