package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/etecplus/datafeeds/internal/mapping"
	"github.com/etecplus/datafeeds/internal/store"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printRunResult(r *domain.RunResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Run:\t%s\n", r.RunID)
	tw.writef("Suppliers:\t%s\n", strings.Join(r.Suppliers, ", "))
	if len(r.Skipped) > 0 {
		tw.writef("Skipped files:\t%s\n", strings.Join(r.Skipped, ", "))
	}
	if r.QuoteCount > 0 {
		tw.writef("Quote entries:\t%d\n", r.QuoteCount)
	}
	tw.writef("Duration:\t%s\n", r.Duration.Round(time.Millisecond))
	if err := tw.finish(); err != nil {
		return err
	}

	if r.Stats == nil {
		return nil
	}
	return printStats(r.Stats)
}

func printStats(s *domain.ExportStats) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Rows processed:\t%d\n", s.RowsProcessed)
	tw.writef("Duplicates removed:\t%d\n", s.DuplicatesRemoved)
	tw.writef("Total savings:\t$%.2f\n", s.TotalSavings)
	tw.writef("Titles renamed:\t%d\n", s.TitlesRetitled)
	tw.writef("Images preserved:\t%d\n", s.ImagesPreserved)
	tw.writef("Warnings:\t%d\n", s.Warnings)
	for _, vendor := range sortedKeys(s.VendorCounts) {
		tw.writef("  %s:\t%d rows\n", vendor, s.VendorCounts[vendor])
	}
	return tw.finish()
}

func printQuoteMatches(sku string, entries []domain.QuoteEntry) error {
	if len(entries) == 0 {
		fmt.Printf("%s: no supplier offers found\n", sku)
		return nil
	}

	fmt.Println(sku + ":")
	tw := newTabWriter(os.Stdout)
	tw.writef("  SUPPLIER\tTITLE\tCOST\tBEST\n")
	for i := range entries {
		cost := "-"
		if entries[i].CostKnown {
			cost = fmt.Sprintf("$%.2f", entries[i].Cost)
		}
		best := ""
		if entries[i].BestPrice {
			best = "*"
		}
		tw.writef("  %s\t%s\t%s\t%s\n",
			entries[i].Supplier,
			truncate(entries[i].Row.Title(), 40),
			cost,
			best,
		)
	}
	return tw.finish()
}

func printSuppliers(suppliers map[string]store.Supplier) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("KEY\tNAME\tKEYWORDS\n")
	for _, key := range store.SupplierKeys(suppliers) {
		s := suppliers[key]
		keywords := strings.Join(s.Keywords, ", ")
		if keywords == "" {
			keywords = key
		}
		tw.writef("%s\t%s\t%s\n", key, s.Name, keywords)
	}
	return tw.finish()
}

func printMappings(mappings map[string]mapping.RuleSet) error {
	tw := newTabWriter(os.Stdout)
	for _, supplier := range sortedKeys(mappings) {
		rs := mappings[supplier]
		tw.writef("%s\n", supplier)
		fields := make([]string, 0, len(rs.Rules))
		for field := range rs.Rules {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			tw.writef("  %s\t%s\n", field, describeRule(rs.Rules[field]))
		}
	}
	return tw.finish()
}

func describeRule(r mapping.Rule) string {
	switch {
	case r.Column != "":
		return "column " + r.Column
	case r.Literal != "":
		return fmt.Sprintf("literal %q", r.Literal)
	case len(r.Columns) > 0:
		sep := r.Separator
		if sep == "" {
			sep = " "
		}
		return fmt.Sprintf("join(%s) with %q", strings.Join(r.Columns, ", "), sep)
	default:
		return "(empty rule)"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
