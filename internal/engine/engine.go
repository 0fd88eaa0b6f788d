// Package engine orchestrates the feed pipeline: reading supplier files,
// applying column mappings, deduplicating, and writing export datasets.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/etecplus/datafeeds/internal/export"
	"github.com/etecplus/datafeeds/internal/feed"
	"github.com/etecplus/datafeeds/internal/mapping"
	"github.com/etecplus/datafeeds/internal/metrics"
	"github.com/etecplus/datafeeds/internal/quotes"
	"github.com/etecplus/datafeeds/internal/store"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

// ErrNoTemplate is returned when no Shopify template schema has been
// configured yet.
var ErrNoTemplate = errors.New("no export template configured")

// ErrNoFeeds is returned when the feeds directory contains no usable files.
var ErrNoFeeds = errors.New("no feed files found")

var feedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
	".txt":  true,
}

// Engine orchestrates reading, mapping, deduplication, and export.
type Engine struct {
	store    store.Store
	log      *slog.Logger
	feedsDir string
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(s store.Store, opts ...EngineOption) *Engine {
	eng := &Engine{
		store:    s,
		log:      slog.Default(),
		feedsDir: "feeds",
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithFeedsDir sets the directory scanned for supplier feed files.
func WithFeedsDir(dir string) EngineOption {
	return func(e *Engine) {
		e.feedsDir = dir
	}
}

// supplierBatch holds the mapped rows from a single feed file.
type supplierBatch struct {
	supplier string
	file     string
	rows     []domain.MappedRow
}

// RunExport reads every mapped feed file, assembles the deduplicated
// Shopify table, and writes it as CSV to out.
func (eng *Engine) RunExport(ctx context.Context, out io.Writer) (*domain.RunResult, error) {
	start := time.Now()
	defer func() {
		metrics.ExportDuration.Observe(time.Since(start).Seconds())
	}()

	runID := uuid.NewString()
	log := eng.log.With("run_id", runID)

	schema, batches, skipped, warnings, err := eng.collect(ctx, log)
	if err != nil {
		return nil, err
	}

	perSupplier := make([][]domain.MappedRow, len(batches))
	for i, b := range batches {
		perSupplier[i] = b.rows
	}

	table, stats, err := export.Assemble(schema, perSupplier)
	if err != nil {
		return nil, fmt.Errorf("assembling export: %w", err)
	}
	stats.Warnings += warnings

	if err := export.WriteCSV(out, table); err != nil {
		return nil, fmt.Errorf("writing export CSV: %w", err)
	}

	metrics.ExportDuplicatesRemovedTotal.Add(float64(stats.DuplicatesRemoved))
	metrics.ExportTitlesRetitledTotal.Add(float64(stats.TitlesRetitled))
	metrics.ExportWarningsTotal.Add(float64(stats.Warnings))

	log.Info("export complete",
		"rows", len(table.Rows),
		"duplicates_removed", stats.DuplicatesRemoved,
		"titles_retitled", stats.TitlesRetitled,
		"total_savings", stats.TotalSavings,
		"duration", time.Since(start),
	)

	return &domain.RunResult{
		RunID:     runID,
		Suppliers: batchSuppliers(batches),
		Skipped:   skipped,
		Stats:     stats,
		Duration:  time.Since(start),
	}, nil
}

// BuildQuotes reads every mapped feed file and builds the cross-supplier
// quote index. Unlike RunExport, no rows are removed. When out is non-nil
// the full quoting dataset is also written there as CSV.
func (eng *Engine) BuildQuotes(ctx context.Context, out io.Writer) (*domain.RunResult, *quotes.Index, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := eng.log.With("run_id", runID)

	schema, batches, skipped, _, err := eng.collect(ctx, log)
	if err != nil {
		return nil, nil, err
	}

	perSupplier := make([][]domain.MappedRow, len(batches))
	for i, b := range batches {
		perSupplier[i] = b.rows
	}

	index := quotes.BuildIndex(perSupplier)
	metrics.QuoteEntriesTotal.Add(float64(index.Len()))

	if out != nil {
		if err := index.WriteCSV(out, schema); err != nil {
			return nil, nil, fmt.Errorf("writing quote CSV: %w", err)
		}
	}

	log.Info("quote index built",
		"entries", index.Len(),
		"suppliers", len(batches),
		"duration", time.Since(start),
	)

	return &domain.RunResult{
		RunID:      runID,
		Suppliers:  batchSuppliers(batches),
		Skipped:    skipped,
		QuoteCount: index.Len(),
		Duration:   time.Since(start),
	}, index, nil
}

// collect loads the configuration and maps every recognized feed file in
// the feeds directory. Files with no detectable supplier or no mapping
// are reported in skipped, not treated as errors.
func (eng *Engine) collect(ctx context.Context, log *slog.Logger) (domain.Schema, []supplierBatch, []string, int, error) {
	schema, err := eng.store.LoadTemplate()
	if err != nil {
		return domain.Schema{}, nil, nil, 0, fmt.Errorf("loading template: %w", err)
	}
	if len(schema.Fields) == 0 {
		return domain.Schema{}, nil, nil, 0, ErrNoTemplate
	}
	if err := mapping.ValidateSchema(schema); err != nil {
		return domain.Schema{}, nil, nil, 0, err
	}

	suppliers, err := eng.store.LoadSuppliers()
	if err != nil {
		return domain.Schema{}, nil, nil, 0, fmt.Errorf("loading suppliers: %w", err)
	}
	mappings, err := eng.store.LoadMappings()
	if err != nil {
		return domain.Schema{}, nil, nil, 0, fmt.Errorf("loading mappings: %w", err)
	}

	files, err := listFeedFiles(eng.feedsDir)
	if err != nil {
		return domain.Schema{}, nil, nil, 0, err
	}
	if len(files) == 0 {
		return domain.Schema{}, nil, nil, 0, fmt.Errorf("%w in %s", ErrNoFeeds, eng.feedsDir)
	}

	supplierKeys := store.SupplierKeys(suppliers)
	keywords := store.DetectionKeywords(suppliers)

	var (
		batches  []supplierBatch
		skipped  []string
		warnings int
	)

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return domain.Schema{}, nil, nil, 0, err
		}

		supplier := feed.DetectSupplier(name, supplierKeys, keywords)
		if supplier == "" {
			log.Warn("no supplier matches file, skipping", "file", name)
			metrics.FeedFilesSkippedTotal.Inc()
			skipped = append(skipped, name)
			continue
		}

		rules, ok := mappings[supplier]
		if !ok {
			log.Warn("supplier has no column mapping, skipping",
				"file", name,
				"supplier", supplier,
			)
			metrics.FeedFilesSkippedTotal.Inc()
			skipped = append(skipped, name)
			continue
		}
		if rules.Supplier == "" {
			rules.Supplier = supplier
		}

		raw, err := feed.ReadFile(filepath.Join(eng.feedsDir, name))
		if err != nil {
			return domain.Schema{}, nil, nil, 0, fmt.Errorf("reading feed %s: %w", name, err)
		}

		rows, warns, err := mapping.ApplyAll(schema, rules, raw)
		if err != nil {
			return domain.Schema{}, nil, nil, 0, fmt.Errorf("mapping feed %s: %w", name, err)
		}
		for _, w := range warns {
			log.Debug("normalization warning",
				"file", name,
				"field", w.Field,
				"value", w.Value,
				"reason", w.Reason,
			)
		}
		warnings += len(warns)

		metrics.FeedFilesTotal.WithLabelValues(supplier).Inc()
		metrics.FeedRowsTotal.WithLabelValues(supplier).Add(float64(len(rows)))
		log.Info("feed mapped", "file", name, "supplier", supplier, "rows", len(rows))

		batches = append(batches, supplierBatch{supplier: supplier, file: name, rows: rows})
	}

	return schema, batches, skipped, warnings, nil
}

// listFeedFiles returns the sorted feed file names under dir so runs
// process suppliers in a stable order.
func listFeedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading feeds dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if feedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func batchSuppliers(batches []supplierBatch) []string {
	seen := make(map[string]bool, len(batches))
	var suppliers []string
	for _, b := range batches {
		if !seen[b.supplier] {
			seen[b.supplier] = true
			suppliers = append(suppliers, b.supplier)
		}
	}
	return suppliers
}
