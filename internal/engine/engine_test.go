package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etecplus/datafeeds/internal/mapping"
	"github.com/etecplus/datafeeds/internal/store"
	"github.com/etecplus/datafeeds/pkg/logger"
	domain "github.com/etecplus/datafeeds/pkg/types"
)

func testSchema() domain.Schema {
	return domain.NewSchema([]string{
		domain.FieldHandle,
		domain.FieldTitle,
		domain.FieldVendor,
		domain.FieldOption1Name,
		domain.FieldOption1Value,
		domain.FieldVariantSKU,
		domain.FieldCostPerItem,
	})
}

func testStore(t *testing.T) *store.Memory {
	t.Helper()

	s := store.NewMemory()
	require.NoError(t, s.SaveTemplate(testSchema()))
	require.NoError(t, s.SaveSuppliers(map[string]store.Supplier{
		"acme": {Name: "Acme Distribution", Keywords: []string{"acme"}},
		"digi": {Name: "Digiparts", Keywords: []string{"digi"}},
	}))
	require.NoError(t, s.SaveMappings(map[string]mapping.RuleSet{
		"acme": {
			Supplier: "acme",
			Rules: map[string]mapping.Rule{
				domain.FieldTitle:       {Column: "Product Name"},
				domain.FieldVariantSKU:  {Column: "Part Number"},
				domain.FieldCostPerItem: {Column: "Dealer Price"},
			},
		},
		"digi": {
			Supplier: "digi",
			Rules: map[string]mapping.Rule{
				domain.FieldTitle:       {Column: "Name"},
				domain.FieldVariantSKU:  {Column: "SKU"},
				domain.FieldCostPerItem: {Column: "Cost"},
			},
		},
	}))
	return s
}

func testFeedsDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFeed(t, dir, "acme_pricelist.csv",
		"Product Name,Part Number,Dealer Price\n"+
			"Gaming Mouse,MOUSE001,19.99\n"+
			"USB Cable,CABLE-2,4.50\n")
	writeFeed(t, dir, "digi_stock.csv",
		"Name;SKU;Cost\n"+
			"Gaming Mouse Pro;MOUSE001;25.00\n")
	writeFeed(t, dir, "mystery_feed.csv",
		"A,B\n1,2\n")
	return dir
}

func writeFeed(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunExport(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testStore(t),
		WithLogger(logger.Discard()),
		WithFeedsDir(testFeedsDir(t)),
	)

	var buf bytes.Buffer
	result, err := eng.RunExport(context.Background(), &buf)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, []string{"acme", "digi"}, result.Suppliers)
	assert.Equal(t, []string{"mystery_feed.csv"}, result.Skipped)

	require.NotNil(t, result.Stats)
	assert.Equal(t, 3, result.Stats.RowsProcessed)
	assert.Equal(t, 1, result.Stats.DuplicatesRemoved)
	assert.InDelta(t, 5.01, result.Stats.TotalSavings, 0.001)
	assert.Equal(t, map[string]int{"acme": 2}, result.Stats.VendorCounts)

	out := buf.String()
	assert.Contains(t, out, "gaming-mouse")
	assert.Contains(t, out, "usb-cable")
	assert.NotContains(t, out, "25.00")
}

func TestRunExport_Deterministic(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	dir := testFeedsDir(t)

	var first, second bytes.Buffer

	eng := NewEngine(s, WithLogger(logger.Discard()), WithFeedsDir(dir))
	_, err := eng.RunExport(context.Background(), &first)
	require.NoError(t, err)
	_, err = eng.RunExport(context.Background(), &second)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}

func TestRunExport_NoTemplate(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	eng := NewEngine(s, WithLogger(logger.Discard()), WithFeedsDir(t.TempDir()))

	_, err := eng.RunExport(context.Background(), &bytes.Buffer{})
	require.ErrorIs(t, err, ErrNoTemplate)
}

func TestRunExport_EmptyFeedsDir(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testStore(t), WithLogger(logger.Discard()), WithFeedsDir(t.TempDir()))

	_, err := eng.RunExport(context.Background(), &bytes.Buffer{})
	require.ErrorIs(t, err, ErrNoFeeds)
}

func TestRunExport_CancelledContext(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testStore(t),
		WithLogger(logger.Discard()),
		WithFeedsDir(testFeedsDir(t)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.RunExport(ctx, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildQuotes(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testStore(t),
		WithLogger(logger.Discard()),
		WithFeedsDir(testFeedsDir(t)),
	)

	var buf bytes.Buffer
	result, index, err := eng.BuildQuotes(context.Background(), &buf)
	require.NoError(t, err)

	// Quote datasets keep every row, including colliding SKUs.
	assert.Equal(t, 3, result.QuoteCount)
	assert.Equal(t, 3, index.Len())

	matches := index.Lookup("mouse001")
	require.Len(t, matches, 2)
	assert.Equal(t, "acme", matches[0].Supplier)
	assert.True(t, matches[0].BestPrice)
	assert.Equal(t, "digi", matches[1].Supplier)

	assert.Contains(t, buf.String(), "_Supplier")
}

func TestBuildQuotes_NilWriterSkipsCSV(t *testing.T) {
	t.Parallel()

	eng := NewEngine(testStore(t),
		WithLogger(logger.Discard()),
		WithFeedsDir(testFeedsDir(t)),
	)

	_, index, err := eng.BuildQuotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, index.Len())
}
