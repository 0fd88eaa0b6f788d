package quotes

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/etecplus/datafeeds/pkg/types"
)

func row(supplier, title, sku, cost string) domain.MappedRow {
	r := domain.NewMappedRow(supplier)
	r.Set(domain.FieldTitle, title)
	r.Set(domain.FieldVariantSKU, sku)
	r.Set(domain.FieldCostPerItem, cost)
	return r
}

func testIndex() *Index {
	return BuildIndex([][]domain.MappedRow{
		{
			row("auscomp", "Gaming Mouse RGB", "MOUSE001", "22.00"),
			row("auscomp", "Keyboard", "KEYB001", "45.00"),
		},
		{
			row("dicker", "Gaming Mouse RGB", "MOUSE001", "19.99"),
			row("dicker", "Headset", "HEAD001", "POA"),
		},
	})
}

func TestBuildIndex_NoInformationLoss(t *testing.T) {
	t.Parallel()

	ix := testIndex()
	assert.Equal(t, 4, ix.Len(), "every supplier row becomes one entry")

	// Colliding SKUs keep all entries.
	assert.Len(t, ix.Lookup("MOUSE001"), 2)
}

func TestLookup_SortedByCostWithBestPrice(t *testing.T) {
	t.Parallel()

	got := testIndex().Lookup("MOUSE001")
	require.Len(t, got, 2)

	assert.Equal(t, "dicker", got[0].Supplier)
	assert.InDelta(t, 19.99, got[0].Cost, 0.0001)
	assert.True(t, got[0].BestPrice)

	assert.Equal(t, "auscomp", got[1].Supplier)
	assert.False(t, got[1].BestPrice)
}

func TestLookup_CaseInsensitiveExactMatch(t *testing.T) {
	t.Parallel()

	ix := testIndex()
	assert.Len(t, ix.Lookup("mouse001"), 2)
	assert.Empty(t, ix.Lookup("MOUSE"), "partial SKUs do not match")
}

func TestLookup_UnknownSKUIsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, testIndex().Lookup("NOPE999"))
}

func TestLookup_UnpricedEntrySortsLastWithoutBestPrice(t *testing.T) {
	t.Parallel()

	ix := BuildIndex([][]domain.MappedRow{
		{row("a", "Headset", "H1", "POA")},
		{row("b", "Headset", "H1", "65.00")},
	})

	got := ix.Lookup("H1")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Supplier)
	assert.True(t, got[0].BestPrice)
	assert.False(t, got[1].CostKnown)
}

func TestLookup_AllUnpricedFlagsNothing(t *testing.T) {
	t.Parallel()

	ix := BuildIndex([][]domain.MappedRow{
		{row("a", "Headset", "H1", "POA")},
	})

	got := ix.Lookup("H1")
	require.Len(t, got, 1)
	assert.False(t, got[0].BestPrice)
}

func TestLookupAll_EveryRequestedKeyPresent(t *testing.T) {
	t.Parallel()

	got := testIndex().LookupAll([]string{"MOUSE001", "KEYB001", "MISSING"})
	require.Len(t, got, 3)
	assert.Len(t, got["MOUSE001"], 2)
	assert.Len(t, got["KEYB001"], 1)
	assert.Empty(t, got["MISSING"])
}

func TestWriteCSV_AddsSupplierColumn(t *testing.T) {
	t.Parallel()

	schema := domain.NewSchema([]string{"Title", "Variant SKU", "Cost per item"})

	var buf bytes.Buffer
	require.NoError(t, testIndex().WriteCSV(&buf, schema))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5, "header plus one line per entry")
	assert.Equal(t, "Title,Variant SKU,Cost per item,_Supplier", lines[0])
	assert.Equal(t, "Gaming Mouse RGB,MOUSE001,22.00,auscomp", lines[1])
}
