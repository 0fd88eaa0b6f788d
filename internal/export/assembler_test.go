package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/etecplus/datafeeds/pkg/types"
)

func testSchema() domain.Schema {
	return domain.NewSchema([]string{
		"Handle", "Title", "Vendor", "Option1 Name", "Option1 Value",
		"Variant SKU", "Cost per item", "Image Src",
	})
}

func row(supplier, title, sku, cost string) domain.MappedRow {
	r := domain.NewMappedRow(supplier)
	r.Set(domain.FieldTitle, title)
	r.Set(domain.FieldVendor, supplier)
	r.Set(domain.FieldVariantSKU, sku)
	r.Set(domain.FieldCostPerItem, cost)
	r.Set(domain.FieldOption1Name, "Title")
	r.Set(domain.FieldOption1Value, "Default Title")
	return r
}

func TestAssemble_SKUDedupKeepsCheaper(t *testing.T) {
	t.Parallel()

	perSupplier := [][]domain.MappedRow{
		{row("vendorA", "Gaming Mouse", "MOUSE001", "22.00")},
		{row("vendorB", "Gaming Mouse", "MOUSE001", "19.99")},
	}

	table, stats, err := Assemble(testSchema(), perSupplier)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "vendorB", table.Rows[0].Get("Vendor"))
	assert.Equal(t, 1, stats.DuplicatesRemoved)
	assert.InDelta(t, 2.01, stats.TotalSavings, 0.0001)
	require.Len(t, stats.RemovedDuplicates, 1)
	assert.Equal(t, "vendorA", stats.RemovedDuplicates[0].VendorRemoved)
	assert.Equal(t, "vendorB", stats.RemovedDuplicates[0].VendorKept)
}

func TestAssemble_SKUTieFirstSeenWins(t *testing.T) {
	t.Parallel()

	perSupplier := [][]domain.MappedRow{
		{row("vendorA", "Cable", "CAB01", "5.00")},
		{row("vendorB", "Cable", "CAB01", "5.00")},
	}

	table, stats, err := Assemble(testSchema(), perSupplier)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "vendorA", table.Rows[0].Get("Vendor"))
	assert.Zero(t, stats.TotalSavings)
}

func TestAssemble_EmptySKUNeverDeduped(t *testing.T) {
	t.Parallel()

	perSupplier := [][]domain.MappedRow{
		{row("vendorA", "Mystery A", "", "5.00")},
		{row("vendorB", "Mystery B", "", "6.00")},
	}

	table, stats, err := Assemble(testSchema(), perSupplier)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Zero(t, stats.DuplicatesRemoved)
}

func TestAssemble_PreservesSupplierOrder(t *testing.T) {
	t.Parallel()

	perSupplier := [][]domain.MappedRow{
		{
			row("vendorA", "One", "A1", "1"),
			row("vendorA", "Two", "A2", "2"),
		},
		{row("vendorB", "Three", "B1", "3")},
	}

	table, _, err := Assemble(testSchema(), perSupplier)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "A1", table.Rows[0].SKU())
	assert.Equal(t, "A2", table.Rows[1].SKU())
	assert.Equal(t, "B1", table.Rows[2].SKU())
}

func TestAssemble_ImagePreservedFromRemovedDuplicate(t *testing.T) {
	t.Parallel()

	cheap := row("vendorA", "Mouse", "M1", "10.00")
	pricey := row("vendorB", "Mouse", "M1", "12.00")
	pricey.Set(domain.FieldImageSrc, "https://cdn.example.com/mouse.jpg")

	table, stats, err := Assemble(testSchema(), [][]domain.MappedRow{{cheap}, {pricey}})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "https://cdn.example.com/mouse.jpg", table.Rows[0].Get(domain.FieldImageSrc))
	assert.Equal(t, 1, stats.ImagesPreserved)
}

func TestAssemble_VendorCountsAndUniqueHandles(t *testing.T) {
	t.Parallel()

	perSupplier := [][]domain.MappedRow{
		{
			row("vendorA", "Gaming Mouse", "A1", "10"),
			row("vendorA", "Keyboard", "A2", "20"),
		},
		{row("vendorB", "Gaming Mouse", "B1", "8")},
	}

	table, stats, err := Assemble(testSchema(), perSupplier)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.RowsProcessed)
	assert.Equal(t, map[string]int{"vendorA": 2, "vendorB": 1}, stats.VendorCounts)
	assert.Equal(t, 1, stats.TitlesRetitled)

	handles := make(map[string]struct{})
	for _, r := range table.Rows {
		handles[r.Get(domain.FieldHandle)] = struct{}{}
		assert.Equal(t, "", r.Get(domain.FieldOption1Value))
	}
	assert.Len(t, handles, len(table.Rows))
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	quoted := row("vendorA", `Cable, 2m "premium"`, "C1", "9.99")
	table, _, err := Assemble(testSchema(), [][]domain.MappedRow{{quoted}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	out := buf.String()
	assert.False(t, strings.HasPrefix(out, "\xef\xbb\xbf"), "no BOM")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(testSchema().Fields, ","), lines[0])
	assert.Contains(t, lines[1], `"Cable, 2m ""premium"""`)
}

func TestAssemble_Idempotent(t *testing.T) {
	t.Parallel()

	build := func() [][]domain.MappedRow {
		return [][]domain.MappedRow{
			{
				row("vendorA", "Gaming Mouse RGB", "GM001", "35.50"),
				row("vendorA", "Gaming Mouse RGB", "GM002", "19.99"),
			},
			{
				row("vendorB", "Gaming Mouse RGB", "GM003", "25.99"),
				row("vendorB", "Keyboard", "KB001", "45.00"),
			},
		}
	}

	var first, second bytes.Buffer

	t1, s1, err := Assemble(testSchema(), build())
	require.NoError(t, err)
	require.NoError(t, WriteCSV(&first, t1))

	t2, s2, err := Assemble(testSchema(), build())
	require.NoError(t, err)
	require.NoError(t, WriteCSV(&second, t2))

	assert.Equal(t, first.String(), second.String(), "byte-identical output")
	assert.Equal(t, s1, s2)
}
