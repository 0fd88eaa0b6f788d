package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_CommaCSV(t *testing.T) {
	t.Parallel()

	data := []byte("Item Code,Product Name,Dealer Price\nGM001,Gaming Mouse,19.99\nKB001,Keyboard,45.00\n")
	rows, err := Read("auscomp_feed.csv", data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Item Code", "Product Name", "Dealer Price"}, rows[0].Columns)
	assert.Equal(t, "Gaming Mouse", rows[0].Get("Product Name"))
	assert.Equal(t, "45.00", rows[1].Get("Dealer Price"))
}

func TestRead_SemicolonCSV(t *testing.T) {
	t.Parallel()

	data := []byte("Code;Name;Price\nA1;Mouse;10\n")
	rows, err := Read("dicker.csv", data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mouse", rows[0].Get("Name"))
}

func TestRead_TabCSV(t *testing.T) {
	t.Parallel()

	data := []byte("Code\tName\nA1\tMouse\n")
	rows, err := Read("synnex.csv", data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].Get("Code"))
}

func TestRead_ShortRecordLeavesColumnsEmpty(t *testing.T) {
	t.Parallel()

	data := []byte("Code,Name,Price\nA1,Mouse\n")
	rows, err := Read("feed.csv", data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("Price"))
}

func TestRead_MissingColumnLookup(t *testing.T) {
	t.Parallel()

	data := []byte("Code,Name\nA1,Mouse\n")
	rows, err := Read("feed.csv", data)
	require.NoError(t, err)
	assert.Equal(t, "", rows[0].Get("No Such Column"))
}

func TestRead_SingleColumnIsNotTabular(t *testing.T) {
	t.Parallel()

	_, err := Read("feed.csv", []byte("just one header\nvalue\n"))
	assert.ErrorIs(t, err, ErrNoTabularData)
}

func TestHeader(t *testing.T) {
	t.Parallel()

	// Header-only files are valid column templates.
	header, err := Header("template.csv", []byte("Handle, Title ,Vendor\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Handle", "Title", "Vendor"}, header)
}

func TestDetectSupplier(t *testing.T) {
	t.Parallel()

	suppliers := []string{"auscomp", "leader_systems", "dicker"}
	keywords := map[string][]string{
		"auscomp":        {"auscomp"},
		"leader_systems": {"leader", "leadersystem"},
		"dicker":         {"dicker"},
	}

	tests := []struct {
		filename string
		want     string
	}{
		{"Auscomp_Pricelist_2026.csv", "auscomp"},
		{"leadersystems-feed.xlsx", "leader_systems"},
		{"DICKER-data.csv", "dicker"},
		{"unknown-vendor.csv", ""},
	}

	for _, tt := range tests {
		got := DetectSupplier(tt.filename, suppliers, keywords)
		assert.Equal(t, tt.want, got, "DetectSupplier(%q)", tt.filename)
	}
}
