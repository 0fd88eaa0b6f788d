package export

import (
	"encoding/csv"
	"fmt"
	"io"

	domain "github.com/etecplus/datafeeds/pkg/types"
)

// WriteCSV serializes the export table as UTF-8 comma-separated values with
// no byte-order mark. The header row follows the schema field order; fields
// with embedded separators or quotes are quoted per standard CSV rules.
func WriteCSV(w io.Writer, table *domain.ExportTable) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Schema.Fields); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(table.Schema.Fields))
	for i := range table.Rows {
		for j, field := range table.Schema.Fields {
			record[j] = table.Rows[i].Get(field)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
