package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ipamops/invnorm/pkg/inventory"
)

// ReadRaw loads the raw inventory table. The reader tolerates a UTF-8 byte
// order mark and ragged rows; cells beyond the header are dropped, missing
// cells read as empty.
func ReadRaw(path string) ([]inventory.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read input csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := make([]inventory.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(inventory.RawRecord, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// rowIdentifier resolves the row id: an id/row_id column when it carries a
// value, else the 1-based row index.
func rowIdentifier(row inventory.RawRecord, index int) inventory.RowID {
	if v := strings.TrimSpace(row.First(inventory.IDColumns...)); v != "" {
		return inventory.NewRowID(v)
	}
	return inventory.RowID(strconv.Itoa(index))
}
