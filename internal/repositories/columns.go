package repositories

import (
	"context"

	"frontdesk-backend/internal/sheets"
)

// orderedValues lays row out in the worksheet's current header order so a
// sheet with rearranged columns is written the way it is read. With index set
// (>= FirstDataRow) columns row does not know keep their stored value.
func orderedValues(ctx context.Context, store sheets.Store, table string, fallback []string, row sheets.Row, index int) ([]string, error) {
	tbl, err := store.ReadAll(ctx, table)
	if err != nil {
		return nil, err
	}

	header := tbl.Header
	if len(header) == 0 {
		header = fallback
	}

	var existing sheets.Row
	if pos := index - sheets.FirstDataRow; index >= sheets.FirstDataRow && pos < tbl.Len() {
		existing = tbl.Rows[pos]
	}

	out := make([]string, len(header))
	for i, col := range header {
		if v, ok := row[col]; ok {
			out[i] = v
		} else if existing != nil {
			out[i] = existing[col]
		}
	}
	return out, nil
}
