// Package sheets is the tabular store client: named worksheets with a header
// row, addressed by 1-based row index where the header is row 1.
package sheets

import (
	"context"
	"errors"
	"fmt"
)

// Worksheet names
const (
	TablePatient         = "Patient"
	TablePreviousPatient = "Previous Patient"
	TableVisitors        = "Visitors"
	TableAvailability    = "Availability"
)

// HeaderRows is the number of rows above the first data row.
const HeaderRows = 1

// FirstDataRow is the store index of the first row after the header.
const FirstDataRow = HeaderRows + 1

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidIndex     = errors.New("row index out of range")
)

// Row maps column header to cell value.
type Row map[string]string

// Table is a snapshot of one worksheet. Rows excludes the header.
type Table struct {
	Name   string
	Header []string
	Rows   []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Values returns row i in header order.
func (t *Table) Values(i int) []string {
	out := make([]string, len(t.Header))
	for c, col := range t.Header {
		out[c] = t.Rows[i][col]
	}
	return out
}

// StoreIndex translates a snapshot position to the worksheet row index.
func StoreIndex(position int) int {
	return position + FirstDataRow
}

// Store is the contract every backing store satisfies.
type Store interface {
	ReadAll(ctx context.Context, table string) (*Table, error)
	Append(ctx context.Context, table string, values []string) error
	UpdateAt(ctx context.Context, table string, index int, values []string) error
	DeleteAt(ctx context.Context, table string, index int) error
	Ping(ctx context.Context) error
}

// checkIndex validates a store index against the number of data rows.
func checkIndex(table string, index, dataRows int) error {
	if index < FirstDataRow || index > dataRows+HeaderRows {
		return fmt.Errorf("%w: %s row %d (data rows %d..%d)", ErrInvalidIndex, table, index, FirstDataRow, dataRows+HeaderRows)
	}
	return nil
}

// unavailable wraps a remote failure so callers can match ErrStoreUnavailable.
func unavailable(op, table string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", ErrStoreUnavailable, op, table, err)
}

// buildTable turns raw cell rows (header first) into a Table.
func buildTable(name string, raw [][]string) *Table {
	t := &Table{Name: name}
	if len(raw) == 0 {
		return t
	}
	t.Header = append([]string(nil), raw[0]...)
	for _, cells := range raw[1:] {
		row := make(Row, len(t.Header))
		for c, col := range t.Header {
			if c < len(cells) {
				row[col] = cells[c]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
