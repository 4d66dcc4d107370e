package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps worksheets in process. It honours the same index rules
// as the remote store and backs tests and the "memory" backend.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][][]string
}

// NewMemoryStore creates an empty store; worksheets are added with Seed.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][][]string)}
}

// Seed replaces a worksheet with the given header and data rows.
func (m *MemoryStore) Seed(table string, header []string, rows ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw := [][]string{append([]string(nil), header...)}
	for _, r := range rows {
		raw = append(raw, append([]string(nil), r...))
	}
	m.tables[table] = raw
}

// Rows returns a copy of the raw data rows of a worksheet, header excluded.
func (m *MemoryStore) Rows(table string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw := m.tables[table]
	if len(raw) <= HeaderRows {
		return nil
	}
	out := make([][]string, 0, len(raw)-HeaderRows)
	for _, r := range raw[HeaderRows:] {
		out = append(out, append([]string(nil), r...))
	}
	return out
}

func (m *MemoryStore) worksheet(table string) ([][]string, error) {
	raw, ok := m.tables[table]
	if !ok {
		return nil, unavailable("open", table, fmt.Errorf("worksheet not found"))
	}
	return raw, nil
}

func (m *MemoryStore) ReadAll(_ context.Context, table string) (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.worksheet(table)
	if err != nil {
		return nil, err
	}
	return buildTable(table, raw), nil
}

func (m *MemoryStore) Append(_ context.Context, table string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.worksheet(table)
	if err != nil {
		return err
	}
	m.tables[table] = append(raw, append([]string(nil), values...))
	return nil
}

func (m *MemoryStore) UpdateAt(_ context.Context, table string, index int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.worksheet(table)
	if err != nil {
		return err
	}
	if err := checkIndex(table, index, len(raw)-HeaderRows); err != nil {
		return err
	}
	raw[index-1] = append([]string(nil), values...)
	return nil
}

func (m *MemoryStore) DeleteAt(_ context.Context, table string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.worksheet(table)
	if err != nil {
		return err
	}
	if err := checkIndex(table, index, len(raw)-HeaderRows); err != nil {
		return err
	}
	m.tables[table] = append(raw[:index-1], raw[index:]...)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
