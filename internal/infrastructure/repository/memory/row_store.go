package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/statsboard/internal/domain/statrow"
)

// RowStore keeps fixture rows in memory. It backs tests and local runs
// without a database.
type RowStore struct {
	mu    sync.Mutex
	rows  map[string]statrow.Row
	saves int
}

func NewRowStore() *RowStore {
	return &RowStore{rows: make(map[string]statrow.Row)}
}

func (r *RowStore) LoadSchema(ctx context.Context) error {
	return nil
}

func (r *RowStore) UpdateRows(ctx context.Context, keyColumn string, rows []statrow.Row) error {
	if keyColumn != statrow.KeyColumn {
		return fmt.Errorf("unsupported key column %q", keyColumn)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		r.rows[row.FixtureID] = row
	}

	return nil
}

func (r *RowStore) ClearRow(ctx context.Context, keyColumn, key string) error {
	if keyColumn != statrow.KeyColumn {
		return fmt.Errorf("unsupported key column %q", keyColumn)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, key)

	return nil
}

func (r *RowStore) ClearAllRows(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[string]statrow.Row)

	return nil
}

func (r *RowStore) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++

	return nil
}

// Row returns the stored row for key, if any.
func (r *RowStore) Row(key string) (statrow.Row, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[key]

	return row, ok
}

func (r *RowStore) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.rows)
}

// Saves reports how many times Save ran.
func (r *RowStore) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saves
}
