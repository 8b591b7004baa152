package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/statsboard/internal/domain/statrow"
)

// RowStore persists fixture rows in the fixture_rows table. Every write
// commits on its own, so Save has nothing left to do.
type RowStore struct {
	db *sqlx.DB
}

func NewRowStore(db *sqlx.DB) *RowStore {
	return &RowStore{db: db}
}

// LoadSchema checks that the backing table exists and carries every column
// the row model writes. Extra columns are tolerated; missing ones are not.
func (r *RowStore) LoadSchema(ctx context.Context) error {
	ctx, span := startSpan(ctx, "RowStore.LoadSchema")
	defer span.End()

	var columns []string
	if err := r.db.SelectContext(ctx, &columns, selectColumnsQuery, rowTable); err != nil {
		return fmt.Errorf("load %s schema: %w", rowTable, err)
	}
	if len(columns) == 0 {
		return fmt.Errorf("load %s schema: table not found, run migrations", rowTable)
	}

	have := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		have[column] = struct{}{}
	}
	for _, want := range statrow.Columns() {
		if _, ok := have[want]; !ok {
			return fmt.Errorf("load %s schema: missing column %q", rowTable, want)
		}
	}

	return nil
}

func (r *RowStore) UpdateRows(ctx context.Context, keyColumn string, rows []statrow.Row) error {
	ctx, span := startSpan(ctx, "RowStore.UpdateRows")
	defer span.End()

	if keyColumn != statrow.KeyColumn {
		return fmt.Errorf("unsupported key column %q", keyColumn)
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin row update: %w", err)
	}

	for _, row := range rows {
		if _, err := tx.NamedExecContext(ctx, upsertRowQuery, row); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert row %q: %w", row.FixtureID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit row update: %w", err)
	}

	return nil
}

func (r *RowStore) ClearRow(ctx context.Context, keyColumn, key string) error {
	ctx, span := startSpan(ctx, "RowStore.ClearRow")
	defer span.End()

	if keyColumn != statrow.KeyColumn {
		return fmt.Errorf("unsupported key column %q", keyColumn)
	}

	if _, err := r.db.ExecContext(ctx, deleteRowQuery, key); err != nil {
		return fmt.Errorf("clear row %q: %w", key, err)
	}

	return nil
}

func (r *RowStore) ClearAllRows(ctx context.Context) error {
	ctx, span := startSpan(ctx, "RowStore.ClearAllRows")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, deleteAllRowsQuery); err != nil {
		return fmt.Errorf("clear all rows: %w", err)
	}

	return nil
}

func (r *RowStore) Save(ctx context.Context) error {
	return nil
}
