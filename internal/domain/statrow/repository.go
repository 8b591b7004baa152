package statrow

import "context"

// Store persists fixture rows in a tabular backend. Implementations must
// treat UpdateRows as an upsert on keyColumn and tolerate clears for keys
// that are already gone.
type Store interface {
	// LoadSchema verifies the backing table matches Columns. Called once at
	// startup; a mismatch is fatal for the service.
	LoadSchema(ctx context.Context) error
	UpdateRows(ctx context.Context, keyColumn string, rows []Row) error
	ClearRow(ctx context.Context, keyColumn, key string) error
	ClearAllRows(ctx context.Context) error
	// Save flushes any buffered writes. Backends that commit per statement
	// implement it as a no-op.
	Save(ctx context.Context) error
}
