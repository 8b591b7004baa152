package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/statsboard/internal/domain/statrow"
	"github.com/riskibarqy/statsboard/internal/platform/logging"
)

// RowWriter batches row updates toward the store. Enqueue overwrites any
// pending row for the same key, and a background ticker drains the pending
// set in one UpdateRows call per interval. A failed drain is logged and
// abandoned; the rows in it are gone unless a later event re-enqueues them.
//
// ClearRow and ClearAll bypass the throttle entirely: they hit the store
// immediately, force a save, and drop whatever was pending for the key so a
// stale update cannot resurrect a cleared row.
type RowWriter struct {
	store    statrow.Store
	log      *logging.Logger
	interval time.Duration

	mu      sync.Mutex
	pending map[string]statrow.Row

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewRowWriter(store statrow.Store, interval time.Duration, log *logging.Logger) *RowWriter {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &RowWriter{
		store:    store,
		log:      log,
		interval: interval,
		pending:  make(map[string]statrow.Row),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the flush loop. Call Close to stop it; Close performs one
// final drain before returning.
func (w *RowWriter) Start() {
	go w.run()
}

func (w *RowWriter) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(context.Background())
		case <-w.stop:
			w.flush(context.Background())
			return
		}
	}
}

func (w *RowWriter) Close() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	<-w.done
}

func (w *RowWriter) Enqueue(key string, row statrow.Row) {
	w.mu.Lock()
	w.pending[key] = row
	w.mu.Unlock()
}

func (w *RowWriter) ClearRow(ctx context.Context, key string) error {
	ctx, span := startSpan(ctx, "RowWriter.ClearRow")
	defer span.End()

	w.mu.Lock()
	delete(w.pending, key)
	w.mu.Unlock()

	if err := w.store.ClearRow(ctx, statrow.KeyColumn, key); err != nil {
		return fmt.Errorf("clear row %q: %w", key, err)
	}
	if err := w.store.Save(ctx); err != nil {
		return fmt.Errorf("save after clearing row %q: %w", key, err)
	}

	return nil
}

func (w *RowWriter) ClearAll(ctx context.Context) error {
	ctx, span := startSpan(ctx, "RowWriter.ClearAll")
	defer span.End()

	w.mu.Lock()
	w.pending = make(map[string]statrow.Row)
	w.mu.Unlock()

	if err := w.store.ClearAllRows(ctx); err != nil {
		return fmt.Errorf("clear all rows: %w", err)
	}
	if err := w.store.Save(ctx); err != nil {
		return fmt.Errorf("save after clearing all rows: %w", err)
	}

	return nil
}

func (w *RowWriter) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]statrow.Row, len(batch))
	w.mu.Unlock()

	ctx, span := startSpan(ctx, "RowWriter.flush")
	defer span.End()

	rows := make([]statrow.Row, 0, len(batch))
	for _, row := range batch {
		rows = append(rows, row)
	}

	if err := w.store.UpdateRows(ctx, statrow.KeyColumn, rows); err != nil {
		w.log.ErrorContext(ctx, "flush rows failed, batch dropped", "rows", len(rows), "error", err)
		return
	}
	if err := w.store.Save(ctx); err != nil {
		w.log.ErrorContext(ctx, "save after flush failed", "rows", len(rows), "error", err)
	}
}
