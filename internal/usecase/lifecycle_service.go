package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/domain/liveness"
	"github.com/riskibarqy/statsboard/internal/domain/statrow"
	"github.com/riskibarqy/statsboard/internal/platform/logging"
)

// KeyQueue serializes jobs per key; jobs submitted under the same key must
// run one at a time in submit order.
type KeyQueue interface {
	Submit(key string, job func()) error
}

// RowSink receives projected rows and clear requests. *RowWriter is the
// production implementation.
type RowSink interface {
	Enqueue(key string, row statrow.Row)
	ClearRow(ctx context.Context, key string) error
	ClearAll(ctx context.Context) error
}

// EndedPublisher notifies downstream consumers that a fixture finished.
type EndedPublisher interface {
	PublishEnded(ctx context.Context, eventID, key string) error
}

// LifecycleConfig carries the tunables of the coordinator.
type LifecycleConfig struct {
	// KeyFn derives the row key from an event; defaults to the fixture id.
	KeyFn statrow.KeyFunc
	// LivenessTTL is how long a fixture may stay silent before its row is
	// cleared.
	LivenessTTL time.Duration
	// HandleSportIDs is the sport allow-list; empty accepts every sport.
	HandleSportIDs []string
}

// LifecycleService coordinates a fixture from first sighting to cleanup:
// it filters inbound events, serializes processing per fixture, folds
// stats into a row, keeps the liveness timer fresh, and clears the row on
// delete or expiry. An event arriving for an already-cleared fixture simply
// starts the fixture over.
type LifecycleService struct {
	log       *logging.Logger
	queue     KeyQueue
	sink      RowSink
	publisher EndedPublisher
	cache     liveness.Cache

	keyFn    statrow.KeyFunc
	ttl      time.Duration
	sportIDs map[string]struct{}

	mu       sync.Mutex
	fixtures map[string]*fixtureState
}

type fixtureState struct {
	key   string
	ended bool
}

func NewLifecycleService(queue KeyQueue, sink RowSink, publisher EndedPublisher, cfg LifecycleConfig, log *logging.Logger) *LifecycleService {
	keyFn := cfg.KeyFn
	if keyFn == nil {
		keyFn = statrow.KeyByFixtureID
	}
	ttl := cfg.LivenessTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}

	sportIDs := make(map[string]struct{}, len(cfg.HandleSportIDs))
	for _, id := range cfg.HandleSportIDs {
		sportIDs[id] = struct{}{}
	}

	return &LifecycleService{
		log:       log,
		queue:     queue,
		sink:      sink,
		publisher: publisher,
		keyFn:     keyFn,
		ttl:       ttl,
		sportIDs:  sportIDs,
		fixtures:  make(map[string]*fixtureState),
	}
}

// SetLivenessCache wires the TTL cache after construction. The cache's
// expiry callback points back at OnLivenessExpired, so the service must
// exist before the cache does. Call this before any event flows.
func (s *LifecycleService) SetLivenessCache(cache liveness.Cache) {
	s.cache = cache
}

// HandleEvent admits an inbound match event and queues it for processing.
// Events for unhandled sports and fixtures that have not kicked off are
// dropped without error.
func (s *LifecycleService) HandleEvent(ctx context.Context, ev event.MatchEvent) error {
	ctx, span := startSpan(ctx, "LifecycleService.HandleEvent")
	defer span.End()

	if strings.TrimSpace(ev.ID) == "" {
		return fmt.Errorf("%w: missing fixture id", ErrInvalidInput)
	}

	if len(s.sportIDs) > 0 {
		if _, ok := s.sportIDs[ev.SportID]; !ok {
			s.log.DebugContext(ctx, "skipping unhandled sport", "fixture_id", ev.ID, "sport_id", ev.SportID)
			return nil
		}
	}

	if ev.NotStarted() {
		s.log.DebugContext(ctx, "skipping fixture that has not started", "fixture_id", ev.ID)
		return nil
	}

	// The job may outlive the ingress request, so detach its lifetime from
	// the caller while keeping trace linkage.
	jobCtx := context.WithoutCancel(ctx)
	if err := s.queue.Submit(ev.ID, func() { s.process(jobCtx, ev) }); err != nil {
		return fmt.Errorf("%w: submit fixture %s: %v", ErrDependencyUnavailable, ev.ID, err)
	}

	return nil
}

func (s *LifecycleService) process(ctx context.Context, ev event.MatchEvent) {
	ctx, span := startSpan(ctx, "LifecycleService.process")
	defer span.End()

	counters := Accumulate(ev)
	key := s.keyFn(ev)
	row := ProjectRow(key, ev, counters, time.Now())

	s.mu.Lock()
	st, ok := s.fixtures[ev.ID]
	if !ok {
		st = &fixtureState{}
		s.fixtures[ev.ID] = st
	}
	st.key = key
	wasEnded := st.ended
	st.ended = row.IsEnded
	s.mu.Unlock()

	s.sink.Enqueue(key, row)
	s.refreshLiveness(ctx, ev.ID, row)

	if row.IsEnded && !wasEnded && s.publisher != nil {
		if err := s.publisher.PublishEnded(ctx, ev.ID, key); err != nil {
			s.log.ErrorContext(ctx, "publishing ended fixture failed", "fixture_id", ev.ID, "error", err)
		}
	}
}

// refreshLiveness re-arms the fixture's TTL and stores the current row as
// the cache value so cache readers see a live snapshot.
func (s *LifecycleService) refreshLiveness(ctx context.Context, fixtureID string, row statrow.Row) {
	if s.cache == nil {
		return
	}

	payload, err := sonic.Marshal(row)
	if err != nil {
		s.log.ErrorContext(ctx, "encoding row snapshot failed", "fixture_id", fixtureID, "error", err)
		return
	}

	if err := s.cache.Refresh(ctx, fixtureID, string(payload), s.ttl); err != nil {
		s.log.WarnContext(ctx, "refreshing liveness failed", "fixture_id", fixtureID, "error", err)
	}
}

// HandleDelete removes a fixture's row immediately, skipping the write
// throttle, and forgets its tracked state.
func (s *LifecycleService) HandleDelete(ctx context.Context, fixtureID string) error {
	ctx, span := startSpan(ctx, "LifecycleService.HandleDelete")
	defer span.End()

	if strings.TrimSpace(fixtureID) == "" {
		return fmt.Errorf("%w: missing fixture id", ErrInvalidInput)
	}

	key := s.forget(fixtureID)
	if err := s.sink.ClearRow(ctx, key); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "fixture deleted", "fixture_id", fixtureID, "key", key)
	return nil
}

// OnLivenessExpired is the cache expiry callback: the fixture went silent
// past its TTL, so its row is cleared. Safe to call for fixtures that are
// already gone.
func (s *LifecycleService) OnLivenessExpired(fixtureID string) {
	ctx, span := startSpan(context.Background(), "LifecycleService.OnLivenessExpired")
	defer span.End()

	key := s.forget(fixtureID)
	if err := s.sink.ClearRow(ctx, key); err != nil {
		s.log.ErrorContext(ctx, "clearing expired fixture failed", "fixture_id", fixtureID, "error", err)
		return
	}

	s.log.InfoContext(ctx, "fixture expired", "fixture_id", fixtureID, "key", key)
}

// forget drops the fixture's tracked state and returns its row key. When
// the fixture was never tracked, or tracking was lost, the id doubles as
// the key.
func (s *LifecycleService) forget(fixtureID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.fixtures[fixtureID]; ok {
		delete(s.fixtures, fixtureID)
		if st.key != "" {
			return st.key
		}
	}

	return fixtureID
}
