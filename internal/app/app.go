package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/riskibarqy/statsboard/internal/config"
	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/domain/statrow"
	amqpbus "github.com/riskibarqy/statsboard/internal/infrastructure/bus/amqp"
	rediscache "github.com/riskibarqy/statsboard/internal/infrastructure/cache/redis"
	"github.com/riskibarqy/statsboard/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/statsboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/statsboard/internal/platform/keyqueue"
	"github.com/riskibarqy/statsboard/internal/platform/logging"
	"github.com/riskibarqy/statsboard/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived component and their start/stop order.
type App struct {
	cfg config.Config
	log *logging.Logger

	db     *sqlx.DB
	writer *usecase.RowWriter
	queue  *keyqueue.Queue
	cache  *rediscache.Cache
	bus    *amqpbus.Bus
	svc    *usecase.LifecycleService
	server *httpapi.Server
}

func New(ctx context.Context, cfg config.Config, log *logging.Logger) (*App, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	store := postgres.NewRowStore(db)
	if err := store.LoadSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	writer := usecase.NewRowWriter(store, cfg.FlushInterval, log.With("component", "row_writer"))

	if cfg.ClearRowsOnStart {
		if err := writer.ClearAll(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("clear rows on start: %w", err)
		}
		log.InfoContext(ctx, "cleared all rows on start")
	}

	queue, err := keyqueue.New(cfg.QueueWorkers, func(recovered any) {
		log.Error("panic in fixture job", "panic", recovered)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create worker queue: %w", err)
	}

	bus, err := amqpbus.Dial(cfg.AMQPURL, cfg.AMQPExchange, amqpbus.Topics{
		Events: cfg.AMQPEventsTopic,
		Delete: cfg.AMQPDeleteTopic,
		Ended:  cfg.AMQPEndedTopic,
	}, log.With("component", "amqp"))
	if err != nil {
		queue.Release()
		_ = db.Close()
		return nil, err
	}

	keyFn := statrow.KeyByFixtureID
	if cfg.RowKeyStrategy == config.RowKeyMatchURL {
		keyFn = statrow.KeyByMatchURL
	}

	svc := usecase.NewLifecycleService(queue, writer, bus, usecase.LifecycleConfig{
		KeyFn:          keyFn,
		LivenessTTL:    cfg.LivenessTTL,
		HandleSportIDs: cfg.HandleSportIDs,
	}, log.With("component", "lifecycle"))

	cache, err := rediscache.New(ctx, rediscache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, svc.OnLivenessExpired, log.With("component", "redis"))
	if err != nil {
		_ = bus.Close()
		queue.Release()
		_ = db.Close()
		return nil, err
	}
	svc.SetLivenessCache(cache)

	handler := httpapi.NewHandler(svc, log.With("component", "http"))
	server := httpapi.NewServer(cfg.HTTPAddr, cfg.ReadTimeout, cfg.WriteTimeout, handler, log.With("component", "http"))

	return &App{
		cfg:    cfg,
		log:    log,
		db:     db,
		writer: writer,
		queue:  queue,
		cache:  cache,
		bus:    bus,
		svc:    svc,
		server: server,
	}, nil
}

// Run starts the flush loop, the bus consumer, and the HTTP server, then
// blocks until ctx is canceled or the server fails.
func (a *App) Run(ctx context.Context) error {
	a.writer.Start()

	if err := a.bus.Consume(ctx, a.onBusEvent, a.onBusDelete); err != nil {
		a.shutdown()
		return fmt.Errorf("start bus consumer: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		runErr = err
	}

	a.shutdown()
	return runErr
}

func (a *App) onBusEvent(ctx context.Context, ev event.MatchEvent) {
	if err := a.svc.HandleEvent(ctx, ev); err != nil {
		a.log.WarnContext(ctx, "bus event rejected", "fixture_id", ev.ID, "error", err)
	}
}

func (a *App) onBusDelete(ctx context.Context, fixtureID string) {
	if err := a.svc.HandleDelete(ctx, fixtureID); err != nil {
		a.log.ErrorContext(ctx, "bus delete failed", "fixture_id", fixtureID, "error", err)
	}
}

// shutdown stops ingress first, drains the queue and writer, then closes
// the remaining connections.
func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Warn("http shutdown failed", "error", err)
	}
	if err := a.bus.Close(); err != nil {
		a.log.Warn("amqp close failed", "error", err)
	}

	a.queue.Release()
	a.writer.Close()

	if err := a.cache.Close(); err != nil {
		a.log.Warn("cache close failed", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn("database close failed", "error", err)
	}
}
