package amqp

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/streadway/amqp"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/statsboard/internal/domain/event"
	"github.com/riskibarqy/statsboard/internal/platform/logging"
)

// Topics names the routing keys the bus consumes and publishes on. All of
// them live on one topic exchange.
type Topics struct {
	Events string
	Delete string
	Ended  string
}

// EventHandler receives a decoded match event from the feed.
type EventHandler func(ctx context.Context, ev event.MatchEvent)

// DeleteHandler receives the fixture id of a deleted fixture.
type DeleteHandler func(ctx context.Context, fixtureID string)

// Bus is a single AMQP connection carrying the inbound fixture feed and
// the outbound ended-fixtures notifications. It connects once and surfaces
// failures; reconnect policy belongs to process supervision, not here.
type Bus struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	topics   Topics
	log      *logging.Logger
}

func Dial(url, exchange string, topics Topics, log *logging.Logger) (*Bus, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, crerr.Wrap(err, "dial amqp")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, crerr.Wrap(err, "open channel")
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, crerr.Wrapf(err, "declare exchange %q", exchange)
	}

	return &Bus{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		topics:   topics,
		log:      log,
	}, nil
}

// Consume binds a private queue to the event and delete topics and
// dispatches deliveries until the channel closes or ctx is done.
func (b *Bus) Consume(ctx context.Context, onEvent EventHandler, onDelete DeleteHandler) error {
	queue, err := b.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return crerr.Wrap(err, "declare queue")
	}

	for _, topic := range []string{b.topics.Events, b.topics.Delete} {
		if topic == "" {
			continue
		}
		if err := b.ch.QueueBind(queue.Name, topic, b.exchange, false, nil); err != nil {
			return crerr.Wrapf(err, "bind queue to %q", topic)
		}
	}

	deliveries, err := b.ch.Consume(queue.Name, "", true, true, false, false, nil)
	if err != nil {
		return crerr.Wrap(err, "start consuming")
	}

	go b.dispatch(ctx, deliveries, onEvent, onDelete)

	return nil
}

func (b *Bus) dispatch(ctx context.Context, deliveries <-chan amqp.Delivery, onEvent EventHandler, onDelete DeleteHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				b.log.Warn("amqp delivery channel closed")
				return
			}

			switch d.RoutingKey {
			case b.topics.Events:
				ev, err := event.Decode(d.Body)
				if err != nil {
					b.log.Warn("dropping undecodable event", "routing_key", d.RoutingKey, "error", err)
					continue
				}
				onEvent(ctx, ev)
			case b.topics.Delete:
				id := decodeFixtureID(d.Body)
				if id == "" {
					b.log.Warn("dropping delete message without fixture id")
					continue
				}
				onDelete(ctx, id)
			default:
				b.log.Debug("ignoring delivery", "routing_key", d.RoutingKey)
			}
		}
	}
}

// decodeFixtureID accepts both the JSON envelope {"eventId": "..."} and a
// bare id string.
func decodeFixtureID(body []byte) string {
	var msg struct {
		EventID string `json:"eventId"`
	}
	if err := sonic.Unmarshal(body, &msg); err == nil && msg.EventID != "" {
		return msg.EventID
	}

	return strings.Trim(strings.TrimSpace(string(body)), `"`)
}

type endedMessage struct {
	EventID string `json:"eventId"`
	Key     string `json:"key"`
}

// PublishEnded notifies downstream consumers that a fixture finished.
func (b *Bus) PublishEnded(ctx context.Context, eventID, key string) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(endedMessage{EventID: eventID, Key: key}); err != nil {
		return crerr.Wrap(err, "encode ended message")
	}

	err := b.ch.Publish(b.exchange, b.topics.Ended, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        buf.Bytes(),
	})
	if err != nil {
		return crerr.Wrapf(err, "publish ended fixture %q", eventID)
	}

	return nil
}

func (b *Bus) Close() error {
	if err := b.ch.Close(); err != nil {
		b.log.Warn("closing amqp channel failed", "error", err)
	}

	return b.conn.Close()
}
