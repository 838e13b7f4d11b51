// Package push carries row-level change events between the server and the
// terminals over a RabbitMQ topic exchange. Delivery is at-most-once: the
// subscriber auto-acks, and a dropped event is repaired by the engine's
// next reconciliation fetch.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/polkiloo/warungpos/internal/wire"
)

// Exchange is the topic exchange all change events flow through. Routing
// keys are "<collection>.<action>", e.g. "orders.UPDATE".
const Exchange = "warungpos.changes"

var bindings = []string{
	wire.CollectionOrders + ".*",
	wire.CollectionMenuItems + ".*",
	wire.CollectionUsers + ".*",
}

func declareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil)
}

// Publisher broadcasts change events from the server side.
type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareExchange(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, logger: logger}, nil
}

// Publish sends one event. Transient messages are fine here: a missed
// event is recovered by reconciliation, not redelivery.
func (p *Publisher) Publish(ctx context.Context, event wire.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	key := event.Collection + "." + event.Action
	err = p.ch.PublishWithContext(ctx, Exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Subscriber consumes change events on the terminal side. Each call to
// Subscribe opens a fresh connection with an exclusive auto-delete queue;
// the returned channel closes when the connection drops, which is the
// engine's cue to flag disconnection and resubscribe.
type Subscriber struct {
	url    string
	logger *slog.Logger
}

// NewSubscriber creates a lazy subscriber; nothing is dialed until
// Subscribe is called.
func NewSubscriber(url string, logger *slog.Logger) *Subscriber {
	return &Subscriber{url: url, logger: logger}
}

// Subscribe dials the broker, binds a private queue to all three
// collections, and streams decoded events until the connection closes or
// ctx is cancelled.
func (s *Subscriber) Subscribe(ctx context.Context) (<-chan wire.Event, error) {
	conn, err := amqp.Dial(s.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareExchange(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	for _, key := range bindings {
		if err := ch.QueueBind(q.Name, key, Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("consume: %w", err)
	}

	out := make(chan wire.Event)
	go func() {
		defer close(out)
		defer conn.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				var event wire.Event
				if err := json.Unmarshal(d.Body, &event); err != nil {
					s.logger.Warn("malformed push event dropped", slog.String("error", err.Error()))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
