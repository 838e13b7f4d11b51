package push

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/warungpos/internal/config"
	"github.com/polkiloo/warungpos/internal/wire"
)

// Channel is the subscriber surface the synchronization engine consumes.
// A nil Channel means push is not configured and the engine relies on
// reconciliation alone.
type Channel interface {
	Subscribe(ctx context.Context) (<-chan wire.Event, error)
}

// PublisherModule wires the broadcast side into the server graph.
var PublisherModule = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerPublisherLifecycle),
)

func registerPublisherLifecycle(lc fx.Lifecycle, p *Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			p.Close()
			return nil
		},
	})
}

// SubscriberModule wires the consuming side into the terminal graph.
var SubscriberModule = fx.Provide(newChannel)

type pushParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p pushParams) (*Publisher, error) {
	if p.Config.AMQPAddress == "" {
		return nil, nil
	}
	return NewPublisher(p.Config.AMQPAddress, p.Logger)
}

func newChannel(p pushParams) Channel {
	if p.Config.AMQPAddress == "" {
		return nil
	}
	return NewSubscriber(p.Config.AMQPAddress, p.Logger)
}
