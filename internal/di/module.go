// Package di assembles the fx graphs of the two binaries. The server runs
// the data service (PostgreSQL, REST API, change broadcasting); a terminal
// runs the store, the synchronization engine, and the kitchen display.
package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/warungpos/internal/adapter/push"
	"github.com/polkiloo/warungpos/internal/adapter/remote"
	"github.com/polkiloo/warungpos/internal/app"
	"github.com/polkiloo/warungpos/internal/config"
	"github.com/polkiloo/warungpos/internal/logger"
	"github.com/polkiloo/warungpos/internal/server/http/handlers"
	"github.com/polkiloo/warungpos/internal/server/http/router"
	"github.com/polkiloo/warungpos/internal/storage/postgres"
	"github.com/polkiloo/warungpos/internal/sync"
)

// ServerModule builds the data service graph.
func ServerModule(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		push.PublisherModule,
		fx.Provide(
			func(s *postgres.Storage) handlers.DataStore { return s },
			func(p *push.Publisher) handlers.EventSink {
				if p == nil {
					return nil
				}
				return p
			},
		),
		router.Module,
		app.ServerModule,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// TerminalModule builds the terminal graph.
func TerminalModule(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		remote.Module,
		push.SubscriberModule,
		sync.Module,
		app.TerminalModule,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
