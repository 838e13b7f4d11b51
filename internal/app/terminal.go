package app

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/warungpos/internal/sync"
)

// displayRefresh is the fallback cadence of the kitchen display between
// store-change redraws.
const displayRefresh = 5 * time.Second

// TerminalModule wires the facade, the kitchen display, and the engine
// lifecycle into the terminal graph.
var TerminalModule = fx.Options(
	fx.Provide(
		NewTerminalFacade,
		newDisplay,
	),
	fx.Invoke(registerTerminalLifecycle),
)

func newDisplay(facade *TerminalFacade, logger *slog.Logger) *Display {
	return NewDisplay(facade, displayRefresh, logger)
}

type terminalLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *slog.Logger
	Engine    *sync.Engine
	Display   *Display
}

func registerTerminalLifecycle(p terminalLifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting warungpos terminal")
			if err := p.Engine.Start(ctx); err != nil {
				return err
			}
			p.Display.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Display.Stop()
			p.Engine.Stop()
			p.Logger.Info("warungpos terminal stopped")
			return nil
		},
	})
}
