package sync

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/warungpos/internal/adapter/push"
	"github.com/polkiloo/warungpos/internal/adapter/remote"
	"github.com/polkiloo/warungpos/internal/config"
	"github.com/polkiloo/warungpos/internal/snapshot"
	"github.com/polkiloo/warungpos/internal/store"
)

// Module wires the engine and its collaborators into the terminal graph.
var Module = fx.Options(
	fx.Provide(
		store.New,
		newKeeper,
		newEngine,
	),
)

type keeperParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newKeeper(p keeperParams) *snapshot.Keeper {
	return snapshot.NewKeeper(p.Config.SnapshotPath, p.Logger)
}

type engineParams struct {
	fx.In

	Store   *store.Store
	Remote  remote.Client `optional:"true"`
	Channel push.Channel  `optional:"true"`
	Keeper  *snapshot.Keeper
	Config  *config.Config
	Logger  *slog.Logger
}

func newEngine(p engineParams) *Engine {
	return New(p.Store, p.Remote, p.Channel, p.Keeper, p.Config.ReconcileInterval, p.Logger)
}
