package remote

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/warungpos/internal/config"
)

// Module exposes the remote data service client to the fx graph. An empty
// remote address yields a nil client, which the synchronization engine
// treats as offline mode.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.RemoteAddress == "" {
		return nil, nil
	}
	return NewHTTPClient(p.Config.RemoteAddress, p.Logger)
}
