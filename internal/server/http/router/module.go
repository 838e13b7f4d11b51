package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/warungpos/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(setup)

type routerParams struct {
	fx.In

	Store  handlers.DataStore
	Sink   handlers.EventSink `optional:"true"`
	Logger *slog.Logger
}

func setup(p routerParams) *gin.Engine {
	return Setup(p.Store, p.Sink, p.Logger)
}
