package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/warungpos/internal/server/http/handlers"
	"github.com/polkiloo/warungpos/internal/server/http/middleware"
)

// Setup configures the gin router for the data service API. The surface is
// deliberately flat: one CRUD group per collection plus a health probe.
func Setup(store handlers.DataStore, sink handlers.EventSink, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	ordersHandler := handlers.NewOrdersHandler(store, sink, logger)
	menuHandler := handlers.NewMenuHandler(store, sink, logger)
	usersHandler := handlers.NewUsersHandler(store, sink, logger)
	healthHandler := handlers.NewHealthHandler(store)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	orders := api.Group("/orders")
	orders.GET("", ordersHandler.List)
	orders.POST("", ordersHandler.Create)
	orders.PATCH("/:id", ordersHandler.Patch)
	orders.DELETE("/:id", ordersHandler.Delete)

	menu := api.Group("/menu_items")
	menu.GET("", menuHandler.List)
	menu.POST("", menuHandler.Create)
	menu.PATCH("/:id", menuHandler.Patch)
	menu.DELETE("/:id", menuHandler.Delete)

	users := api.Group("/users")
	users.GET("", usersHandler.List)
	users.POST("", usersHandler.Create)
	users.PATCH("/:id", usersHandler.Patch)
	users.DELETE("/:id", usersHandler.Delete)

	return engine
}
