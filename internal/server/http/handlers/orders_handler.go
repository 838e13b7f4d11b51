package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/warungpos/internal/wire"
)

// OrdersHandler serves the orders collection.
type OrdersHandler struct {
	store  OrderStore
	sink   EventSink
	logger *slog.Logger
}

// NewOrdersHandler constructs OrdersHandler.
func NewOrdersHandler(store OrderStore, sink EventSink, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{store: store, sink: sink, logger: logger}
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *gin.Context) {
	rows, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		writeStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Create handles POST /api/orders.
func (h *OrdersHandler) Create(c *gin.Context) {
	var row wire.OrderRow
	if err := c.ShouldBindJSON(&row); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.store.InsertOrder(c.Request.Context(), row)
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionOrders, wire.ActionInsert, created, nil)
	c.JSON(http.StatusCreated, created)
}

// Patch handles PATCH /api/orders/:id.
func (h *OrdersHandler) Patch(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := h.store.PatchOrder(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionOrders, wire.ActionUpdate, updated, nil)
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/orders/:id.
func (h *OrdersHandler) Delete(c *gin.Context) {
	deleted, err := h.store.DeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionOrders, wire.ActionDelete, nil, deleted)
	c.Status(http.StatusNoContent)
}
