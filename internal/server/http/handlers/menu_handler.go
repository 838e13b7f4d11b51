package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/warungpos/internal/wire"
)

// MenuHandler serves the menu_items collection.
type MenuHandler struct {
	store  MenuStore
	sink   EventSink
	logger *slog.Logger
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(store MenuStore, sink EventSink, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{store: store, sink: sink, logger: logger}
}

// List handles GET /api/menu_items.
func (h *MenuHandler) List(c *gin.Context) {
	rows, err := h.store.ListMenuItems(c.Request.Context())
	if err != nil {
		writeStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Create handles POST /api/menu_items.
func (h *MenuHandler) Create(c *gin.Context) {
	var row wire.MenuItemRow
	if err := c.ShouldBindJSON(&row); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.store.InsertMenuItem(c.Request.Context(), row)
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionMenuItems, wire.ActionInsert, created, nil)
	c.JSON(http.StatusCreated, created)
}

// Patch handles PATCH /api/menu_items/:id.
func (h *MenuHandler) Patch(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := h.store.PatchMenuItem(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionMenuItems, wire.ActionUpdate, updated, nil)
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/menu_items/:id.
func (h *MenuHandler) Delete(c *gin.Context) {
	deleted, err := h.store.DeleteMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionMenuItems, wire.ActionDelete, nil, deleted)
	c.Status(http.StatusNoContent)
}
