package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/warungpos/internal/wire"
)

// UsersHandler serves the users collection.
type UsersHandler struct {
	store  UserStore
	sink   EventSink
	logger *slog.Logger
}

// NewUsersHandler constructs UsersHandler.
func NewUsersHandler(store UserStore, sink EventSink, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{store: store, sink: sink, logger: logger}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *gin.Context) {
	rows, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		writeStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *gin.Context) {
	var row wire.UserRow
	if err := c.ShouldBindJSON(&row); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.store.InsertUser(c.Request.Context(), row)
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionUsers, wire.ActionInsert, created, nil)
	c.JSON(http.StatusCreated, created)
}

// Patch handles PATCH /api/users/:id.
func (h *UsersHandler) Patch(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	updated, err := h.store.PatchUser(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionUsers, wire.ActionUpdate, updated, nil)
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *gin.Context) {
	deleted, err := h.store.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStatus(c, err)
		return
	}

	announce(c, h.sink, h.logger, wire.CollectionUsers, wire.ActionDelete, nil, deleted)
	c.Status(http.StatusNoContent)
}
