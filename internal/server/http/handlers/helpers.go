package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/warungpos/internal/domain/errors"
	"github.com/polkiloo/warungpos/internal/wire"
)

// writeStatus maps storage errors onto HTTP statuses.
func writeStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrInvalidPatch):
		c.Status(http.StatusBadRequest)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

// announce publishes a change event, best effort. Terminals that miss it
// converge on their next reconciliation fetch.
func announce(c *gin.Context, sink EventSink, logger *slog.Logger, collection, action string, newRow, oldRow any) {
	if sink == nil {
		return
	}

	event := wire.Event{Collection: collection, Action: action}
	if newRow != nil {
		raw, err := json.Marshal(newRow)
		if err != nil {
			logger.Warn("encode change event failed", slog.String("error", err.Error()))
			return
		}
		event.New = raw
	}
	if oldRow != nil {
		raw, err := json.Marshal(oldRow)
		if err != nil {
			logger.Warn("encode change event failed", slog.String("error", err.Error()))
			return
		}
		event.Old = raw
	}

	if err := sink.Publish(c.Request.Context(), event); err != nil {
		logger.Warn("publish change event failed",
			slog.String("collection", collection),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}
