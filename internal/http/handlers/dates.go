package handlers

import (
	"net/http"
	"strconv"

	"timer_diary/internal/domain"
	"timer_diary/internal/logger"
	"timer_diary/internal/ws"

	"github.com/gin-gonic/gin"
)

// ListDates returns every date row. Always 200; the client sorts.
func (h *Handler) ListDates(c *gin.Context) {
	ctx := c.Request.Context()

	dates, err := h.Dates.List(ctx)
	if err != nil {
		logger.Error("fetch dates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if dates == nil {
		dates = []*domain.DateRecord{}
	}
	c.JSON(http.StatusOK, dates)
}

// DeleteDate removes a date row and, via the schema cascade, all its logs.
func (h *Handler) DeleteDate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date id"})
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.Dates.Delete(ctx, id)
	if err != nil {
		logger.Error("delete date", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "date not found"})
		return
	}

	h.notify(ws.Event{Event: ws.EventDateDeleted, ID: id})
	c.Status(http.StatusNoContent)
}
