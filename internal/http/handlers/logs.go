package handlers

import (
	"net/http"
	"strconv"

	"timer_diary/internal/domain"
	"timer_diary/internal/logger"
	"timer_diary/internal/ws"

	"github.com/gin-gonic/gin"
)

// CreateLogRequest is the typed body for POST /logs/create. All string
// fields are required; tasks must be present but may be empty.
type CreateLogRequest struct {
	Date            string         `json:"date" binding:"required"`
	SessionDuration string         `json:"session_duration" binding:"required"`
	Description     string         `json:"description" binding:"required"`
	Title           string         `json:"title" binding:"required"`
	Tasks           *[]domain.Task `json:"tasks"`
}

// UpdateLogRequest is the typed body for PATCH /logs/:id. At least one
// field must be present.
type UpdateLogRequest struct {
	Tasks       *[]domain.Task `json:"tasks"`
	Description *string        `json:"description"`
}

// GetLogs returns all log entries for ?date=YYYY-MM-DD, tasks decoded.
// An unknown date is an empty list, not an error.
func (h *Handler) GetLogs(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing date parameter"})
		return
	}

	ctx := c.Request.Context()

	dateRecord, err := h.Dates.GetByDate(ctx, date)
	if err != nil {
		logger.Error("fetch date record", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if dateRecord == nil {
		c.JSON(http.StatusOK, []*domain.LogEntry{})
		return
	}

	logs, err := h.Logs.ListByDateID(ctx, dateRecord.ID)
	if err != nil {
		logger.Error("fetch logs", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if logs == nil {
		logs = []*domain.LogEntry{}
	}
	c.JSON(http.StatusOK, logs)
}

// CreateLog upserts the date row and inserts a new log entry.
// Returns 201 with the full row, tasks decoded.
func (h *Handler) CreateLog(c *gin.Context) {
	var req CreateLogRequest
	if err := c.BindJSON(&req); err != nil || req.Tasks == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing required fields: date, session_duration, description, title, tasks",
		})
		return
	}

	ctx := c.Request.Context()

	dateRecord, err := h.Dates.GetOrCreate(ctx, req.Date)
	if err != nil {
		logger.Error("get or create date", "date", req.Date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	entry := &domain.LogEntry{
		DateID:          dateRecord.ID,
		SessionDuration: req.SessionDuration,
		Description:     req.Description,
		Title:           req.Title,
		Tasks:           *req.Tasks,
	}
	if err := h.Logs.Create(ctx, entry); err != nil {
		logger.Error("insert log", "date", req.Date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.notify(ws.Event{Event: ws.EventLogCreated, Date: req.Date, ID: entry.ID})
	c.JSON(http.StatusCreated, entry)
}

// UpdateLog applies a partial update to tasks and/or description.
func (h *Handler) UpdateLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	var req UpdateLogRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Tasks == nil && req.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields to update"})
		return
	}

	var tasks []domain.Task
	if req.Tasks != nil {
		tasks = *req.Tasks
		if tasks == nil {
			tasks = []domain.Task{}
		}
	}

	ctx := c.Request.Context()
	updated, err := h.Logs.Update(ctx, id, tasks, req.Description)
	if err != nil {
		logger.Error("update log", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}

	h.notify(ws.Event{Event: ws.EventLogUpdated, ID: id})
	c.JSON(http.StatusOK, gin.H{"message": "log updated successfully"})
}

// DeleteLog deletes a log entry by id. 204 on success, 404 on no match.
func (h *Handler) DeleteLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.Logs.Delete(ctx, id)
	if err != nil {
		logger.Error("delete log", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}

	h.notify(ws.Event{Event: ws.EventLogDeleted, ID: id})
	c.Status(http.StatusNoContent)
}
