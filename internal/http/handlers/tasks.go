package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/taskview"

	"github.com/gin-gonic/gin"
)

// ListTasks is the legacy offset-paged raw slice.
func (h *Handler) ListTasks(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)

	tasks, err := h.Queries.List(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "page": page, "page_size": pageSize})
}

// ListEnriched is the primary feed: every matching task with its history
// count. Optional search and user_ids filters.
func (h *Handler) ListEnriched(c *gin.Context) {
	tasks, err := h.Queries.ListEnriched(c.Request.Context(), c.Query("search"), parseUserIDs(c.Query("user_ids")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if tasks == nil {
		tasks = []domain.EnrichedTask{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// PageTasks is the cursor-based alternate surface, ascending id order only.
func (h *Handler) PageTasks(c *gin.Context) {
	cursor := parseInt64(c.Query("cursor"), 0)
	limit := parseInt(c.Query("limit"), 50)

	tasks, next, err := h.Queries.ListPage(c.Request.Context(), cursor, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "next_cursor": next})
}

// ViewTasks runs the shared filter/sort/slice pipeline server-side and
// returns one visible window.
func (h *Handler) ViewTasks(c *gin.Context) {
	sel := taskview.Selection{
		ShowCompleted:  parseBool(c.Query("completed"), true),
		ShowIncomplete: parseBool(c.Query("incomplete"), true),
		Duration:       parseDuration(c.Query("duration")),
		Importance:     parseImportance(c.Query("importance")),
		UserIDs:        parseUserIDs(c.Query("user_ids")),
		Sort:           taskview.ParseSortKey(c.Query("sort")),
	}

	increment := taskview.PageIncrementWeb
	if c.Query("client") == "mobile" {
		increment = taskview.PageIncrementMobile
	}
	visible := parseInt(c.Query("visible"), increment)

	tasks, err := h.Queries.ListEnriched(c.Request.Context(), c.Query("search"), sel.UserIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	filtered, err := taskview.Apply(tasks, sel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window := taskview.Slice(filtered, visible, increment)
	if window.Tasks == nil {
		window.Tasks = []domain.EnrichedTask{}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":         window.Tasks,
		"visible_count": window.VisibleCount,
		"has_more":      window.HasMore,
		"next_visible":  taskview.NextVisibleCount(window.VisibleCount, increment),
	})
}

// CreateTask inserts a new task.
func (h *Handler) CreateTask(c *gin.Context) {
	var req struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		DurationMinutes int    `json:"duration_minutes"`
		Important       bool   `json:"important"`
		UserID          int64  `json:"user_id"`
	}
	if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	task := &domain.Task{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Important:       req.Important,
		UserID:          req.UserID,
	}
	if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// ToggleCompleted flips one task's completion flag and records the change.
func (h *Handler) ToggleCompleted(c *gin.Context) {
	h.toggle(c, h.Tasks.ToggleCompleted)
}

// ToggleImportant flips one task's importance flag and records the change.
func (h *Handler) ToggleImportant(c *gin.Context) {
	h.toggle(c, h.Tasks.ToggleImportant)
}

func (h *Handler) toggle(c *gin.Context, fn func(context.Context, int64) (*domain.Task, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := fn(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// ToggleAll flips completion on every listed task.
func (h *Handler) ToggleAll(c *gin.Context) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	processed, err := h.Tasks.ToggleAll(c.Request.Context(), req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error", "processed": processed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"processed": processed})
}

// SetAllCompleted forces completion to a value on every listed task, skipping
// tasks already there.
func (h *Handler) SetAllCompleted(c *gin.Context) {
	var req struct {
		IDs   []int64 `json:"ids"`
		Value bool    `json:"value"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	processed, err := h.Tasks.SetAllCompleted(c.Request.Context(), req.IDs, req.Value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error", "processed": processed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"processed": processed})
}

// TaskHistory returns one task's change history, newest first.
func (h *Handler) TaskHistory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	entries, err := h.Queries.TaskHistory(c.Request.Context(), id, parseInt(c.Query("limit"), 0))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}
