package handlers

import (
	"net/http"

	"taskboard/internal/domain"

	"github.com/gin-gonic/gin"
)

// LatestChanges returns the most recent changes across all tasks, for the
// activity dashboard.
func (h *Handler) LatestChanges(c *gin.Context) {
	entries, err := h.Queries.LatestChanges(c.Request.Context(), parseInt(c.Query("limit"), 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if entries == nil {
		entries = []domain.ChangeFeedEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"changes": entries})
}

// ChangesOverTime returns per-day change counts over the trailing window.
func (h *Handler) ChangesOverTime(c *gin.Context) {
	buckets, err := h.Queries.ChangesOverTime(c.Request.Context(), parseInt(c.Query("days"), 30))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if buckets == nil {
		buckets = []domain.ChangeBucket{}
	}
	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}
