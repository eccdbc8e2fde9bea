package handlers

import (
	"net/http"

	"taskboard/internal/taskview"

	"github.com/gin-gonic/gin"
)

// Stats returns the per-user statistics table derived from the enriched list,
// sortable by any single column, plus a totals row over the returned rows.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	userIDs := parseUserIDs(c.Query("user_ids"))

	tasks, err := h.Queries.ListEnriched(ctx, c.Query("search"), userIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	users, err := h.Users.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	// restrict rows to the filtered user set when one is given
	if len(userIDs) > 0 {
		keep := make(map[int64]bool, len(userIDs))
		for _, id := range userIDs {
			keep[id] = true
		}
		filtered := users[:0]
		for _, u := range users {
			if keep[u.ID] {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	rows := taskview.Aggregate(tasks, users)
	taskview.SortRows(rows, taskview.ParseStatsColumn(c.Query("sort")), parseBool(c.Query("desc"), false))

	c.JSON(http.StatusOK, gin.H{
		"rows":   rows,
		"totals": taskview.Totals(rows),
	})
}
