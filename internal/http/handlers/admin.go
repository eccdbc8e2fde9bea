package handlers

import (
	"math/rand"
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/logger"

	"github.com/gin-gonic/gin"
)

// AddUsers creates user profiles in bulk.
func (h *Handler) AddUsers(c *gin.Context) {
	var req struct {
		Users []struct {
			Name         string `json:"name"`
			Color        string `json:"color"`
			AvatarBase64 string `json:"avatar_base64"`
		} `json:"users"`
	}
	if err := c.BindJSON(&req); err != nil || len(req.Users) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "users required"})
		return
	}

	ctx := c.Request.Context()
	var created []domain.User
	for _, u := range req.Users {
		if u.Name == "" {
			continue
		}
		user := domain.User{Name: u.Name, Color: u.Color, AvatarBase64: u.AvatarBase64}
		if err := h.Users.Create(ctx, &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error", "created": len(created)})
			return
		}
		created = append(created, user)
	}
	c.JSON(http.StatusOK, gin.H{"users": created})
}

// SeedTasks generates demo tasks spread over the existing users.
func (h *Handler) SeedTasks(c *gin.Context) {
	var req struct {
		Count int `json:"count"`
	}
	if err := c.BindJSON(&req); err != nil || req.Count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count required"})
		return
	}
	if req.Count > 10000 {
		req.Count = 10000
	}

	ctx := c.Request.Context()
	users, err := h.Users.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	titles := []string{
		"Water the plants", "Review pull request", "Book dentist appointment",
		"Write weekly report", "Clean the garage", "Plan sprint", "Fix flaky test",
		"Update dependencies", "Prepare demo", "Archive old tickets",
	}

	created := 0
	for i := 0; i < req.Count; i++ {
		task := &domain.Task{
			Title:           titles[rand.Intn(len(titles))],
			Completed:       rand.Intn(2) == 0,
			Important:       rand.Intn(4) == 0,
			DurationMinutes: []int{0, 5, 10, 15, 30, 60, 120}[rand.Intn(7)],
		}
		if len(users) > 0 && rand.Intn(10) != 0 { // leave a few unowned
			task.UserID = users[rand.Intn(len(users))].ID
		}
		if err := h.Tasks.Create(ctx, task); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error", "created": created})
			return
		}
		created++
	}

	logger.Info("seeded tasks", "count", created)
	c.JSON(http.StatusOK, gin.H{"created": created})
}

// BackfillHistory writes a legacy completion entry for every task that has no
// history yet.
func (h *Handler) BackfillHistory(c *gin.Context) {
	n, err := h.History.Backfill(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	logger.Info("backfilled history", "entries", n)
	c.JSON(http.StatusOK, gin.H{"created": n})
}

// Truncate wipes all record collections.
func (h *Handler) Truncate(c *gin.Context) {
	if err := h.Maint.TruncateAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	logger.Warn("all tables truncated")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
