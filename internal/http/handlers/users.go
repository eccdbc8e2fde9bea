package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/domain"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListUsers returns all user profiles.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserColor sets a user's display color.
func (h *Handler) UpdateUserColor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Color string `json:"color"`
	}
	if err := c.BindJSON(&req); err != nil || req.Color == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "color required"})
		return
	}

	if err := h.Users.UpdateColor(c.Request.Context(), id, req.Color); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UpdateUserImage sets a user's avatar from a base64-encoded image.
func (h *Handler) UpdateUserImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		ImageBase64 string `json:"image_base64"`
	}
	if err := c.BindJSON(&req); err != nil || req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 required"})
		return
	}

	if err := h.Users.UpdateImage(c.Request.Context(), id, req.ImageBase64); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
