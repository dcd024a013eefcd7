package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ledger_service/internal/domain"
	"ledger_service/internal/logger"
	"ledger_service/internal/repository"

	"github.com/gin-gonic/gin"
)

// CreateUser registers a new ACTIVE user with a zero balance in every
// supported currency.
func (h *Handler) CreateUser(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "valid email is required"})
		return
	}

	user, err := h.Users.Create(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers returns users with balances, optionally filtered by id,
// email (case-insensitive) and status.
func (h *Handler) ListUsers(c *gin.Context) {
	var filter repository.UserFilter

	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user_id must be a positive integer"})
			return
		}
		filter.ID = &id
	}
	if v := c.Query("email"); v != "" {
		filter.Email = &v
	}
	if v := c.Query("status"); v != "" {
		status := domain.UserStatus(v)
		if !status.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status must be ACTIVE or BLOCKED"})
			return
		}
		filter.Status = &status
	}

	users, err := h.Users.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error("list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if users == nil {
		users = []*domain.User{}
	}

	c.JSON(http.StatusOK, users)
}

// PatchUserStatus flips a user between ACTIVE and BLOCKED
func (h *Handler) PatchUserStatus(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user id must be a positive integer"})
		return
	}

	var req struct {
		Status domain.UserStatus `json:"status" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil || !req.Status.IsValid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status must be ACTIVE or BLOCKED"})
		return
	}

	user, err := h.Users.SetStatus(c.Request.Context(), userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUserAlreadyActive), errors.Is(err, domain.ErrUserAlreadyBlocked):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("patch user status", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
