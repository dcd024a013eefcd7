package handlers

import (
	"net/http"
	"strconv"

	"ledger_service/internal/logger"

	"github.com/gin-gonic/gin"
)

// Analysis returns weekly ledger aggregates, oldest week first
func (h *Handler) Analysis(c *gin.Context) {
	weeks := h.DefaultWeeks
	if v := c.Query("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "weeks must be a positive integer"})
			return
		}
		weeks = n
	}

	reports, err := h.Analytics.GenerateWeeklyReports(c.Request.Context(), weeks)
	if err != nil {
		logger.Error("generate weekly reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, reports)
}
