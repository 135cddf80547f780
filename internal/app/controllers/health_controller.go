package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController answers liveness checks
type HealthController struct {
	startedAt time.Time
}

// NewHealthController creates a new HealthController
func NewHealthController() *HealthController {
	return &HealthController{startedAt: time.Now()}
}

// Health reports service status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(c.startedAt).Round(time.Second).String(),
	})
}

// Ping answers with pong
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
