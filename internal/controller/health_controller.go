package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qbank/database"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Health godoc
// @Summary Liveness and database connectivity
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Success:   true,
		Message:   "Question bank API is running",
		Database:  "connected",
		Timestamp: time.Now().UTC(),
	}
	status := http.StatusOK
	if err := database.Ping(c.Request.Context(), ctrl.db); err != nil {
		log.Error().Err(err).Msg("Health: database ping failed")
		resp.Success = false
		resp.Database = "disconnected"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// Index lists the resource roots.
func (ctrl *HealthController) Index(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{
		"name": "question bank api",
		"endpoints": gin.H{
			"questions": "/api/questions",
			"tags":      "/api/tags",
			"history":   "/api/history",
			"health":    "/health",
			"docs":      "/swagger/index.html",
		},
	})
}
