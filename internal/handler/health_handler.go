package handler

import (
	"net/http"
	"time"

	"visitas/internal/version"

	"github.com/gin-gonic/gin"
)

// Health reports process and database liveness.
// GET /health
func (s *Server) Health(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK

	sqlDB, err := s.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"version":   version.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
