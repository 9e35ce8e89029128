package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sportall/app-recruit/internal/config"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheck godoc
// @Summary Health check
// @Description Reports API, database and cache health
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	servicesStatus := map[string]string{
		"mongodb": "healthy",
		"redis":   "healthy",
	}

	if config.MongoDB == nil || config.MongoDB.Client().Ping(ctx, readpref.Primary()) != nil {
		servicesStatus["mongodb"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	if config.Redis == nil || config.Redis.Ping(ctx).Err() != nil {
		servicesStatus["redis"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  servicesStatus,
	})
}
