package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastwise/tutr-backend/internal/db"
)

type HealthHandler struct {
	neo4j *db.Neo4jService
}

func NewHealthHandler(neo4j *db.Neo4jService) *HealthHandler {
	return &HealthHandler{neo4j: neo4j}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if !h.neo4j.HealthCheck(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
