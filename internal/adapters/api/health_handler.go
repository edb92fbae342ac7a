package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"newsdesk.app/internal/ports"
)

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status      string                        `json:"status"`
	Message     string                        `json:"message"`
	Mode        string                        `json:"mode"`
	DBConnected bool                          `json:"dbConnected"`
	Components  map[string]ports.HealthStatus `json:"components,omitempty"`
}

// health handles GET /api/health. It always answers 200; the database
// state is reported in the body.
func (s *HTTPServerAdapter) health(c *gin.Context) {
	resp := HealthResponse{
		Status:      "ok",
		Message:     "Server is running",
		Mode:        modeDatabase,
		DBConnected: !s.degraded,
	}

	if s.healthChecker != nil {
		resp.Components = s.healthChecker.CheckAll(c.Request.Context())
		if db, ok := resp.Components["database"]; ok && db.Status != "healthy" {
			resp.DBConnected = false
		}
	}
	if s.degraded {
		resp.Mode = modeDegraded
	}

	c.JSON(http.StatusOK, resp)
}
