package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API answer except /api/health.
// Successful answers carry the mode they were served in.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Mode    string      `json:"mode,omitempty"`
}

const (
	modeDatabase = "database"
	modeDegraded = "degraded"
)

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message, Mode: modeDatabase})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message, Mode: modeDatabase})
}

func respondFailure(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message, Error: code})
}
