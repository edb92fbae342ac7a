package api

import (
	stderrors "errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"newsdesk.app/pkg/errors"
)

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(name + " must be a positive integer")
	}
	return uint(id), nil
}

// pathFloat parses a numeric path parameter
func pathFloat(c *gin.Context, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Param(name)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.NewValidationError(name + " must be a number")
	}
	return v, nil
}

// pathInt parses an integer path parameter, falling back to def when absent
func pathInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name + " must be an integer")
	}
	return v, nil
}

// bindPartial binds a partial-update body. An empty body is an empty update.
func bindPartial(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.NewValidationError(bindingMessage(err))
	}
	return nil
}
