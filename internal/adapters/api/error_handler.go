package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"newsdesk.app/pkg/errors"
)

// Error codes for failures that carry no domain code
const (
	codeValidation   = "ValidationError"
	codeNotFound     = "NotFound"
	codeConflict     = "Conflict"
	codeNotConnected = "NotConnected"
	codeInternal     = "InternalError"
)

const internalErrorMessage = "Internal server error"

// handleError maps an application error onto the response envelope
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	status, code := classify(err)
	message := errors.MessageOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err, "path", c.FullPath(), "request_id", requestID(c))
		message = internalErrorMessage
	}

	if domainCode := errors.CodeOf(err); domainCode != "" {
		code = domainCode
	}

	respondFailure(c, status, message, code)
}

func classify(err error) (int, string) {
	switch errors.TypeOf(err) {
	case errors.ValidationError:
		return http.StatusBadRequest, codeValidation
	case errors.NotFoundError:
		return http.StatusNotFound, codeNotFound
	case errors.AlreadyExistsError, errors.DependencyError:
		return http.StatusConflict, codeConflict
	case errors.NotConnectedError:
		return http.StatusServiceUnavailable, codeNotConnected
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// notFound answers unmatched routes
func (s *HTTPServerAdapter) notFound(c *gin.Context) {
	respondFailure(c, http.StatusNotFound, "Route not found", codeNotFound)
}

// recoveryMiddleware turns handler panics into a 500 envelope
func recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("Recovered from panic", "panic", recovered, "path", c.Request.URL.Path, "request_id", requestID(c))
		respondFailure(c, http.StatusInternalServerError, internalErrorMessage, codeInternal)
	})
}
