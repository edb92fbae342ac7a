package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"newsdesk.app/internal/core/subscriber"
	"newsdesk.app/pkg/errors"
)

// CreateSubscriberRequest represents the HTTP request for creating a subscriber
type CreateSubscriberRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// UpdateSubscriberRequest represents a partial subscriber update
type UpdateSubscriberRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// listSubscribers handles GET /api/subscribers
func (s *HTTPServerAdapter) listSubscribers(c *gin.Context) {
	list, err := s.subscriberUseCase.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Subscribers retrieved successfully")
}

// getSubscriber handles GET /api/subscribers/:id
func (s *HTTPServerAdapter) getSubscriber(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	sub, err := s.subscriberUseCase.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, sub, "Subscriber retrieved successfully")
}

// createSubscriber handles POST /api/subscribers
func (s *HTTPServerAdapter) createSubscriber(c *gin.Context) {
	var req CreateSubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Subscriber request binding error", "error", err, "request_id", requestID(c))
		s.handleError(c, errors.NewValidationError(bindingMessage(err)))
		return
	}

	sub, err := s.subscriberUseCase.Create(c.Request.Context(), subscriber.CreateParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("Subscriber created", "id", sub.ID, "request_id", requestID(c))
	respondCreated(c, sub, "Subscriber created successfully")
}

// updateSubscriber handles PUT /api/subscribers/:id
func (s *HTTPServerAdapter) updateSubscriber(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req UpdateSubscriberRequest
	if err := bindPartial(c, &req); err != nil {
		s.handleError(c, err)
		return
	}

	sub, err := s.subscriberUseCase.Update(c.Request.Context(), id, subscriber.UpdateParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, sub, "Subscriber updated successfully")
}

// deleteSubscriber handles DELETE /api/subscribers/:id
func (s *HTTPServerAdapter) deleteSubscriber(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	deleted, err := s.subscriberUseCase.Delete(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	if !deleted {
		respondFailure(c, http.StatusNotFound, "Subscriber not found", codeNotFound)
		return
	}
	respondOK(c, nil, "Subscriber deleted successfully")
}

// searchSubscribers handles GET /api/subscribers/search/:keyword
func (s *HTTPServerAdapter) searchSubscribers(c *gin.Context) {
	list, err := s.subscriberUseCase.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Subscriber search completed")
}

// subscriberStats handles GET /api/subscribers/stats
func (s *HTTPServerAdapter) subscriberStats(c *gin.Context) {
	stats, err := s.subscriberUseCase.Stats(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, stats, "Subscriber statistics retrieved successfully")
}
