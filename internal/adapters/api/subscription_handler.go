package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"newsdesk.app/internal/core/subscription"
	"newsdesk.app/pkg/errors"
)

// CreateSubscriptionRequest represents the HTTP request for creating a subscription
type CreateSubscriptionRequest struct {
	SubscriberID uint   `json:"subscriber_id" binding:"required"`
	NewspaperID  uint   `json:"newspaper_id" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Status       string `json:"status" binding:"omitempty,subscription_status"`
}

// UpdateSubscriptionRequest represents a partial subscription update
type UpdateSubscriptionRequest struct {
	SubscriberID *uint   `json:"subscriber_id"`
	NewspaperID  *uint   `json:"newspaper_id"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Status       *string `json:"status" binding:"omitempty,subscription_status"`
}

// ExpireResponse reports the outcome of an expiry sweep
type ExpireResponse struct {
	Expired int64 `json:"expired"`
}

// listSubscriptions handles GET /api/subscriptions
func (s *HTTPServerAdapter) listSubscriptions(c *gin.Context) {
	list, err := s.subscriptionUseCase.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Subscriptions retrieved successfully")
}

// getSubscription handles GET /api/subscriptions/:id
func (s *HTTPServerAdapter) getSubscription(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	sub, err := s.subscriptionUseCase.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, sub, "Subscription retrieved successfully")
}

// createSubscription handles POST /api/subscriptions
func (s *HTTPServerAdapter) createSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Subscription request binding error", "error", err, "request_id", requestID(c))
		s.handleError(c, errors.NewValidationError(bindingMessage(err)))
		return
	}

	sub, err := s.subscriptionUseCase.Create(c.Request.Context(), subscription.CreateParams{
		SubscriberID: req.SubscriberID,
		NewspaperID:  req.NewspaperID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       req.Status,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("Subscription created", "id", sub.ID, "request_id", requestID(c))
	respondCreated(c, sub, "Subscription created successfully")
}

// updateSubscription handles PUT /api/subscriptions/:id
func (s *HTTPServerAdapter) updateSubscription(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req UpdateSubscriptionRequest
	if err := bindPartial(c, &req); err != nil {
		s.handleError(c, err)
		return
	}

	sub, err := s.subscriptionUseCase.Update(c.Request.Context(), id, subscription.UpdateParams{
		SubscriberID: req.SubscriberID,
		NewspaperID:  req.NewspaperID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       req.Status,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, sub, "Subscription updated successfully")
}

// deleteSubscription handles DELETE /api/subscriptions/:id
func (s *HTTPServerAdapter) deleteSubscription(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	deleted, err := s.subscriptionUseCase.Delete(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	if !deleted {
		respondFailure(c, http.StatusNotFound, "Subscription not found", codeNotFound)
		return
	}
	respondOK(c, nil, "Subscription deleted successfully")
}

// subscriptionsBySubscriber handles GET /api/subscriptions/subscriber/:id
func (s *HTTPServerAdapter) subscriptionsBySubscriber(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	list, err := s.subscriptionUseCase.BySubscriber(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Subscriptions retrieved by subscriber")
}

// subscriptionsByNewspaper handles GET /api/subscriptions/newspaper/:id
func (s *HTTPServerAdapter) subscriptionsByNewspaper(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	list, err := s.subscriptionUseCase.ByNewspaper(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Subscriptions retrieved by newspaper")
}

// subscriptionsByStatus handles GET /api/subscriptions/status/:status
func (s *HTTPServerAdapter) subscriptionsByStatus(c *gin.Context) {
	list, err := s.subscriptionUseCase.ByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Subscriptions retrieved by status")
}

// expiringSubscriptions handles GET /api/subscriptions/expiring-soon[/:days]
func (s *HTTPServerAdapter) expiringSubscriptions(c *gin.Context) {
	days, err := pathInt(c, "days", subscription.DefaultExpiringDays)
	if err != nil {
		s.handleError(c, err)
		return
	}

	list, err := s.subscriptionUseCase.ExpiringSoon(c.Request.Context(), days)
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Expiring subscriptions retrieved successfully")
}

// searchSubscriptions handles GET /api/subscriptions/search/:keyword
func (s *HTTPServerAdapter) searchSubscriptions(c *gin.Context) {
	list, err := s.subscriptionUseCase.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Subscription search completed")
}

// expireSubscriptions handles POST /api/subscriptions/expire
func (s *HTTPServerAdapter) expireSubscriptions(c *gin.Context) {
	count, err := s.subscriptionUseCase.SweepExpired(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, ExpireResponse{Expired: count}, "Expired subscriptions updated")
}

// subscriptionStats handles GET /api/subscriptions/stats
func (s *HTTPServerAdapter) subscriptionStats(c *gin.Context) {
	stats, err := s.subscriptionUseCase.Stats(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, stats, "Subscription statistics retrieved successfully")
}
