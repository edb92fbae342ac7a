package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"newsdesk.app/internal/core/newspaper"
	"newsdesk.app/pkg/errors"
)

// CreateNewspaperRequest represents the HTTP request for creating a newspaper
type CreateNewspaperRequest struct {
	Name        string   `json:"name" binding:"required"`
	Publisher   string   `json:"publisher" binding:"required"`
	Frequency   string   `json:"frequency" binding:"required,frequency"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Description *string  `json:"description"`
}

// UpdateNewspaperRequest represents a partial newspaper update
type UpdateNewspaperRequest struct {
	Name        *string  `json:"name"`
	Publisher   *string  `json:"publisher"`
	Frequency   *string  `json:"frequency" binding:"omitempty,frequency"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
}

// listNewspapers handles GET /api/newspapers
func (s *HTTPServerAdapter) listNewspapers(c *gin.Context) {
	list, err := s.newspaperUseCase.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Newspapers retrieved successfully")
}

// getNewspaper handles GET /api/newspapers/:id
func (s *HTTPServerAdapter) getNewspaper(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	paper, err := s.newspaperUseCase.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, paper, "Newspaper retrieved successfully")
}

// createNewspaper handles POST /api/newspapers
func (s *HTTPServerAdapter) createNewspaper(c *gin.Context) {
	var req CreateNewspaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Newspaper request binding error", "error", err, "request_id", requestID(c))
		s.handleError(c, errors.NewValidationError(bindingMessage(err)))
		return
	}

	paper, err := s.newspaperUseCase.Create(c.Request.Context(), newspaper.CreateParams{
		Name:        req.Name,
		Publisher:   req.Publisher,
		Frequency:   req.Frequency,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("Newspaper created", "id", paper.ID, "request_id", requestID(c))
	respondCreated(c, paper, "Newspaper created successfully")
}

// updateNewspaper handles PUT /api/newspapers/:id
func (s *HTTPServerAdapter) updateNewspaper(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req UpdateNewspaperRequest
	if err := bindPartial(c, &req); err != nil {
		s.handleError(c, err)
		return
	}

	paper, err := s.newspaperUseCase.Update(c.Request.Context(), id, newspaper.UpdateParams{
		Name:        req.Name,
		Publisher:   req.Publisher,
		Frequency:   req.Frequency,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, paper, "Newspaper updated successfully")
}

// deleteNewspaper handles DELETE /api/newspapers/:id
func (s *HTTPServerAdapter) deleteNewspaper(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	deleted, err := s.newspaperUseCase.Delete(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}
	if !deleted {
		respondFailure(c, http.StatusNotFound, "Newspaper not found", codeNotFound)
		return
	}
	respondOK(c, nil, "Newspaper deleted successfully")
}

// searchNewspapers handles GET /api/newspapers/search/:keyword
func (s *HTTPServerAdapter) searchNewspapers(c *gin.Context) {
	list, err := s.newspaperUseCase.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Newspaper search completed")
}

// newspapersByPriceRange handles GET /api/newspapers/price-range/:min/:max
func (s *HTTPServerAdapter) newspapersByPriceRange(c *gin.Context) {
	min, err := pathFloat(c, "min")
	if err != nil {
		s.handleError(c, err)
		return
	}
	max, err := pathFloat(c, "max")
	if err != nil {
		s.handleError(c, err)
		return
	}

	list, err := s.newspaperUseCase.ByPriceRange(c.Request.Context(), min, max)
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Newspapers retrieved by price range")
}

// newspapersByPublisher handles GET /api/newspapers/publisher/:publisher
func (s *HTTPServerAdapter) newspapersByPublisher(c *gin.Context) {
	list, err := s.newspaperUseCase.ByPublisher(c.Request.Context(), c.Param("publisher"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, list, "Newspapers retrieved by publisher")
}

// newspaperStats handles GET /api/newspapers/stats
func (s *HTTPServerAdapter) newspaperStats(c *gin.Context) {
	stats, err := s.newspaperUseCase.Stats(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondOK(c, stats, "Newspaper statistics retrieved successfully")
}
