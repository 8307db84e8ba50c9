package query

import (
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/autosales/internal/core/errors"
	"github.com/aevon-lab/autosales/internal/server"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the saved query API on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/queries", s.HandleListQueries)
	r.GET("/v1/queries/:name", s.HandleRunQuery)
}

// HandleListQueries handles GET /v1/queries
func (s *Service) HandleListQueries(c *gin.Context) {
	queries, err := s.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to list saved queries",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"queries": queries})
}

// HandleRunQuery handles GET /v1/queries/:name
// Query parameters: year (required for per-year queries)
func (s *Service) HandleRunQuery(c *gin.Context) {
	var query struct {
		Year int `form:"year"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	spec, err := s.Run(c.Request.Context(), RunRequest{Name: c.Param("name"), Year: query.Year})
	if err != nil {
		switch {
		case errors.Is(err, ErrQueryNotFound):
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpQueryNotFoundError,
				Message:   "Saved query not found",
				Details:   err.Error(),
			})
		case errors.Is(err, ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid saved query request",
				Details:   err.Error(),
			})
		default:
			server.Logger(c).Error("Saved query failed", "query", c.Param("name"), "error", err)
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to run saved query",
				Details:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, spec)
}
