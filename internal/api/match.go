package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/matching"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// MatchHandler serves pantry-based recipe matching
type MatchHandler struct {
	matchService service.IMatchService
}

func NewMatchHandler(matchService service.IMatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// RegisterRoutes mounts the match endpoint. Extra middleware such as rate
// limiting runs before the handler.
func (h *MatchHandler) RegisterRoutes(router *gin.RouterGroup, mw ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		handlers := append(append([]gin.HandlerFunc{}, mw...), h.FindMatches)
		recipes.POST("/match", handlers...)
	}
}

func (h *MatchHandler) FindMatches(c *gin.Context) {
	var req types.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Errors:  []matching.ValidationError{bindError(err)},
		})
		return
	}

	resp, err := h.matchService.FindMatches(c.Request.Context(), &req)
	if err != nil {
		var verrs matching.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Success: false,
				Message: "Invalid match request",
				Errors:  verrs,
			})
			return
		}
		// the service has already logged the failure with its parameters
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Success: false,
			Message: "Failed to match recipes",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func bindError(err error) matching.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return matching.ValidationError{
			Field:   typeErr.Field,
			Message: typeErr.Field + " must be of type " + typeErr.Type.String(),
		}
	}
	return matching.ValidationError{Field: "body", Message: "request body must be a valid JSON object"}
}
