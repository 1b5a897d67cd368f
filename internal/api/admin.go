package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// AdminHandler serves catalog maintenance endpoints
type AdminHandler struct {
	matchService service.IMatchService
	validator    middleware.TokenValidator
	logger       *zap.Logger
}

func NewAdminHandler(matchService service.IMatchService, validator middleware.TokenValidator, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{matchService: matchService, validator: validator, logger: log}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.AuthMiddleware(h.validator), middleware.RequireAdmin())
	{
		admin.POST("/match-cache/invalidate", h.InvalidateMatchCache)
	}
}

// InvalidateMatchCache retires every cached match result
func (h *AdminHandler) InvalidateMatchCache(c *gin.Context) {
	if err := h.matchService.InvalidateCache(c.Request.Context()); err != nil {
		h.logger.Error("failed to invalidate match cache", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Success: false,
			Message: "Failed to invalidate match cache",
		})
		return
	}
	c.Status(http.StatusNoContent)
}
