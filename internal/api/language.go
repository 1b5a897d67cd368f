package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// LanguageLister lists the active catalog languages
type LanguageLister interface {
	ListActive(ctx context.Context) ([]models.Language, error)
}

type LanguageHandler struct {
	languages LanguageLister
}

func NewLanguageHandler(languages LanguageLister) *LanguageHandler {
	return &LanguageHandler{languages: languages}
}

func (h *LanguageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/languages", h.ListLanguages)
}

func (h *LanguageHandler) ListLanguages(c *gin.Context) {
	langs, err := h.languages.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Success: false,
			Message: "Failed to list languages",
		})
		return
	}

	items := make([]types.LanguageItem, 0, len(langs))
	for _, l := range langs {
		items = append(items, types.LanguageItem{Code: l.Code, Name: l.Name, IsDefault: l.IsDefault})
	}
	c.JSON(http.StatusOK, types.LanguagesResponse{Success: true, Data: items})
}
