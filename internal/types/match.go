package types

import (
	"github.com/google/uuid"

	"github.com/pageza/recipe-catalog/backend/internal/matching"
)

// MatchRequest is the body of a recipe match request. Optional fields are
// pointers so that an explicit zero is distinguishable from absence.
type MatchRequest struct {
	PantryIngredientIDs   []string `json:"pantryIngredientIds" validate:"required,min=1"`
	MinMatchPercentage    *float64 `json:"minMatchPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	IncludePartialMatches *bool    `json:"includePartialMatches,omitempty"`
	Page                  *int     `json:"page,omitempty" validate:"omitempty,gte=1"`
	Limit                 *int     `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100"`
	LanguageCode          *string  `json:"languageCode,omitempty" validate:"omitempty,min=1,max=35"`
}

// MatchItem is one ranked recipe in a match response
type MatchItem struct {
	RecipeID                 uuid.UUID `json:"recipeId"`
	Title                    string    `json:"title"`
	TitleLanguage            string    `json:"titleLanguage,omitempty"`
	MatchPercentage          float64   `json:"matchPercentage"`
	TotalIngredients         int       `json:"totalIngredients"`
	MatchingIngredientsCount int       `json:"matchingIngredientsCount"`
	MatchingIngredientNames  []string  `json:"matchingIngredientNames"`
	MissingIngredientNames   []string  `json:"missingIngredientNames"`
	AverageRating            float64   `json:"averageRating"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// MatchResponse is the success envelope of a match request
type MatchResponse struct {
	Success    bool        `json:"success"`
	Data       []MatchItem `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
}

// ErrorResponse is the failure envelope shared by the API
type ErrorResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Errors  []matching.ValidationError `json:"errors,omitempty"`
}

// NewMatchResponse shapes an engine page into the response envelope
func NewMatchResponse(res *matching.PagedResult) *MatchResponse {
	items := make([]MatchItem, len(res.Items))
	for i, r := range res.Items {
		items[i] = MatchItem{
			RecipeID:                 r.RecipeID,
			Title:                    r.Title,
			TitleLanguage:            r.TitleLanguage,
			MatchPercentage:          r.MatchPercentage,
			TotalIngredients:         r.TotalIngredients,
			MatchingIngredientsCount: r.MatchingCount,
			MatchingIngredientNames:  r.MatchingIngredientNames,
			MissingIngredientNames:   r.MissingIngredientNames,
			AverageRating:            r.AverageRating,
		}
	}

	message := "No matching recipes found"
	if res.Total > 0 {
		message = "Matching recipes found"
	}

	return &MatchResponse{
		Success: true,
		Data:    items,
		Pagination: Pagination{
			Page:       res.Page,
			Limit:      res.Limit,
			Total:      res.Total,
			TotalPages: res.TotalPages,
		},
		Message: message,
	}
}
