package matching

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/translation"
)

// IngredientLink is the part of a recipe ingredient link the engine reads.
type IngredientLink struct {
	IngredientID uuid.UUID
	SortOrder    int
	IsRequired   bool
}

// RecipeIngredientSet is an eligible recipe with its full ingredient list.
type RecipeIngredientSet struct {
	RecipeID      uuid.UUID
	AverageRating float64
	Links         []IngredientLink
}

// RecipeSource lists eligible recipes with their ingredient links from a
// single consistent snapshot. The pantry is a candidate hint: a source may
// leave out recipes sharing no ingredient with it, but every returned
// recipe must carry all of its links. A nil pantry asks for every
// eligible recipe.
type RecipeSource interface {
	ListEligibleRecipeIngredientSets(ctx context.Context, pantry []uuid.UUID) ([]RecipeIngredientSet, error)
}

// TranslationSource returns translations keyed by entity ID then language
// code. Entities without translations may be absent from the result.
type TranslationSource interface {
	GetTranslations(ctx context.Context, entity models.EntityType, ids []uuid.UUID) (map[uuid.UUID]map[string]translation.Translation, error)
}
