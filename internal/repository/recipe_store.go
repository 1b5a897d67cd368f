// Package repository holds the gorm-backed stores matching reads from.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/matching"
	"github.com/pageza/recipe-catalog/backend/internal/models"
)

// RecipeStore reads eligible recipes and their ingredient links
type RecipeStore struct {
	db *gorm.DB
}

// NewRecipeStore creates a new RecipeStore instance
func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

type linkRow struct {
	RecipeID      uuid.UUID
	AverageRating float64
	IngredientID  uuid.UUID
	SortOrder     int
	IsRequired    bool
}

// eligible scopes a query on recipes to published, active, non-deleted rows
func eligible(db *gorm.DB) *gorm.DB {
	return db.Where("recipes.is_published = ? AND recipes.is_active = ? AND recipes.deleted_at IS NULL", true, true)
}

// ListEligibleRecipeIngredientSets returns every eligible recipe sharing at
// least one ingredient with pantry, each with its complete link list. A nil
// pantry returns every eligible recipe. All rows come from one query.
func (s *RecipeStore) ListEligibleRecipeIngredientSets(ctx context.Context, pantry []uuid.UUID) ([]matching.RecipeIngredientSet, error) {
	query := s.db.WithContext(ctx).
		Table(models.Recipe{}.TableName()).
		Select("recipes.id AS recipe_id, recipes.average_rating, ri.ingredient_id, ri.sort_order, ri.is_required").
		Joins("JOIN recipe_ingredients ri ON ri.recipe_id = recipes.id").
		Scopes(eligible)

	if pantry != nil {
		candidates := s.db.Table(models.RecipeIngredient{}.TableName()).
			Select("recipe_id").
			Where("ingredient_id IN ?", pantry)
		query = query.Where("recipes.id IN (?)", candidates)
	}

	var rows []linkRow
	if err := query.Order("recipes.id, ri.sort_order, ri.id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list eligible recipes: %w", err)
	}

	return groupLinks(rows), nil
}

// groupLinks folds rows ordered by recipe into one set per recipe
func groupLinks(rows []linkRow) []matching.RecipeIngredientSet {
	var sets []matching.RecipeIngredientSet
	for _, row := range rows {
		if n := len(sets); n == 0 || sets[n-1].RecipeID != row.RecipeID {
			sets = append(sets, matching.RecipeIngredientSet{
				RecipeID:      row.RecipeID,
				AverageRating: row.AverageRating,
			})
		}
		last := &sets[len(sets)-1]
		last.Links = append(last.Links, matching.IngredientLink{
			IngredientID: row.IngredientID,
			SortOrder:    row.SortOrder,
			IsRequired:   row.IsRequired,
		})
	}
	return sets
}

// Snapshot loads every eligible recipe with its links, for building an
// InvertedIndex
func (s *RecipeStore) Snapshot(ctx context.Context) ([]matching.RecipeIngredientSet, error) {
	return s.ListEligibleRecipeIngredientSets(ctx, nil)
}
