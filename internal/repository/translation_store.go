package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/translation"
)

// TranslationStore reads and writes per-entity translation tables
type TranslationStore struct {
	db *gorm.DB
}

// NewTranslationStore creates a new TranslationStore instance
func NewTranslationStore(db *gorm.DB) *TranslationStore {
	return &TranslationStore{db: db}
}

// GetTranslations loads every translation of the given entities in one
// query. Entities without translations are absent from the result.
func (s *TranslationStore) GetTranslations(ctx context.Context, entity models.EntityType, ids []uuid.UUID) (map[uuid.UUID]map[string]translation.Translation, error) {
	out := make(map[uuid.UUID]map[string]translation.Translation)
	if len(ids) == 0 {
		return out, nil
	}

	add := func(id uuid.UUID, t translation.Translation) {
		t.Language = translation.NormalizeCode(t.Language)
		if out[id] == nil {
			out[id] = make(map[string]translation.Translation)
		}
		out[id][t.Language] = t
	}

	db := s.db.WithContext(ctx)
	switch entity {
	case models.EntityRecipe:
		var rows []models.RecipeTranslation
		if err := db.Where("recipe_id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get recipe translations: %w", err)
		}
		for _, r := range rows {
			add(r.RecipeID, translation.Translation{
				Language:    r.LanguageCode,
				Name:        r.Title,
				Description: r.Description,
				Steps:       r.Steps,
			})
		}
	case models.EntityIngredient:
		var rows []models.IngredientTranslation
		if err := db.Where("ingredient_id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get ingredient translations: %w", err)
		}
		for _, r := range rows {
			add(r.IngredientID, translation.Translation{Language: r.LanguageCode, Name: r.Name})
		}
	case models.EntityCategory:
		var rows []models.CategoryTranslation
		if err := db.Where("category_id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get category translations: %w", err)
		}
		for _, r := range rows {
			add(r.CategoryID, translation.Translation{
				Language:    r.LanguageCode,
				Name:        r.Name,
				Description: r.Description,
			})
		}
	default:
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}

	return out, nil
}

// SaveRecipeTranslation inserts or replaces the translation for its
// (recipe, language) pair
func (s *TranslationStore) SaveRecipeTranslation(ctx context.Context, t *models.RecipeTranslation) error {
	t.LanguageCode = translation.NormalizeCode(t.LanguageCode)
	return s.upsert(ctx, t, "recipe_id", []string{"title", "description", "steps"})
}

// SaveIngredientTranslation inserts or replaces the translation for its
// (ingredient, language) pair
func (s *TranslationStore) SaveIngredientTranslation(ctx context.Context, t *models.IngredientTranslation) error {
	t.LanguageCode = translation.NormalizeCode(t.LanguageCode)
	return s.upsert(ctx, t, "ingredient_id", []string{"name"})
}

// SaveCategoryTranslation inserts or replaces the translation for its
// (category, language) pair
func (s *TranslationStore) SaveCategoryTranslation(ctx context.Context, t *models.CategoryTranslation) error {
	t.LanguageCode = translation.NormalizeCode(t.LanguageCode)
	return s.upsert(ctx, t, "category_id", []string{"name", "description"})
}

func (s *TranslationStore) upsert(ctx context.Context, value interface{}, entityColumn string, columns []string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: entityColumn}, {Name: "language_code"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(value).Error
	if err != nil {
		return fmt.Errorf("failed to save translation: %w", err)
	}
	return nil
}
