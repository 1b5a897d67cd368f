package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/repository"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
)

func TestTranslationStore_Batched(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	f := seedPantryFixture(t, testhelpers.NewCatalog(t, db))
	store := repository.NewTranslationStore(db)

	names, err := store.GetTranslations(context.Background(), models.EntityIngredient, []uuid.UUID{f.tomato, f.onion, uuid.New()})
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "domates", names[f.tomato]["tr"].Name)
	assert.Equal(t, "tomato", names[f.tomato]["en"].Name)
	assert.Equal(t, "en", names[f.onion]["en"].Language)

	titles, err := store.GetTranslations(context.Background(), models.EntityRecipe, []uuid.UUID{f.omelette, f.pilaf})
	require.NoError(t, err)
	assert.Equal(t, "Omelette", titles[f.omelette]["en"].Name)
	assert.Equal(t, []string{"prepare", "cook"}, titles[f.omelette]["en"].Steps)
	assert.NotContains(t, titles, f.pilaf)
}

func TestTranslationStore_EmptyIDs(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	out, err := repository.NewTranslationStore(db).GetTranslations(context.Background(), models.EntityRecipe, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTranslationStore_UnknownEntity(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	_, err := repository.NewTranslationStore(db).GetTranslations(context.Background(), models.EntityType("menu"), []uuid.UUID{uuid.New()})
	assert.Error(t, err)
}

func TestTranslationStore_SaveNormalizesAndReplaces(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	c := testhelpers.NewCatalog(t, db)
	store := repository.NewTranslationStore(db)
	ctx := context.Background()

	egg := c.Ingredient(nil)
	require.NoError(t, store.SaveIngredientTranslation(ctx, &models.IngredientTranslation{IngredientID: egg, LanguageCode: "TR", Name: "yumurta"}))
	require.NoError(t, store.SaveIngredientTranslation(ctx, &models.IngredientTranslation{IngredientID: egg, LanguageCode: "tr", Name: "Yumurta"}))

	var count int64
	require.NoError(t, db.Model(&models.IngredientTranslation{}).Where("ingredient_id = ?", egg).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	names, err := store.GetTranslations(ctx, models.EntityIngredient, []uuid.UUID{egg})
	require.NoError(t, err)
	assert.Equal(t, "Yumurta", names[egg]["tr"].Name)

	recipe := c.Recipe(testhelpers.RecipeFixture{Ingredients: []uuid.UUID{egg}})
	require.NoError(t, store.SaveRecipeTranslation(ctx, &models.RecipeTranslation{
		RecipeID: recipe, LanguageCode: "pt-br", Title: "Omelete", Steps: models.StringList{"bater", "fritar"},
	}))
	titles, err := store.GetTranslations(ctx, models.EntityRecipe, []uuid.UUID{recipe})
	require.NoError(t, err)
	assert.Equal(t, "Omelete", titles[recipe]["pt-BR"].Name)
}

func TestTranslationStore_Categories(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	store := repository.NewTranslationStore(db)
	ctx := context.Background()

	cat := models.Category{Slug: "breakfast", IsActive: true}
	require.NoError(t, db.Create(&cat).Error)
	require.NoError(t, store.SaveCategoryTranslation(ctx, &models.CategoryTranslation{CategoryID: cat.ID, LanguageCode: "en", Name: "Breakfast"}))

	out, err := store.GetTranslations(ctx, models.EntityCategory, []uuid.UUID{cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", out[cat.ID]["en"].Name)
}
