package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/matching"
	"github.com/pageza/recipe-catalog/backend/internal/repository"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
)

type pantryFixture struct {
	tomato, onion, egg, pepper, rice uuid.UUID
	omelette, salad, pilaf           uuid.UUID
	draft, retired, removed          uuid.UUID
}

func seedPantryFixture(t *testing.T, c *testhelpers.Catalog) pantryFixture {
	f := pantryFixture{
		tomato: c.Ingredient(map[string]string{"en": "tomato", "tr": "domates"}),
		onion:  c.Ingredient(map[string]string{"en": "onion"}),
		egg:    c.Ingredient(map[string]string{"en": "egg"}),
		pepper: c.Ingredient(map[string]string{"en": "pepper"}),
		rice:   c.Ingredient(map[string]string{"en": "rice"}),
	}
	f.omelette = c.Recipe(testhelpers.RecipeFixture{
		Titles:      map[string]string{"en": "Omelette"},
		Ingredients: []uuid.UUID{f.egg, f.onion, f.pepper},
		Rating:      4.1,
	})
	f.salad = c.Recipe(testhelpers.RecipeFixture{
		Titles:      map[string]string{"en": "Salad"},
		Ingredients: []uuid.UUID{f.tomato, f.onion},
	})
	f.pilaf = c.Recipe(testhelpers.RecipeFixture{Ingredients: []uuid.UUID{f.rice}})
	f.draft = c.Recipe(testhelpers.RecipeFixture{Ingredients: []uuid.UUID{f.egg}, Unpublished: true})
	f.retired = c.Recipe(testhelpers.RecipeFixture{Ingredients: []uuid.UUID{f.egg}, Inactive: true})
	f.removed = c.Recipe(testhelpers.RecipeFixture{Ingredients: []uuid.UUID{f.egg}, Deleted: true})
	return f
}

func recipeIDs(sets []matching.RecipeIngredientSet) []uuid.UUID {
	out := make([]uuid.UUID, len(sets))
	for i, s := range sets {
		out[i] = s.RecipeID
	}
	return out
}

func findSet(t *testing.T, sets []matching.RecipeIngredientSet, id uuid.UUID) matching.RecipeIngredientSet {
	t.Helper()
	for _, s := range sets {
		if s.RecipeID == id {
			return s
		}
	}
	t.Fatalf("recipe %s not returned", id)
	return matching.RecipeIngredientSet{}
}

func TestRecipeStore_ExcludesIneligible(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	f := seedPantryFixture(t, testhelpers.NewCatalog(t, db))
	store := repository.NewRecipeStore(db)

	sets, err := store.ListEligibleRecipeIngredientSets(context.Background(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{f.omelette, f.salad, f.pilaf}, recipeIDs(sets))
}

func TestRecipeStore_CandidatesCarryFullLinks(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	f := seedPantryFixture(t, testhelpers.NewCatalog(t, db))
	store := repository.NewRecipeStore(db)

	sets, err := store.ListEligibleRecipeIngredientSets(context.Background(), []uuid.UUID{f.egg})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{f.omelette}, recipeIDs(sets))

	omelette := sets[0]
	assert.Equal(t, 4.1, omelette.AverageRating)
	require.Len(t, omelette.Links, 3)
	assert.Equal(t, f.egg, omelette.Links[0].IngredientID)
	assert.Equal(t, f.onion, omelette.Links[1].IngredientID)
	assert.Equal(t, f.pepper, omelette.Links[2].IngredientID)
	assert.True(t, omelette.Links[0].IsRequired)
}

func TestRecipeStore_SharedIngredient(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	f := seedPantryFixture(t, testhelpers.NewCatalog(t, db))
	store := repository.NewRecipeStore(db)

	sets, err := store.ListEligibleRecipeIngredientSets(context.Background(), []uuid.UUID{f.onion, f.rice})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{f.omelette, f.salad, f.pilaf}, recipeIDs(sets))
	assert.Len(t, findSet(t, sets, f.salad).Links, 2)
}

func TestRecipeStore_ClosedDatabase(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repository.NewRecipeStore(db).ListEligibleRecipeIngredientSets(context.Background(), nil)
	assert.Error(t, err)
}

func TestRecipeStore_AgreesWithInvertedIndex(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	f := seedPantryFixture(t, testhelpers.NewCatalog(t, db))
	store := repository.NewRecipeStore(db)

	index := repository.NewInvertedIndex()
	require.NoError(t, index.Refresh(context.Background(), store))

	for _, pantry := range [][]uuid.UUID{
		{f.egg},
		{f.tomato, f.onion},
		{f.rice, f.pepper},
		{uuid.New()},
	} {
		fromStore, err := store.ListEligibleRecipeIngredientSets(context.Background(), pantry)
		require.NoError(t, err)
		fromIndex, err := index.ListEligibleRecipeIngredientSets(context.Background(), pantry)
		require.NoError(t, err)
		assert.ElementsMatch(t, fromStore, fromIndex)
	}
}
