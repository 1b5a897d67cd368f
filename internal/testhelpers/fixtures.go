package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/models"
)

// Catalog inserts catalog rows for tests
type Catalog struct {
	t  *testing.T
	db *gorm.DB
}

func NewCatalog(t *testing.T, db *gorm.DB) *Catalog {
	return &Catalog{t: t, db: db}
}

func (c *Catalog) create(value interface{}) {
	c.t.Helper()
	if err := c.db.Create(value).Error; err != nil {
		c.t.Fatalf("failed to create %T: %v", value, err)
	}
}

// Language inserts an active language
func (c *Catalog) Language(code, name string, isDefault bool) {
	c.t.Helper()
	c.create(&models.Language{Code: code, Name: name, IsActive: true, IsDefault: isDefault})
}

// Ingredient inserts an active ingredient with names keyed by language
func (c *Catalog) Ingredient(names map[string]string) uuid.UUID {
	c.t.Helper()
	ing := models.Ingredient{IsActive: true, DefaultUnit: "piece"}
	for lang, name := range names {
		ing.Translations = append(ing.Translations, models.IngredientTranslation{LanguageCode: lang, Name: name})
	}
	c.create(&ing)
	return ing.ID
}

// RecipeFixture describes a recipe to insert. The zero value is a published,
// active recipe with no ingredients.
type RecipeFixture struct {
	Titles      map[string]string
	Ingredients []uuid.UUID
	Rating      float64
	Unpublished bool
	Inactive    bool
	Deleted     bool
}

// Recipe inserts a recipe with links in the given ingredient order
func (c *Catalog) Recipe(f RecipeFixture) uuid.UUID {
	c.t.Helper()
	r := models.Recipe{
		IsPublished:   !f.Unpublished,
		IsActive:      !f.Inactive,
		AverageRating: f.Rating,
	}
	for i, id := range f.Ingredients {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{
			IngredientID: id,
			Quantity:     1,
			IsRequired:   true,
			SortOrder:    i,
		})
	}
	for lang, title := range f.Titles {
		r.Translations = append(r.Translations, models.RecipeTranslation{
			LanguageCode: lang,
			Title:        title,
			Steps:        models.StringList{"prepare", "cook"},
		})
	}
	c.create(&r)

	if f.Deleted {
		if err := c.db.Delete(&r).Error; err != nil {
			c.t.Fatalf("failed to delete recipe: %v", err)
		}
	}
	return r.ID
}
