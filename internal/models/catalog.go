package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Language is a catalog language. Exactly one active language is the default.
type Language struct {
	Code      string    `gorm:"primaryKey;size:16" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Language) TableName() string {
	return "languages"
}

// Ingredient is a translatable ingredient.
type Ingredient struct {
	ID           uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
	DefaultUnit  string                  `gorm:"size:32" json:"default_unit"`
	IsActive     bool                    `gorm:"not null" json:"is_active"`
	Translations []IngredientTranslation `gorm:"foreignKey:IngredientID" json:"translations,omitempty"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// BeforeCreate assigns an ID when none was provided
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Category groups recipes.
type Category struct {
	ID           uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	Slug         string                `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	IsActive     bool                  `gorm:"not null" json:"is_active"`
	Translations []CategoryTranslation `gorm:"foreignKey:CategoryID" json:"translations,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns an ID when none was provided
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Recipe is a catalog recipe. Only published, active, non-deleted recipes
// take part in matching.
type Recipe struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	DeletedAt          gorm.DeletedAt      `gorm:"index" json:"-"`
	CategoryID         *uuid.UUID          `gorm:"type:uuid;index" json:"category_id,omitempty"`
	CookingTimeMinutes int                 `json:"cooking_time_minutes"`
	DifficultyLevel    string              `gorm:"size:20" json:"difficulty_level"`
	IsPremium          bool                `gorm:"not null;default:false" json:"is_premium"`
	IsPublished        bool                `gorm:"not null;default:false;index" json:"is_published"`
	IsActive           bool                `gorm:"not null" json:"is_active"`
	AverageRating      float64             `gorm:"not null;default:0" json:"average_rating"`
	RatingCount        int                 `gorm:"not null;default:0" json:"rating_count"`
	Ingredients        []RecipeIngredient  `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Translations       []RecipeTranslation `gorm:"foreignKey:RecipeID" json:"translations,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an ID when none was provided
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient links a recipe to one of its ingredients.
type RecipeIngredient struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `gorm:"size:32" json:"unit"`
	IsRequired   bool      `gorm:"not null" json:"is_required"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
