package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// EntityType identifies a translatable entity.
type EntityType string

const (
	EntityRecipe     EntityType = "recipe"
	EntityIngredient EntityType = "ingredient"
	EntityCategory   EntityType = "category"
)

// StringList is an ordered list of strings stored as a JSON array
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// RecipeTranslation holds the language-specific text of a recipe.
type RecipeTranslation struct {
	ID           uint       `gorm:"primarykey" json:"-"`
	RecipeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_translation_lang" json:"recipe_id"`
	LanguageCode string     `gorm:"size:16;not null;uniqueIndex:idx_recipe_translation_lang" json:"language_code"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Steps        StringList `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
}

func (RecipeTranslation) TableName() string {
	return "recipe_translations"
}

// IngredientTranslation holds the language-specific name of an ingredient.
type IngredientTranslation struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ingredient_translation_lang" json:"ingredient_id"`
	LanguageCode string    `gorm:"size:16;not null;uniqueIndex:idx_ingredient_translation_lang" json:"language_code"`
	Name         string    `gorm:"size:255;not null" json:"name"`
}

func (IngredientTranslation) TableName() string {
	return "ingredient_translations"
}

// CategoryTranslation holds the language-specific name of a category.
type CategoryTranslation struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_category_translation_lang" json:"category_id"`
	LanguageCode string    `gorm:"size:16;not null;uniqueIndex:idx_category_translation_lang" json:"language_code"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
}

func (CategoryTranslation) TableName() string {
	return "category_translations"
}
