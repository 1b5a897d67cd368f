package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/translation"
)

// ErrLanguageNotFound is returned when a language code has no row
var ErrLanguageNotFound = errors.New("language not found")

// LanguageStore reads catalog languages
type LanguageStore struct {
	db *gorm.DB
}

// NewLanguageStore creates a new LanguageStore instance
func NewLanguageStore(db *gorm.DB) *LanguageStore {
	return &LanguageStore{db: db}
}

// DefaultCode returns the code of the default language, or "" when no
// language is marked default
func (s *LanguageStore) DefaultCode(ctx context.Context) (string, error) {
	var lang models.Language
	err := s.db.WithContext(ctx).Where("is_default = ?", true).Take(&lang).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get default language: %w", err)
	}
	return translation.NormalizeCode(lang.Code), nil
}

// SetDefault makes code the only default language
func (s *LanguageStore) SetDefault(ctx context.Context, code string) error {
	code = translation.NormalizeCode(code)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lang models.Language
		if err := tx.Where("code = ?", code).Take(&lang).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrLanguageNotFound, code)
			}
			return fmt.Errorf("failed to get language: %w", err)
		}
		if err := tx.Model(&models.Language{}).Where("is_default = ? AND code <> ?", true, code).
			Update("is_default", false).Error; err != nil {
			return fmt.Errorf("failed to clear default language: %w", err)
		}
		if err := tx.Model(&lang).Update("is_default", true).Error; err != nil {
			return fmt.Errorf("failed to set default language: %w", err)
		}
		return nil
	})
}

// ListActive returns active languages ordered by code
func (s *LanguageStore) ListActive(ctx context.Context) ([]models.Language, error) {
	var langs []models.Language
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&langs).Error; err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return langs, nil
}
