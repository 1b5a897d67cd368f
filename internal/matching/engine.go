// Package matching scores, ranks and paginates recipes by how well a
// pantry covers their ingredient lists.
package matching

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/translation"
)

const (
	DefaultMinMatchPercentage = 30.0
	DefaultPage               = 1
	DefaultLimit              = 20
	MaxLimit                  = 100
)

// Query is a fully defaulted match request.
type Query struct {
	Pantry                []uuid.UUID
	MinMatchPercentage    float64
	IncludePartialMatches bool
	Page                  int
	Limit                 int
	LanguageCode          string
	DefaultLanguage       string
}

// Validate reports every out-of-range field.
func (q Query) Validate() error {
	var errs ValidationErrors
	if len(q.Pantry) == 0 {
		errs = append(errs, ValidationError{Field: "pantryIngredientIds", Message: "at least one ingredient is required"})
	}
	if math.IsNaN(q.MinMatchPercentage) || q.MinMatchPercentage < 0 || q.MinMatchPercentage > 100 {
		errs = append(errs, ValidationError{Field: "minMatchPercentage", Message: "must be between 0 and 100"})
	}
	if q.Page < 1 {
		errs = append(errs, ValidationError{Field: "page", Message: "must be at least 1"})
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		errs = append(errs, ValidationError{Field: "limit", Message: "must be between 1 and 100"})
	}
	if q.LanguageCode == "" {
		errs = append(errs, ValidationError{Field: "languageCode", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MatchResult is one ranked recipe with display text resolved.
type MatchResult struct {
	RecipeID                uuid.UUID `json:"recipeId"`
	Title                   string    `json:"title"`
	TitleLanguage           string    `json:"titleLanguage,omitempty"`
	MatchPercentage         float64   `json:"matchPercentage"`
	TotalIngredients        int       `json:"totalIngredients"`
	MatchingCount           int       `json:"matchingCount"`
	MatchingIngredientNames []string  `json:"matchingIngredientNames"`
	MissingIngredientNames  []string  `json:"missingIngredientNames"`
	AverageRating           float64   `json:"averageRating"`
}

// PagedResult is one page of ranked matches. Total counts every recipe
// that passed the filters.
type PagedResult struct {
	Items      []MatchResult `json:"items"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

// Engine finds matching recipes. It holds no per-request state.
type Engine struct {
	recipes      RecipeSource
	translations TranslationSource
	policy       CoveragePolicy
	logger       *zap.Logger
}

type Option func(*Engine)

// WithPolicy replaces the coverage policy.
func WithPolicy(p CoveragePolicy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(recipes RecipeSource, translations TranslationSource, opts ...Option) *Engine {
	e := &Engine{
		recipes:      recipes,
		translations: translations,
		policy:       CountAllIngredients,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindMatches returns the requested page of recipes covered by the pantry.
func (e *Engine) FindMatches(ctx context.Context, q Query) (*PagedResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	pantry := NewPantry(q.Pantry)
	sets, err := e.recipes.ListEligibleRecipeIngredientSets(ctx, pantry.IDs())
	if err != nil {
		return nil, &RetrievalFailure{Op: "list eligible recipes", Err: err}
	}

	scored := e.filter(sets, pantry, q)
	sortScored(scored)

	start, end := pageBounds(len(scored), q.Page, q.Limit)
	page := scored[start:end]

	items, err := e.present(ctx, page, pantry, q)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("recipe match computed",
		zap.Int("pantry_size", len(pantry)),
		zap.Int("candidates", len(sets)),
		zap.Int("total", len(scored)),
		zap.Int("page", q.Page),
		zap.Int("limit", q.Limit),
		zap.String("policy", e.policy.Name()))

	return &PagedResult{
		Items:      items,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      len(scored),
		TotalPages: totalPages(len(scored), q.Limit),
	}, nil
}

func (e *Engine) filter(sets []RecipeIngredientSet, pantry Pantry, q Query) []scoredRecipe {
	scored := make([]scoredRecipe, 0, len(sets))
	for _, set := range sets {
		counted := e.policy.Counted(set.Links)
		c := Score(counted, pantry)
		if c.Total == 0 || c.Matching == 0 {
			continue
		}
		if c.Percentage < q.MinMatchPercentage {
			continue
		}
		if !q.IncludePartialMatches && c.Matching != c.Total {
			continue
		}
		scored = append(scored, scoredRecipe{set: set, counted: counted, coverage: c})
	}
	return scored
}

func (e *Engine) present(ctx context.Context, page []scoredRecipe, pantry Pantry, q Query) ([]MatchResult, error) {
	items := make([]MatchResult, 0, len(page))
	if len(page) == 0 {
		return items, nil
	}

	recipeIDs := make([]uuid.UUID, len(page))
	ordered := make([][]uuid.UUID, len(page))
	seen := make(map[uuid.UUID]struct{})
	var ingredientIDs []uuid.UUID
	for i, r := range page {
		recipeIDs[i] = r.set.RecipeID
		ordered[i] = orderedIngredients(r.set.Links, r.counted)
		for _, id := range ordered[i] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ingredientIDs = append(ingredientIDs, id)
		}
	}

	var recipeText, ingredientText map[uuid.UUID]map[string]translation.Translation
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipeText, err = e.translations.GetTranslations(gctx, models.EntityRecipe, recipeIDs)
		if err != nil {
			return &RetrievalFailure{Op: "get recipe translations", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ingredientText, err = e.translations.GetTranslations(gctx, models.EntityIngredient, ingredientIDs)
		if err != nil {
			return &RetrievalFailure{Op: "get ingredient translations", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, r := range page {
		title := translation.Resolve(recipeText[r.set.RecipeID], q.LanguageCode, q.DefaultLanguage)
		item := MatchResult{
			RecipeID:                r.set.RecipeID,
			Title:                   title.Name,
			TitleLanguage:           title.Language,
			MatchPercentage:         r.coverage.Percentage,
			TotalIngredients:        r.coverage.Total,
			MatchingCount:           r.coverage.Matching,
			MatchingIngredientNames: []string{},
			MissingIngredientNames:  []string{},
			AverageRating:           r.set.AverageRating,
		}
		for _, id := range ordered[i] {
			name := translation.Resolve(ingredientText[id], q.LanguageCode, q.DefaultLanguage).Name
			if pantry.Has(id) {
				item.MatchingIngredientNames = append(item.MatchingIngredientNames, name)
			} else {
				item.MissingIngredientNames = append(item.MissingIngredientNames, name)
			}
		}
		items = append(items, item)
	}
	return items, nil
}
