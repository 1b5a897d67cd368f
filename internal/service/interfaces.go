package service

import (
	"context"

	"github.com/pageza/recipe-catalog/backend/internal/matching"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// IMatchService defines the interface for recipe matching operations
type IMatchService interface {
	FindMatches(ctx context.Context, req *types.MatchRequest) (*types.MatchResponse, error)
	InvalidateCache(ctx context.Context) error
}

// MatchFinder computes one page of matches
type MatchFinder interface {
	FindMatches(ctx context.Context, q matching.Query) (*matching.PagedResult, error)
}

// LanguageSource reports the system default language. An empty code means
// no language is marked default.
type LanguageSource interface {
	DefaultCode(ctx context.Context) (string, error)
}

// ResultCache memoizes match pages under generation-scoped keys
type ResultCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, key string) (*matching.PagedResult, bool, error)
	Set(ctx context.Context, key string, res *matching.PagedResult) error
	Invalidate(ctx context.Context) error
}
