package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pageza/recipe-catalog/backend/internal/cache"
	"github.com/pageza/recipe-catalog/backend/internal/matching"
	"github.com/pageza/recipe-catalog/backend/internal/metrics"
	"github.com/pageza/recipe-catalog/backend/internal/translation"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// MatchService validates match requests, applies defaults and serves
// results through the cache
type MatchService struct {
	engine          MatchFinder
	languages       LanguageSource
	cache           ResultCache
	defaultLanguage string
	validate        *validator.Validate
	group           singleflight.Group
	logger          *zap.Logger
}

// Ensure MatchService implements IMatchService
var _ IMatchService = (*MatchService)(nil)

type MatchServiceOption func(*MatchService)

// WithCache enables result memoization
func WithCache(c ResultCache) MatchServiceOption {
	return func(s *MatchService) {
		s.cache = c
	}
}

func WithLogger(l *zap.Logger) MatchServiceOption {
	return func(s *MatchService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewMatchService creates a new MatchService instance. defaultLanguage is
// used when no language row is marked default.
func NewMatchService(engine MatchFinder, languages LanguageSource, defaultLanguage string, opts ...MatchServiceOption) *MatchService {
	s := &MatchService{
		engine:          engine,
		languages:       languages,
		defaultLanguage: translation.NormalizeCode(defaultLanguage),
		validate:        newValidator(),
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindMatches returns one page of recipes matching the request's pantry
func (s *MatchService) FindMatches(ctx context.Context, req *types.MatchRequest) (*types.MatchResponse, error) {
	start := time.Now()

	q, err := s.buildQuery(ctx, req)
	if err == nil {
		var res *matching.PagedResult
		res, err = s.find(ctx, q)
		if err == nil {
			metrics.RecordMatchRequest(metrics.OutcomeOK, time.Since(start))
			metrics.RecordResultCount(res.Total)
			return types.NewMatchResponse(res), nil
		}
	}

	var verrs matching.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		metrics.RecordMatchRequest(metrics.OutcomeInvalid, time.Since(start))
	case isCancellation(err):
		metrics.RecordMatchRequest(metrics.OutcomeCancelled, time.Since(start))
	default:
		metrics.RecordMatchRequest(metrics.OutcomeFailed, time.Since(start))
		s.logger.Error("recipe match failed",
			zap.Int("pantry_size", len(q.Pantry)),
			zap.String("language", q.LanguageCode),
			zap.Int("page", q.Page),
			zap.Int("limit", q.Limit),
			zap.Error(err))
	}
	return nil, err
}

// InvalidateCache retires every memoized result
func (s *MatchService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	metrics.RecordCacheEvent(metrics.CacheInvalidate)
	s.logger.Info("match cache invalidated")
	return nil
}

func (s *MatchService) buildQuery(ctx context.Context, req *types.MatchRequest) (matching.Query, error) {
	if req == nil {
		return matching.Query{}, matching.ValidationErrors{{Field: "pantryIngredientIds", Message: "pantryIngredientIds is required"}}
	}
	if err := validateStruct(s.validate, req); err != nil {
		return matching.Query{}, err
	}

	q := matching.Query{
		Pantry:                make([]uuid.UUID, 0, len(req.PantryIngredientIDs)),
		MinMatchPercentage:    matching.DefaultMinMatchPercentage,
		IncludePartialMatches: true,
		Page:                  matching.DefaultPage,
		Limit:                 matching.DefaultLimit,
	}
	var invalid matching.ValidationErrors
	for i, raw := range req.PantryIngredientIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			field := fmt.Sprintf("pantryIngredientIds[%d]", i)
			invalid = append(invalid, matching.ValidationError{Field: field, Message: field + " must be a valid UUID"})
			continue
		}
		q.Pantry = append(q.Pantry, id)
	}
	if len(invalid) > 0 {
		return matching.Query{}, invalid
	}
	if req.MinMatchPercentage != nil {
		q.MinMatchPercentage = *req.MinMatchPercentage
	}
	if req.IncludePartialMatches != nil {
		q.IncludePartialMatches = *req.IncludePartialMatches
	}
	if req.Page != nil {
		q.Page = *req.Page
	}
	if req.Limit != nil {
		q.Limit = *req.Limit
	}

	if req.LanguageCode != nil {
		if strings.TrimSpace(*req.LanguageCode) == "" {
			return matching.Query{}, matching.ValidationErrors{{Field: "languageCode", Message: "languageCode must not be empty"}}
		}
		q.LanguageCode = translation.NormalizeCode(*req.LanguageCode)
	}

	def, err := s.languages.DefaultCode(ctx)
	if err != nil {
		return q, &matching.RetrievalFailure{Op: "get default language", Err: err}
	}
	if def == "" {
		def = s.defaultLanguage
	}
	q.DefaultLanguage = def
	if q.LanguageCode == "" {
		q.LanguageCode = def
	}

	return q, nil
}

func (s *MatchService) find(ctx context.Context, q matching.Query) (*matching.PagedResult, error) {
	if s.cache == nil {
		return s.engine.FindMatches(ctx, q)
	}

	// Read the generation first: a result computed over pre-invalidation
	// data must land under the old generation
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		metrics.RecordCacheEvent(metrics.CacheError)
		s.logger.Warn("match cache unavailable, bypassing", zap.Error(err))
		return s.engine.FindMatches(ctx, q)
	}

	key := cache.ResultKey(gen, q)
	res, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheEvent(metrics.CacheError)
		s.logger.Warn("failed to read match cache", zap.Error(err))
	case ok:
		metrics.RecordCacheEvent(metrics.CacheHit)
		return res, nil
	default:
		metrics.RecordCacheEvent(metrics.CacheMiss)
	}

	return s.compute(ctx, key, q)
}

// compute runs at most one engine call per key. A waiter whose shared call
// failed only because the leader was cancelled retries once as leader.
func (s *MatchService) compute(ctx context.Context, key string, q matching.Query) (*matching.PagedResult, error) {
	for attempt := 0; ; attempt++ {
		ch := s.group.DoChan(key, func() (interface{}, error) {
			res, err := s.engine.FindMatches(ctx, q)
			if err != nil {
				return nil, err
			}
			if err := s.cache.Set(context.WithoutCancel(ctx), key, res); err != nil {
				metrics.RecordCacheEvent(metrics.CacheError)
				s.logger.Warn("failed to write match cache", zap.Error(err))
			}
			return res, nil
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r := <-ch:
			if r.Err == nil {
				if r.Shared {
					metrics.RecordCacheEvent(metrics.CacheShared)
				}
				return r.Val.(*matching.PagedResult), nil
			}
			if attempt == 0 && r.Shared && isCancellation(r.Err) && ctx.Err() == nil {
				continue
			}
			return nil, r.Err
		}
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
