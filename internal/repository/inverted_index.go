package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/matching"
)

// Invalidator drops memoized match results computed from older contents
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Snapshotter loads every eligible recipe with its links
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]matching.RecipeIngredientSet, error)
}

// InvertedIndex is an in-memory RecipeSource mapping each ingredient to
// the recipes that use it. It is rebuilt wholesale from a snapshot, so
// readers always see one consistent catalog.
type InvertedIndex struct {
	mu           sync.RWMutex
	recipes      map[uuid.UUID]matching.RecipeIngredientSet
	order        []uuid.UUID
	byIngredient map[uuid.UUID][]uuid.UUID
}

func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		recipes:      map[uuid.UUID]matching.RecipeIngredientSet{},
		byIngredient: map[uuid.UUID][]uuid.UUID{},
	}
}

// Replace swaps the index contents for sets
func (ix *InvertedIndex) Replace(sets []matching.RecipeIngredientSet) {
	recipes := make(map[uuid.UUID]matching.RecipeIngredientSet, len(sets))
	byIngredient := make(map[uuid.UUID][]uuid.UUID)
	order := make([]uuid.UUID, 0, len(sets))

	for _, set := range sets {
		set.Links = append([]matching.IngredientLink(nil), set.Links...)
		if _, dup := recipes[set.RecipeID]; !dup {
			order = append(order, set.RecipeID)
		}
		recipes[set.RecipeID] = set
	}
	for _, id := range order {
		seen := make(map[uuid.UUID]struct{})
		for _, l := range recipes[id].Links {
			if _, ok := seen[l.IngredientID]; ok {
				continue
			}
			seen[l.IngredientID] = struct{}{}
			byIngredient[l.IngredientID] = append(byIngredient[l.IngredientID], id)
		}
	}

	ix.mu.Lock()
	ix.recipes, ix.byIngredient, ix.order = recipes, byIngredient, order
	ix.mu.Unlock()
}

// Len returns the number of indexed recipes
func (ix *InvertedIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.recipes)
}

// ListEligibleRecipeIngredientSets returns the indexed recipes sharing at
// least one ingredient with pantry, in snapshot order. A nil pantry
// returns every recipe.
func (ix *InvertedIndex) ListEligibleRecipeIngredientSets(ctx context.Context, pantry []uuid.UUID) ([]matching.RecipeIngredientSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ids := ix.order
	if pantry != nil {
		hit := make(map[uuid.UUID]struct{})
		for _, ing := range pantry {
			for _, id := range ix.byIngredient[ing] {
				hit[id] = struct{}{}
			}
		}
		ids = make([]uuid.UUID, 0, len(hit))
		for _, id := range ix.order {
			if _, ok := hit[id]; ok {
				ids = append(ids, id)
			}
		}
	}

	sets := make([]matching.RecipeIngredientSet, len(ids))
	for i, id := range ids {
		set := ix.recipes[id]
		set.Links = append([]matching.IngredientLink(nil), set.Links...)
		sets[i] = set
	}
	return sets, nil
}

// Refresh rebuilds the index from src
func (ix *InvertedIndex) Refresh(ctx context.Context, src Snapshotter) error {
	sets, err := src.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipe snapshot: %w", err)
	}
	ix.Replace(sets)
	return nil
}

// IndexRefresher keeps an InvertedIndex current. It rebuilds on a fixed
// interval and whenever a write signals through Invalidate, then forwards
// the invalidation to next so cached results never outlive the index.
type IndexRefresher struct {
	index   *InvertedIndex
	src     Snapshotter
	next    Invalidator
	log     *zap.Logger
	pending chan struct{}
}

// NewIndexRefresher returns a refresher for index. next may be nil.
func NewIndexRefresher(index *InvertedIndex, src Snapshotter, next Invalidator, log *zap.Logger) *IndexRefresher {
	return &IndexRefresher{
		index:   index,
		src:     src,
		next:    next,
		log:     log,
		pending: make(chan struct{}, 1),
	}
}

// Invalidate schedules a rebuild and returns immediately. Signals arriving
// while one is already pending collapse into it; the rebuild starts after
// the last of them.
func (r *IndexRefresher) Invalidate(context.Context) error {
	select {
	case r.pending <- struct{}{}:
	default:
	}
	return nil
}

// Run rebuilds the index every interval and on each pending signal until
// ctx is done. A failed rebuild keeps the previous contents and does not
// invalidate next.
func (r *IndexRefresher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-r.pending:
		}
		r.refresh(ctx)
	}
}

func (r *IndexRefresher) refresh(ctx context.Context) {
	if err := r.index.Refresh(ctx, r.src); err != nil {
		r.log.Warn("recipe index refresh failed", zap.Error(err))
		return
	}
	r.log.Debug("recipe index refreshed", zap.Int("recipes", r.index.Len()))
	if r.next == nil {
		return
	}
	if err := r.next.Invalidate(ctx); err != nil {
		r.log.Warn("failed to invalidate match cache after index refresh", zap.Error(err))
	}
}
