package matching

import (
	"math"

	"github.com/google/uuid"
)

// Pantry is the set of ingredient IDs a user has available.
type Pantry map[uuid.UUID]struct{}

// NewPantry builds a pantry, collapsing duplicate IDs.
func NewPantry(ids []uuid.UUID) Pantry {
	p := make(Pantry, len(ids))
	for _, id := range ids {
		p[id] = struct{}{}
	}
	return p
}

// Has reports whether the ingredient is in the pantry.
func (p Pantry) Has(id uuid.UUID) bool {
	_, ok := p[id]
	return ok
}

// IDs returns the pantry contents in ascending byte order.
func (p Pantry) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

// Coverage describes how well a recipe's ingredient list is satisfied.
type Coverage struct {
	Total      int
	Matching   int
	Percentage float64
}

// CoveragePolicy decides which of a recipe's links count toward coverage.
type CoveragePolicy interface {
	Name() string
	Counted(links []IngredientLink) []uuid.UUID
}

type countAllIngredients struct{}

// CountAllIngredients counts every listed ingredient and ignores the
// per-link required flag.
var CountAllIngredients CoveragePolicy = countAllIngredients{}

func (countAllIngredients) Name() string { return "countAllIngredients" }

func (countAllIngredients) Counted(links []IngredientLink) []uuid.UUID {
	ids := make([]uuid.UUID, len(links))
	for i, l := range links {
		ids[i] = l.IngredientID
	}
	return ids
}

// Score computes coverage of a recipe's ingredient set by the pantry.
// Repeated IDs in recipeIngredients count once.
func Score(recipeIngredients []uuid.UUID, pantry Pantry) Coverage {
	seen := make(map[uuid.UUID]struct{}, len(recipeIngredients))
	matching := 0
	for _, id := range recipeIngredients {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if pantry.Has(id) {
			matching++
		}
	}

	c := Coverage{Total: len(seen), Matching: matching}
	if c.Total > 0 {
		c.Percentage = Round2(float64(matching) / float64(c.Total) * 100)
	}
	return c
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
