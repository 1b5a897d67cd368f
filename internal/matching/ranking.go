package matching

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

type scoredRecipe struct {
	set      RecipeIngredientSet
	counted  []uuid.UUID
	coverage Coverage
}

// sortScored orders by percentage desc, average rating desc, then recipe ID asc.
func sortScored(recipes []scoredRecipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		a, b := recipes[i], recipes[j]
		if a.coverage.Percentage != b.coverage.Percentage {
			return a.coverage.Percentage > b.coverage.Percentage
		}
		if a.set.AverageRating != b.set.AverageRating {
			return a.set.AverageRating > b.set.AverageRating
		}
		return compareIDs(a.set.RecipeID, b.set.RecipeID) < 0
	})
}

// pageBounds returns the slice bounds of a 1-based page. Pages past the
// end are empty.
func pageBounds(total, page, limit int) (int, int) {
	if total == 0 || page < 1 || page-1 >= totalPages(total, limit) {
		return 0, 0
	}
	start := (page - 1) * limit
	return start, min(start+limit, total)
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return compareIDs(ids[i], ids[j]) < 0
	})
}

// orderedIngredients returns the distinct counted ingredient IDs ordered by
// link sort order, ties broken by ingredient ID.
func orderedIngredients(links []IngredientLink, counted []uuid.UUID) []uuid.UUID {
	include := make(map[uuid.UUID]struct{}, len(counted))
	for _, id := range counted {
		include[id] = struct{}{}
	}

	sorted := append([]IngredientLink(nil), links...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return compareIDs(sorted[i].IngredientID, sorted[j].IngredientID) < 0
	})

	ids := make([]uuid.UUID, 0, len(include))
	for _, l := range sorted {
		if _, ok := include[l.IngredientID]; !ok {
			continue
		}
		delete(include, l.IngredientID)
		ids = append(ids, l.IngredientID)
	}
	return ids
}
