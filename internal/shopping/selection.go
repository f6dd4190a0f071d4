// Package shopping builds shopping lists from a set of chosen recipes.
package shopping

import (
	"sort"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// Selection is the set of recipes chosen for the shopping list, keyed by
// recipe ID. A Selection is treated as immutable: every operation returns
// a new value and leaves the receiver untouched.
type Selection map[string]domain.Recipe

// Toggle removes r if it is selected and adds it otherwise.
func (s Selection) Toggle(r domain.Recipe) Selection {
	out := make(Selection, len(s)+1)
	for id, rec := range s {
		out[id] = rec
	}
	if _, ok := s[r.ID]; ok {
		delete(out, r.ID)
	} else {
		out[r.ID] = r
	}
	return out
}

// Contains reports whether a recipe with r's ID is selected.
func (s Selection) Contains(r domain.Recipe) bool {
	_, ok := s[r.ID]
	return ok
}

// Refresh swaps in a newer snapshot of an already-selected recipe.
// Recipes that are not selected are ignored.
func (s Selection) Refresh(r domain.Recipe) Selection {
	if !s.Contains(r) {
		return s
	}
	out := make(Selection, len(s))
	for id, rec := range s {
		out[id] = rec
	}
	out[r.ID] = r
	return out
}

// Recipes returns the selected recipes ordered by ID.
func (s Selection) Recipes() []domain.Recipe {
	out := make([]domain.Recipe, 0, len(s))
	for _, r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of selected recipes.
func (s Selection) Len() int { return len(s) }
