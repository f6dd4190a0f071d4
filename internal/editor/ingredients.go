package editor

import (
	"math"
	"strings"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// Direction moves an ingredient one place towards the start or the end.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Ingredients is one recipe's ordered ingredient list. Names are unique
// within the list.
type Ingredients []domain.Ingredient

// Index returns the position of the entry equal to target, or -1.
func (l Ingredients) Index(target domain.Ingredient) int {
	for i, ing := range l {
		if ing == target {
			return i
		}
	}
	return -1
}

// Lookup returns the entry with the given name.
func (l Ingredients) Lookup(name string) (domain.Ingredient, bool) {
	for _, ing := range l {
		if ing.Name == name {
			return ing, true
		}
	}
	return domain.Ingredient{}, false
}

// Add appends c with surrounding blanks trimmed from name and unit. It is
// rejected when the name, unit or amount is missing,
// the amount is not a positive number, or the name is already taken.
func (l Ingredients) Add(c domain.Ingredient) (Ingredients, Outcome) {
	c.Name = strings.TrimSpace(c.Name)
	c.Unit = strings.TrimSpace(c.Unit)
	if c.Name == "" || c.Unit == "" {
		return l, Incomplete
	}
	if !(c.Amount > 0) || math.IsInf(c.Amount, 0) {
		return l, Incomplete
	}
	if _, taken := l.Lookup(c.Name); taken {
		return l, Duplicate
	}

	out := make(Ingredients, len(l), len(l)+1)
	copy(out, l)
	return append(out, c), Applied
}

// Remove drops the first entry equal to target.
func (l Ingredients) Remove(target domain.Ingredient) (Ingredients, Outcome) {
	i := l.Index(target)
	if i < 0 {
		return l, NotFound
	}
	out := make(Ingredients, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), Applied
}

// Move swaps target with its neighbour in direction dir. Moves past
// either end are rejected rather than wrapped.
func (l Ingredients) Move(target domain.Ingredient, dir Direction) (Ingredients, Outcome) {
	if dir != Up && dir != Down {
		return l, OutOfBounds
	}
	i := l.Index(target)
	if i < 0 {
		return l, NotFound
	}
	j := i + int(dir)
	if j < 0 || j >= len(l) {
		return l, OutOfBounds
	}

	out := make(Ingredients, len(l))
	copy(out, l)
	out[i], out[j] = out[j], out[i]
	return out, Applied
}
