// Package editor maintains a recipe's ordered ingredient list and the
// other fields edited before a recipe is saved. Every operation takes a
// value and returns a new one together with an Outcome; nothing is
// modified in place and nothing panics on bad input.
package editor

import "github.com/hammamikhairi/kochbuch/internal/domain"

// Outcome reports whether an edit took effect, and if not, why.
type Outcome int

const (
	// Applied means the returned value differs from the input.
	Applied Outcome = iota
	// Incomplete means a required field was empty or zero.
	Incomplete
	// Duplicate means an entry with the same name already exists.
	Duplicate
	// NotFound means the target was not in the list.
	NotFound
	// OutOfBounds means a move would leave the list.
	OutOfBounds
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Incomplete:
		return "incomplete"
	case Duplicate:
		return "duplicate"
	case NotFound:
		return "not found"
	case OutOfBounds:
		return "out of bounds"
	default:
		return "unknown"
	}
}

// Ok reports whether the edit was applied.
func (o Outcome) Ok() bool { return o == Applied }

// Err maps a rejection to its sentinel error. Applied yields nil.
func (o Outcome) Err() error {
	switch o {
	case Applied:
		return nil
	case Incomplete:
		return domain.ErrIncomplete
	case Duplicate:
		return domain.ErrDuplicate
	case NotFound:
		return domain.ErrNotFound
	case OutOfBounds:
		return domain.ErrOutOfBounds
	default:
		return domain.ErrInvalidRecipe
	}
}
