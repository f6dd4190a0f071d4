package domain

import "time"

// Session is one user's working set in the shell: the recipes chosen for
// shopping, the shopping list derived from them, and an optional recipe
// being edited.
type Session struct {
	ID           string
	Selected     map[string]Recipe // recipe ID -> snapshot taken when selected
	ShoppingList []Ingredient      // derived from Selected, never edited directly
	Draft        *Recipe           // nil when nothing is being edited
	Status       SessionStatus
	StartedAt    time.Time
	UpdatedAt    time.Time
}

// SessionStatus tracks the lifecycle of a session.
type SessionStatus int

const (
	SessionActive SessionStatus = iota
	SessionClosed
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Editing reports whether the session holds an unsubmitted draft.
func (s *Session) Editing() bool {
	return s.Draft != nil
}
