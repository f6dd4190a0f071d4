package domain

import "context"

// RecipeSource provides recipes. Implementations can be in-memory,
// file-based, or backed by a remote store.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	GetBySlug(ctx context.Context, slug string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// RecipeUpdater is implemented by sources that accept edited recipes back.
type RecipeUpdater interface {
	Update(ctx context.Context, recipe *Recipe) error
	Delete(ctx context.Context, id string) error
}

// SessionStore persists shell sessions.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*Session, error)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string, session *Session) (*Intent, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
