// Package watch runs a background check over active sessions and nudges
// the user about drafts left unsaved and selected recipes that changed
// in the catalog after they were picked.
package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/kochbuch/internal/domain"
	"github.com/hammamikhairi/kochbuch/internal/logger"
	"github.com/hammamikhairi/kochbuch/internal/shopping"
)

// Option configures the watcher.
type Option func(*Watcher)

// WithInterval sets how often the watcher checks session state.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithDraftReminder sets how long a draft may sit untouched before the
// user is reminded to save it.
func WithDraftReminder(d time.Duration) Option {
	return func(w *Watcher) {
		w.draftIdle = d
	}
}

// Watcher inspects active sessions on a fixed cycle (default: 30 seconds).
type Watcher struct {
	store     domain.SessionStore
	recipes   domain.RecipeSource
	notifier  domain.Notifier
	log       *logger.Logger
	interval  time.Duration
	draftIdle time.Duration
	now       func() time.Time

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	reminded map[string]time.Time      // session ID -> UpdatedAt already reminded about
	stale    map[string]map[string]int // session ID -> recipe ID -> source version reported
}

// New creates a watcher with the given dependencies.
func New(store domain.SessionStore, recipes domain.RecipeSource, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		store:     store,
		recipes:   recipes,
		notifier:  notifier,
		log:       log,
		interval:  30 * time.Second,
		draftIdle: 10 * time.Minute,
		now:       time.Now,
		reminded:  make(map[string]time.Time),
		stale:     make(map[string]map[string]int),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the background loop. Non-blocking.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		w.log.Warn("watcher already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	go w.run(childCtx)

	w.log.Info("watcher started (interval=%s, draft reminder=%s)", w.interval, w.draftIdle)
}

// Stop shuts the loop down.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.cancel()
	w.running = false
	w.log.Info("watcher stopped")
}

func (w *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check runs one cycle across all active sessions.
func (w *Watcher) check(ctx context.Context) {
	sessions, err := w.store.ListActive(ctx)
	if err != nil {
		w.log.Error("watcher: listing active sessions: %v", err)
		return
	}
	for _, session := range sessions {
		w.inspect(ctx, session)
	}
}

func (w *Watcher) inspect(ctx context.Context, session *domain.Session) {
	w.log.Debug("watcher: session=%s selected=%d lines=%d editing=%v",
		session.ID[:min(8, len(session.ID))], len(session.Selected), len(session.ShoppingList), session.Editing())

	if msg := w.draftMessage(session); msg != "" {
		w.notify(ctx, msg)
	}
	for _, msg := range w.staleMessages(ctx, session) {
		w.notify(ctx, msg)
	}
}

// draftMessage reminds once per idle period about an unsaved draft.
func (w *Watcher) draftMessage(session *domain.Session) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !session.Editing() {
		delete(w.reminded, session.ID)
		return ""
	}
	idle := w.now().Sub(session.UpdatedAt)
	if idle < w.draftIdle {
		return ""
	}
	if last, ok := w.reminded[session.ID]; ok && last.Equal(session.UpdatedAt) {
		return ""
	}
	w.reminded[session.ID] = session.UpdatedAt
	return fmt.Sprintf("Der Entwurf von %s ist seit %s nicht gespeichert. 'save' speichert, 'cancel' verwirft.",
		session.Draft.Name, idle.Round(time.Minute))
}

// staleMessages reports selected recipes whose catalog version moved on
// or that were removed. Each change is reported once.
func (w *Watcher) staleMessages(ctx context.Context, session *domain.Session) []string {
	var out []string
	for _, picked := range shopping.Selection(session.Selected).Recipes() {
		version := -1
		current, err := w.recipes.Get(ctx, picked.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			w.log.Error("watcher: loading recipe %s: %v", picked.ID, err)
			continue
		default:
			version = current.Version
		}
		if version == picked.Version || w.reported(session.ID, picked.ID, version) {
			continue
		}
		if version < 0 {
			out = append(out, fmt.Sprintf("%s gibt es nicht mehr im Katalog, steht aber noch auf der Einkaufsliste.", picked.Name))
		} else {
			out = append(out, fmt.Sprintf("%s wurde inzwischen geändert. Zweimal auswählen übernimmt die neue Fassung.", picked.Name))
		}
	}
	return out
}

// reported records version for the recipe and reports whether it was
// already recorded.
func (w *Watcher) reported(sessionID, recipeID string, version int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	seen, ok := w.stale[sessionID]
	if !ok {
		seen = make(map[string]int)
		w.stale[sessionID] = seen
	}
	if v, ok := seen[recipeID]; ok && v == version {
		return true
	}
	seen[recipeID] = version
	return false
}

func (w *Watcher) notify(ctx context.Context, msg string) {
	if err := w.notifier.Notify(ctx, msg); err != nil {
		w.log.Error("watcher: notify: %v", err)
	}
}
