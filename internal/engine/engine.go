// Package engine coordinates shell sessions: choosing recipes for the
// shopping list, keeping that list current, and editing recipes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/hammamikhairi/kochbuch/internal/domain"
	"github.com/hammamikhairi/kochbuch/internal/editor"
	"github.com/hammamikhairi/kochbuch/internal/logger"
	"github.com/hammamikhairi/kochbuch/internal/recipe"
	"github.com/hammamikhairi/kochbuch/internal/shopping"
)

// Option configures the engine.
type Option func(*Engine)

// WithCollation sets the language used to sort shopping lists.
func WithCollation(lang language.Tag) Option {
	return func(e *Engine) {
		e.aggregator = shopping.NewAggregator(lang)
	}
}

// Engine manages sessions. It depends only on interfaces and is fully
// testable with in-memory implementations.
type Engine struct {
	recipes    domain.RecipeSource
	store      domain.SessionStore
	aggregator *shopping.Aggregator
	log        *logger.Logger
	now        func() time.Time
}

// New creates an engine with the given dependencies and options.
func New(recipes domain.RecipeSource, store domain.SessionStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		recipes:    recipes,
		store:      store,
		aggregator: shopping.NewAggregator(language.German),
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ── Catalog ──────────────────────────────────────────────────────

// ListRecipes returns all recipes, or only those in category when it is
// not empty.
func (e *Engine) ListRecipes(ctx context.Context, category string) ([]domain.RecipeSummary, error) {
	all, err := e.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipe.FilterByCategory(all, category), nil
}

// Categories returns every category in use.
func (e *Engine) Categories(ctx context.Context) ([]string, error) {
	all, err := e.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipe.Categories(all), nil
}

// GetRecipe returns a full recipe by ID.
func (e *Engine) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	return e.recipes.Get(ctx, id)
}

// FindRecipe resolves a user reference: a slug, a 1-based position in the
// name-sorted recipe list, an ID, or a search term matching one recipe.
func (e *Engine) FindRecipe(ctx context.Context, ref string) (*domain.Recipe, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrNotFound
	}
	if r, err := e.recipes.GetBySlug(ctx, ref); err == nil {
		return r, nil
	}

	if idx, err := strconv.Atoi(ref); err == nil {
		all, err := e.recipes.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing recipes: %w", err)
		}
		if idx >= 1 && idx <= len(all) {
			return e.recipes.Get(ctx, all[idx-1].ID)
		}
	}
	if r, err := e.recipes.Get(ctx, ref); err == nil {
		return r, nil
	}

	matches, err := e.recipes.Search(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("searching recipes: %w", err)
	}
	if len(matches) == 1 {
		return e.recipes.Get(ctx, matches[0].ID)
	}
	return nil, fmt.Errorf("recipe %q: %w", ref, domain.ErrNotFound)
}

// ── Sessions ─────────────────────────────────────────────────────

// StartSession opens a session with nothing selected.
func (e *Engine) StartSession(ctx context.Context) (*domain.Session, error) {
	now := e.now()
	session := &domain.Session{
		ID:           generateID(),
		Selected:     map[string]domain.Recipe{},
		ShoppingList: []domain.Ingredient{},
		Status:       domain.SessionActive,
		StartedAt:    now,
		UpdatedAt:    now,
	}
	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	e.log.Info("started session %s", session.ID)
	return session, nil
}

// Status returns the current session snapshot.
func (e *Engine) Status(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.load(ctx, sessionID)
}

// EndSession closes the session and drops any unsaved draft.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Draft != nil {
		e.log.Warn("discarding unsaved changes to %q", session.Draft.Name)
	}
	session.Draft = nil
	session.Status = domain.SessionClosed
	return e.save(ctx, session)
}

// ── Shopping list ────────────────────────────────────────────────

// ToggleRecipe selects the recipe if it is not selected and deselects it
// otherwise, then rebuilds the shopping list. It reports whether the
// recipe is selected afterwards.
func (e *Engine) ToggleRecipe(ctx context.Context, sessionID, recipeID string) (bool, error) {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	sel := shopping.Selection(session.Selected)

	// Deselecting works from the snapshot, so a recipe deleted from the
	// catalog can still be taken off the list.
	r, selected := session.Selected[recipeID]
	if !selected {
		got, err := e.recipes.Get(ctx, recipeID)
		if err != nil {
			return false, fmt.Errorf("getting recipe: %w", err)
		}
		r = *got
	}

	sel = sel.Toggle(r)
	e.setSelection(session, sel)
	if err := e.save(ctx, session); err != nil {
		return false, err
	}

	selected = sel.Contains(r)
	e.log.Debug("toggled %q (selected=%v, %d recipes, %d lines)", r.Name, selected, sel.Len(), len(session.ShoppingList))
	return selected, nil
}

// IsSelected reports whether a recipe is on the session's shopping list.
func (e *Engine) IsSelected(ctx context.Context, sessionID, recipeID string) (bool, error) {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return shopping.Selection(session.Selected).Contains(domain.Recipe{ID: recipeID}), nil
}

// SelectedRecipes returns the session's selected recipes ordered by ID.
func (e *Engine) SelectedRecipes(ctx context.Context, sessionID string) ([]domain.Recipe, error) {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return shopping.Selection(session.Selected).Recipes(), nil
}

// ShoppingList returns the session's current shopping list.
func (e *Engine) ShoppingList(ctx context.Context, sessionID string) ([]domain.Ingredient, error) {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.ShoppingList, nil
}

// Aggregate builds a shopping list for recipes outside any session.
func (e *Engine) Aggregate(recipes []domain.Recipe) []domain.Ingredient {
	return e.aggregator.Aggregate(recipes)
}

func (e *Engine) setSelection(session *domain.Session, sel shopping.Selection) {
	session.Selected = sel
	session.ShoppingList = e.aggregator.Aggregate(sel.Recipes())
}

// ── Editing ──────────────────────────────────────────────────────

// BeginEdit starts editing a copy of the recipe. An existing draft is
// replaced.
func (e *Engine) BeginEdit(ctx context.Context, sessionID, recipeID string) (*domain.Recipe, error) {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	r, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	if session.Draft != nil && session.Draft.ID != r.ID {
		e.log.Warn("discarding unsaved changes to %q", session.Draft.Name)
	}

	draft := r.Clone()
	session.Draft = &draft
	if err := e.save(ctx, session); err != nil {
		return nil, err
	}
	e.log.Info("editing %q", draft.Name)
	out := draft.Clone()
	return &out, nil
}

// Draft returns a copy of the recipe being edited.
func (e *Engine) Draft(ctx context.Context, sessionID string) (*domain.Recipe, error) {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Draft == nil {
		return nil, domain.ErrNoDraft
	}
	out := session.Draft.Clone()
	return &out, nil
}

// Edit applies ops to the draft in order. If any op is rejected the draft
// is left as it was and the outcome says why.
func (e *Engine) Edit(ctx context.Context, sessionID string, ops ...editor.Op) (editor.Outcome, error) {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return editor.NotFound, err
	}
	if session.Draft == nil {
		return editor.NotFound, domain.ErrNoDraft
	}

	next, outcome := editor.Apply(*session.Draft, ops...)
	if !outcome.Ok() {
		e.log.Debug("edit of %q rejected: %s", session.Draft.Name, outcome)
		return outcome, nil
	}
	session.Draft = &next
	if err := e.save(ctx, session); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// SubmitEdit validates the draft and hands it to the recipe store. If the
// recipe is selected, the shopping list is rebuilt from the saved version.
func (e *Engine) SubmitEdit(ctx context.Context, sessionID string) (*domain.Recipe, error) {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Draft == nil {
		return nil, domain.ErrNoDraft
	}
	if err := editor.Validate(*session.Draft); err != nil {
		return nil, err
	}
	updater, ok := e.recipes.(domain.RecipeUpdater)
	if !ok {
		return nil, fmt.Errorf("recipe source does not support updates")
	}

	saved := session.Draft.Clone()
	if err := updater.Update(ctx, &saved); err != nil {
		return nil, fmt.Errorf("saving recipe: %w", err)
	}

	session.Draft = nil
	e.setSelection(session, shopping.Selection(session.Selected).Refresh(saved))
	if err := e.save(ctx, session); err != nil {
		return nil, err
	}
	e.log.Info("saved %q (v%d)", saved.Name, saved.Version)
	return &saved, nil
}

// CancelEdit drops the draft without saving.
func (e *Engine) CancelEdit(ctx context.Context, sessionID string) error {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Draft == nil {
		return domain.ErrNoDraft
	}
	session.Draft = nil
	return e.save(ctx, session)
}

// DeleteRecipe removes a recipe from the store and from the session's
// selection. A draft of the same recipe is dropped.
func (e *Engine) DeleteRecipe(ctx context.Context, sessionID, recipeID string) error {
	session, err := e.load(ctx, sessionID)
	if err != nil {
		return err
	}
	updater, ok := e.recipes.(domain.RecipeUpdater)
	if !ok {
		return fmt.Errorf("recipe source does not support deletes")
	}
	if err := updater.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}

	sel := shopping.Selection(session.Selected)
	if gone := (domain.Recipe{ID: recipeID}); sel.Contains(gone) {
		sel = sel.Toggle(gone)
	}
	e.setSelection(session, sel)
	if session.Draft != nil && session.Draft.ID == recipeID {
		session.Draft = nil
	}
	return e.save(ctx, session)
}

// ── Helpers ──────────────────────────────────────────────────────

func (e *Engine) load(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotActive)
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session.Status != domain.SessionActive {
		return nil, domain.ErrSessionNotActive
	}
	return session, nil
}

func (e *Engine) save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = e.now()
	if err := e.store.Save(ctx, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
