// Package recipe provides recipe source implementations.
package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/kochbuch/internal/domain"
	"github.com/hammamikhairi/kochbuch/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeSource  = (*MemorySource)(nil)
	_ domain.RecipeUpdater = (*MemorySource)(nil)
)

// Option configures a MemorySource.
type Option func(*MemorySource)

// WithRecipes replaces the built-in recipes with the given ones.
func WithRecipes(recipes []*domain.Recipe) Option {
	return func(s *MemorySource) {
		s.initial = recipes
	}
}

// WithCatalogFile writes the catalog back to path after every update or
// delete. Combine with WithRecipes to load from the same file.
func WithCatalogFile(path string) Option {
	return func(s *MemorySource) {
		s.catalogPath = path
	}
}

// MemorySource holds recipes in memory. Safe for concurrent use.
type MemorySource struct {
	mu          sync.RWMutex
	recipes     map[string]*domain.Recipe
	initial     []*domain.Recipe
	catalogPath string
	log         *logger.Logger
}

// NewMemorySource creates a recipe source. Without WithRecipes it is
// preloaded with built-in recipes.
func NewMemorySource(log *logger.Logger, opts ...Option) *MemorySource {
	src := &MemorySource{
		recipes: make(map[string]*domain.Recipe),
		log:     log,
	}
	for _, opt := range opts {
		opt(src)
	}
	if src.initial == nil {
		src.initial = builtin()
	}
	for _, r := range src.initial {
		src.recipes[r.ID] = r
	}
	src.log.Debug("loaded %d recipes", len(src.recipes))
	src.initial = nil
	return src
}

// List returns summaries of all recipes sorted by name.
func (s *MemorySource) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.recipes))

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, summarize(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns a copy of the recipe with the given ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	c := r.Clone()
	return &c, nil
}

// GetBySlug returns a copy of the recipe with the given slug.
func (s *MemorySource) GetBySlug(ctx context.Context, slug string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.Slug == slug {
			c := r.Clone()
			return &c, nil
		}
	}
	s.log.Debug("recipe slug not found: %s", slug)
	return nil, domain.ErrNotFound
}

// Update replaces a recipe in the source. The recipe ID must already exist.
// When the catalog file cannot be written the source keeps the old recipe.
func (s *MemorySource) Update(ctx context.Context, recipe *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.recipes[recipe.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := recipe.Clone()
	c.Version = cur.Version + 1
	s.recipes[recipe.ID] = &c
	if err := s.persistLocked(); err != nil {
		s.recipes[recipe.ID] = cur
		return err
	}
	recipe.Version = c.Version
	s.log.Info("recipe updated: %s (v%d)", c.Name, c.Version)
	return nil
}

// Delete removes a recipe by ID. A failed catalog write keeps the recipe.
func (s *MemorySource) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.recipes, id)
	if err := s.persistLocked(); err != nil {
		s.recipes[id] = r
		return err
	}
	s.log.Info("recipe deleted: %s", r.Name)
	return nil
}

// Search returns recipes whose name, category or ingredients contain the query.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	s.log.Debug("searching recipes for: %s", q)

	var out []domain.RecipeSummary
	for _, r := range s.recipes {
		if matches(r, q) {
			out = append(out, summarize(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// All returns copies of every recipe sorted by name.
func (s *MemorySource) All(ctx context.Context) []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *MemorySource) snapshotLocked() []domain.Recipe {
	out := make([]domain.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *MemorySource) persistLocked() error {
	if s.catalogPath == "" {
		return nil
	}
	if err := SaveCatalog(s.catalogPath, s.snapshotLocked()); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	s.log.Debug("catalog written to %s", s.catalogPath)
	return nil
}

func summarize(r *domain.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:         r.ID,
		Slug:       r.Slug,
		Name:       r.Name,
		Categories: r.Categories,
		HasImage:   len(r.Images) > 0,
	}
}

func matches(r *domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	for _, c := range r.Categories {
		if strings.Contains(strings.ToLower(c), query) {
			return true
		}
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), query) {
			return true
		}
	}
	return false
}
