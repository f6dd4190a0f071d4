package recipe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/kochbuch/internal/domain"
	"github.com/hammamikhairi/kochbuch/internal/logger"
)

const sampleCatalog = `recipes:
  - id: "10"
    slug: linsensuppe
    name: Linsensuppe
    description: Alles weich kochen.
    source: Mensa
    servings: 4
    categories: [Herzhaft]
    ingredients:
      - {name: Linsen, amount: 250, unit: g}
      - {name: Karotten, amount: 2, unit: Stück}
`

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	recipes, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	want := []domain.Ingredient{
		{Name: "Linsen", Amount: 250, Unit: "g"},
		{Name: "Karotten", Amount: 2, Unit: "Stück"},
	}
	if diff := cmp.Diff(want, recipes[0].Ingredients); diff != "" {
		t.Fatalf("ingredients (-want +got):\n%s", diff)
	}
}

func TestLoadCatalogRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	dup := sampleCatalog + `  - id: "11"
    slug: linsensuppe
    name: Noch eine Linsensuppe
`
	if err := os.WriteFile(path, []byte(dup), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCatalogRoundTripThroughSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	initial, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	log := logger.New(logger.LevelOff, nil)
	src := NewMemorySource(log, WithRecipes(initial), WithCatalogFile(path))
	ctx := context.Background()

	r, err := src.GetBySlug(ctx, "linsensuppe")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	r.Ingredients = append(r.Ingredients, domain.Ingredient{Name: "Speck", Amount: 100, Unit: "g"})
	if err := src.Update(ctx, r); err != nil {
		t.Fatalf("update: %v", err)
	}

	reloaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := len(reloaded[0].Ingredients); got != 3 {
		t.Fatalf("expected 3 ingredients on disk, got %d", got)
	}
	if reloaded[0].Version != 1 {
		t.Fatalf("expected version 1 on disk, got %d", reloaded[0].Version)
	}
}

func TestEmptyCatalogStaysEmpty(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src := NewMemorySource(log, WithRecipes([]*domain.Recipe{}))
	list, _ := src.List(context.Background())
	if len(list) != 0 {
		t.Fatalf("expected no built-in recipes, got %d", len(list))
	}
}

func TestFailedCatalogWriteKeepsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "catalog.yaml")
	log := logger.New(logger.LevelOff, nil)
	src := NewMemorySource(log, WithCatalogFile(path))
	ctx := context.Background()

	r, err := src.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	r.Name = "Changed"
	if err := src.Update(ctx, r); err == nil {
		t.Fatal("expected update to fail on an unwritable catalog")
	}
	if r.Version != 0 {
		t.Fatalf("failed update must not report a new version, got %d", r.Version)
	}

	got, err := src.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get after failed update: %v", err)
	}
	if got.Name != "Pfannkuchen" || got.Version != 0 {
		t.Fatalf("expected unchanged recipe, got %q v%d", got.Name, got.Version)
	}

	if err := src.Delete(ctx, "1"); err == nil {
		t.Fatal("expected delete to fail on an unwritable catalog")
	}
	if _, err := src.Get(ctx, "1"); err != nil {
		t.Fatalf("failed delete must keep the recipe: %v", err)
	}
}
