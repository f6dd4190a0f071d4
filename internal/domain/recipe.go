// Package domain defines the core types and interfaces for the cookbook.
// All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// Recipe represents a complete recipe record as held by the recipe store.
type Recipe struct {
	ID          string       `yaml:"id"`
	Slug        string       `yaml:"slug"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Source      string       `yaml:"source"`
	Servings    int          `yaml:"servings"`
	Categories  []string     `yaml:"categories"`
	Ingredients []Ingredient `yaml:"ingredients"`
	Images      []Image      `yaml:"images,omitempty"`
	Version     int          `yaml:"version,omitempty"`
}

// Clone returns a deep copy so callers can edit it without touching the original.
func (r Recipe) Clone() Recipe {
	out := r
	out.Categories = append([]string(nil), r.Categories...)
	out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	out.Images = append([]Image(nil), r.Images...)
	return out
}

// HasCategory reports whether the recipe is tagged with the given category.
func (r Recipe) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID         string
	Slug       string
	Name       string
	Categories []string
	HasImage   bool
}

// Ingredient is one line of a recipe. Name and Unit together identify an
// ingredient on a shopping list; Amount is the only summable field.
type Ingredient struct {
	Name   string  `yaml:"name"`
	Amount float64 `yaml:"amount"`
	Unit   string  `yaml:"unit"`
}

// Image describes a picture attached to a recipe.
type Image struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type,omitempty"`
	Size   int64  `yaml:"size,omitempty"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Src    string `yaml:"src,omitempty"` // data URL, only set before upload
}

// Units lists the units offered by the ingredient editor.
var Units = []string{"Stück", "ml", "l", "g", "kg", "TL", "EL", "Prise(n)"}

// CanonicalUnit returns the matching entry of Units for s, compared
// case-insensitively, and false if s is not a known unit.
func CanonicalUnit(s string) (string, bool) {
	for _, u := range Units {
		if strings.EqualFold(u, s) {
			return u, true
		}
	}
	return "", false
}
