package editor

import (
	"strings"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// Op is a single edit applied to a recipe draft. Ops never modify their
// argument; on success they return an edited clone.
type Op func(domain.Recipe) (domain.Recipe, Outcome)

// Apply runs ops in order. If any op is rejected the original recipe is
// returned with that op's outcome.
func Apply(r domain.Recipe, ops ...Op) (domain.Recipe, Outcome) {
	cur := r
	for _, op := range ops {
		next, out := op(cur)
		if !out.Ok() {
			return r, out
		}
		cur = next
	}
	return cur, Applied
}

// AddIngredient appends ing to the ingredient list.
func AddIngredient(ing domain.Ingredient) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		list, out := Ingredients(r.Ingredients).Add(ing)
		return withIngredients(r, list, out)
	}
}

// RemoveIngredient drops the ingredient with the given name.
func RemoveIngredient(name string) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		ing, ok := Ingredients(r.Ingredients).Lookup(name)
		if !ok {
			return r, NotFound
		}
		list, out := Ingredients(r.Ingredients).Remove(ing)
		return withIngredients(r, list, out)
	}
}

// MoveIngredient shifts the named ingredient one place in direction dir.
func MoveIngredient(name string, dir Direction) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		ing, ok := Ingredients(r.Ingredients).Lookup(name)
		if !ok {
			return r, NotFound
		}
		list, out := Ingredients(r.Ingredients).Move(ing, dir)
		return withIngredients(r, list, out)
	}
}

func withIngredients(r domain.Recipe, list Ingredients, out Outcome) (domain.Recipe, Outcome) {
	if !out.Ok() {
		return r, out
	}
	next := r.Clone()
	next.Ingredients = list
	return next, Applied
}

// AddCategory tags the recipe with category.
func AddCategory(category string) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		c := strings.TrimSpace(category)
		if c == "" {
			return r, Incomplete
		}
		if r.HasCategory(c) {
			return r, Duplicate
		}
		next := r.Clone()
		next.Categories = append(next.Categories, c)
		return next, Applied
	}
}

// RemoveCategory removes category from the recipe.
func RemoveCategory(category string) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		if !r.HasCategory(category) {
			return r, NotFound
		}
		next := r.Clone()
		next.Categories = next.Categories[:0]
		for _, c := range r.Categories {
			if c != category {
				next.Categories = append(next.Categories, c)
			}
		}
		return next, Applied
	}
}

// SetServings sets the number of servings. At least one is required.
func SetServings(n int) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		if n < 1 {
			return r, OutOfBounds
		}
		next := r.Clone()
		next.Servings = n
		return next, Applied
	}
}

// IncServings adds one serving.
func IncServings() Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		return SetServings(r.Servings + 1)(r)
	}
}

// DecServings removes one serving; it is rejected at one.
func DecServings() Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		return SetServings(r.Servings - 1)(r)
	}
}

// Rename sets the recipe's display name. The slug is kept.
func Rename(name string) Op {
	return setText(name, func(r *domain.Recipe, v string) { r.Name = v })
}

// Describe sets the preparation text.
func Describe(text string) Op {
	return setText(text, func(r *domain.Recipe, v string) { r.Description = v })
}

// SetSource sets where the recipe came from.
func SetSource(source string) Op {
	return setText(source, func(r *domain.Recipe, v string) { r.Source = v })
}

func setText(text string, set func(*domain.Recipe, string)) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		v := strings.TrimSpace(text)
		if v == "" {
			return r, Incomplete
		}
		next := r.Clone()
		set(&next, v)
		return next, Applied
	}
}

// AttachImage makes img the recipe's picture. A recipe carries a single
// image; attaching one whose name is already present is rejected.
func AttachImage(img domain.Image) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		if strings.TrimSpace(img.Name) == "" {
			return r, Incomplete
		}
		for _, existing := range r.Images {
			if existing.Name == img.Name {
				return r, Duplicate
			}
		}
		next := r.Clone()
		next.Images = []domain.Image{img}
		return next, Applied
	}
}

// RemoveImage detaches the image with the given name.
func RemoveImage(name string) Op {
	return func(r domain.Recipe) (domain.Recipe, Outcome) {
		next := r.Clone()
		next.Images = next.Images[:0]
		for _, img := range r.Images {
			if img.Name != name {
				next.Images = append(next.Images, img)
			}
		}
		if len(next.Images) == len(r.Images) {
			return r, NotFound
		}
		return next, Applied
	}
}
