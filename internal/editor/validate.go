package editor

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// ValidationError lists the fields a recipe still lacks before it can be
// saved.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("recipe is incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// Unwrap lets callers match with errors.Is(err, domain.ErrInvalidRecipe).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidRecipe }

// Validate checks that every field required for saving is filled in.
func Validate(r domain.Recipe) error {
	var missing []string
	check := func(field string, ok bool) {
		if !ok {
			missing = append(missing, field)
		}
	}

	check("slug", strings.TrimSpace(r.Slug) != "")
	check("name", strings.TrimSpace(r.Name) != "")
	check("servings", r.Servings >= 1)
	check("description", strings.TrimSpace(r.Description) != "")
	check("source", strings.TrimSpace(r.Source) != "")
	check("ingredients", len(r.Ingredients) > 0)
	check("categories", len(r.Categories) > 0)

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
