package recipe

import "github.com/hammamikhairi/kochbuch/internal/domain"

// Categories returns every category used by recipes, each once, in the
// order it first appears.
func Categories(recipes []domain.RecipeSummary) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range recipes {
		for _, c := range r.Categories {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// FilterByCategory keeps the recipes tagged with category. An empty
// category keeps everything.
func FilterByCategory(recipes []domain.RecipeSummary, category string) []domain.RecipeSummary {
	if category == "" {
		return recipes
	}
	var out []domain.RecipeSummary
	for _, r := range recipes {
		for _, c := range r.Categories {
			if c == category {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
