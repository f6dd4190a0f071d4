package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/kochbuch/internal/display"
	"github.com/hammamikhairi/kochbuch/internal/domain"
)

func newRecipesCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:     "recipes",
		Aliases: []string{"ls"},
		Short:   "List recipes, optionally only one category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			all, err := a.engine.ListRecipes(ctx, "")
			if err != nil {
				return err
			}
			shown, err := a.engine.ListRecipes(ctx, category)
			if err != nil {
				return err
			}
			if len(shown) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no recipes in category %q\n", category)
				return nil
			}
			for _, line := range recipeListLines(all, shown, nil) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list recipes in this category")
	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List every category in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.engine.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newShopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shop <recipe>...",
		Short: "Print the combined shopping list for the given recipes",
		Long: "Print the combined shopping list for the given recipes. A recipe is named\n" +
			"by slug, by its number in 'kochbuch recipes', by ID or by a unique search term.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			seen := map[string]bool{}
			var picked []domain.Recipe
			for _, ref := range args {
				r, err := a.engine.FindRecipe(ctx, ref)
				if err != nil {
					return err
				}
				if seen[r.ID] {
					continue
				}
				seen[r.ID] = true
				picked = append(picked, *r)
			}
			return display.RenderShoppingList(cmd.OutOrStdout(), a.engine.Aggregate(picked))
		},
	}
}

// recipeListLines renders shown with each recipe's position in all, so the
// numbers stay valid references even for a filtered list. selected marks
// recipes on the shopping list.
func recipeListLines(all, shown []domain.RecipeSummary, selected map[string]bool) []string {
	pos := make(map[string]int, len(all))
	for i, r := range all {
		pos[r.ID] = i + 1
	}

	out := make([]string, 0, len(shown))
	for _, r := range shown {
		mark := " "
		if selected[r.ID] {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %2d  %s", mark, pos[r.ID], r.Name)
		if len(r.Categories) > 0 {
			line += "  (" + strings.Join(r.Categories, ", ") + ")"
		}
		out = append(out, line)
	}
	return out
}
