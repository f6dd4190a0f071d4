package display

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// FormatAmount renders an amount the German way: at most three decimals,
// no trailing zeros and a decimal comma, e.g. 0.5 -> "0,5".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
	return strings.Replace(s, ".", ",", 1)
}

// FormatIngredient renders a line such as "200 g Mehl".
func FormatIngredient(ing domain.Ingredient) string {
	if ing.Amount == 0 {
		return strings.TrimSpace(ing.Unit + " " + ing.Name)
	}
	return fmt.Sprintf("%s %s %s", FormatAmount(ing.Amount), ing.Unit, ing.Name)
}

// ShoppingListLines renders one styled line per shopping-list entry with
// amounts right-aligned.
func ShoppingListLines(items []domain.Ingredient) []string {
	width := 0
	amounts := make([]string, len(items))
	for i, ing := range items {
		amounts[i] = strings.TrimSpace(FormatAmount(ing.Amount) + " " + ing.Unit)
		if n := len([]rune(amounts[i])); n > width {
			width = n
		}
	}

	out := make([]string, len(items))
	for i, ing := range items {
		pad := width - len([]rune(amounts[i]))
		out[i] = secondaryStyle.Render(strings.Repeat(" ", pad)+amounts[i]) + "  " + primaryStyle.Render(ing.Name)
	}
	return out
}

// RenderShoppingList writes a titled shopping list to w.
func RenderShoppingList(w io.Writer, items []domain.Ingredient) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, secondaryStyle.Render("Die Einkaufsliste ist leer."))
		return err
	}
	if _, err := fmt.Fprintln(w, headingStyle.Render("Einkaufsliste")); err != nil {
		return err
	}
	for _, line := range ShoppingListLines(items) {
		if _, err := fmt.Fprintln(w, "  "+line); err != nil {
			return err
		}
	}
	return nil
}

// RecipeLines renders a recipe for the terminal: header, metadata and the
// ingredient list in recipe order.
func RecipeLines(r domain.Recipe) []string {
	out := []string{headingStyle.Render(r.Name)}
	if len(r.Categories) > 0 {
		out = append(out, secondaryStyle.Render("Kategorien: "+strings.Join(r.Categories, ", ")))
	}
	out = append(out, secondaryStyle.Render(fmt.Sprintf("Portionen: %d", r.Servings)))
	out = append(out, "")
	for i, ing := range r.Ingredients {
		out = append(out, primaryStyle.Render(fmt.Sprintf("%2d. %s", i+1, FormatIngredient(ing))))
	}
	if r.Description != "" {
		out = append(out, "", primaryStyle.Render(r.Description))
	}
	if r.Source != "" {
		out = append(out, secondaryStyle.Render("Quelle: "+r.Source))
	}
	for _, img := range r.Images {
		out = append(out, secondaryStyle.Render(fmt.Sprintf("Bild: %s (%d×%d)", img.Name, img.Width, img.Height)))
	}
	return out
}
