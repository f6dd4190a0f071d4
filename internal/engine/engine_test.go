package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/kochbuch/internal/domain"
	"github.com/hammamikhairi/kochbuch/internal/editor"
	"github.com/hammamikhairi/kochbuch/internal/logger"
	"github.com/hammamikhairi/kochbuch/internal/recipe"
	"github.com/hammamikhairi/kochbuch/internal/storage"
)

func setupEngine(t *testing.T) (*Engine, *domain.Session, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	recipes := recipe.NewMemorySource(log)
	store := storage.NewMemoryStore(log)
	eng := New(recipes, store, log)
	ctx := context.Background()

	session, err := eng.StartSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	return eng, session, ctx
}

func amountOf(list []domain.Ingredient, name, unit string) (float64, bool) {
	for _, ing := range list {
		if ing.Name == name && ing.Unit == unit {
			return ing.Amount, true
		}
	}
	return 0, false
}

func TestToggleRecipeRebuildsShoppingList(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	list, err := eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	selected, err := eng.ToggleRecipe(ctx, session.ID, "1") // Pfannkuchen
	require.NoError(t, err)
	require.True(t, selected)

	selected, err = eng.ToggleRecipe(ctx, session.ID, "3") // Apfelkuchen
	require.NoError(t, err)
	require.True(t, selected)

	list, err = eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)

	mehl, ok := amountOf(list, "Mehl", "g")
	require.True(t, ok)
	require.Equal(t, 450.0, mehl)

	eier, ok := amountOf(list, "Eier", "Stück")
	require.True(t, ok)
	require.Equal(t, 6.0, eier)

	require.Equal(t, "Äpfel", list[0].Name, "umlauts sort with their base letter")

	in, err := eng.IsSelected(ctx, session.ID, "3")
	require.NoError(t, err)
	require.True(t, in)

	selected, err = eng.ToggleRecipe(ctx, session.ID, "3")
	require.NoError(t, err)
	require.False(t, selected)

	list, err = eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)
	mehl, _ = amountOf(list, "Mehl", "g")
	require.Equal(t, 200.0, mehl)
	_, ok = amountOf(list, "Äpfel", "Stück")
	require.False(t, ok)
}

func TestButterInDifferentUnitsStaysSeparate(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	for _, id := range []string{"1", "2", "3"} {
		_, err := eng.ToggleRecipe(ctx, session.ID, id)
		require.NoError(t, err)
	}

	list, err := eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)

	grams, ok := amountOf(list, "Butter", "g")
	require.True(t, ok)
	require.Equal(t, 145.0, grams)

	spoons, ok := amountOf(list, "Butter", "EL")
	require.True(t, ok)
	require.Equal(t, 1.0, spoons)
}

func TestToggleUnknownRecipe(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	_, err := eng.ToggleRecipe(ctx, session.ID, "nonexistent")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = eng.ToggleRecipe(ctx, "no-such-session", "1")
	require.ErrorIs(t, err, domain.ErrSessionNotActive)
}

func TestDeselectRecipeDeletedElsewhere(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	other, err := eng.StartSession(ctx)
	require.NoError(t, err)

	_, err = eng.ToggleRecipe(ctx, session.ID, "1")
	require.NoError(t, err)
	require.NoError(t, eng.DeleteRecipe(ctx, other.ID, "1"))

	list, err := eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, list, 5, "the snapshot keeps the deleted recipe listed")

	selected, err := eng.ToggleRecipe(ctx, session.ID, "1")
	require.NoError(t, err)
	require.False(t, selected)

	list, err = eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	// Selecting it again needs the catalog.
	_, err = eng.ToggleRecipe(ctx, session.ID, "1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditAppliesOpsAtomically(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	_, err := eng.BeginEdit(ctx, session.ID, "1")
	require.NoError(t, err)

	outcome, err := eng.Edit(ctx, session.ID,
		editor.AddIngredient(domain.Ingredient{Name: "Zucker", Amount: 1, Unit: "EL"}),
		editor.AddIngredient(domain.Ingredient{Name: "Mehl", Amount: 50, Unit: "g"}),
	)
	require.NoError(t, err)
	require.Equal(t, editor.Duplicate, outcome)

	draft, err := eng.Draft(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, draft.Ingredients, 5, "a rejected batch leaves the draft untouched")
}

func TestEditAndSubmit(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	_, err := eng.ToggleRecipe(ctx, session.ID, "1")
	require.NoError(t, err)

	draft, err := eng.BeginEdit(ctx, session.ID, "1")
	require.NoError(t, err)
	require.Equal(t, "Pfannkuchen", draft.Name)

	outcome, err := eng.Edit(ctx, session.ID, editor.AddIngredient(domain.Ingredient{Name: "Zucker", Amount: 2, Unit: "EL"}))
	require.NoError(t, err)
	require.Equal(t, editor.Applied, outcome)

	outcome, err = eng.Edit(ctx, session.ID, editor.AddIngredient(domain.Ingredient{Name: "Zucker", Amount: 5, Unit: "g"}))
	require.NoError(t, err)
	require.Equal(t, editor.Duplicate, outcome)

	outcome, err = eng.Edit(ctx, session.ID, editor.MoveIngredient("Mehl", editor.Up))
	require.NoError(t, err)
	require.Equal(t, editor.OutOfBounds, outcome)

	// Unsaved edits do not reach the shopping list.
	list, err := eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)
	_, ok := amountOf(list, "Zucker", "EL")
	require.False(t, ok)

	saved, err := eng.SubmitEdit(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, 1, saved.Version)

	list, err = eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)
	zucker, ok := amountOf(list, "Zucker", "EL")
	require.True(t, ok)
	require.Equal(t, 2.0, zucker)

	stored, err := eng.GetRecipe(ctx, "1")
	require.NoError(t, err)
	require.Len(t, stored.Ingredients, 6)
	require.Equal(t, "Zucker", stored.Ingredients[5].Name)

	_, err = eng.Draft(ctx, session.ID)
	require.ErrorIs(t, err, domain.ErrNoDraft)
}

func TestSubmitRejectsIncompleteDraft(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	_, err := eng.BeginEdit(ctx, session.ID, "2")
	require.NoError(t, err)

	for _, name := range []string{"Hokkaido-Kürbis", "Zwiebel", "Gemüsebrühe", "Sahne", "Butter", "Salz"} {
		outcome, err := eng.Edit(ctx, session.ID, editor.RemoveIngredient(name))
		require.NoError(t, err)
		require.Equal(t, editor.Applied, outcome, name)
	}

	_, err = eng.SubmitEdit(ctx, session.ID)
	require.ErrorIs(t, err, domain.ErrInvalidRecipe)

	// The draft survives a failed submit.
	draft, err := eng.Draft(ctx, session.ID)
	require.NoError(t, err)
	require.Empty(t, draft.Ingredients)

	require.NoError(t, eng.CancelEdit(ctx, session.ID))
	stored, err := eng.GetRecipe(ctx, "2")
	require.NoError(t, err)
	require.Len(t, stored.Ingredients, 6)
}

func TestEditWithoutDraft(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	_, err := eng.Edit(ctx, session.ID, editor.IncServings())
	require.ErrorIs(t, err, domain.ErrNoDraft)

	_, err = eng.SubmitEdit(ctx, session.ID)
	require.ErrorIs(t, err, domain.ErrNoDraft)

	require.ErrorIs(t, eng.CancelEdit(ctx, session.ID), domain.ErrNoDraft)
}

func TestDeleteRecipeDeselects(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	_, err := eng.ToggleRecipe(ctx, session.ID, "2")
	require.NoError(t, err)
	_, err = eng.BeginEdit(ctx, session.ID, "2")
	require.NoError(t, err)

	require.NoError(t, eng.DeleteRecipe(ctx, session.ID, "2"))

	list, err := eng.ShoppingList(ctx, session.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	status, err := eng.Status(ctx, session.ID)
	require.NoError(t, err)
	require.False(t, status.Editing())

	_, err = eng.GetRecipe(ctx, "2")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindRecipe(t *testing.T) {
	eng, _, ctx := setupEngine(t)

	tests := []struct {
		ref    string
		wantID string
	}{
		{"pfannkuchen", "1"},
		{"1", "3"}, // position in the name-sorted list: Apfelkuchen, Kürbissuppe, Pfannkuchen
		{"3", "1"},
		{"suppe", "2"},
	}
	for _, tt := range tests {
		r, err := eng.FindRecipe(ctx, tt.ref)
		require.NoError(t, err, tt.ref)
		require.Equal(t, tt.wantID, r.ID, tt.ref)
	}

	_, err := eng.FindRecipe(ctx, "kuchen") // ambiguous
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = eng.FindRecipe(ctx, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListRecipesAndCategories(t *testing.T) {
	eng, _, ctx := setupEngine(t)

	all, err := eng.ListRecipes(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	sweet, err := eng.ListRecipes(ctx, "Süß")
	require.NoError(t, err)
	require.Len(t, sweet, 2)

	cats, err := eng.Categories(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Süß", "Schnell", "Herzhaft", "Vegetarisch", "Backen"}, cats)
}

func TestEndSession(t *testing.T) {
	eng, session, ctx := setupEngine(t)

	require.NoError(t, eng.EndSession(ctx, session.ID))
	_, err := eng.ToggleRecipe(ctx, session.ID, "1")
	require.ErrorIs(t, err, domain.ErrSessionNotActive)
}
