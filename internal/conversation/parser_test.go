package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/kochbuch/internal/domain"
	"github.com/hammamikhairi/kochbuch/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
	}{
		// Catalog
		{"list", domain.IntentListRecipes, ""},
		{"rezepte", domain.IntentListRecipes, ""},
		{"list Süß", domain.IntentListRecipes, "Süß"},
		{"categories", domain.IntentListCategories, ""},
		{"show pfannkuchen", domain.IntentShowRecipe, "pfannkuchen"},

		// Shopping list
		{"2", domain.IntentToggleRecipe, "2"},
		{"cart kuerbissuppe", domain.IntentToggleRecipe, "kuerbissuppe"},
		{"toggle  3 ", domain.IntentToggleRecipe, "3"},
		{"shop", domain.IntentShoppingList, ""},
		{"Einkaufsliste", domain.IntentShoppingList, ""},

		// Editing
		{"edit apfelkuchen", domain.IntentEditRecipe, "apfelkuchen"},
		{"add 200 g Mehl", domain.IntentAddIngredient, "200 g Mehl"},
		{"+ 1 Prise(n) Salz", domain.IntentAddIngredient, "1 Prise(n) Salz"},
		{"remove Mehl", domain.IntentRemoveIngredient, "Mehl"},
		{"up brauner Zucker", domain.IntentMoveUp, "brauner Zucker"},
		{"down Eier", domain.IntentMoveDown, "Eier"},
		{"tag Frühstück", domain.IntentAddCategory, "Frühstück"},
		{"untag Süß", domain.IntentRemoveCategory, "Süß"},
		{"servings 4", domain.IntentSetServings, "4"},
		{"more", domain.IntentMoreServings, ""},
		{"fewer", domain.IntentFewerServings, ""},
		{"rename Eierkuchen", domain.IntentRename, "Eierkuchen"},
		{"describe Teig ruhen lassen.", domain.IntentDescribe, "Teig ruhen lassen."},
		{"source https://example.org", domain.IntentSetSource, "https://example.org"},
		{"image fotos/teller.jpg", domain.IntentAttachImage, "fotos/teller.jpg"},
		{"bild teller.png", domain.IntentAttachImage, "teller.png"},
		{"unimage teller.jpg", domain.IntentRemoveImage, "teller.jpg"},
		{"save", domain.IntentSave, ""},
		{"cancel", domain.IntentCancel, ""},
		{"delete 3", domain.IntentDeleteRecipe, "3"},

		// Shell
		{"status", domain.IntentStatus, ""},
		{"help", domain.IntentHelp, ""},
		{"?", domain.IntentHelp, ""},
		{"quit", domain.IntentQuit, ""},

		// Unknown
		{"servings many", domain.IntentUnknown, "servings many"},
		{"flambé the cat", domain.IntentUnknown, "flambé the cat"},
		{"", domain.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Fatalf("input=%q: expected type %s, got %s", tt.input, tt.wantType, intent.Type)
			}
			if intent.Payload != tt.wantPayload {
				t.Fatalf("input=%q: expected payload %q, got %q", tt.input, tt.wantPayload, intent.Payload)
			}
		})
	}
}

func TestEditIntents(t *testing.T) {
	if !EditIntents[domain.IntentAddIngredient] {
		t.Fatal("adding an ingredient needs a draft")
	}
	if !EditIntents[domain.IntentAttachImage] || !EditIntents[domain.IntentRemoveImage] {
		t.Fatal("image edits need a draft")
	}
	if EditIntents[domain.IntentToggleRecipe] {
		t.Fatal("toggling a recipe must not need a draft")
	}
}
