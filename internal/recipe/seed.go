package recipe

import "github.com/hammamikhairi/kochbuch/internal/domain"

// builtin returns the recipes used when no catalog file is configured.
func builtin() []*domain.Recipe {
	return []*domain.Recipe{
		{
			ID:          "1",
			Slug:        "pfannkuchen",
			Name:        "Pfannkuchen",
			Description: "Mehl, Milch, Eier und Salz glatt rühren, 10 Minuten quellen lassen und in Butter dünn ausbacken.",
			Source:      "Familienrezept",
			Servings:    2,
			Categories:  []string{"Süß", "Schnell"},
			Ingredients: []domain.Ingredient{
				{Name: "Mehl", Amount: 200, Unit: "g"},
				{Name: "Milch", Amount: 400, Unit: "ml"},
				{Name: "Eier", Amount: 3, Unit: "Stück"},
				{Name: "Salz", Amount: 1, Unit: "Prise(n)"},
				{Name: "Butter", Amount: 20, Unit: "g"},
			},
		},
		{
			ID:          "2",
			Slug:        "kuerbissuppe",
			Name:        "Kürbissuppe",
			Description: "Zwiebel und Kürbis andünsten, mit Brühe ablöschen, 20 Minuten köcheln und pürieren. Mit Sahne verfeinern.",
			Source:      "https://kochen.hawc.de",
			Servings:    4,
			Categories:  []string{"Herzhaft", "Vegetarisch"},
			Ingredients: []domain.Ingredient{
				{Name: "Hokkaido-Kürbis", Amount: 1, Unit: "kg"},
				{Name: "Zwiebel", Amount: 1, Unit: "Stück"},
				{Name: "Gemüsebrühe", Amount: 750, Unit: "ml"},
				{Name: "Sahne", Amount: 200, Unit: "ml"},
				{Name: "Butter", Amount: 1, Unit: "EL"},
				{Name: "Salz", Amount: 1, Unit: "TL"},
			},
		},
		{
			ID:          "3",
			Slug:        "apfelkuchen",
			Name:        "Apfelkuchen",
			Description: "Rührteig aus Butter, Zucker, Eiern und Mehl herstellen, mit Apfelspalten belegen und 45 Minuten bei 180 °C backen.",
			Source:      "Oma Hildes Backbuch",
			Servings:    12,
			Categories:  []string{"Süß", "Backen"},
			Ingredients: []domain.Ingredient{
				{Name: "Äpfel", Amount: 4, Unit: "Stück"},
				{Name: "Butter", Amount: 125, Unit: "g"},
				{Name: "Zucker", Amount: 125, Unit: "g"},
				{Name: "Eier", Amount: 3, Unit: "Stück"},
				{Name: "Mehl", Amount: 250, Unit: "g"},
				{Name: "Backpulver", Amount: 2, Unit: "TL"},
			},
		},
	}
}
