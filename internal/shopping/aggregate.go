package shopping

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// key groups ingredient lines that are summed together. Lines with the
// same name but different units are never merged.
type key struct {
	name string
	unit string
}

// Aggregator merges the ingredients of several recipes into one list
// sorted by name under a fixed collation.
type Aggregator struct {
	lang language.Tag
}

// NewAggregator returns an Aggregator that sorts names using the
// collation rules of lang. German is used when lang is undetermined.
func NewAggregator(lang language.Tag) *Aggregator {
	if lang == language.Und {
		lang = language.German
	}
	return &Aggregator{lang: lang}
}

// Language returns the collation language.
func (a *Aggregator) Language() language.Tag { return a.lang }

// Aggregate returns one line per (name, unit) pair found in recipes, with
// amounts summed, sorted by name. Lines sharing a name keep the order in
// which their keys first appeared. An empty input yields an empty list.
func (a *Aggregator) Aggregate(recipes []domain.Recipe) []domain.Ingredient {
	totals := make(map[key]float64)
	var order []key
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			k := key{name: ing.Name, unit: ing.Unit}
			if _, seen := totals[k]; !seen {
				order = append(order, k)
			}
			totals[k] += ing.Amount
		}
	}

	out := make([]domain.Ingredient, 0, len(order))
	for _, k := range order {
		out = append(out, domain.Ingredient{Name: k.name, Amount: totals[k], Unit: k.unit})
	}

	// Collators keep scratch buffers, so each call gets its own.
	c := collate.New(a.lang)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}
