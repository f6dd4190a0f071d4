package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListRecipes
	IntentListCategories
	IntentShowRecipe
	IntentToggleRecipe
	IntentShoppingList
	IntentEditRecipe
	IntentAddIngredient
	IntentRemoveIngredient
	IntentMoveUp
	IntentMoveDown
	IntentAddCategory
	IntentRemoveCategory
	IntentSetServings
	IntentMoreServings
	IntentFewerServings
	IntentRename
	IntentDescribe
	IntentSetSource
	IntentAttachImage
	IntentRemoveImage
	IntentSave
	IntentCancel
	IntentDeleteRecipe
	IntentStatus
	IntentHelp
	IntentQuit
)

// intentNames maps snake_case names to IntentType values.
var intentNames = map[string]IntentType{
	"unknown":           IntentUnknown,
	"list_recipes":      IntentListRecipes,
	"list_categories":   IntentListCategories,
	"show_recipe":       IntentShowRecipe,
	"toggle_recipe":     IntentToggleRecipe,
	"shopping_list":     IntentShoppingList,
	"edit_recipe":       IntentEditRecipe,
	"add_ingredient":    IntentAddIngredient,
	"remove_ingredient": IntentRemoveIngredient,
	"move_up":           IntentMoveUp,
	"move_down":         IntentMoveDown,
	"add_category":      IntentAddCategory,
	"remove_category":   IntentRemoveCategory,
	"set_servings":      IntentSetServings,
	"more_servings":     IntentMoreServings,
	"fewer_servings":    IntentFewerServings,
	"rename":            IntentRename,
	"describe":          IntentDescribe,
	"set_source":        IntentSetSource,
	"attach_image":      IntentAttachImage,
	"remove_image":      IntentRemoveImage,
	"save":              IntentSave,
	"cancel":            IntentCancel,
	"delete_recipe":     IntentDeleteRecipe,
	"status":            IntentStatus,
	"help":              IntentHelp,
	"quit":              IntentQuit,
}

// String returns the snake_case name of the intent type.
func (i IntentType) String() string {
	for name, t := range intentNames {
		if t == i {
			return name
		}
	}
	return "unknown"
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // argument text, e.g. a recipe slug or "200 g Mehl"
}
