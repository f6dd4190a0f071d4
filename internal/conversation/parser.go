// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/kochbuch/internal/domain"
	"github.com/hammamikhairi/kochbuch/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

// patternRule maps a command to an intent. When the regex has a capture
// group, its text becomes the intent payload.
type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(?:help|h|\?|hilfe)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(?:quit|exit|q|tschüss)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(?:status|where)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(?:categories|kategorien|cats)$`), domain.IntentListCategories},
		{regexp.MustCompile(`(?i)^(?:list|recipes|rezepte|ls)(?:\s+(.+))?$`), domain.IntentListRecipes},
		{regexp.MustCompile(`(?i)^(?:shop|shopping|einkaufsliste|buy)$`), domain.IntentShoppingList},
		{regexp.MustCompile(`(?i)^(?:show|view|zeige)\s+(.+)$`), domain.IntentShowRecipe},
		{regexp.MustCompile(`(?i)^(?:toggle|cart|pick|select)\s+(.+)$`), domain.IntentToggleRecipe},
		{regexp.MustCompile(`^(\d{1,3})$`), domain.IntentToggleRecipe},
		{regexp.MustCompile(`(?i)^(?:edit|bearbeiten)\s+(.+)$`), domain.IntentEditRecipe},

		// Draft edits.
		{regexp.MustCompile(`(?i)^(?:add|\+)\s+(.+)$`), domain.IntentAddIngredient},
		{regexp.MustCompile(`(?i)^(?:remove|rm|del|-)\s+(.+)$`), domain.IntentRemoveIngredient},
		{regexp.MustCompile(`(?i)^(?:up|hoch)\s+(.+)$`), domain.IntentMoveUp},
		{regexp.MustCompile(`(?i)^(?:down|runter)\s+(.+)$`), domain.IntentMoveDown},
		{regexp.MustCompile(`(?i)^(?:tag|category)\s+(.+)$`), domain.IntentAddCategory},
		{regexp.MustCompile(`(?i)^(?:untag|uncategory)\s+(.+)$`), domain.IntentRemoveCategory},
		{regexp.MustCompile(`(?i)^(?:servings|portionen)\s+(\d+)$`), domain.IntentSetServings},
		{regexp.MustCompile(`(?i)^(?:more|mehr)$`), domain.IntentMoreServings},
		{regexp.MustCompile(`(?i)^(?:fewer|less|weniger)$`), domain.IntentFewerServings},
		{regexp.MustCompile(`(?i)^(?:rename|name)\s+(.+)$`), domain.IntentRename},
		{regexp.MustCompile(`(?i)^(?:describe|description|beschreibung)\s+(.+)$`), domain.IntentDescribe},
		{regexp.MustCompile(`(?i)^(?:source|quelle)\s+(.+)$`), domain.IntentSetSource},
		{regexp.MustCompile(`(?i)^(?:unimage|bild-entfernen)\s+(.+)$`), domain.IntentRemoveImage},
		{regexp.MustCompile(`(?i)^(?:image|bild)\s+(.+)$`), domain.IntentAttachImage},
		{regexp.MustCompile(`(?i)^(?:save|speichern)$`), domain.IntentSave},
		{regexp.MustCompile(`(?i)^(?:cancel|abbrechen|discard)$`), domain.IntentCancel},
		{regexp.MustCompile(`(?i)^(?:delete|löschen)\s+(.+)$`), domain.IntentDeleteRecipe},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string, session *domain.Session) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", rule.intent)
		intent := &domain.Intent{Type: rule.intent}
		if len(m) > 1 {
			intent.Payload = strings.TrimSpace(m[1])
		}
		return intent, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// EditIntents are the intents that need a recipe draft.
var EditIntents = map[domain.IntentType]bool{
	domain.IntentAddIngredient:    true,
	domain.IntentRemoveIngredient: true,
	domain.IntentMoveUp:           true,
	domain.IntentMoveDown:         true,
	domain.IntentAddCategory:      true,
	domain.IntentRemoveCategory:   true,
	domain.IntentSetServings:      true,
	domain.IntentMoreServings:     true,
	domain.IntentFewerServings:    true,
	domain.IntentRename:           true,
	domain.IntentDescribe:         true,
	domain.IntentSetSource:        true,
	domain.IntentAttachImage:      true,
	domain.IntentRemoveImage:      true,
	domain.IntentSave:             true,
	domain.IntentCancel:           true,
}
