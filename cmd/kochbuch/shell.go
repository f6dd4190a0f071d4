package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/kochbuch/internal/conversation"
	"github.com/hammamikhairi/kochbuch/internal/display"
	"github.com/hammamikhairi/kochbuch/internal/domain"
	"github.com/hammamikhairi/kochbuch/internal/editor"
	"github.com/hammamikhairi/kochbuch/internal/engine"
	"github.com/hammamikhairi/kochbuch/internal/logger"
	"github.com/hammamikhairi/kochbuch/internal/watch"
)

// runShell starts the interactive shell. Bubble Tea owns the terminal
// until the user quits.
func (a *app) runShell(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui := display.NewUI(a.store)
	sh := &cliApp{
		engine:   a.engine,
		parser:   conversation.NewKeywordParser(a.log),
		notifier: conversation.NewCLINotifier(a.log, ui.Printf),
		log:      a.log,
		ui:       ui,
	}

	session, err := a.engine.StartSession(ctx)
	if err != nil {
		return err
	}
	sh.sessionID = session.ID

	watcher := watch.New(a.store, a.recipes, sh.notifier, a.log)
	watcher.Start(ctx)
	defer watcher.Stop()

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		sh.run(ctx)
		ui.Quit()
	}()

	if err := ui.Run(); err != nil {
		a.log.Error("display: %v", err)
		return err
	}
	return nil
}

type cliApp struct {
	engine    *engine.Engine
	parser    domain.IntentParser
	notifier  domain.Notifier
	log       *logger.Logger
	ui        *display.UI
	sessionID string
}

func (a *cliApp) say(ctx context.Context, text string) {
	_ = a.notifier.Notify(ctx, text)
}

func (a *cliApp) warn(ctx context.Context, text string) {
	_ = a.notifier.NotifyUrgent(ctx, text)
}

func (a *cliApp) run(ctx context.Context) {
	a.showRecipes(ctx, "")

	uiCh := a.ui.InputChan()
	for {
		var input string
		select {
		case <-ctx.Done():
			return
		case <-a.ui.QuitChan():
			a.endSession(ctx)
			return
		case v, ok := <-uiCh:
			if !ok {
				return
			}
			input = strings.TrimSpace(v)
		}
		if input == "" {
			continue
		}

		intent, err := a.interpret(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if !a.handleIntent(ctx, intent) {
			return
		}
	}
}

// interpret parses a line against the current session, or against none
// once the session has ended.
func (a *cliApp) interpret(ctx context.Context, input string) (*domain.Intent, error) {
	session, err := a.engine.Status(ctx, a.sessionID)
	if err != nil {
		a.log.Debug("no session for parsing: %v", err)
	}
	return a.parser.Parse(ctx, input, session)
}

// handleIntent runs one command. It returns false when the shell should exit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	if conversation.EditIntents[intent.Type] {
		if _, err := a.engine.Draft(ctx, a.sessionID); errors.Is(err, domain.ErrNoDraft) {
			a.say(ctx, "Erst ein Rezept mit 'edit <rezept>' öffnen.")
			return true
		}
	}

	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentListRecipes:
		a.showRecipes(ctx, intent.Payload)
	case domain.IntentListCategories:
		a.showCategories(ctx)
	case domain.IntentShowRecipe:
		a.showRecipe(ctx, intent.Payload)
	case domain.IntentToggleRecipe:
		a.toggle(ctx, intent.Payload)
	case domain.IntentShoppingList:
		a.showShoppingList(ctx)
	case domain.IntentEditRecipe:
		a.beginEdit(ctx, intent.Payload)
	case domain.IntentAddIngredient:
		a.addIngredient(ctx, intent.Payload)
	case domain.IntentRemoveIngredient:
		a.edit(ctx, intent.Payload, editor.RemoveIngredient(intent.Payload))
	case domain.IntentMoveUp:
		a.edit(ctx, intent.Payload, editor.MoveIngredient(intent.Payload, editor.Up))
	case domain.IntentMoveDown:
		a.edit(ctx, intent.Payload, editor.MoveIngredient(intent.Payload, editor.Down))
	case domain.IntentAddCategory:
		a.edit(ctx, intent.Payload, editor.AddCategory(intent.Payload))
	case domain.IntentRemoveCategory:
		a.edit(ctx, intent.Payload, editor.RemoveCategory(intent.Payload))
	case domain.IntentSetServings:
		n, err := strconv.Atoi(intent.Payload)
		if err != nil {
			a.warn(ctx, fmt.Sprintf("%q ist keine Zahl.", intent.Payload))
			return true
		}
		a.editServings(ctx, editor.SetServings(n))
	case domain.IntentMoreServings:
		a.editServings(ctx, editor.IncServings())
	case domain.IntentFewerServings:
		a.editServings(ctx, editor.DecServings())
	case domain.IntentRename:
		a.edit(ctx, "Name", editor.Rename(intent.Payload))
	case domain.IntentDescribe:
		a.edit(ctx, "Beschreibung", editor.Describe(intent.Payload))
	case domain.IntentSetSource:
		a.edit(ctx, "Quelle", editor.SetSource(intent.Payload))
	case domain.IntentAttachImage:
		a.attachImage(ctx, intent.Payload)
	case domain.IntentRemoveImage:
		a.edit(ctx, intent.Payload, editor.RemoveImage(intent.Payload))
	case domain.IntentSave:
		a.save(ctx)
	case domain.IntentCancel:
		a.cancelEdit(ctx)
	case domain.IntentDeleteRecipe:
		a.deleteRecipe(ctx, intent.Payload)
	case domain.IntentStatus:
		a.status(ctx)
	case domain.IntentQuit:
		a.endSession(ctx)
		a.ui.PrintChat("Tschüss!")
		return false
	default:
		a.say(ctx, fmt.Sprintf("Das habe ich nicht verstanden: %q. 'help' zeigt alle Befehle.", intent.Payload))
	}
	return true
}

// ── Catalog ──────────────────────────────────────────────────────

func (a *cliApp) showRecipes(ctx context.Context, category string) {
	all, err := a.engine.ListRecipes(ctx, "")
	if err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return
	}
	shown, err := a.engine.ListRecipes(ctx, category)
	if err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return
	}
	if len(shown) == 0 {
		a.say(ctx, fmt.Sprintf("Keine Rezepte in der Kategorie %q.", category))
		return
	}

	selected := map[string]bool{}
	if recipes, err := a.engine.SelectedRecipes(ctx, a.sessionID); err == nil {
		for _, r := range recipes {
			selected[r.ID] = true
		}
	}

	if category != "" {
		a.ui.PrintHeading("Rezepte: " + category)
	} else {
		a.ui.PrintHeading("Rezepte")
	}
	for _, line := range recipeListLines(all, shown, selected) {
		a.ui.PrintLine(line)
	}
	a.ui.PrintHint("Nummer eingeben, um ein Rezept auf die Einkaufsliste zu setzen.")
}

func (a *cliApp) showCategories(ctx context.Context) {
	cats, err := a.engine.Categories(ctx)
	if err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return
	}
	a.ui.PrintHeading("Kategorien")
	a.ui.PrintLine(strings.Join(cats, ", "))
}

func (a *cliApp) showRecipe(ctx context.Context, ref string) {
	r, ok := a.find(ctx, ref)
	if !ok {
		return
	}
	for _, line := range display.RecipeLines(*r) {
		a.ui.Println("  " + line)
	}
}

// find resolves ref and reports a miss to the user.
func (a *cliApp) find(ctx context.Context, ref string) (*domain.Recipe, bool) {
	r, err := a.engine.FindRecipe(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.say(ctx, fmt.Sprintf("Kein eindeutiges Rezept für %q gefunden.", ref))
		} else {
			a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		}
		return nil, false
	}
	return r, true
}

func (a *cliApp) deleteRecipe(ctx context.Context, ref string) {
	r, ok := a.find(ctx, ref)
	if !ok {
		return
	}
	if err := a.engine.DeleteRecipe(ctx, a.sessionID, r.ID); err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler beim Löschen: %v", err))
		return
	}
	a.say(ctx, fmt.Sprintf("%s gelöscht.", r.Name))
}

// ── Shopping list ────────────────────────────────────────────────

func (a *cliApp) toggle(ctx context.Context, ref string) {
	r, ok := a.find(ctx, ref)
	if !ok {
		return
	}
	selected, err := a.engine.ToggleRecipe(ctx, a.sessionID, r.ID)
	if err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return
	}
	if selected {
		a.say(ctx, fmt.Sprintf("%s steht jetzt auf der Einkaufsliste.", r.Name))
	} else {
		a.say(ctx, fmt.Sprintf("%s von der Einkaufsliste genommen.", r.Name))
	}
}

func (a *cliApp) showShoppingList(ctx context.Context) {
	list, err := a.engine.ShoppingList(ctx, a.sessionID)
	if err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return
	}
	if len(list) == 0 {
		a.ui.PrintHint("Die Einkaufsliste ist leer. Wähle Rezepte mit ihrer Nummer aus.")
		return
	}
	a.ui.PrintHeading("Einkaufsliste")
	for _, line := range display.ShoppingListLines(list) {
		a.ui.Println("  " + line)
	}
}

// ── Editing ──────────────────────────────────────────────────────

func (a *cliApp) beginEdit(ctx context.Context, ref string) {
	r, ok := a.find(ctx, ref)
	if !ok {
		return
	}
	draft, err := a.engine.BeginEdit(ctx, a.sessionID, r.ID)
	if err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return
	}
	a.say(ctx, fmt.Sprintf("Bearbeite %s. 'save' speichert, 'cancel' verwirft.", draft.Name))
	a.showDraft(ctx)
}

func (a *cliApp) addIngredient(ctx context.Context, line string) {
	ing, err := editor.ParseIngredient(line)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownUnit):
			a.say(ctx, "Unbekannte Einheit. Erlaubt: "+strings.Join(domain.Units, ", "))
		default:
			a.say(ctx, "Format: add <Menge> <Einheit> <Name>, z.B. 'add 200 g Mehl'.")
		}
		return
	}
	a.edit(ctx, ing.Name, editor.AddIngredient(ing))
}

func (a *cliApp) attachImage(ctx context.Context, path string) {
	img, err := editor.ImageFromFile(path)
	if err != nil {
		a.log.Debug("attaching image: %v", err)
		a.say(ctx, fmt.Sprintf("%s ist kein lesbares Bild (GIF, JPEG oder PNG).", path))
		return
	}
	a.edit(ctx, img.Name, editor.AttachImage(img))
}

// edit applies ops to the draft and reports a rejection for subject.
func (a *cliApp) edit(ctx context.Context, subject string, ops ...editor.Op) {
	if outcome, ok := a.applyEdit(ctx, ops...); ok && !outcome.Ok() {
		a.say(ctx, outcomeMessage(outcome, subject))
	}
}

func (a *cliApp) editServings(ctx context.Context, op editor.Op) {
	if outcome, ok := a.applyEdit(ctx, op); ok && !outcome.Ok() {
		a.say(ctx, servingsMessage(outcome))
	}
}

// applyEdit runs ops against the draft and shows it when they took
// effect. ok is false when the edit failed with an error.
func (a *cliApp) applyEdit(ctx context.Context, ops ...editor.Op) (outcome editor.Outcome, ok bool) {
	outcome, err := a.engine.Edit(ctx, a.sessionID, ops...)
	if err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return outcome, false
	}
	if outcome.Ok() {
		a.showDraft(ctx)
	}
	return outcome, true
}

// servingsMessage explains a rejected change to the number of servings.
func servingsMessage(o editor.Outcome) string {
	if o == editor.OutOfBounds {
		return "Ein Rezept braucht mindestens eine Portion."
	}
	return outcomeMessage(o, "Portionen")
}

// outcomeMessage explains a rejected edit.
func outcomeMessage(o editor.Outcome, subject string) string {
	switch o {
	case editor.Applied:
		return subject + " geändert."
	case editor.Incomplete:
		return "Unvollständige Angabe für " + subject + "."
	case editor.Duplicate:
		return subject + " ist schon vorhanden."
	case editor.NotFound:
		return subject + " ist nicht im Rezept."
	case editor.OutOfBounds:
		return subject + " lässt sich nicht weiter verschieben."
	default:
		return "Änderung nicht möglich: " + o.String()
	}
}

func (a *cliApp) showDraft(ctx context.Context) {
	draft, err := a.engine.Draft(ctx, a.sessionID)
	if err != nil {
		return
	}
	for _, line := range display.RecipeLines(*draft) {
		a.ui.Println("  " + line)
	}
}

func (a *cliApp) save(ctx context.Context) {
	saved, err := a.engine.SubmitEdit(ctx, a.sessionID)
	if err != nil {
		var invalid *editor.ValidationError
		switch {
		case errors.Is(err, domain.ErrNoDraft):
			a.say(ctx, "Es wird gerade kein Rezept bearbeitet.")
		case errors.As(err, &invalid):
			a.say(ctx, "Noch nicht speicherbar, es fehlt: "+strings.Join(invalid.Missing, ", "))
		default:
			a.warn(ctx, fmt.Sprintf("Fehler beim Speichern: %v", err))
		}
		return
	}
	a.say(ctx, fmt.Sprintf("%s gespeichert (Version %d).", saved.Name, saved.Version))
}

func (a *cliApp) cancelEdit(ctx context.Context) {
	if err := a.engine.CancelEdit(ctx, a.sessionID); err != nil {
		if errors.Is(err, domain.ErrNoDraft) {
			a.say(ctx, "Es wird gerade kein Rezept bearbeitet.")
			return
		}
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return
	}
	a.say(ctx, "Änderungen verworfen.")
}

// ── Session ──────────────────────────────────────────────────────

func (a *cliApp) status(ctx context.Context) {
	session, err := a.engine.Status(ctx, a.sessionID)
	if err != nil {
		a.warn(ctx, fmt.Sprintf("Fehler: %v", err))
		return
	}

	a.ui.PrintHeading(fmt.Sprintf("Sitzung %s", session.ID[:8]))
	a.ui.PrintLine(fmt.Sprintf("Rezepte:  %d", len(session.Selected)))
	a.ui.PrintLine(fmt.Sprintf("Zutaten:  %d", len(session.ShoppingList)))
	if session.Editing() {
		a.ui.PrintLine("Entwurf:  " + session.Draft.Name)
	}
	a.ui.PrintHint("Seit " + session.StartedAt.Format("15:04"))
}

func (a *cliApp) endSession(ctx context.Context) {
	if a.sessionID == "" {
		return
	}
	if err := a.engine.EndSession(ctx, a.sessionID); err != nil {
		a.log.Error("ending session: %v", err)
	}
	a.sessionID = ""
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Befehle:")
	a.ui.PrintLine("list / recipes [kategorie]   Rezepte anzeigen")
	a.ui.PrintLine("categories                   Kategorien anzeigen")
	a.ui.PrintLine("show <rezept>                Rezept anzeigen")
	a.ui.PrintLine("1, 2, 3... / cart <rezept>   Rezept auf die Einkaufsliste setzen oder entfernen")
	a.ui.PrintLine("shop                         Einkaufsliste anzeigen")
	a.ui.PrintLine("delete <rezept>              Rezept löschen")
	a.ui.PrintLine("status                       Sitzung anzeigen")
	a.ui.PrintLine("help / quit                  Hilfe / beenden")
	a.ui.Println("")
	a.ui.PrintHeading("Bearbeiten:")
	a.ui.PrintLine("edit <rezept>                Entwurf öffnen")
	a.ui.PrintLine("add <menge> <einheit> <name> Zutat anhängen, z.B. 'add 200 g Mehl'")
	a.ui.PrintLine("remove / up / down <name>    Zutat entfernen oder verschieben")
	a.ui.PrintLine("tag / untag <kategorie>      Kategorie setzen oder entfernen")
	a.ui.PrintLine("servings <n> / more / fewer  Portionen ändern")
	a.ui.PrintLine("rename / describe / source   Name, Beschreibung, Quelle setzen")
	a.ui.PrintLine("image <datei> / unimage <n>  Bild setzen oder entfernen")
	a.ui.PrintLine("save / cancel                Entwurf speichern oder verwerfen")
	a.ui.PrintHint("Einheiten: " + strings.Join(domain.Units, ", "))
}
