package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/distincto/internal/client/models"
)

// noteField binds a prompt to one free-text field of a journal entry.
type noteField struct {
	name  string
	label string
	ptr   func(e *models.JournalEntry) *string
}

var noteFields = []noteField{
	{"medicationNotes", "Medication", func(e *models.JournalEntry) *string { return &e.MedicationNotes }},
	{"educationNotes", "Education", func(e *models.JournalEntry) *string { return &e.EducationNotes }},
	{"socialEngagementNotes", "Social engagement", func(e *models.JournalEntry) *string { return &e.SocialEngagementNotes }},
	{"sensoryProfileNotes", "Sensory profile", func(e *models.JournalEntry) *string { return &e.SensoryProfileNotes }},
	{"foodNutritionNotes", "Food & nutrition", func(e *models.JournalEntry) *string { return &e.FoodNutritionNotes }},
	{"behavioralNotes", "Behavior", func(e *models.JournalEntry) *string { return &e.BehavioralNotes }},
	{"magicMoments", "Magic moments", func(e *models.JournalEntry) *string { return &e.MagicMoments }},
}

func findNoteField(name string) (noteField, bool) {
	for _, f := range noteFields {
		if f.name == name {
			return f, true
		}
	}
	return noteField{}, false
}

func noteFieldNames() string {
	names := make([]string, len(noteFields))
	for i, f := range noteFields {
		names[i] = f.name
	}
	return strings.Join(names, ", ")
}

func (a *App) Journal(ctx context.Context, args []string) error {
	if err := a.requireUnlocked(); err != nil {
		return err
	}
	sub, rest := split(args)

	switch sub {
	case "add":
		return a.journalAdd(ctx)
	case "list", "":
		return a.journalList(ctx, optional(rest))
	case "show":
		return a.withID(ctx, rest, "journal show <id>", a.journalShow)
	case "edit":
		return a.withID(ctx, rest, "journal edit <id>", a.journalEdit)
	case "delete":
		return a.withID(ctx, rest, "journal delete <id>", a.journalDelete)
	}
	return a.usage("journal add | list [child] | show <id> | edit <id> | delete <id>")
}

func (a *App) journalAdd(ctx context.Context) error {
	child, err := GetTextOr(a.reader, "Child name", a.lastChild, a.out)
	if err != nil {
		return a.fail(ctx, "journal add", err)
	}

	e := models.JournalEntry{ChildName: child}
	for _, f := range noteFields {
		text, err := GetMultiline(a.reader, f.label+" notes", a.out)
		if err != nil {
			return a.fail(ctx, "journal add", err)
		}
		*f.ptr(&e) = text
	}

	saved, err := a.journal.Save(ctx, e)
	if err != nil {
		return a.fail(ctx, "journal add", err)
	}
	a.lastChild = saved.ChildName
	a.printf("Saved entry %s\n", saved.ID)
	return nil
}

func (a *App) journalEdit(ctx context.Context, id string) error {
	e, err := a.journal.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, "journal edit", err)
	}
	if e == nil {
		return a.notFound("entry", id)
	}

	for _, f := range noteFields {
		cur := f.ptr(e)
		if *cur != "" {
			a.printf("%s (current):\n%s\n", f.label, *cur)
		}
		text, err := GetMultiline(a.reader, f.label+" notes, empty keeps the current text", a.out)
		if err != nil {
			return a.fail(ctx, "journal edit", err)
		}
		if text != "" {
			*cur = text
		}
	}

	if _, err := a.journal.Save(ctx, *e); err != nil {
		return a.fail(ctx, "journal edit", err)
	}
	a.printf("Updated entry %s\n", id)
	return nil
}

func (a *App) journalList(ctx context.Context, child string) error {
	entries, err := a.journal.List(ctx, child)
	if err != nil {
		return a.fail(ctx, "journal list", err)
	}
	if len(entries) == 0 {
		a.println("No entries.")
		return nil
	}
	for _, e := range entries {
		a.printf("%s  %s  %-10s %s%s\n", e.ID, e.Time().Format("2006-01-02 15:04"), e.ChildName, summary(e), syncMark(e.Synced))
	}
	return nil
}

func (a *App) journalShow(ctx context.Context, id string) error {
	e, err := a.journal.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, "journal show", err)
	}
	if e == nil {
		return a.notFound("entry", id)
	}

	a.printf("%s, %s%s\n", e.ChildName, e.Time().Format("Mon 2 Jan 2006 15:04"), syncMark(e.Synced))
	for _, f := range noteFields {
		if v := *f.ptr(e); v != "" {
			a.printf("\n%s:\n%s\n", f.label, v)
		}
	}
	return nil
}

func (a *App) journalDelete(ctx context.Context, id string) error {
	if err := a.journal.Delete(ctx, id); err != nil {
		return a.fail(ctx, "journal delete", err)
	}
	a.println("Deleted.")
	return nil
}

// summary is the first non-empty note, cut to one short line.
func summary(e *models.JournalEntry) string {
	for _, f := range noteFields {
		if v := strings.TrimSpace(*f.ptr(e)); v != "" {
			v = strings.SplitN(v, "\n", 2)[0]
			if len(v) > 48 {
				v = v[:45] + "..."
			}
			return v
		}
	}
	return "(empty)"
}

func syncMark(synced bool) string {
	if synced {
		return ""
	}
	return "  *"
}

// split separates a subcommand from its arguments.
func split(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

func optional(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.Join(args, " ")
}

func (a *App) withID(ctx context.Context, args []string, usage string, fn func(context.Context, string) error) error {
	if len(args) != 1 {
		return a.usage(usage)
	}
	return fn(ctx, args[0])
}

func (a *App) usage(s string) error {
	a.println("Usage:", s)
	return errUsage
}

func (a *App) notFound(what, id string) error {
	a.printf("No %s with id %s.\n", what, id)
	return fmt.Errorf("%s %s: %w", what, id, errNotFound)
}
