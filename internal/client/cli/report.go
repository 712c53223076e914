package cli

import (
	"context"

	"github.com/dmitrijs2005/distincto/internal/client/models"
)

func (a *App) Report(ctx context.Context, args []string) error {
	if err := a.requireUnlocked(); err != nil {
		return err
	}
	sub, rest := split(args)

	switch sub {
	case "generate":
		if len(rest) == 0 {
			return a.usage("report generate <pattern|trend|summary|recommendations> [child]")
		}
		return a.reportGenerate(ctx, rest[0], optional(rest[1:]))
	case "list", "":
		return a.reportList(ctx, optional(rest))
	case "show":
		return a.withID(ctx, rest, "report show <id>", a.reportShow)
	case "delete":
		return a.withID(ctx, rest, "report delete <id>", a.reportDelete)
	}
	return a.usage("report generate <type> [child] | list [child] | show <id> | delete <id>")
}

func (a *App) reportGenerate(ctx context.Context, typ, child string) error {
	t, err := models.ParseReportType(typ)
	if err != nil {
		return a.fail(ctx, "report generate", err)
	}
	r, err := a.reports.Generate(ctx, t, child)
	if err != nil {
		return a.fail(ctx, "report generate", err)
	}
	a.printf("Report %s from %d entries\n\n%s\n", r.ID, len(r.GeneratedFrom), r.Content)
	return nil
}

func (a *App) reportList(ctx context.Context, child string) error {
	rs, err := a.reports.List(ctx, child)
	if err != nil {
		return a.fail(ctx, "report list", err)
	}
	if len(rs) == 0 {
		a.println("No reports.")
		return nil
	}
	for _, r := range rs {
		a.printf("%s  %s  %-16s %s\n", r.ID, models.TimeOf(r.Timestamp).Format("2006-01-02 15:04"), r.Type, r.ChildName)
	}
	return nil
}

func (a *App) reportShow(ctx context.Context, id string) error {
	r, err := a.reports.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, "report show", err)
	}
	if r == nil {
		return a.notFound("report", id)
	}
	a.println(r.Content)
	return nil
}

func (a *App) reportDelete(ctx context.Context, id string) error {
	if err := a.reports.Delete(ctx, id); err != nil {
		return a.fail(ctx, "report delete", err)
	}
	a.println("Deleted.")
	return nil
}
