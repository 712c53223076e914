package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/services"
	"github.com/dmitrijs2005/distincto/internal/filex"
)

func (a *App) Food(ctx context.Context, args []string) error {
	sub, rest := split(args)

	switch sub {
	case "add":
		return a.foodAdd(ctx)
	case "list", "":
		return a.foodList(ctx, optional(rest))
	case "move":
		if len(rest) != 2 {
			return a.usage("food move <id> <new|safe|sometimes|notYet>")
		}
		return a.foodMove(ctx, rest[0], rest[1])
	case "image":
		if len(rest) != 2 {
			return a.usage("food image <id> <output file>")
		}
		return a.foodImage(ctx, rest[0], rest[1])
	case "delete":
		return a.withID(ctx, rest, "food delete <id>", a.foodDelete)
	}
	return a.usage("food add | list [child] | move <id> <category> | image <id> <file> | delete <id>")
}

func (a *App) foodAdd(ctx context.Context) error {
	child, err := GetTextOr(a.reader, "Child name", a.lastChild, a.out)
	if err != nil {
		return a.fail(ctx, "food add", err)
	}
	name, err := GetSimpleText(a.reader, "Food", a.out)
	if err != nil {
		return a.fail(ctx, "food add", err)
	}
	category, err := GetTextOr(a.reader, "Category (new, safe, sometimes, notYet)", string(models.FoodCategoryNew), a.out)
	if err != nil {
		return a.fail(ctx, "food add", err)
	}
	notes, err := GetSimpleText(a.reader, "Notes", a.out)
	if err != nil {
		return a.fail(ctx, "food add", err)
	}
	imagePath, err := GetSimpleText(a.reader, "Image file (optional)", a.out)
	if err != nil {
		return a.fail(ctx, "food add", err)
	}

	var img *services.Image
	if imagePath != "" {
		data, err := filex.ReadLimited(imagePath, maxAttachment)
		if err != nil {
			return a.fail(ctx, "food add", err)
		}
		img = &services.Image{Name: filepath.Base(imagePath), Data: data}
	}

	item, err := a.food.Add(ctx, models.FoodItem{
		ChildName: child,
		Name:      name,
		Category:  models.FoodCategory(category),
		Notes:     notes,
	}, img)
	if err != nil {
		return a.fail(ctx, "food add", err)
	}
	a.lastChild = item.ChildName
	a.printf("Saved %s (%s)\n", item.Name, item.ID)
	return nil
}

func (a *App) foodList(ctx context.Context, child string) error {
	board, err := a.food.Board(ctx, child)
	if err != nil {
		return a.fail(ctx, "food list", err)
	}

	empty := true
	for _, c := range models.FoodCategories {
		items := board[c]
		if len(items) == 0 {
			continue
		}
		empty = false
		a.printf("%s:\n", c)
		for _, it := range items {
			pic := ""
			if it.ImageFile != "" {
				pic = "  [image]"
			}
			a.printf("  %s  %-10s %s%s%s\n", it.ID, it.ChildName, it.Name, pic, syncMark(it.Synced))
		}
	}
	if empty {
		a.println("No food items.")
	}
	return nil
}

func (a *App) foodMove(ctx context.Context, id, category string) error {
	c, err := models.ParseFoodCategory(category)
	if err != nil {
		return a.fail(ctx, "food move", err)
	}
	item, err := a.food.Move(ctx, id, c)
	if err != nil {
		return a.fail(ctx, "food move", err)
	}
	if item == nil {
		return a.notFound("food item", id)
	}
	a.printf("%s is now %s\n", item.Name, item.Category)
	return nil
}

func (a *App) foodImage(ctx context.Context, id, out string) error {
	b, err := a.food.Image(ctx, id)
	if err != nil {
		return a.fail(ctx, "food image", err)
	}
	if b == nil {
		return a.notFound("image for food item", id)
	}
	if err := os.WriteFile(out, b.Data, 0o600); err != nil {
		return a.fail(ctx, "food image", err)
	}
	a.printf("Wrote %d bytes (%s) to %s\n", len(b.Data), b.MimeType, out)
	return nil
}

func (a *App) foodDelete(ctx context.Context, id string) error {
	if err := a.food.Delete(ctx, id); err != nil {
		return a.fail(ctx, "food delete", err)
	}
	a.println("Deleted.")
	return nil
}
