package categories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/storage"
	"github.com/julianstephens/pomolit/internal/validation"
)

type CategoryAddCmd struct {
	Name   string `arg:"" help:"Category name."`
	Color  string `help:"Color key (emerald, blue, purple, amber, red, teal, pink, indigo, lime, orange). Defaults to the next palette color."`
	Target int    `help:"Optional daily target in minutes." default:"0"`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	existing, err := ctx.Store.GetAllCategoriesIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}

	color := c.Color
	if color == "" {
		color = models.NextColorKey(len(existing))
	}

	category := models.NewCategory(strings.TrimSpace(c.Name), color)
	category.TargetMinutes = c.Target
	if err := validation.ValidateCategory(category).Err(); err != nil {
		return err
	}

	if err := ctx.Store.AddCategory(category); err != nil {
		if errors.Is(err, storage.ErrDuplicateName) {
			return fmt.Errorf("a category named %q already exists", category.Name)
		}
		return fmt.Errorf("failed to add category: %w", err)
	}

	fmt.Printf("Added category: %s (%s, ID: %s)\n", category.Name, category.ColorKey, category.ID)
	return nil
}

type CategoryListCmd struct {
	All     bool `help:"Include deleted categories."`
	ShowIDs bool `help:"Show category IDs." name:"show-ids"`
}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	var categories []models.Category
	var err error
	if c.All {
		categories, err = ctx.Store.GetAllCategoriesIncludingDeleted()
	} else {
		categories, err = ctx.Store.GetAllCategories()
	}
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) == 0 {
		fmt.Println("No categories found")
		return nil
	}

	fmt.Println("Categories:")
	for _, category := range categories {
		status := "active"
		if category.DeletedAt != nil {
			status = "deleted"
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", category.ID)
		}

		targetStr := ""
		if category.TargetMinutes > 0 {
			targetStr = fmt.Sprintf(", target %dm/day", category.TargetMinutes)
		}

		fmt.Printf("  [%s] %s%s - %s%s\n", status, category.Name, idStr, category.ColorKey, targetStr)
	}
	return nil
}

type CategoryEditCmd struct {
	Category string  `arg:"" help:"Category name or ID."`
	Name     *string `help:"New name."`
	Color    *string `help:"New color key."`
	Target   *int    `help:"New daily target in minutes, 0 for none."`
}

func (c *CategoryEditCmd) Run(ctx *cli.Context) error {
	category, err := ctx.ResolveCategory(c.Category)
	if err != nil {
		return err
	}

	updated := false
	if c.Name != nil {
		category.Name = strings.TrimSpace(*c.Name)
		updated = true
	}
	if c.Color != nil {
		category.ColorKey = *c.Color
		updated = true
	}
	if c.Target != nil {
		category.TargetMinutes = *c.Target
		updated = true
	}
	if !updated {
		fmt.Println("No changes specified. Use --name, --color or --target.")
		return nil
	}

	if err := validation.ValidateCategory(category).Err(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateCategory(category); err != nil {
		if errors.Is(err, storage.ErrDuplicateName) {
			return fmt.Errorf("a category named %q already exists", category.Name)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	fmt.Printf("Updated category: %s (ID: %s)\n", category.Name, category.ID)
	return nil
}

type CategoryDeleteCmd struct {
	Category string `arg:"" help:"Category name or ID."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	category, err := ctx.ResolveCategory(c.Category)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteCategory(category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	fmt.Printf("Deleted category: %s (ID: %s)\n", category.Name, category.ID)
	fmt.Println("Its focus history is kept. Restore it with 'pomolit category restore'.")
	return nil
}

type CategoryRestoreCmd struct {
	Category string `arg:"" help:"Name or ID of a deleted category."`
}

func (c *CategoryRestoreCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllCategoriesIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}

	ref := strings.TrimSpace(c.Category)
	for _, category := range all {
		if category.DeletedAt == nil {
			continue
		}
		if category.ID != ref && !strings.EqualFold(category.Name, ref) {
			continue
		}
		if err := ctx.Store.RestoreCategory(category.ID); err != nil {
			if errors.Is(err, storage.ErrDuplicateName) {
				return fmt.Errorf("an active category named %q already exists", category.Name)
			}
			return fmt.Errorf("failed to restore category: %w", err)
		}
		fmt.Printf("Restored category: %s (ID: %s)\n", category.Name, category.ID)
		return nil
	}
	return fmt.Errorf("no deleted category found: %s", ref)
}
