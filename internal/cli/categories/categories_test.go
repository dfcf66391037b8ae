package categories

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return &cli.Context{Store: store}
}

func TestCategoryAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&CategoryAddCmd{Name: "  Writing "}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	category, err := ctx.Store.GetCategoryByName("Writing")
	if err != nil {
		t.Fatalf("added category not found: %v", err)
	}
	// Four seeded categories take the first four palette colors.
	if category.ColorKey != "red" {
		t.Errorf("expected next palette color red, got %s", category.ColorKey)
	}

	tests := []struct {
		name string
		cmd  CategoryAddCmd
	}{
		{"duplicate name", CategoryAddCmd{Name: "writing"}},
		{"empty name", CategoryAddCmd{Name: "   "}},
		{"unknown color", CategoryAddCmd{Name: "Music", Color: "chartreuse"}},
		{"negative target", CategoryAddCmd{Name: "Music", Target: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected add to fail")
			}
		})
	}
}

func TestCategoryEditCmd(t *testing.T) {
	ctx := setupTestDB(t)

	name := "Deep Work"
	target := 120
	if err := (&CategoryEditCmd{Category: "work", Name: &name, Target: &target}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	category, err := ctx.Store.GetCategoryByName("Deep Work")
	if err != nil {
		t.Fatalf("renamed category not found: %v", err)
	}
	if category.TargetMinutes != 120 {
		t.Errorf("expected target 120, got %d", category.TargetMinutes)
	}

	clash := "Study"
	if err := (&CategoryEditCmd{Category: "Deep Work", Name: &clash}).Run(ctx); err == nil {
		t.Error("expected rename onto an existing name to fail")
	}
}

func TestCategoryDeleteAndRestore(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&CategoryDeleteCmd{Category: "Reading"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctx.ResolveCategory("Reading"); err == nil {
		t.Error("deleted category should not resolve")
	}
	if err := (&CategoryDeleteCmd{Category: "Reading"}).Run(ctx); err == nil {
		t.Error("expected deleting twice to fail")
	}
	if err := (&CategoryListCmd{All: true, ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}

	if err := (&CategoryRestoreCmd{Category: "reading"}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if _, err := ctx.ResolveCategory("Reading"); err != nil {
		t.Errorf("restored category should resolve: %v", err)
	}
	if err := (&CategoryRestoreCmd{Category: "Reading"}).Run(ctx); err == nil {
		t.Error("expected restoring an active category to fail")
	}
}
