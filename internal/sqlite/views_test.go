// Tests for views: creation defaults, ordering, and wholesale config
// replacement on update.
package sqlite

import (
	"errors"
	"testing"

	"github.com/binder-notes/binder/pkg/types"
)

func TestCreateViewDefaults(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	view, err := store.CreateView(db.ID, types.ViewParams{})
	if err != nil {
		t.Fatalf("CreateView failed: %v", err)
	}
	if view.Name != "New View" {
		t.Errorf("expected default name, got %q", view.Name)
	}
	if view.Type != types.ViewTable {
		t.Errorf("expected default type %q, got %q", types.ViewTable, view.Type)
	}
	if view.Config == nil || len(view.Config) != 0 {
		t.Errorf("expected empty config, got %#v", view.Config)
	}
	// The database's default view holds sort_order 0.
	if view.SortOrder != 1 {
		t.Errorf("expected sort_order 1 after the default view, got %d", view.SortOrder)
	}
}

func TestCreateViewUnknownDatabase(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreateView("missing1", types.ViewParams{Name: "Lost"}); !errors.Is(err, types.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestViewsOrderedBySortOrder(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	second, _ := store.CreateView(db.ID, types.ViewParams{Name: "Second"})
	third, _ := store.CreateView(db.ID, types.ViewParams{Name: "Third"})

	detail, err := store.GetDatabase(db.ID)
	if err != nil {
		t.Fatalf("GetDatabase failed: %v", err)
	}
	if len(detail.Views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(detail.Views))
	}
	if detail.Views[0].Name != "Default" || detail.Views[1].ID != second.ID || detail.Views[2].ID != third.ID {
		t.Errorf("views out of order: %q, %q, %q",
			detail.Views[0].Name, detail.Views[1].Name, detail.Views[2].Name)
	}
}

func TestUpdateViewReplacesConfig(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	view, _ := store.CreateView(db.ID, types.ViewParams{
		Name:   "Board",
		Type:   types.ViewBoard,
		Config: map[string]any{"group_by": "status", "hidden": []any{"priority"}},
	})

	updated, err := store.UpdateView(view.ID, types.ViewUpdate{
		Config: map[string]any{"group_by": "assignee"},
	})
	if err != nil {
		t.Fatalf("UpdateView failed: %v", err)
	}
	if updated.Config["group_by"] != "assignee" {
		t.Errorf("config key not replaced: %v", updated.Config["group_by"])
	}
	if _, ok := updated.Config["hidden"]; ok {
		t.Error("config replacement should drop keys absent from the update")
	}
}

func TestUpdateViewNameAndType(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	view, _ := store.CreateView(db.ID, types.ViewParams{Name: "Plain"})

	name := "Kanban"
	viewType := types.ViewBoard
	updated, err := store.UpdateView(view.ID, types.ViewUpdate{Name: &name, Type: &viewType})
	if err != nil {
		t.Fatalf("UpdateView failed: %v", err)
	}
	if updated.Name != name || updated.Type != viewType {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestUpdateViewNotFound(t *testing.T) {
	store := newTestStore(t)

	name := "Ghost"
	if _, err := store.UpdateView("missing1", types.ViewUpdate{Name: &name}); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
