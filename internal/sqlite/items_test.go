// Tests for items: backing page creation in the hidden workspace,
// property merge semantics, title sync, cascade delete, and reorder.
package sqlite

import (
	"errors"
	"testing"

	"github.com/binder-notes/binder/pkg/types"
)

func TestCreateItemWithBackingPage(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	item, err := store.CreateItem(db.ID, types.ItemParams{Title: "Ship it"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if item.PageID == nil {
		t.Fatal("expected backing page")
	}

	detail, err := store.GetPage(*item.PageID)
	if err != nil {
		t.Fatalf("GetPage on backing page failed: %v", err)
	}
	if detail.Workspace != types.WorkspaceItemBacking {
		t.Errorf("expected hidden workspace %q, got %q", types.WorkspaceItemBacking, detail.Workspace)
	}
	if detail.Title != "Ship it" {
		t.Errorf("backing page title mismatch: %q", detail.Title)
	}
	if len(detail.Blocks) != 1 {
		t.Errorf("expected default block on backing page, got %d", len(detail.Blocks))
	}

	// Backing pages do not appear in ordinary workspace listings.
	pages, _ := store.ListPages(types.WorkspaceItemBacking)
	if len(pages) != 1 {
		t.Errorf("expected backing page reachable only by its workspace, got %d", len(pages))
	}
}

func TestCreateItemDefaults(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	item, err := store.CreateItem(db.ID, types.ItemParams{})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if item.Title != "Untitled" {
		t.Errorf("expected default title, got %q", item.Title)
	}
	if item.Properties == nil || len(item.Properties) != 0 {
		t.Errorf("expected empty properties map, got %#v", item.Properties)
	}
	if item.SortOrder != 1 {
		t.Errorf("expected sort_order 1, got %d", item.SortOrder)
	}
}

func TestCreateItemUnknownDatabase(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreateItem("missing1", types.ItemParams{Title: "Lost"}); !errors.Is(err, types.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestUpdateItemMergesProperties(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	item, _ := store.CreateItem(db.ID, types.ItemParams{
		Title:      "Task",
		Properties: map[string]any{"status": "todo", "priority": "high"},
	})

	updated, err := store.UpdateItem(item.ID, types.ItemUpdate{
		Properties: map[string]any{"status": "done"},
	})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if updated.Properties["status"] != "done" {
		t.Errorf("merged key not updated: %v", updated.Properties["status"])
	}
	if updated.Properties["priority"] != "high" {
		t.Errorf("merge dropped untouched key: %v", updated.Properties["priority"])
	}
}

func TestUpdateItemSyncsBackingPageTitle(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	item, _ := store.CreateItem(db.ID, types.ItemParams{Title: "Old name"})

	title := "New name"
	if _, err := store.UpdateItem(item.ID, types.ItemUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	detail, err := store.GetPage(*item.PageID)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if detail.Title != "New name" {
		t.Errorf("backing page title not synced: %q", detail.Title)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	store := newTestStore(t)

	title := "Ghost"
	if _, err := store.UpdateItem("missing1", types.ItemUpdate{Title: &title}); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItemCascadesBackingPage(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	item, _ := store.CreateItem(db.ID, types.ItemParams{Title: "Done"})
	backingPage := *item.PageID

	if err := store.DeleteItem(item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	if _, err := store.GetPage(backingPage); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("backing page survived item delete: %v", err)
	}
	detail, _ := store.GetDatabase(db.ID)
	if len(detail.Items) != 0 {
		t.Errorf("item still listed after delete: %d", len(detail.Items))
	}

	if err := store.DeleteItem("missing1"); err != nil {
		t.Errorf("expected no-op for unknown id, got %v", err)
	}
}

func TestReorderItems(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	a, _ := store.CreateItem(db.ID, types.ItemParams{Title: "A"})
	b, _ := store.CreateItem(db.ID, types.ItemParams{Title: "B"})
	c, _ := store.CreateItem(db.ID, types.ItemParams{Title: "C"})

	if err := store.ReorderItems(db.ID, []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("ReorderItems failed: %v", err)
	}

	detail, err := store.GetDatabase(db.ID)
	if err != nil {
		t.Fatalf("GetDatabase failed: %v", err)
	}
	want := []string{c.ID, a.ID, b.ID}
	for i := range want {
		if detail.Items[i].ID != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], detail.Items[i].ID)
		}
	}
}

func TestReorderItemsScopedToDatabase(t *testing.T) {
	store := newTestStore(t)

	db, _ := store.CreateDatabase(types.DatabaseParams{Title: "Tasks"})
	other, _ := store.CreateDatabase(types.DatabaseParams{Title: "Other"})
	foreign, _ := store.CreateItem(other.ID, types.ItemParams{Title: "Foreign"})

	if err := store.ReorderItems(db.ID, []string{foreign.ID}); err != nil {
		t.Fatalf("ReorderItems failed: %v", err)
	}

	detail, _ := store.GetDatabase(other.ID)
	if detail.Items[0].SortOrder != foreign.SortOrder {
		t.Error("reorder leaked across databases")
	}
}
