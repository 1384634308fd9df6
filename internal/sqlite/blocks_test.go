// Tests for the block list: creation with positional insert, wholesale
// property replacement on update, deletion, and reordering.
package sqlite

import (
	"errors"
	"testing"

	"github.com/binder-notes/binder/pkg/types"
)

func TestCreateBlockAppends(t *testing.T) {
	store := newTestStore(t)

	page, _ := store.CreatePage(types.PageParams{Title: "Doc"})

	first, err := store.CreateBlock(page.ID, types.BlockParams{Content: "one"})
	if err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	if first.Type != types.BlockText {
		t.Errorf("expected default type %q, got %q", types.BlockText, first.Type)
	}

	second, err := store.CreateBlock(page.ID, types.BlockParams{Type: types.BlockHeading1, Content: "two"})
	if err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	if second.SortOrder != first.SortOrder+1 {
		t.Errorf("expected append after %d, got %d", first.SortOrder, second.SortOrder)
	}
}

func TestCreateBlockAfter(t *testing.T) {
	store := newTestStore(t)

	page, _ := store.CreatePage(types.PageParams{Title: "Doc"})
	a, _ := store.CreateBlock(page.ID, types.BlockParams{Content: "a"})
	b, _ := store.CreateBlock(page.ID, types.BlockParams{Content: "b"})

	mid, err := store.CreateBlock(page.ID, types.BlockParams{Content: "between", AfterID: a.ID})
	if err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	if mid.SortOrder != a.SortOrder+1 {
		t.Errorf("expected sort_order %d, got %d", a.SortOrder+1, mid.SortOrder)
	}

	blocks, err := store.ListBlocks(page.ID)
	if err != nil {
		t.Fatalf("ListBlocks failed: %v", err)
	}
	var order []string
	for _, blk := range blocks {
		order = append(order, blk.Content)
		if blk.ID == b.ID && blk.SortOrder != b.SortOrder+1 {
			t.Errorf("trailing block not shifted: got %d, want %d", blk.SortOrder, b.SortOrder+1)
		}
	}
	// Default block, then a, between, b.
	want := []string{"", "a", "between", "b"}
	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(blocks))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("block order mismatch: got %v, want %v", order, want)
		}
	}
}

func TestCreateBlockUnknownAfterIDAppends(t *testing.T) {
	store := newTestStore(t)

	page, _ := store.CreatePage(types.PageParams{Title: "Doc"})
	a, _ := store.CreateBlock(page.ID, types.BlockParams{Content: "a"})

	tail, err := store.CreateBlock(page.ID, types.BlockParams{Content: "tail", AfterID: "missing1"})
	if err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	if tail.SortOrder != a.SortOrder+1 {
		t.Errorf("expected append, got sort_order %d", tail.SortOrder)
	}
}

func TestCreateBlockUnknownPage(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateBlock("missing1", types.BlockParams{Content: "lost"})
	if !errors.Is(err, types.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestUpdateBlockReplacesProperties(t *testing.T) {
	store := newTestStore(t)

	page, _ := store.CreatePage(types.PageParams{Title: "Doc"})
	block, _ := store.CreateBlock(page.ID, types.BlockParams{
		Type:       types.BlockTodo,
		Content:    "buy milk",
		Properties: map[string]any{"checked": false, "color": "red"},
	})

	updated, err := store.UpdateBlock(block.ID, types.BlockUpdate{
		Properties: map[string]any{"checked": true},
	})
	if err != nil {
		t.Fatalf("UpdateBlock failed: %v", err)
	}
	if !updated.Checked() {
		t.Error("checked flag not set")
	}
	if _, ok := updated.Properties["color"]; ok {
		t.Error("property replacement should drop keys absent from the update")
	}
	if updated.Content != "buy milk" {
		t.Errorf("untouched content changed: %q", updated.Content)
	}
}

func TestUpdateBlockContentAndType(t *testing.T) {
	store := newTestStore(t)

	page, _ := store.CreatePage(types.PageParams{Title: "Doc"})
	block, _ := store.CreateBlock(page.ID, types.BlockParams{Content: "plain"})

	content := "# heading"
	blockType := types.BlockHeading1
	updated, err := store.UpdateBlock(block.ID, types.BlockUpdate{Content: &content, Type: &blockType})
	if err != nil {
		t.Fatalf("UpdateBlock failed: %v", err)
	}
	if updated.Content != content || updated.Type != blockType {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestUpdateBlockNotFound(t *testing.T) {
	store := newTestStore(t)

	content := "ghost"
	if _, err := store.UpdateBlock("missing1", types.BlockUpdate{Content: &content}); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBlock(t *testing.T) {
	store := newTestStore(t)

	page, _ := store.CreatePage(types.PageParams{Title: "Doc"})
	block, _ := store.CreateBlock(page.ID, types.BlockParams{Content: "gone"})

	if err := store.DeleteBlock(block.ID); err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}

	blocks, _ := store.ListBlocks(page.ID)
	for _, b := range blocks {
		if b.ID == block.ID {
			t.Error("block still present after delete")
		}
	}

	if err := store.DeleteBlock("missing1"); err != nil {
		t.Errorf("expected no-op for unknown id, got %v", err)
	}
}

func TestReorderBlocks(t *testing.T) {
	store := newTestStore(t)

	page, _ := store.CreatePage(types.PageParams{Title: "Doc"})
	detail, _ := store.GetPage(page.ID)
	seed := detail.Blocks[0]
	a, _ := store.CreateBlock(page.ID, types.BlockParams{Content: "a"})
	b, _ := store.CreateBlock(page.ID, types.BlockParams{Content: "b"})

	if err := store.ReorderBlocks(page.ID, []string{b.ID, a.ID, seed.ID}); err != nil {
		t.Fatalf("ReorderBlocks failed: %v", err)
	}

	blocks, err := store.ListBlocks(page.ID)
	if err != nil {
		t.Fatalf("ListBlocks failed: %v", err)
	}
	want := []string{b.ID, a.ID, seed.ID}
	for i := range want {
		if blocks[i].ID != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], blocks[i].ID)
		}
	}
}

func TestReorderBlocksScopedToPage(t *testing.T) {
	store := newTestStore(t)

	page, _ := store.CreatePage(types.PageParams{Title: "Doc"})
	other, _ := store.CreatePage(types.PageParams{Title: "Other"})
	foreign, _ := store.CreateBlock(other.ID, types.BlockParams{Content: "foreign"})

	if err := store.ReorderBlocks(page.ID, []string{foreign.ID}); err != nil {
		t.Fatalf("ReorderBlocks failed: %v", err)
	}

	blocks, _ := store.ListBlocks(other.ID)
	for _, blk := range blocks {
		if blk.ID == foreign.ID && blk.SortOrder != foreign.SortOrder {
			t.Error("reorder leaked across pages")
		}
	}
}
