// End-to-end workflow test exercising the full surface in one session:
// a page tree with blocks, a projects database with items and a board
// view, search across all three kinds, and the delete cascades.
package sqlite

import (
	"errors"
	"testing"

	"github.com/binder-notes/binder/pkg/types"
)

func TestWorkflowPlanningSession(t *testing.T) {
	store := newTestStore(t)

	// Build a small docs tree.
	home, err := store.CreatePage(types.PageParams{Title: "Team Home", Icon: "🏠"})
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	meetings, err := store.CreatePage(types.PageParams{Title: "Meetings", ParentID: &home.ID})
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	standup, err := store.CreatePage(types.PageParams{Title: "Standup 2026-08-31", ParentID: &meetings.ID})
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	if _, err := store.CreateBlock(standup.ID, types.BlockParams{
		Type:    types.BlockHeading2,
		Content: "Agenda",
	}); err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}
	todo, err := store.CreateBlock(standup.ID, types.BlockParams{
		Type:       types.BlockTodo,
		Content:    "Review the roadmap",
		Properties: map[string]any{"checked": false},
	})
	if err != nil {
		t.Fatalf("CreateBlock failed: %v", err)
	}

	// A standalone page whose title matches the later search.
	if _, err := store.CreatePage(types.PageParams{Title: "Roadmap overview"}); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	// Track the work in a projects database.
	roadmap, err := store.CreateDatabase(types.DatabaseParams{Title: "Roadmap", Icon: "🗺️"})
	if err != nil {
		t.Fatalf("CreateDatabase failed: %v", err)
	}
	q1, err := store.CreateItem(roadmap.ID, types.ItemParams{
		Title:      "Roadmap: Q1 stabilization",
		Properties: map[string]any{"status": "In Progress"},
	})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	q2, err := store.CreateItem(roadmap.ID, types.ItemParams{Title: "Q2 launch"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	// Flesh out the Q1 item on its backing page.
	if _, err := store.CreateBlock(*q1.PageID, types.BlockParams{
		Content: "Fix the flaky importer before anything else",
	}); err != nil {
		t.Fatalf("CreateBlock on backing page failed: %v", err)
	}

	// Check the todo off and mark the page a favorite.
	if _, err := store.UpdateBlock(todo.ID, types.BlockUpdate{
		Properties: map[string]any{"checked": true},
	}); err != nil {
		t.Fatalf("UpdateBlock failed: %v", err)
	}
	fav := true
	if _, err := store.UpdatePage(standup.ID, types.PageUpdate{IsFavorite: &fav}); err != nil {
		t.Fatalf("UpdatePage failed: %v", err)
	}

	// Search sees the overview page by title, the standup block by
	// content, and the item by title. The item's backing page matches too
	// but stays hidden.
	results, err := store.Search("roadmap")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	var kinds []string
	for _, r := range results {
		kinds = append(kinds, r.Type)
	}
	if len(results) != 3 {
		t.Fatalf("expected page, block, and item hits, got %v", kinds)
	}
	wantKinds := []string{types.ResultPage, types.ResultBlock, types.ResultItem}
	for i, kind := range wantKinds {
		if results[i].Type != kind {
			t.Errorf("result %d: expected %q, got %q", i, kind, results[i].Type)
		}
	}
	if results[2].DBTitle != "Roadmap" {
		t.Errorf("item hit missing database title: %+v", results[2])
	}

	// Reorder the roadmap and verify.
	if err := store.ReorderItems(roadmap.ID, []string{q2.ID, q1.ID}); err != nil {
		t.Fatalf("ReorderItems failed: %v", err)
	}
	detail, err := store.GetDatabase(roadmap.ID)
	if err != nil {
		t.Fatalf("GetDatabase failed: %v", err)
	}
	if detail.Items[0].ID != q2.ID {
		t.Errorf("reorder not applied: first item %q", detail.Items[0].Title)
	}

	// Tear down the database; backing pages go with it, the docs tree stays.
	q1Page := *q1.PageID
	if err := store.DeleteDatabase(roadmap.ID); err != nil {
		t.Fatalf("DeleteDatabase failed: %v", err)
	}
	if _, err := store.GetPage(q1Page); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("backing page survived database delete: %v", err)
	}
	if _, err := store.GetPage(standup.ID); err != nil {
		t.Errorf("docs tree damaged by database delete: %v", err)
	}

	// Delete the tree root; everything under it vanishes.
	if err := store.DeletePage(home.ID); err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	for _, id := range []string{home.ID, meetings.ID, standup.ID} {
		if _, err := store.GetPage(id); !errors.Is(err, types.ErrNotFound) {
			t.Errorf("page %s survived cascade: %v", id, err)
		}
	}
	pages, err := store.ListPages("")
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(pages) != 1 || pages[0].Title != "Roadmap overview" {
		t.Errorf("expected only the overview page to remain, got %d pages", len(pages))
	}
}
