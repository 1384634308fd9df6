// This file implements the page tree accessor: creation with sibling
// ordering, tree reads, partial updates with cycle-checked re-parenting,
// iterative cascade deletes, and the favorites-first listing.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/binder-notes/binder/pkg/types"
)

const pageColumns = "id, title, icon, cover, parent_id, workspace, sort_order, is_favorite, created_at, updated_at"

// CreatePage creates a page appended at the end of its sibling scope:
// pages sharing params.ParentID, or root pages of the same workspace. The
// page is born with one empty text block so it is immediately editable.
// Returns ErrInvalidReference if ParentID names no live page.
func (s *Store) CreatePage(params types.PageParams) (*types.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	title := params.Title
	if title == "" {
		title = "Untitled"
	}
	workspace := params.Workspace
	if workspace == "" {
		workspace = types.WorkspaceDocs
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if params.ParentID != nil {
		if err := pageExists(tx, *params.ParentID); err != nil {
			return nil, err
		}
		next, err = nextSortOrder(tx, "pages", "parent_id = ?", *params.ParentID)
	} else {
		next, err = nextSortOrder(tx, "pages", "parent_id IS NULL AND workspace = ?", workspace)
	}
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	page := &types.Page{
		ID:        newID(),
		Title:     title,
		Icon:      params.Icon,
		ParentID:  params.ParentID,
		Workspace: workspace,
		SortOrder: next,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var parent any
	if page.ParentID != nil {
		parent = *page.ParentID
	}
	_, err = tx.Exec(
		"INSERT INTO pages (id, title, icon, cover, parent_id, workspace, sort_order, is_favorite, created_at, updated_at) VALUES (?, ?, ?, '', ?, ?, ?, 0, ?, ?)",
		page.ID, page.Title, page.Icon, parent, page.Workspace, page.SortOrder,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting page: %w", err)
	}

	if err := insertDefaultBlock(tx, page.ID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing page: %w", err)
	}

	s.log.Debug().Str("page_id", page.ID).Str("workspace", workspace).Msg("page created")
	return page, nil
}

// GetPage retrieves a page with its ordered blocks and a shallow list of
// immediate children. Returns ErrNotFound if the id is unknown.
func (s *Store) GetPage(id string) (*types.PageDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	row := s.db.QueryRow("SELECT "+pageColumns+" FROM pages WHERE id = ?", id)
	page, err := hydratePage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting page %s: %w", id, err)
	}

	blocks, err := listBlocks(s.db, id)
	if err != nil {
		return nil, err
	}

	children, err := listChildren(s.db, id)
	if err != nil {
		return nil, err
	}

	return &types.PageDetail{Page: *page, Blocks: blocks, Children: children}, nil
}

// UpdatePage applies only the fields present in the partial update and
// stamps updated_at. Re-parenting validates that the new parent exists
// and is not the page itself or one of its descendants; violations are
// rejected with ErrInvalidReference before anything is written.
func (s *Store) UpdatePage(id string, update types.PageUpdate) (*types.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow("SELECT "+pageColumns+" FROM pages WHERE id = ?", id)
	page, err := hydratePage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting page %s: %w", id, err)
	}

	if update.IsZero() {
		return page, nil
	}

	var sets []string
	var args []any
	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *update.Icon)
	}
	if update.Cover != nil {
		sets = append(sets, "cover = ?")
		args = append(args, *update.Cover)
	}
	if update.ParentID != nil {
		if *update.ParentID == "" {
			sets = append(sets, "parent_id = NULL")
		} else {
			if err := checkReparent(tx, id, *update.ParentID); err != nil {
				return nil, err
			}
			sets = append(sets, "parent_id = ?")
			args = append(args, *update.ParentID)
		}
	}
	if update.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *update.SortOrder)
	}
	if update.IsFavorite != nil {
		sets = append(sets, "is_favorite = ?")
		args = append(args, *update.IsFavorite)
	}
	if update.Workspace != nil {
		sets = append(sets, "workspace = ?")
		args = append(args, *update.Workspace)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(nowUTC()), id)

	if _, err := tx.Exec("UPDATE pages SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, fmt.Errorf("updating page %s: %w", id, err)
	}

	row = tx.QueryRow("SELECT "+pageColumns+" FROM pages WHERE id = ?", id)
	page, err = hydratePage(row)
	if err != nil {
		return nil, fmt.Errorf("reloading page %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing page update: %w", err)
	}
	return page, nil
}

// DeletePage removes the page, its entire descendant subtree, and every
// block owned by pages in the deleted set. The subtree is collected fully
// before any delete statement runs, then blocks and pages go in one
// transaction. Deleting an already-absent id is a no-op.
func (s *Store) DeletePage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ids, err := collectSubtree(tx, id)
	if err != nil {
		return err
	}

	if err := deletePagesWithBlocks(tx, ids); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing page deletion: %w", err)
	}

	s.log.Debug().Str("page_id", id).Int("pages", len(ids)).Msg("page subtree deleted")
	return nil
}

// ReorderPages assigns sort_order = index for each id in the given
// sequence, in one transaction. Siblings omitted from the sequence keep
// their old sort_order.
func (s *Store) ReorderPages(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := assignOrder(tx, "pages", ids, ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing page reorder: %w", err)
	}
	return nil
}

// ListPages returns pages filtered by workspace when non-empty, favorites
// first, then manual sort_order, then most recently updated.
func (s *Store) ListPages(workspace string) ([]*types.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	query := "SELECT " + pageColumns + " FROM pages"
	var args []any
	if workspace != "" {
		query += " WHERE workspace = ?"
		args = append(args, workspace)
	}
	query += " ORDER BY is_favorite DESC, sort_order ASC, updated_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	pages := []*types.Page{}
	for rows.Next() {
		page, err := hydratePage(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating page: %w", err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

// pageExists verifies that id names a live page; a missing page is an
// ErrInvalidReference (the id was meant to name an owner or parent).
func pageExists(q querier, id string) error {
	var one int
	err := q.QueryRow("SELECT 1 FROM pages WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrInvalidReference
	}
	if err != nil {
		return fmt.Errorf("checking page %s: %w", id, err)
	}
	return nil
}

// checkReparent rejects a parent_id change that would break the tree:
// the new parent must exist and must not be the page itself or any
// descendant of it. The ancestor chain of the new parent is walked
// upward; hitting pageID means the new parent sits inside the subtree
// being moved.
func checkReparent(q querier, pageID, newParentID string) error {
	if newParentID == pageID {
		return types.ErrInvalidReference
	}

	cur := newParentID
	for {
		var parent sql.NullString
		err := q.QueryRow("SELECT parent_id FROM pages WHERE id = ?", cur).Scan(&parent)
		if errors.Is(err, sql.ErrNoRows) {
			if cur == newParentID {
				return types.ErrInvalidReference
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("walking ancestors of %s: %w", newParentID, err)
		}
		if !parent.Valid {
			return nil
		}
		if parent.String == pageID {
			return types.ErrInvalidReference
		}
		cur = parent.String
	}
}

// collectSubtree returns the ids of the page and all its descendants,
// walked iteratively with an explicit queue so deep trees cannot
// overflow the stack.
func collectSubtree(q querier, rootID string) ([]string, error) {
	ids := []string{rootID}
	queue := []string{rootID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		rows, err := q.Query("SELECT id FROM pages WHERE parent_id = ?", cur)
		if err != nil {
			return nil, fmt.Errorf("listing children of %s: %w", cur, err)
		}
		for rows.Next() {
			var childID string
			if err := rows.Scan(&childID); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning child of %s: %w", cur, err)
			}
			ids = append(ids, childID)
			queue = append(queue, childID)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterating children of %s: %w", cur, err)
		}
		rows.Close()
	}
	return ids, nil
}

// deletePagesWithBlocks deletes all blocks owned by the given pages, then
// the pages themselves. Shared by the page and database cascade paths.
func deletePagesWithBlocks(q querier, pageIDs []string) error {
	if len(pageIDs) == 0 {
		return nil
	}

	placeholders := make([]string, len(pageIDs))
	args := make([]any, len(pageIDs))
	for i, id := range pageIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	in := "(" + strings.Join(placeholders, ", ") + ")"

	if _, err := q.Exec("DELETE FROM blocks WHERE page_id IN "+in, args...); err != nil {
		return fmt.Errorf("deleting blocks: %w", err)
	}
	if _, err := q.Exec("DELETE FROM pages WHERE id IN "+in, args...); err != nil {
		return fmt.Errorf("deleting pages: %w", err)
	}
	return nil
}

// listChildren returns the shallow id/title/icon listing of a page's
// immediate children, ordered by sort_order.
func listChildren(q querier, pageID string) ([]*types.PageRef, error) {
	rows, err := q.Query(
		"SELECT id, title, icon FROM pages WHERE parent_id = ? ORDER BY sort_order",
		pageID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing children of %s: %w", pageID, err)
	}
	defer rows.Close()

	children := []*types.PageRef{}
	for rows.Next() {
		ref := &types.PageRef{}
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Icon); err != nil {
			return nil, fmt.Errorf("scanning child of %s: %w", pageID, err)
		}
		children = append(children, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating children of %s: %w", pageID, err)
	}
	return children, nil
}

// hydratePage converts a SQLite row into a *types.Page.
func hydratePage(rs rowScanner) (*types.Page, error) {
	var p types.Page
	var parent sql.NullString
	var createdAt, updatedAt string
	if err := rs.Scan(&p.ID, &p.Title, &p.Icon, &p.Cover, &parent, &p.Workspace,
		&p.SortOrder, &p.IsFavorite, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		p.ParentID = &parent.String
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

// touchPage stamps a page's updated_at; block mutations call this so the
// owning page reflects content recency.
func touchPage(q querier, pageID string, now time.Time) error {
	if _, err := q.Exec("UPDATE pages SET updated_at = ? WHERE id = ?", formatTime(now), pageID); err != nil {
		return fmt.Errorf("touching page %s: %w", pageID, err)
	}
	return nil
}
