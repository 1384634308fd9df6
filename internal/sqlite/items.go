// This file implements the item accessor. Each item carries a backing
// page in the hidden "_db_item" workspace so its long-form content is
// editable like any other page; the item row and its page are kept in
// step on create, rename, and delete.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/binder-notes/binder/pkg/types"
)

const itemColumns = "id, database_id, page_id, title, icon, properties, sort_order, created_at, updated_at"

// CreateItem appends an item to a database and creates its backing page.
// Returns ErrInvalidReference when the database does not exist.
func (s *Store) CreateItem(databaseID string, params types.ItemParams) (*types.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	title := params.Title
	if title == "" {
		title = "Untitled"
	}
	props := params.Properties
	if props == nil {
		props = map[string]any{}
	}
	propsJSON, err := marshalBag(props)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := databaseExists(tx, databaseID); err != nil {
		return nil, err
	}

	order, err := nextSortOrder(tx, "db_items", "database_id = ?", databaseID)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	pageID := newID()
	_, err = tx.Exec(
		"INSERT INTO pages (id, title, icon, cover, parent_id, workspace, sort_order, is_favorite, created_at, updated_at) VALUES (?, ?, '', '', NULL, ?, 0, 0, ?, ?)",
		pageID, title, types.WorkspaceItemBacking, formatTime(now), formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting backing page: %w", err)
	}
	if err := insertDefaultBlock(tx, pageID, now); err != nil {
		return nil, err
	}

	item := &types.Item{
		ID:         newID(),
		DatabaseID: databaseID,
		PageID:     &pageID,
		Title:      title,
		Icon:       params.Icon,
		Properties: props,
		SortOrder:  order,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err = tx.Exec(
		"INSERT INTO db_items (id, database_id, page_id, title, icon, properties, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		item.ID, databaseID, pageID, title, item.Icon, propsJSON, order, formatTime(now), formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}

	if err := touchDatabase(tx, databaseID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	s.log.Debug().Str("item_id", item.ID).Str("database_id", databaseID).Msg("item created")
	return item, nil
}

// UpdateItem applies a partial update. A non-nil Properties map is
// shallow-merged into the stored properties, key by key, unlike block
// properties and view config which are replaced wholesale. A title
// change is mirrored onto the backing page so search and page views stay
// consistent. Returns ErrNotFound for an unknown item.
func (s *Store) UpdateItem(id string, update types.ItemUpdate) (*types.Item, error) {
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

	row := tx.QueryRow("SELECT "+itemColumns+" FROM db_items WHERE id = ?", id)
	item, err := hydrateItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}

	if update.IsZero() {
		return item, nil
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
	if update.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *update.SortOrder)
	}
	if update.Properties != nil {
		item.MergeProperties(update.Properties)
		propsJSON, err := marshalBag(item.Properties)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "properties = ?")
		args = append(args, propsJSON)
	}
	now := nowUTC()
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(now), id)

	if _, err := tx.Exec("UPDATE db_items SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, fmt.Errorf("updating item %s: %w", id, err)
	}

	if update.Title != nil && item.PageID != nil {
		if _, err := tx.Exec("UPDATE pages SET title = ? WHERE id = ?", *update.Title, *item.PageID); err != nil {
			return nil, fmt.Errorf("syncing backing page title: %w", err)
		}
	}

	if err := touchDatabase(tx, item.DatabaseID, now); err != nil {
		return nil, err
	}

	row = tx.QueryRow("SELECT "+itemColumns+" FROM db_items WHERE id = ?", id)
	if item, err = hydrateItem(row); err != nil {
		return nil, fmt.Errorf("reloading item %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item update: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item together with its backing page and that
// page's blocks. Deleting an unknown id is a no-op.
func (s *Store) DeleteItem(id string) error {
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

	row := tx.QueryRow("SELECT "+itemColumns+" FROM db_items WHERE id = ?", id)
	item, err := hydrateItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("getting item %s: %w", id, err)
	}

	if item.PageID != nil {
		if err := deletePagesWithBlocks(tx, []string{*item.PageID}); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM db_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	if err := touchDatabase(tx, item.DatabaseID, nowUTC()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item deletion: %w", err)
	}

	s.log.Debug().Str("item_id", id).Msg("item deleted")
	return nil
}

// ReorderItems rewrites sort_order within a database from the given id
// sequence. Ids not belonging to the database are ignored; items left
// out keep their old positions.
func (s *Store) ReorderItems(databaseID string, itemIDs []string) error {
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

	if err := assignOrder(tx, "db_items", itemIDs, "database_id = ?", databaseID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item reorder: %w", err)
	}
	return nil
}

// listItems returns a database's items ordered by sort_order, then
// created_at.
func listItems(q querier, databaseID string) ([]*types.Item, error) {
	rows, err := q.Query(
		"SELECT "+itemColumns+" FROM db_items WHERE database_id = ? ORDER BY sort_order ASC, created_at ASC",
		databaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items of %s: %w", databaseID, err)
	}
	defer rows.Close()

	items := []*types.Item{}
	for rows.Next() {
		item, err := hydrateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// hydrateItem converts a SQLite row into a *types.Item.
func hydrateItem(rs rowScanner) (*types.Item, error) {
	var it types.Item
	var pageID sql.NullString
	var propsRaw, createdAt, updatedAt string
	if err := rs.Scan(&it.ID, &it.DatabaseID, &pageID, &it.Title, &it.Icon,
		&propsRaw, &it.SortOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if pageID.Valid {
		it.PageID = &pageID.String
	}
	var err error
	if it.Properties, err = unmarshalBag(propsRaw); err != nil {
		return nil, fmt.Errorf("parsing properties: %w", err)
	}
	if it.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if it.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &it, nil
}
