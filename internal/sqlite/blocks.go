// This file implements the block list accessor for a page's ordered
// content units: insert-after-with-shift creation, partial updates with
// wholesale properties replacement, gap-tolerant deletes, and the dense
// reindex reorder.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/binder-notes/binder/pkg/types"
)

const blockColumns = "id, page_id, type, content, properties, sort_order, indent_level, created_at"

// CreateBlock creates a block on the given page. When params.AfterID
// resolves to an existing block, the new block lands directly after it
// and every later block of the page shifts up by one; otherwise the block
// is appended at the end. The owning page's updated_at is stamped.
// Returns ErrInvalidReference if pageID names no live page.
func (s *Store) CreateBlock(pageID string, params types.BlockParams) (*types.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	blockType := params.Type
	if blockType == "" {
		blockType = types.BlockText
	}

	propsJSON, err := marshalBag(params.Properties)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := pageExists(tx, pageID); err != nil {
		return nil, err
	}

	sortOrder, err := blockInsertPosition(tx, pageID, params.AfterID)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	block := &types.Block{
		ID:          newID(),
		PageID:      pageID,
		Type:        blockType,
		Content:     params.Content,
		Properties:  params.Properties,
		SortOrder:   sortOrder,
		IndentLevel: params.IndentLevel,
		CreatedAt:   now,
	}
	if block.Properties == nil {
		block.Properties = make(map[string]any)
	}

	_, err = tx.Exec(
		"INSERT INTO blocks (id, page_id, type, content, properties, sort_order, indent_level, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		block.ID, block.PageID, block.Type, block.Content, propsJSON,
		block.SortOrder, block.IndentLevel, formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting block: %w", err)
	}

	if err := touchPage(tx, pageID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing block: %w", err)
	}

	s.log.Debug().Str("block_id", block.ID).Str("page_id", pageID).Msg("block created")
	return block, nil
}

// UpdateBlock merges only the supplied fields. A non-nil Properties bag
// replaces the stored one wholesale. Stamps the owning page's updated_at.
// Returns ErrNotFound if the block is absent.
func (s *Store) UpdateBlock(id string, update types.BlockUpdate) (*types.Block, error) {
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

	row := tx.QueryRow("SELECT "+blockColumns+" FROM blocks WHERE id = ?", id)
	block, err := hydrateBlock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting block %s: %w", id, err)
	}

	if update.IsZero() {
		return block, nil
	}

	var sets []string
	var args []any
	if update.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *update.Type)
	}
	if update.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *update.Content)
	}
	if update.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *update.SortOrder)
	}
	if update.IndentLevel != nil {
		sets = append(sets, "indent_level = ?")
		args = append(args, *update.IndentLevel)
	}
	if update.Properties != nil {
		propsJSON, err := marshalBag(update.Properties)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "properties = ?")
		args = append(args, propsJSON)
	}
	args = append(args, id)

	if _, err := tx.Exec("UPDATE blocks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, fmt.Errorf("updating block %s: %w", id, err)
	}

	if err := touchPage(tx, block.PageID, nowUTC()); err != nil {
		return nil, err
	}

	row = tx.QueryRow("SELECT "+blockColumns+" FROM blocks WHERE id = ?", id)
	block, err = hydrateBlock(row)
	if err != nil {
		return nil, fmt.Errorf("reloading block %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing block update: %w", err)
	}
	return block, nil
}

// DeleteBlock removes the block and stamps the owning page's updated_at.
// The remaining siblings keep their sort_order values; gaps are
// permitted. Deleting an unknown id is a no-op.
func (s *Store) DeleteBlock(id string) error {
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

	var pageID string
	err = tx.QueryRow("SELECT page_id FROM blocks WHERE id = ?", id).Scan(&pageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting block %s: %w", id, err)
	}

	if _, err := tx.Exec("DELETE FROM blocks WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting block %s: %w", id, err)
	}
	if err := touchPage(tx, pageID, nowUTC()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing block deletion: %w", err)
	}
	return nil
}

// ReorderBlocks assigns sort_order = index for each id, scoped to the
// page, and stamps the page's updated_at.
func (s *Store) ReorderBlocks(pageID string, ids []string) error {
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

	if err := assignOrder(tx, "blocks", ids, "page_id = ?", pageID); err != nil {
		return err
	}
	if err := touchPage(tx, pageID, nowUTC()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing block reorder: %w", err)
	}
	return nil
}

// ListBlocks returns the page's blocks ordered by sort_order.
func (s *Store) ListBlocks(pageID string) ([]*types.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}
	return listBlocks(s.db, pageID)
}

// blockInsertPosition resolves where a new block lands. An AfterID that
// resolves opens a gap right after it; an absent or unresolved AfterID
// appends at the end of the page.
func blockInsertPosition(q querier, pageID, afterID string) (int, error) {
	if afterID != "" {
		var afterOrder int
		err := q.QueryRow("SELECT sort_order FROM blocks WHERE id = ?", afterID).Scan(&afterOrder)
		switch {
		case err == nil:
			sortOrder := afterOrder + 1
			if err := shiftFrom(q, "blocks", "page_id = ?", sortOrder, pageID); err != nil {
				return 0, err
			}
			return sortOrder, nil
		case errors.Is(err, sql.ErrNoRows):
			// Unresolved after_id falls through to append.
		default:
			return 0, fmt.Errorf("resolving after_id %s: %w", afterID, err)
		}
	}
	return nextSortOrder(q, "blocks", "page_id = ?", pageID)
}

// listBlocks loads the ordered blocks of one page.
func listBlocks(q querier, pageID string) ([]*types.Block, error) {
	rows, err := q.Query(
		"SELECT "+blockColumns+" FROM blocks WHERE page_id = ? ORDER BY sort_order",
		pageID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing blocks of %s: %w", pageID, err)
	}
	defer rows.Close()

	blocks := []*types.Block{}
	for rows.Next() {
		block, err := hydrateBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating block: %w", err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks of %s: %w", pageID, err)
	}
	return blocks, nil
}

// hydrateBlock converts a SQLite row into a *types.Block.
func hydrateBlock(rs rowScanner) (*types.Block, error) {
	var b types.Block
	var propsRaw, createdAt string
	if err := rs.Scan(&b.ID, &b.PageID, &b.Type, &b.Content, &propsRaw,
		&b.SortOrder, &b.IndentLevel, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if b.Properties, err = unmarshalBag(propsRaw); err != nil {
		return nil, fmt.Errorf("parsing block properties: %w", err)
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &b, nil
}

// insertDefaultBlock gives a freshly created page its single empty text
// block; pages created through the store always have at least one block.
func insertDefaultBlock(q querier, pageID string, now time.Time) error {
	_, err := q.Exec(
		"INSERT INTO blocks (id, page_id, type, content, properties, sort_order, indent_level, created_at) VALUES (?, ?, ?, '', '{}', 0, 0, ?)",
		newID(), pageID, types.BlockText, formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("inserting default block: %w", err)
	}
	return nil
}
