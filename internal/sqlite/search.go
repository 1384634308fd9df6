// This file implements substring search across page titles, block
// content, and item titles. Backing pages of items live in a hidden
// workspace and are excluded from the page and block passes; items
// surface under their own result type instead.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/binder-notes/binder/pkg/types"
)

const (
	maxPageResults  = 20
	maxBlockResults = 20
	maxItemResults  = 10

	snippetLen = 100
)

// Search finds pages, blocks, and items whose title or content contains
// the query as a case-insensitive substring. A blank query returns an
// empty slice. Pages match on title; blocks match on content and report
// their containing page, skipping pages already found by title; items
// match on title and carry their database's title. Results are ordered
// pages, then blocks, then items.
func (s *Store) Search(query string) ([]*types.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	results := []*types.SearchResult{}
	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}
	pattern := "%" + query + "%"

	seen := map[string]bool{}

	rows, err := s.db.Query(
		"SELECT id, title, icon, workspace FROM pages WHERE title LIKE ? AND workspace != ? ORDER BY updated_at DESC LIMIT ?",
		pattern, types.WorkspaceItemBacking, maxPageResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching page titles: %w", err)
	}
	for rows.Next() {
		r := &types.SearchResult{Type: types.ResultPage}
		if err := rows.Scan(&r.PageID, &r.Title, &r.Icon, &r.Workspace); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning page result: %w", err)
		}
		seen[r.PageID] = true
		results = append(results, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating page results: %w", err)
	}

	rows, err = s.db.Query(
		`SELECT b.page_id, b.content, p.title, p.icon, p.workspace
		 FROM blocks b JOIN pages p ON p.id = b.page_id
		 WHERE b.content LIKE ? AND p.workspace != ?
		 ORDER BY p.updated_at DESC, b.sort_order ASC LIMIT ?`,
		pattern, types.WorkspaceItemBacking, maxBlockResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching block content: %w", err)
	}
	for rows.Next() {
		r := &types.SearchResult{Type: types.ResultBlock}
		var content string
		if err := rows.Scan(&r.PageID, &content, &r.Title, &r.Icon, &r.Workspace); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning block result: %w", err)
		}
		if seen[r.PageID] {
			continue
		}
		seen[r.PageID] = true
		r.Snippet = snippet(content)
		results = append(results, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating block results: %w", err)
	}

	rows, err = s.db.Query(
		`SELECT i.id, i.database_id, i.title, d.title
		 FROM db_items i JOIN databases d ON d.id = i.database_id
		 WHERE i.title LIKE ?
		 ORDER BY i.updated_at DESC LIMIT ?`,
		pattern, maxItemResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching item titles: %w", err)
	}
	for rows.Next() {
		r := &types.SearchResult{Type: types.ResultItem}
		if err := rows.Scan(&r.ItemID, &r.DatabaseID, &r.Title, &r.DBTitle); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning item result: %w", err)
		}
		results = append(results, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item results: %w", err)
	}

	return results, nil
}

// snippet truncates block content for display. Counts runes, not bytes,
// so multibyte text does not get split mid-character.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLen {
		return content
	}
	return string(runes[:snippetLen])
}
