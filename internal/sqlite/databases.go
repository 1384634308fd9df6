// This file implements the database accessor: creation with workspace
// preset expansion and a default view, reads with attached views and
// ordered items, partial updates with wholesale schema replacement, and
// the full cascade delete over items, backing pages, and views.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/binder-notes/binder/pkg/types"
)

const databaseColumns = "id, title, icon, workspace, description, properties_schema, default_view, created_at, updated_at"

// CreateDatabase creates a database. When no schema is supplied and the
// workspace is a recognized preset ("projects", "wiki") the canned
// default schema is materialized; custom workspaces start with an empty
// schema. A default view is always created alongside: a board view over a
// leading select property carries config {"group_by": <property id>}.
// params.DefaultView, when set, overrides the type of that view only; the
// database's default_view column records the preset's choice.
func (s *Store) CreateDatabase(params types.DatabaseParams) (*types.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	title := params.Title
	if title == "" {
		title = "Untitled Database"
	}
	workspace := params.Workspace
	if workspace == "" {
		workspace = types.WorkspaceProjects
	}

	schema := params.PropertiesSchema
	defaultView := types.ViewTable
	switch workspace {
	case types.WorkspaceProjects:
		if schema == nil {
			schema = projectsSchema()
		}
		defaultView = types.ViewBoard
	case types.WorkspaceWiki:
		if schema == nil {
			schema = wikiSchema()
		}
	default:
		if schema == nil {
			schema = []types.PropertyDef{}
		}
	}

	viewType := params.DefaultView
	if viewType == "" {
		viewType = defaultView
	}

	schemaJSON, err := marshalSchema(schema)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	db := &types.Database{
		ID:               newID(),
		Title:            title,
		Icon:             params.Icon,
		Workspace:        workspace,
		Description:      params.Description,
		PropertiesSchema: schema,
		DefaultView:      defaultView,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	viewConfig := map[string]any{}
	if viewType == types.ViewBoard {
		if p := db.FirstSelectProperty(); p != nil {
			viewConfig[types.ConfigGroupBy] = p.ID
		}
	}
	configJSON, err := marshalBag(viewConfig)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO databases (id, title, icon, workspace, description, properties_schema, default_view, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		db.ID, db.Title, db.Icon, db.Workspace, db.Description, schemaJSON,
		db.DefaultView, formatTime(now), formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting database: %w", err)
	}

	view := &types.View{
		ID:         newID(),
		DatabaseID: db.ID,
		Name:       "Default",
		Type:       viewType,
		Config:     viewConfig,
	}
	_, err = tx.Exec(
		"INSERT INTO db_views (id, database_id, name, type, config, sort_order) VALUES (?, ?, ?, ?, ?, 0)",
		view.ID, view.DatabaseID, view.Name, view.Type, configJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting default view: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing database: %w", err)
	}

	db.Views = []*types.View{view}
	s.log.Debug().Str("database_id", db.ID).Str("workspace", workspace).Msg("database created")
	return db, nil
}

// GetDatabase retrieves a database with its views and its items ordered
// by sort_order, then created_at. Returns ErrNotFound for an unknown id.
func (s *Store) GetDatabase(id string) (*types.DatabaseDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	row := s.db.QueryRow("SELECT "+databaseColumns+" FROM databases WHERE id = ?", id)
	db, err := hydrateDatabase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting database %s: %w", id, err)
	}

	if db.Views, err = listViews(s.db, id); err != nil {
		return nil, err
	}

	items, err := listItems(s.db, id)
	if err != nil {
		return nil, err
	}

	return &types.DatabaseDetail{Database: *db, Items: items}, nil
}

// ListDatabases returns databases with their views attached, most
// recently updated first, filtered by workspace when non-empty.
func (s *Store) ListDatabases(workspace string) ([]*types.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	query := "SELECT " + databaseColumns + " FROM databases"
	var args []any
	if workspace != "" {
		query += " WHERE workspace = ?"
		args = append(args, workspace)
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing databases: %w", err)
	}
	defer rows.Close()

	dbs := []*types.Database{}
	for rows.Next() {
		db, err := hydrateDatabase(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating database: %w", err)
		}
		dbs = append(dbs, db)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating databases: %w", err)
	}

	for _, db := range dbs {
		if db.Views, err = listViews(s.db, db.ID); err != nil {
			return nil, err
		}
	}
	return dbs, nil
}

// UpdateDatabase applies only the fields present in the partial update
// and stamps updated_at. A non-nil PropertiesSchema replaces the stored
// schema wholesale. Returns ErrNotFound if the database is absent.
func (s *Store) UpdateDatabase(id string, update types.DatabaseUpdate) (*types.Database, error) {
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

	row := tx.QueryRow("SELECT "+databaseColumns+" FROM databases WHERE id = ?", id)
	db, err := hydrateDatabase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting database %s: %w", id, err)
	}

	if update.IsZero() {
		if db.Views, err = listViews(tx, id); err != nil {
			return nil, err
		}
		return db, nil
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
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.DefaultView != nil {
		sets = append(sets, "default_view = ?")
		args = append(args, *update.DefaultView)
	}
	if update.PropertiesSchema != nil {
		schemaJSON, err := marshalSchema(update.PropertiesSchema)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "properties_schema = ?")
		args = append(args, schemaJSON)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(nowUTC()), id)

	if _, err := tx.Exec("UPDATE databases SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, fmt.Errorf("updating database %s: %w", id, err)
	}

	row = tx.QueryRow("SELECT "+databaseColumns+" FROM databases WHERE id = ?", id)
	if db, err = hydrateDatabase(row); err != nil {
		return nil, fmt.Errorf("reloading database %s: %w", id, err)
	}
	if db.Views, err = listViews(tx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing database update: %w", err)
	}
	return db, nil
}

// DeleteDatabase removes the database and everything it owns: for every
// item with a backing page, the page's blocks and the page; then all
// items, all views, and finally the database row. Deleting an absent id
// is a no-op.
func (s *Store) DeleteDatabase(id string) error {
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

	pageIDs, err := itemBackingPages(tx, id)
	if err != nil {
		return err
	}
	if err := deletePagesWithBlocks(tx, pageIDs); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM db_items WHERE database_id = ?", id); err != nil {
		return fmt.Errorf("deleting items of %s: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM db_views WHERE database_id = ?", id); err != nil {
		return fmt.Errorf("deleting views of %s: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM databases WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting database %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing database deletion: %w", err)
	}

	s.log.Debug().Str("database_id", id).Int("backing_pages", len(pageIDs)).Msg("database deleted")
	return nil
}

// itemBackingPages returns the backing page ids of a database's items.
func itemBackingPages(q querier, databaseID string) ([]string, error) {
	rows, err := q.Query(
		"SELECT page_id FROM db_items WHERE database_id = ? AND page_id IS NOT NULL",
		databaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing backing pages of %s: %w", databaseID, err)
	}
	defer rows.Close()

	var pageIDs []string
	for rows.Next() {
		var pageID string
		if err := rows.Scan(&pageID); err != nil {
			return nil, fmt.Errorf("scanning backing page: %w", err)
		}
		pageIDs = append(pageIDs, pageID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating backing pages: %w", err)
	}
	return pageIDs, nil
}

// databaseExists verifies that id names a live database; a missing one is
// an ErrInvalidReference.
func databaseExists(q querier, id string) error {
	var one int
	err := q.QueryRow("SELECT 1 FROM databases WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrInvalidReference
	}
	if err != nil {
		return fmt.Errorf("checking database %s: %w", id, err)
	}
	return nil
}

// hydrateDatabase converts a SQLite row into a *types.Database.
func hydrateDatabase(rs rowScanner) (*types.Database, error) {
	var d types.Database
	var schemaRaw, createdAt, updatedAt string
	if err := rs.Scan(&d.ID, &d.Title, &d.Icon, &d.Workspace, &d.Description,
		&schemaRaw, &d.DefaultView, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if d.PropertiesSchema, err = unmarshalSchema(schemaRaw); err != nil {
		return nil, fmt.Errorf("parsing properties_schema: %w", err)
	}
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &d, nil
}

// touchDatabase stamps a database's updated_at; item mutations call this
// so the collection reflects row recency.
func touchDatabase(q querier, databaseID string, now time.Time) error {
	if _, err := q.Exec("UPDATE databases SET updated_at = ? WHERE id = ?", formatTime(now), databaseID); err != nil {
		return fmt.Errorf("touching database %s: %w", databaseID, err)
	}
	return nil
}
