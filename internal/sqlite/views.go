// This file implements the view accessor. Views are lightweight rows
// owned by a database; their config bag is replaced wholesale on update.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/binder-notes/binder/pkg/types"
)

const viewColumns = "id, database_id, name, type, config, sort_order"

// CreateView appends a view to a database. Name defaults to "New View"
// and type to "table". Returns ErrInvalidReference when the database
// does not exist.
func (s *Store) CreateView(databaseID string, params types.ViewParams) (*types.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	name := params.Name
	if name == "" {
		name = "New View"
	}
	viewType := params.Type
	if viewType == "" {
		viewType = types.ViewTable
	}
	config := params.Config
	if config == nil {
		config = map[string]any{}
	}
	configJSON, err := marshalBag(config)
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

	order, err := nextSortOrder(tx, "db_views", "database_id = ?", databaseID)
	if err != nil {
		return nil, err
	}

	view := &types.View{
		ID:         newID(),
		DatabaseID: databaseID,
		Name:       name,
		Type:       viewType,
		Config:     config,
		SortOrder:  order,
	}
	_, err = tx.Exec(
		"INSERT INTO db_views (id, database_id, name, type, config, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
		view.ID, databaseID, name, viewType, configJSON, order,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting view: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing view: %w", err)
	}

	s.log.Debug().Str("view_id", view.ID).Str("database_id", databaseID).Msg("view created")
	return view, nil
}

// UpdateView applies a partial update. A non-nil Config replaces the
// stored config wholesale. Returns ErrNotFound for an unknown view.
func (s *Store) UpdateView(id string, update types.ViewUpdate) (*types.View, error) {
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

	row := tx.QueryRow("SELECT "+viewColumns+" FROM db_views WHERE id = ?", id)
	view, err := hydrateView(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting view %s: %w", id, err)
	}

	if update.IsZero() {
		return view, nil
	}

	var sets []string
	var args []any
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *update.Type)
	}
	if update.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *update.SortOrder)
	}
	if update.Config != nil {
		configJSON, err := marshalBag(update.Config)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "config = ?")
		args = append(args, configJSON)
	}
	args = append(args, id)

	if _, err := tx.Exec("UPDATE db_views SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, fmt.Errorf("updating view %s: %w", id, err)
	}

	row = tx.QueryRow("SELECT "+viewColumns+" FROM db_views WHERE id = ?", id)
	if view, err = hydrateView(row); err != nil {
		return nil, fmt.Errorf("reloading view %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing view update: %w", err)
	}
	return view, nil
}

// listViews returns a database's views ordered by sort_order.
func listViews(q querier, databaseID string) ([]*types.View, error) {
	rows, err := q.Query(
		"SELECT "+viewColumns+" FROM db_views WHERE database_id = ? ORDER BY sort_order ASC",
		databaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing views of %s: %w", databaseID, err)
	}
	defer rows.Close()

	views := []*types.View{}
	for rows.Next() {
		view, err := hydrateView(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating view: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating views: %w", err)
	}
	return views, nil
}

// hydrateView converts a SQLite row into a *types.View.
func hydrateView(rs rowScanner) (*types.View, error) {
	var v types.View
	var configRaw string
	if err := rs.Scan(&v.ID, &v.DatabaseID, &v.Name, &v.Type, &configRaw, &v.SortOrder); err != nil {
		return nil, err
	}
	var err error
	if v.Config, err = unmarshalBag(configRaw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &v, nil
}
