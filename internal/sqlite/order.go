// Ordering helpers shared by every entity accessor. A sort_order key is
// meaningful within one sibling scope (pages under a parent, blocks of a
// page, items of a database, views of a database); the scope is expressed
// as a WHERE fragment plus its arguments.
package sqlite

import "fmt"

// nextSortOrder returns max(sort_order)+1 within the scope, so a freshly
// created entity is appended at the end. An empty scope yields 1.
func nextSortOrder(q querier, table, scope string, args ...any) (int, error) {
	query := "SELECT COALESCE(MAX(sort_order), 0) + 1 FROM " + table + " WHERE " + scope
	var next int
	if err := q.QueryRow(query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sort_order in %s: %w", table, err)
	}
	return next, nil
}

// shiftFrom opens a gap for an insert-in-middle: every row in the scope
// with sort_order >= from is shifted up by one. O(n) per insert.
func shiftFrom(q querier, table, scope string, from int, args ...any) error {
	query := "UPDATE " + table + " SET sort_order = sort_order + 1 WHERE " + scope + " AND sort_order >= ?"
	args = append(args[:len(args):len(args)], from)
	if _, err := q.Exec(query, args...); err != nil {
		return fmt.Errorf("shifting sort_order in %s: %w", table, err)
	}
	return nil
}

// assignOrder performs a dense reindex: sort_order = position in ids, in
// the sequence's order. Rows omitted from ids keep their old sort_order,
// which can collide with the newly assigned range; callers serialize
// reorders per scope behind the store lock.
func assignOrder(q querier, table string, ids []string, scope string, scopeArgs ...any) error {
	query := "UPDATE " + table + " SET sort_order = ? WHERE id = ?"
	if scope != "" {
		query += " AND " + scope
	}
	for idx, id := range ids {
		args := append([]any{idx, id}, scopeArgs...)
		if _, err := q.Exec(query, args...); err != nil {
			return fmt.Errorf("assigning sort_order in %s: %w", table, err)
		}
	}
	return nil
}
