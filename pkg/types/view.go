package types

// View types. The store accepts unknown types permissively.
const (
	ViewTable = "table"
	ViewBoard = "board"
)

// ConfigGroupBy is the view config key naming the property a board view
// groups by. Nothing ties it to the current schema: the referenced
// property id may have been removed.
const ConfigGroupBy = "group_by"

// View is a saved presentation over one database. SortOrder is scoped to
// the views of the owning database.
type View struct {
	ID         string         `json:"id"`
	DatabaseID string         `json:"database_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Config     map[string]any `json:"config"`
	SortOrder  int            `json:"sort_order"`
}

// ViewParams carries the fields accepted by Store.CreateView. Zero values
// fall back to defaults: Name "New View", Type "table".
type ViewParams struct {
	Name   string
	Type   string
	Config map[string]any
}

// ViewUpdate is a partial update for Store.UpdateView. Nil fields are left
// untouched. A non-nil Config replaces the stored bag wholesale; it is not
// merged.
type ViewUpdate struct {
	Name      *string
	Type      *string
	SortOrder *int
	Config    map[string]any
}

// IsZero reports whether the update carries no fields.
func (u ViewUpdate) IsZero() bool {
	return u.Name == nil && u.Type == nil && u.SortOrder == nil &&
		u.Config == nil
}
