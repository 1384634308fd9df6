package types

import "time"

// Property definition types for database schemas.
const (
	PropertySelect      = "select"
	PropertyMultiSelect = "multi_select"
	PropertyDate        = "date"
	PropertyText        = "text"
)

// SelectOption is one choice of a select or multi_select property.
type SelectOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PropertyDef is one column definition in a database schema. Order within
// the schema slice is significant: it drives display column order.
type PropertyDef struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Options []SelectOption `json:"options,omitempty"`
}

// Database is a user-defined, schema-flexible collection of items. Item
// property values are stored against PropertyDef ids and are never
// validated against the declared schema.
type Database struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Icon             string        `json:"icon"`
	Workspace        string        `json:"workspace"`
	Description      string        `json:"description"`
	PropertiesSchema []PropertyDef `json:"properties_schema"`
	DefaultView      string        `json:"default_view"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	// Views is populated whenever the database is loaded from the store.
	Views []*View `json:"views,omitempty"`
}

// FirstSelectProperty returns the leading schema property when it is a
// select, or nil. A board view created for this database groups by it.
func (d *Database) FirstSelectProperty() *PropertyDef {
	if len(d.PropertiesSchema) == 0 {
		return nil
	}
	if d.PropertiesSchema[0].Type != PropertySelect {
		return nil
	}
	return &d.PropertiesSchema[0]
}

// DatabaseDetail is a database together with its ordered items.
type DatabaseDetail struct {
	Database
	Items []*Item `json:"items"`
}

// DatabaseParams carries the fields accepted by Store.CreateDatabase.
// Zero values fall back to defaults: Title "Untitled Database", Workspace
// "projects". When PropertiesSchema is nil and the workspace is a
// recognized preset ("projects", "wiki") a canned default schema is
// materialized; custom workspaces get an empty schema. DefaultView, when
// non-empty, overrides the type of the default view created alongside the
// database.
type DatabaseParams struct {
	Title            string
	Icon             string
	Workspace        string
	Description      string
	PropertiesSchema []PropertyDef
	DefaultView      string
}

// DatabaseUpdate is a partial update for Store.UpdateDatabase. Nil fields
// are left untouched. A non-nil PropertiesSchema replaces the stored
// schema wholesale.
type DatabaseUpdate struct {
	Title            *string
	Icon             *string
	Description      *string
	DefaultView      *string
	PropertiesSchema []PropertyDef
}

// IsZero reports whether the update carries no fields.
func (u DatabaseUpdate) IsZero() bool {
	return u.Title == nil && u.Icon == nil && u.Description == nil &&
		u.DefaultView == nil && u.PropertiesSchema == nil
}
