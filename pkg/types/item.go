package types

import "time"

// Item is one row of a database. Every item owns a backing page (tagged
// WorkspaceItemBacking) for long-form content; the page's title is kept in
// sync with the item's title.
type Item struct {
	ID         string         `json:"id"`
	DatabaseID string         `json:"database_id"`
	Title      string         `json:"title"`
	Icon       string         `json:"icon"`
	Properties map[string]any `json:"properties"` // Keyed by PropertyDef id; unvalidated.
	PageID     *string        `json:"page_id"`    // Backing page, nil if detached.
	SortOrder  int            `json:"sort_order"` // Position among the database's items.
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// MergeProperties shallow-merges updates into the item's properties: new
// keys are added, existing keys overwritten, untouched keys preserved.
// A nil receiver map is allocated on first use.
func (i *Item) MergeProperties(updates map[string]any) {
	if len(updates) == 0 {
		return
	}
	if i.Properties == nil {
		i.Properties = make(map[string]any, len(updates))
	}
	for k, v := range updates {
		i.Properties[k] = v
	}
}

// ItemParams carries the fields accepted by Store.CreateItem. An empty
// Title falls back to "Untitled".
type ItemParams struct {
	Title      string
	Icon       string
	Properties map[string]any
}

// ItemUpdate is a partial update for Store.UpdateItem. Nil fields are left
// untouched. A non-nil Properties map is shallow-merged into the stored
// bag, unlike BlockUpdate and ViewUpdate which replace wholesale.
type ItemUpdate struct {
	Title      *string
	Icon       *string
	SortOrder  *int
	Properties map[string]any
}

// IsZero reports whether the update carries no fields.
func (u ItemUpdate) IsZero() bool {
	return u.Title == nil && u.Icon == nil && u.SortOrder == nil &&
		u.Properties == nil
}
