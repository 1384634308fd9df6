package types

import "time"

// Workspace tags partition root-level pages and databases into named areas.
// WorkspaceItemBacking marks internal pages that back database items; those
// pages are hidden from page listings and search.
const (
	WorkspaceDocs        = "docs"
	WorkspaceProjects    = "projects"
	WorkspaceWiki        = "wiki"
	WorkspaceItemBacking = "_db_item"
)

// Page is a node in the content tree. Pages hold an ordered list of blocks
// and may have child pages. SortOrder is meaningful within the sibling
// scope: pages sharing ParentID, or for root pages, sharing Workspace.
type Page struct {
	ID         string    `json:"id"`         // Short opaque id, generated on creation.
	Title      string    `json:"title"`      // Display title ("Untitled" by default).
	Icon       string    `json:"icon"`       // Icon name, may be empty.
	Cover      string    `json:"cover"`      // Cover image reference, may be empty.
	ParentID   *string   `json:"parent_id"`  // Owning page; nil for root pages.
	Workspace  string    `json:"workspace"`  // Workspace tag ("docs" by default).
	SortOrder  int       `json:"sort_order"` // Position within the sibling scope.
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PageRef is the shallow child listing returned by Store.GetPage.
type PageRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// PageDetail is a page together with its ordered blocks and immediate
// children.
type PageDetail struct {
	Page
	Blocks   []*Block   `json:"blocks"`
	Children []*PageRef `json:"children"`
}

// PageParams carries the fields accepted by Store.CreatePage. Zero values
// fall back to defaults: Title "Untitled", Workspace "docs".
type PageParams struct {
	Title     string
	Icon      string
	ParentID  *string
	Workspace string
}

// PageUpdate is a partial update for Store.UpdatePage. Nil fields are left
// untouched. Setting ParentID to a pointer at the empty string moves the
// page to the root of its workspace.
type PageUpdate struct {
	Title      *string
	Icon       *string
	Cover      *string
	ParentID   *string
	SortOrder  *int
	IsFavorite *bool
	Workspace  *string
}

// IsZero reports whether the update carries no fields.
func (u PageUpdate) IsZero() bool {
	return u.Title == nil && u.Icon == nil && u.Cover == nil &&
		u.ParentID == nil && u.SortOrder == nil && u.IsFavorite == nil &&
		u.Workspace == nil
}
