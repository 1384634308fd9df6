package types

import "time"

// Block types. The vocabulary is fixed but the store accepts unknown types
// permissively; validation is a caller concern.
const (
	BlockText     = "text"
	BlockHeading1 = "h1"
	BlockHeading2 = "h2"
	BlockHeading3 = "h3"
	BlockBullet   = "bullet"
	BlockNumbered = "numbered"
	BlockTodo     = "todo"
	BlockQuote    = "quote"
	BlockCallout  = "callout"
	BlockCode     = "code"
	BlockDivider  = "divider"
)

// validBlockTypes is the set of recognized block type values.
var validBlockTypes = map[string]bool{
	BlockText:     true,
	BlockHeading1: true,
	BlockHeading2: true,
	BlockHeading3: true,
	BlockBullet:   true,
	BlockNumbered: true,
	BlockTodo:     true,
	BlockQuote:    true,
	BlockCallout:  true,
	BlockCode:     true,
	BlockDivider:  true,
}

// IsValidBlockType reports whether the given string is a recognized block type.
func IsValidBlockType(t string) bool {
	return validBlockTypes[t]
}

// Block is one content unit within a page. Blocks are exclusively owned by
// one page; deleting the page deletes its blocks. SortOrder is scoped to
// all blocks of the owning page.
type Block struct {
	ID          string         `json:"id"`
	PageID      string         `json:"page_id"`
	Type        string         `json:"type"`
	Content     string         `json:"content"`
	Properties  map[string]any `json:"properties"` // Open bag, e.g. {"checked": true} for todo.
	SortOrder   int            `json:"sort_order"`
	IndentLevel int            `json:"indent_level"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Checked reports whether a todo block is marked done.
func (b *Block) Checked() bool {
	v, ok := b.Properties["checked"].(bool)
	return ok && v
}

// BlockParams carries the fields accepted by Store.CreateBlock. An empty
// Type falls back to "text". When AfterID resolves to an existing block the
// new block is inserted directly after it; otherwise it is appended.
type BlockParams struct {
	Type        string
	Content     string
	Properties  map[string]any
	AfterID     string
	IndentLevel int
}

// BlockUpdate is a partial update for Store.UpdateBlock. Nil fields are
// left untouched. A non-nil Properties map replaces the stored bag
// wholesale; it is not merged.
type BlockUpdate struct {
	Type        *string
	Content     *string
	SortOrder   *int
	IndentLevel *int
	Properties  map[string]any
}

// IsZero reports whether the update carries no fields.
func (u BlockUpdate) IsZero() bool {
	return u.Type == nil && u.Content == nil && u.SortOrder == nil &&
		u.IndentLevel == nil && u.Properties == nil
}
