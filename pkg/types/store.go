package types

import "errors"

// Store is the public surface of the content hierarchy engine. Callers open
// a store against a backend described by Config, invoke entity operations,
// and close when done. Every mutating operation commits its own unit of
// work before returning; there is no cross-operation transaction.
type Store interface {
	// Open connects the store to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyOpen if called while already open.
	Open(config Config) error

	// Close releases backend resources. Idempotent: repeated calls succeed.
	// After Close, all other operations return ErrStoreClosed.
	Close() error

	// Pages.

	// CreatePage creates a page appended at the end of its sibling scope
	// and gives it one empty default block. Returns ErrInvalidReference
	// if params.ParentID names no live page.
	CreatePage(params PageParams) (*Page, error)
	// GetPage returns the page with its ordered blocks and a shallow list
	// of immediate children. Returns ErrNotFound for an unknown id.
	GetPage(id string) (*PageDetail, error)
	// UpdatePage applies only the fields present in the partial update.
	// Re-parenting rejects unknown parents and cycles with
	// ErrInvalidReference.
	UpdatePage(id string, update PageUpdate) (*Page, error)
	// DeletePage removes the page, its descendant subtree, and every
	// block owned by the deleted pages. No-op for an unknown id.
	DeletePage(id string) error
	// ReorderPages assigns sort_order = index for each id in sequence.
	// Siblings omitted from ids keep their old sort_order.
	ReorderPages(ids []string) error
	// ListPages returns pages, filtered by workspace if non-empty,
	// favorites first, then manual order, then recency.
	ListPages(workspace string) ([]*Page, error)

	// Blocks.

	CreateBlock(pageID string, params BlockParams) (*Block, error)
	UpdateBlock(id string, update BlockUpdate) (*Block, error)
	DeleteBlock(id string) error
	ReorderBlocks(pageID string, ids []string) error
	ListBlocks(pageID string) ([]*Block, error)

	// Databases and items.

	CreateDatabase(params DatabaseParams) (*Database, error)
	GetDatabase(id string) (*DatabaseDetail, error)
	ListDatabases(workspace string) ([]*Database, error)
	UpdateDatabase(id string, update DatabaseUpdate) (*Database, error)
	DeleteDatabase(id string) error

	CreateItem(databaseID string, params ItemParams) (*Item, error)
	UpdateItem(id string, update ItemUpdate) (*Item, error)
	DeleteItem(id string) error
	ReorderItems(databaseID string, ids []string) error

	// Views.

	CreateView(databaseID string, params ViewParams) (*View, error)
	UpdateView(id string, update ViewUpdate) (*View, error)

	// Search performs a substring lookup across page titles, block
	// content, and item titles. Item-backing pages are excluded.
	Search(query string) ([]*SearchResult, error)
}

// Store operation errors.
var (
	ErrNotFound         = errors.New("entity not found")
	ErrInvalidReference = errors.New("referenced entity does not exist")
	ErrInvalidData      = errors.New("invalid entity data")
)

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)
