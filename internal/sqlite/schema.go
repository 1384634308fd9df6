package sqlite

// Schema DDL for all tables. Foreign keys are enforced at open via
// PRAGMA foreign_keys=ON: a deleted parent page detaches its children
// (SET NULL), a deleted page drops its blocks (CASCADE), a deleted
// database drops its items and views (CASCADE), and a deleted backing
// page detaches its item (SET NULL). The store still issues its explicit
// cascade deletes; the constraints are the backstop.
const (
	createPages = `CREATE TABLE IF NOT EXISTS pages (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT 'Untitled',
    icon TEXT NOT NULL DEFAULT '',
    cover TEXT NOT NULL DEFAULT '',
    parent_id TEXT DEFAULT NULL,
    workspace TEXT NOT NULL DEFAULT 'docs',
    sort_order INTEGER NOT NULL DEFAULT 0,
    is_favorite INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (parent_id) REFERENCES pages(id) ON DELETE SET NULL
);`

	createBlocks = `CREATE TABLE IF NOT EXISTS blocks (
    id TEXT PRIMARY KEY,
    page_id TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'text',
    content TEXT NOT NULL DEFAULT '',
    properties TEXT NOT NULL DEFAULT '{}',
    sort_order INTEGER NOT NULL DEFAULT 0,
    indent_level INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    FOREIGN KEY (page_id) REFERENCES pages(id) ON DELETE CASCADE
);`

	createDatabases = `CREATE TABLE IF NOT EXISTS databases (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT 'Untitled Database',
    icon TEXT NOT NULL DEFAULT '',
    workspace TEXT NOT NULL DEFAULT 'projects',
    description TEXT NOT NULL DEFAULT '',
    properties_schema TEXT NOT NULL DEFAULT '[]',
    default_view TEXT NOT NULL DEFAULT 'table',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createItems = `CREATE TABLE IF NOT EXISTS db_items (
    id TEXT PRIMARY KEY,
    database_id TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT 'Untitled',
    icon TEXT NOT NULL DEFAULT '',
    properties TEXT NOT NULL DEFAULT '{}',
    page_id TEXT DEFAULT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (database_id) REFERENCES databases(id) ON DELETE CASCADE,
    FOREIGN KEY (page_id) REFERENCES pages(id) ON DELETE SET NULL
);`

	createViews = `CREATE TABLE IF NOT EXISTS db_views (
    id TEXT PRIMARY KEY,
    database_id TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT 'Default',
    type TEXT NOT NULL DEFAULT 'table',
    config TEXT NOT NULL DEFAULT '{}',
    sort_order INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (database_id) REFERENCES databases(id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxPagesParent    = `CREATE INDEX IF NOT EXISTS idx_pages_parent ON pages(parent_id);`
	idxPagesWorkspace = `CREATE INDEX IF NOT EXISTS idx_pages_workspace ON pages(workspace);`
	idxBlocksPage     = `CREATE INDEX IF NOT EXISTS idx_blocks_page ON blocks(page_id);`
	idxItemsDatabase  = `CREATE INDEX IF NOT EXISTS idx_items_database ON db_items(database_id);`
	idxViewsDatabase  = `CREATE INDEX IF NOT EXISTS idx_views_database ON db_views(database_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createPages,
	createBlocks,
	createDatabases,
	createItems,
	createViews,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPagesParent,
	idxPagesWorkspace,
	idxBlocksPage,
	idxItemsDatabase,
	idxViewsDatabase,
}
