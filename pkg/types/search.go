package types

// Search result kinds.
const (
	ResultPage  = "page"
	ResultBlock = "block"
	ResultItem  = "db_item"
)

// SearchResult is one match from Store.Search. Page and block matches name
// the page to open; item matches name the item and its owning database.
// Results carry no relevance rank.
type SearchResult struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	Title      string `json:"title"`
	Icon       string `json:"icon,omitempty"`
	Snippet    string `json:"snippet,omitempty"` // First 100 runes of matched block content.
	Workspace  string `json:"workspace,omitempty"`
	DBTitle    string `json:"db_title,omitempty"` // Owning database title for item matches.
}
