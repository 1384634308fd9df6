// Search command: substring search across pages, blocks, and items.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binder-notes/binder/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search pages, blocks, and items",
	Long: `Search matches the query as a case-insensitive substring against
page titles, block content, and item titles.

Example:
  binder search roadmap
  binder search "meeting notes" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(args[0])
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if flagJSON {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for _, r := range results {
		switch r.Type {
		case types.ResultPage:
			fmt.Printf("page  %s  %s\n", r.PageID, r.Title)
		case types.ResultBlock:
			fmt.Printf("block %s  %s: %s\n", r.PageID, r.Title, truncate(r.Snippet, 60))
		case types.ResultItem:
			fmt.Printf("item  %s  %s (%s)\n", r.ItemID, r.Title, r.DBTitle)
		}
	}
	fmt.Printf("Total: %d result(s)\n", len(results))
	return nil
}
