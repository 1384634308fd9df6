// Page commands: create, get, update, delete, reorder, and list pages.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/binder-notes/binder/pkg/types"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage pages",
}

var (
	pageTitle     string
	pageIcon      string
	pageCover     string
	pageParent    string
	pageWorkspace string
	pageFavorite  bool
)

var pageCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new page",
	Long: `Create a new page, optionally nested under a parent page.

Example:
  binder page create --title "Meeting notes"
  binder page create --title "Q3 planning" --parent abc12345 --icon 📅`,
	Args: cobra.NoArgs,
	RunE: runPageCreate,
}

var pageGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a page with its blocks and children",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageGet,
}

var pageUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update page fields",
	Long: `Update only the fields given by flags; others stay unchanged.

Pass --parent "" to move a page to the root of its workspace.

Example:
  binder page update abc12345 --title "Renamed"
  binder page update abc12345 --favorite
  binder page update abc12345 --parent def67890`,
	Args: cobra.ExactArgs(1),
	RunE: runPageUpdate,
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a page and its entire subtree",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageDelete,
}

var pageReorderCmd = &cobra.Command{
	Use:   "reorder <id>...",
	Short: "Reorder pages by listing ids in their new sequence",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPageReorder,
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages",
	Long: `List pages, favorites first, then manual order, then recency.

Example:
  binder page list
  binder page list --workspace projects --json`,
	Args: cobra.NoArgs,
	RunE: runPageList,
}

func init() {
	pageCreateCmd.Flags().StringVar(&pageTitle, "title", "", "page title (default: Untitled)")
	pageCreateCmd.Flags().StringVar(&pageIcon, "icon", "", "page icon")
	pageCreateCmd.Flags().StringVar(&pageParent, "parent", "", "parent page id")
	pageCreateCmd.Flags().StringVar(&pageWorkspace, "workspace", "", "workspace (default: docs)")

	pageUpdateCmd.Flags().StringVar(&pageTitle, "title", "", "new title")
	pageUpdateCmd.Flags().StringVar(&pageIcon, "icon", "", "new icon")
	pageUpdateCmd.Flags().StringVar(&pageCover, "cover", "", "new cover image")
	pageUpdateCmd.Flags().StringVar(&pageParent, "parent", "", "new parent id (empty string moves to root)")
	pageUpdateCmd.Flags().StringVar(&pageWorkspace, "workspace", "", "new workspace")
	pageUpdateCmd.Flags().BoolVar(&pageFavorite, "favorite", false, "favorite flag")

	pageListCmd.Flags().StringVar(&pageWorkspace, "workspace", "", "filter by workspace")

	pageCmd.AddCommand(pageCreateCmd)
	pageCmd.AddCommand(pageGetCmd)
	pageCmd.AddCommand(pageUpdateCmd)
	pageCmd.AddCommand(pageDeleteCmd)
	pageCmd.AddCommand(pageReorderCmd)
	pageCmd.AddCommand(pageListCmd)
}

func runPageCreate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	params := types.PageParams{
		Title:     pageTitle,
		Icon:      pageIcon,
		Workspace: pageWorkspace,
	}
	if pageParent != "" {
		params.ParentID = &pageParent
	}

	page, err := store.CreatePage(params)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}

	if flagJSON {
		return printJSON(page)
	}
	fmt.Printf("Created page: %s\n", page.ID)
	return nil
}

func runPageGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	detail, err := store.GetPage(args[0])
	if err != nil {
		return fmt.Errorf("get page: %w", err)
	}

	if flagJSON {
		return printJSON(detail)
	}

	title := detail.Title
	if detail.Icon != "" {
		title = detail.Icon + " " + title
	}
	fmt.Println(title)
	fmt.Println("  id:       ", detail.ID)
	fmt.Println("  workspace:", detail.Workspace)
	if detail.ParentID != nil {
		fmt.Println("  parent:   ", *detail.ParentID)
	}
	for _, block := range detail.Blocks {
		fmt.Printf("  [%s] %s\n", block.Type, truncate(block.Content, 60))
	}
	for _, child := range detail.Children {
		fmt.Printf("  > %s %s\n", child.ID, child.Title)
	}
	return nil
}

func runPageUpdate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var update types.PageUpdate
	if cmd.Flags().Changed("title") {
		update.Title = &pageTitle
	}
	if cmd.Flags().Changed("icon") {
		update.Icon = &pageIcon
	}
	if cmd.Flags().Changed("cover") {
		update.Cover = &pageCover
	}
	if cmd.Flags().Changed("parent") {
		update.ParentID = &pageParent
	}
	if cmd.Flags().Changed("workspace") {
		update.Workspace = &pageWorkspace
	}
	if cmd.Flags().Changed("favorite") {
		update.IsFavorite = &pageFavorite
	}

	page, err := store.UpdatePage(args[0], update)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}

	if flagJSON {
		return printJSON(page)
	}
	fmt.Printf("Updated page: %s\n", page.ID)
	return nil
}

func runPageDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeletePage(args[0]); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	fmt.Printf("Deleted page: %s\n", args[0])
	return nil
}

func runPageReorder(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReorderPages(args); err != nil {
		return fmt.Errorf("reorder pages: %w", err)
	}
	fmt.Printf("Reordered %d page(s)\n", len(args))
	return nil
}

func runPageList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	pages, err := store.ListPages(pageWorkspace)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}

	if flagJSON {
		return printJSON(pages)
	}
	printPageTable(pages)
	return nil
}

// printPageTable prints pages in a human-readable table format.
func printPageTable(pages []*types.Page) {
	if len(pages) == 0 {
		fmt.Println("No pages found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tWORKSPACE\tFAV\tUPDATED")
	fmt.Fprintln(w, "--\t-----\t---------\t---\t-------")
	for _, p := range pages {
		fav := ""
		if p.IsFavorite {
			fav = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.Title, 40),
			p.Workspace,
			fav,
			p.UpdatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()

	fmt.Print(sb.String())
	fmt.Printf("Total: %d page(s)\n", len(pages))
}
