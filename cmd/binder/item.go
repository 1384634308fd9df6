// Item commands: add, update, delete, and reorder items in a database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binder-notes/binder/pkg/types"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage database items",
}

var (
	itemTitle string
	itemProps string
)

var itemAddCmd = &cobra.Command{
	Use:   "add <database-id>",
	Short: "Add an item to a database",
	Long: `Add an item. Every item gets a backing page for long-form
content, editable with the block commands.

Example:
  binder item add abc12345 --title "Ship v2"
  binder item add abc12345 --title "Ship v2" --props '{"status": "In Progress"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runItemAdd,
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update item fields",
	Long: `Update only the fields given by flags. --props merges keys into
the item's properties; omitted keys keep their values.

Example:
  binder item update def67890 --title "Renamed"
  binder item update def67890 --props '{"status": "Done"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runItemUpdate,
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item and its backing page",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemDelete,
}

var itemReorderCmd = &cobra.Command{
	Use:   "reorder <database-id> <item-id>...",
	Short: "Reorder a database's items by listing ids in their new sequence",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runItemReorder,
}

func init() {
	itemAddCmd.Flags().StringVar(&itemTitle, "title", "", "item title (default: Untitled)")
	itemAddCmd.Flags().StringVar(&itemProps, "props", "", "item properties as a JSON object")

	itemUpdateCmd.Flags().StringVar(&itemTitle, "title", "", "new title")
	itemUpdateCmd.Flags().StringVar(&itemProps, "props", "", "properties to merge, as a JSON object")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemUpdateCmd)
	itemCmd.AddCommand(itemDeleteCmd)
	itemCmd.AddCommand(itemReorderCmd)
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	props, err := parseBag(itemProps, "props")
	if err != nil {
		return err
	}

	item, err := store.CreateItem(args[0], types.ItemParams{
		Title:      itemTitle,
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	if flagJSON {
		return printJSON(item)
	}
	fmt.Printf("Added item: %s (page %s)\n", item.ID, *item.PageID)
	return nil
}

func runItemUpdate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var update types.ItemUpdate
	if cmd.Flags().Changed("title") {
		update.Title = &itemTitle
	}
	if cmd.Flags().Changed("props") {
		props, err := parseBag(itemProps, "props")
		if err != nil {
			return err
		}
		if props == nil {
			props = map[string]any{}
		}
		update.Properties = props
	}

	item, err := store.UpdateItem(args[0], update)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	if flagJSON {
		return printJSON(item)
	}
	fmt.Printf("Updated item: %s\n", item.ID)
	return nil
}

func runItemDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteItem(args[0]); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	fmt.Printf("Deleted item: %s\n", args[0])
	return nil
}

func runItemReorder(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReorderItems(args[0], args[1:]); err != nil {
		return fmt.Errorf("reorder items: %w", err)
	}
	fmt.Printf("Reordered %d item(s)\n", len(args)-1)
	return nil
}
