// View commands: add and update views of a database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binder-notes/binder/pkg/types"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Manage database views",
}

var (
	viewName   string
	viewType   string
	viewConfig string
)

var viewAddCmd = &cobra.Command{
	Use:   "add <database-id>",
	Short: "Add a view to a database",
	Long: `Add a view. Board views typically carry a "group_by" config key
naming a select property of the database.

Example:
  binder view add abc12345 --name "By status" --type board --config '{"group_by": "prop1234"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runViewAdd,
}

var viewUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update view fields",
	Long: `Update only the fields given by flags. --config replaces the
view's config wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: runViewUpdate,
}

func init() {
	viewAddCmd.Flags().StringVar(&viewName, "name", "", "view name (default: New View)")
	viewAddCmd.Flags().StringVar(&viewType, "type", "", "view type (default: table)")
	viewAddCmd.Flags().StringVar(&viewConfig, "config", "", "view config as a JSON object")

	viewUpdateCmd.Flags().StringVar(&viewName, "name", "", "new name")
	viewUpdateCmd.Flags().StringVar(&viewType, "type", "", "new type")
	viewUpdateCmd.Flags().StringVar(&viewConfig, "config", "", "replacement config as a JSON object")

	viewCmd.AddCommand(viewAddCmd)
	viewCmd.AddCommand(viewUpdateCmd)
}

func runViewAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	config, err := parseBag(viewConfig, "config")
	if err != nil {
		return err
	}

	view, err := store.CreateView(args[0], types.ViewParams{
		Name:   viewName,
		Type:   viewType,
		Config: config,
	})
	if err != nil {
		return fmt.Errorf("add view: %w", err)
	}

	if flagJSON {
		return printJSON(view)
	}
	fmt.Printf("Added view: %s\n", view.ID)
	return nil
}

func runViewUpdate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var update types.ViewUpdate
	if cmd.Flags().Changed("name") {
		update.Name = &viewName
	}
	if cmd.Flags().Changed("type") {
		update.Type = &viewType
	}
	if cmd.Flags().Changed("config") {
		config, err := parseBag(viewConfig, "config")
		if err != nil {
			return err
		}
		if config == nil {
			config = map[string]any{}
		}
		update.Config = config
	}

	view, err := store.UpdateView(args[0], update)
	if err != nil {
		return fmt.Errorf("update view: %w", err)
	}

	if flagJSON {
		return printJSON(view)
	}
	fmt.Printf("Updated view: %s\n", view.ID)
	return nil
}
