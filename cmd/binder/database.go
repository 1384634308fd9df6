// Database commands: create, get, list, update, and delete databases.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/binder-notes/binder/pkg/types"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage databases",
}

var (
	dbTitle       string
	dbIcon        string
	dbWorkspace   string
	dbDescription string
	dbSchema      string
	dbDefaultView string
)

var dbCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new database",
	Long: `Create a database. The "projects" and "wiki" workspaces come
with a canned property schema unless --schema is given.

Example:
  binder db create --title "Roadmap"
  binder db create --title "Handbook" --workspace wiki
  binder db create --title "Custom" --schema '[{"id":"p1","name":"Stage","type":"text"}]'`,
	Args: cobra.NoArgs,
	RunE: runDBCreate,
}

var dbGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a database with its items and views",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBGet,
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List databases, most recently updated first",
	Args:  cobra.NoArgs,
	RunE:  runDBList,
}

var dbUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update database fields",
	Long: `Update only the fields given by flags. --schema replaces the
property schema wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: runDBUpdate,
}

var dbDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a database with its items, views, and item pages",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBDelete,
}

func init() {
	dbCreateCmd.Flags().StringVar(&dbTitle, "title", "", "database title (default: Untitled Database)")
	dbCreateCmd.Flags().StringVar(&dbIcon, "icon", "", "database icon")
	dbCreateCmd.Flags().StringVar(&dbWorkspace, "workspace", "", "workspace (default: projects)")
	dbCreateCmd.Flags().StringVar(&dbDescription, "description", "", "description")
	dbCreateCmd.Flags().StringVar(&dbSchema, "schema", "", "property schema as a JSON array")
	dbCreateCmd.Flags().StringVar(&dbDefaultView, "view", "", "type of the default view (table, board)")

	dbListCmd.Flags().StringVar(&dbWorkspace, "workspace", "", "filter by workspace")

	dbUpdateCmd.Flags().StringVar(&dbTitle, "title", "", "new title")
	dbUpdateCmd.Flags().StringVar(&dbIcon, "icon", "", "new icon")
	dbUpdateCmd.Flags().StringVar(&dbDescription, "description", "", "new description")
	dbUpdateCmd.Flags().StringVar(&dbSchema, "schema", "", "replacement property schema as a JSON array")
	dbUpdateCmd.Flags().StringVar(&dbDefaultView, "view", "", "new default view type")

	dbCmd.AddCommand(dbCreateCmd)
	dbCmd.AddCommand(dbGetCmd)
	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbUpdateCmd)
	dbCmd.AddCommand(dbDeleteCmd)
}

// parseSchema parses the --schema JSON array. An empty string yields nil,
// meaning "not provided".
func parseSchema(raw string) ([]types.PropertyDef, error) {
	if raw == "" {
		return nil, nil
	}
	var schema []types.PropertyDef
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return nil, fmt.Errorf("parse --schema: %w", err)
	}
	return schema, nil
}

func runDBCreate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	schema, err := parseSchema(dbSchema)
	if err != nil {
		return err
	}

	db, err := store.CreateDatabase(types.DatabaseParams{
		Title:            dbTitle,
		Icon:             dbIcon,
		Workspace:        dbWorkspace,
		Description:      dbDescription,
		PropertiesSchema: schema,
		DefaultView:      dbDefaultView,
	})
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}

	if flagJSON {
		return printJSON(db)
	}
	fmt.Printf("Created database: %s\n", db.ID)
	return nil
}

func runDBGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	detail, err := store.GetDatabase(args[0])
	if err != nil {
		return fmt.Errorf("get database: %w", err)
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
	for _, prop := range detail.PropertiesSchema {
		fmt.Printf("  - %s (%s)\n", prop.Name, prop.Type)
	}
	for _, view := range detail.Views {
		fmt.Printf("  view: %s %s (%s)\n", view.ID, view.Name, view.Type)
	}
	for _, item := range detail.Items {
		fmt.Printf("  item: %s %s\n", item.ID, truncate(item.Title, 50))
	}
	return nil
}

func runDBList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	dbs, err := store.ListDatabases(dbWorkspace)
	if err != nil {
		return fmt.Errorf("list databases: %w", err)
	}

	if flagJSON {
		return printJSON(dbs)
	}
	printDBTable(dbs)
	return nil
}

func runDBUpdate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var update types.DatabaseUpdate
	if cmd.Flags().Changed("title") {
		update.Title = &dbTitle
	}
	if cmd.Flags().Changed("icon") {
		update.Icon = &dbIcon
	}
	if cmd.Flags().Changed("description") {
		update.Description = &dbDescription
	}
	if cmd.Flags().Changed("view") {
		update.DefaultView = &dbDefaultView
	}
	if cmd.Flags().Changed("schema") {
		schema, err := parseSchema(dbSchema)
		if err != nil {
			return err
		}
		if schema == nil {
			schema = []types.PropertyDef{}
		}
		update.PropertiesSchema = schema
	}

	db, err := store.UpdateDatabase(args[0], update)
	if err != nil {
		return fmt.Errorf("update database: %w", err)
	}

	if flagJSON {
		return printJSON(db)
	}
	fmt.Printf("Updated database: %s\n", db.ID)
	return nil
}

func runDBDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteDatabase(args[0]); err != nil {
		return fmt.Errorf("delete database: %w", err)
	}
	fmt.Printf("Deleted database: %s\n", args[0])
	return nil
}

// printDBTable prints databases in a human-readable table format.
func printDBTable(dbs []*types.Database) {
	if len(dbs) == 0 {
		fmt.Println("No databases found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tWORKSPACE\tVIEWS\tUPDATED")
	fmt.Fprintln(w, "--\t-----\t---------\t-----\t-------")
	for _, db := range dbs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			db.ID,
			truncate(db.Title, 40),
			db.Workspace,
			len(db.Views),
			db.UpdatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()

	fmt.Print(sb.String())
	fmt.Printf("Total: %d database(s)\n", len(dbs))
}
