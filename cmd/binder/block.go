// Block commands: add, update, delete, reorder, and list blocks.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binder-notes/binder/pkg/types"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage blocks within a page",
}

var (
	blockType    string
	blockContent string
	blockProps   string
	blockAfter   string
	blockIndent  int
)

var blockAddCmd = &cobra.Command{
	Use:   "add <page-id>",
	Short: "Add a block to a page",
	Long: `Add a block to a page, appended at the end or after a given block.

Example:
  binder block add abc12345 --content "Hello"
  binder block add abc12345 --type h1 --content "Agenda"
  binder block add abc12345 --type todo --content "Ship it" --props '{"checked": false}'
  binder block add abc12345 --content "Follow-up" --after def67890`,
	Args: cobra.ExactArgs(1),
	RunE: runBlockAdd,
}

var blockUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update block fields",
	Long: `Update only the fields given by flags. --props replaces the
block's properties wholesale.

Example:
  binder block update def67890 --content "Edited"
  binder block update def67890 --props '{"checked": true}'`,
	Args: cobra.ExactArgs(1),
	RunE: runBlockUpdate,
}

var blockDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a block",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlockDelete,
}

var blockReorderCmd = &cobra.Command{
	Use:   "reorder <page-id> <block-id>...",
	Short: "Reorder a page's blocks by listing ids in their new sequence",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runBlockReorder,
}

var blockListCmd = &cobra.Command{
	Use:   "list <page-id>",
	Short: "List a page's blocks in order",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlockList,
}

func init() {
	blockAddCmd.Flags().StringVar(&blockType, "type", "", "block type (default: text)")
	blockAddCmd.Flags().StringVar(&blockContent, "content", "", "block content")
	blockAddCmd.Flags().StringVar(&blockProps, "props", "", "block properties as a JSON object")
	blockAddCmd.Flags().StringVar(&blockAfter, "after", "", "insert after this block id")
	blockAddCmd.Flags().IntVar(&blockIndent, "indent", 0, "indent level")

	blockUpdateCmd.Flags().StringVar(&blockType, "type", "", "new block type")
	blockUpdateCmd.Flags().StringVar(&blockContent, "content", "", "new content")
	blockUpdateCmd.Flags().StringVar(&blockProps, "props", "", "replacement properties as a JSON object")
	blockUpdateCmd.Flags().IntVar(&blockIndent, "indent", 0, "new indent level")

	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockUpdateCmd)
	blockCmd.AddCommand(blockDeleteCmd)
	blockCmd.AddCommand(blockReorderCmd)
	blockCmd.AddCommand(blockListCmd)
}

func runBlockAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	props, err := parseBag(blockProps, "props")
	if err != nil {
		return err
	}

	block, err := store.CreateBlock(args[0], types.BlockParams{
		Type:        blockType,
		Content:     blockContent,
		Properties:  props,
		AfterID:     blockAfter,
		IndentLevel: blockIndent,
	})
	if err != nil {
		return fmt.Errorf("add block: %w", err)
	}

	if flagJSON {
		return printJSON(block)
	}
	fmt.Printf("Added block: %s\n", block.ID)
	return nil
}

func runBlockUpdate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var update types.BlockUpdate
	if cmd.Flags().Changed("type") {
		update.Type = &blockType
	}
	if cmd.Flags().Changed("content") {
		update.Content = &blockContent
	}
	if cmd.Flags().Changed("indent") {
		update.IndentLevel = &blockIndent
	}
	if cmd.Flags().Changed("props") {
		props, err := parseBag(blockProps, "props")
		if err != nil {
			return err
		}
		if props == nil {
			props = map[string]any{}
		}
		update.Properties = props
	}

	block, err := store.UpdateBlock(args[0], update)
	if err != nil {
		return fmt.Errorf("update block: %w", err)
	}

	if flagJSON {
		return printJSON(block)
	}
	fmt.Printf("Updated block: %s\n", block.ID)
	return nil
}

func runBlockDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteBlock(args[0]); err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	fmt.Printf("Deleted block: %s\n", args[0])
	return nil
}

func runBlockReorder(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReorderBlocks(args[0], args[1:]); err != nil {
		return fmt.Errorf("reorder blocks: %w", err)
	}
	fmt.Printf("Reordered %d block(s)\n", len(args)-1)
	return nil
}

func runBlockList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	blocks, err := store.ListBlocks(args[0])
	if err != nil {
		return fmt.Errorf("list blocks: %w", err)
	}

	if flagJSON {
		return printJSON(blocks)
	}
	if len(blocks) == 0 {
		fmt.Println("No blocks found.")
		return nil
	}
	for _, b := range blocks {
		marker := " "
		if b.Type == types.BlockTodo && b.Checked() {
			marker = "x"
		}
		fmt.Printf("%s [%s]%s %s\n", b.ID, b.Type, marker, truncate(b.Content, 70))
	}
	return nil
}
