package cmd

import (
	"fmt"

	"github.com/f3rmion/hanzcraft/internal/export"
	"github.com/spf13/cobra"
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"col"},
	Short:   "Manage your collection of crafted characters",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collected characters",
	Args:  cobra.NoArgs,
	RunE:  runCollectionList,
}

var collectionSaveCmd = &cobra.Command{
	Use:   "save <character>",
	Short: "Add a craftable character to the collection",
	Long: `Add a character to the collection without crafting it in the grid.
Only characters in the catalogue can be saved.

Example:
  hanzcraft collection save 好`,
	Args: cobra.ExactArgs(1),
	RunE: runCollectionSave,
}

var collectionRemoveCmd = &cobra.Command{
	Use:   "remove <character>",
	Short: "Remove a character from the collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionRemove,
}

var collectionExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the collection to CSV or Excel",
	Long: `Export the collection. Files ending in .xlsx are written as Excel
workbooks; anything else is CSV. Use - for CSV on stdout.

Examples:
  hanzcraft collection export characters.xlsx
  hanzcraft collection export - > characters.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCollectionExport,
}

func init() {
	rootCmd.AddCommand(collectionCmd)
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionSaveCmd)
	collectionCmd.AddCommand(collectionRemoveCmd)
	collectionCmd.AddCommand(collectionExportCmd)
}

func runCollectionList(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	items := a.store.Load()
	if len(items) == 0 {
		fmt.Fprintln(out, "Your collection is empty. Craft a character and save it!")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{c.Character, c.Pinyin, c.Components.String(), c.Meaning})
	}
	printTable(out, []string{"CHAR", "PINYIN", "GRID", "MEANING"}, rows)
	fmt.Fprintf(out, "\n%d character(s)\n", len(items))
	return nil
}

func runCollectionSave(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	char := args[0]
	comp, ok := a.cat.Matcher().Lookup(char)
	if !ok {
		return fmt.Errorf("%s cannot be crafted from the catalogue", char)
	}
	added, err := a.store.Save(comp)
	if err != nil {
		return fmt.Errorf("saving %s: %w", char, err)
	}

	out := cmd.OutOrStdout()
	if !added {
		fmt.Fprintf(out, "%s is already in your collection\n", char)
		return nil
	}
	fmt.Fprintf(out, "Saved %s (%s)\n", comp.Character, comp.Pinyin)
	return nil
}

func runCollectionRemove(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	removed, err := a.store.Remove(args[0])
	if err != nil {
		return fmt.Errorf("removing %s: %w", args[0], err)
	}
	if !removed {
		return fmt.Errorf("%s is not in your collection", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runCollectionExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	items := a.store.Load()
	if args[0] == "-" {
		return export.WriteCSV(cmd.OutOrStdout(), items)
	}
	if err := export.WriteFile(args[0], items); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d character(s) to %s\n", len(items), args[0])
	return nil
}
