package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/f3rmion/hanzcraft/internal/anki"
	"github.com/spf13/cobra"
)

var ankiCmd = &cobra.Command{
	Use:   "anki",
	Short: "Work with Anki decks",
	Long:  `Commands for reading Anki .apkg files and adding your collection to them.`,
}

var ankiInspectCmd = &cobra.Command{
	Use:   "inspect <file.apkg>",
	Short: "Inspect an Anki deck",
	Long: `Inspect an Anki .apkg file to see its decks, note types and fields.

Example:
  hanzcraft anki inspect chinese.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiInspect,
}

var ankiAnnotateCmd = &cobra.Command{
	Use:   "annotate <file.apkg>",
	Short: "Add crafting data from your collection to Anki notes",
	Long: `Find notes whose character field holds a collected character and fill
in HanzCraft fields: pinyin, meaning, example usage and the radical grid.
Note types gain the fields if they lack them. The input deck is never
modified; the result is written to --output.

Examples:
  hanzcraft anki annotate chinese.apkg -o chinese-hanzcraft.apkg
  hanzcraft anki annotate chinese.apkg -o out.apkg --field Hanzi`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiAnnotate,
}

var (
	ankiAnnotateField  string
	ankiAnnotateOutput string
)

func init() {
	rootCmd.AddCommand(ankiCmd)
	ankiCmd.AddCommand(ankiInspectCmd)
	ankiCmd.AddCommand(ankiAnnotateCmd)

	ankiAnnotateCmd.Flags().StringVarP(&ankiAnnotateField, "field", "f", "", "field holding the character (auto-detect if not specified)")
	ankiAnnotateCmd.Flags().StringVarP(&ankiAnnotateOutput, "output", "o", "", "output .apkg file")
	ankiAnnotateCmd.MarkFlagRequired("output")
}

func runAnkiInspect(cmd *cobra.Command, args []string) error {
	pkg, err := anki.OpenPackage(args[0])
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	out := cmd.OutOrStdout()
	fmt.Fprint(out, pkg.Summary())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Field Details:")
	for _, model := range pkg.Models {
		fmt.Fprintf(out, "  %s:\n", model.Name)
		for _, field := range model.Fields {
			fmt.Fprintf(out, "    [%d] %s\n", field.Ord, field.Name)
		}
	}
	if f := pkg.DetectField(); f != "" {
		fmt.Fprintf(out, "\nCharacter field: %s\n", f)
	}
	return nil
}

func runAnkiAnnotate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if samePath(path, ankiAnnotateOutput) {
		return fmt.Errorf("output must differ from the input deck")
	}

	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	items := a.store.Load()
	if len(items) == 0 {
		return fmt.Errorf("your collection is empty; nothing to annotate")
	}

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Opened: %s (%d notes)\n", path, len(pkg.Notes))

	field := ankiAnnotateField
	if field == "" {
		field = pkg.DetectField()
		if field == "" {
			return fmt.Errorf("could not detect a field with Chinese characters; use --field")
		}
		fmt.Fprintf(stderr, "Using field: %s\n", field)
	}

	res, err := pkg.Annotate(items, field)
	if err != nil {
		return fmt.Errorf("annotating notes: %w", err)
	}
	if res.Notes == 0 {
		return fmt.Errorf("no note in field %q matches a collected character", field)
	}

	if err := pkg.SaveAs(ankiAnnotateOutput); err != nil {
		return fmt.Errorf("writing %s: %w", ankiAnnotateOutput, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Annotated %d note(s) -> %s\n", res.Notes, ankiAnnotateOutput)
	if len(res.Models) > 0 {
		fmt.Fprintf(out, "  Added fields to: %s\n", strings.Join(res.Models, ", "))
	}
	if len(res.Missing) > 0 {
		fmt.Fprintf(out, "  Not in deck: %s\n", strings.Join(res.Missing, " "))
	}
	return nil
}

func samePath(a, b string) bool {
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	if errA != nil || errB != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
