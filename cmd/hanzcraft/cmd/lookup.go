package cmd

import (
	"fmt"
	"strings"

	"github.com/f3rmion/hanzcraft/internal/decomp"
	"github.com/f3rmion/hanzcraft/internal/pinyin"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <character>",
	Short: "Show how to craft a character and what it means",
	Long: `Look up Chinese characters and display:
  - Pinyin reading(s)
  - The grid arrangement that crafts it, if any
  - Meaning and structure from the dictionary, if available

Example:
  hanzcraft lookup 好
  hanzcraft lookup 明林`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	parser := pinyin.NewParser()
	matcher := a.cat.Matcher()
	out := cmd.OutOrStdout()

	for _, r := range strings.Join(args, "") {
		char := string(r)
		fmt.Fprintf(out, "Character: %s\n", char)

		if readings := parser.Readings(char); len(readings) > 0 {
			fmt.Fprintf(out, "  Pinyin:    %s\n", strings.Join(readings, ", "))
		} else {
			fmt.Fprintln(out, "  Pinyin:    (not found)")
		}

		if comp, ok := matcher.Lookup(char); ok {
			fmt.Fprintf(out, "  Grid:      %s\n", comp.Components)
			fmt.Fprintf(out, "  Meaning:   %s\n", comp.Meaning)
			if comp.Usage != "" {
				fmt.Fprintf(out, "  Usage:     %s\n", comp.Usage)
			}
			if a.store.Contains(char) {
				fmt.Fprintln(out, "  Collected: yes")
			}
		} else {
			fmt.Fprintln(out, "  Grid:      (not craftable)")
		}

		if entry := a.dict.Lookup(char); entry != nil {
			if entry.Definition != "" {
				fmt.Fprintf(out, "  Definition: %s\n", entry.Definition)
			}
			if entry.Decomposition != "" && entry.Decomposition != "？" {
				fmt.Fprintf(out, "  Structure: %s\n", decomp.FormatDecomposition(entry.Decomposition))
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
