package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "List crafting challenges",
	Long: `List the challenges in the catalogue. Each challenge names a target
character and the radicals you may use to craft it.

Play one in the TUI (panel 3) or with:
  hanzcraft craft 女 _ 子 _ --challenge good`,
	Args: cobra.NoArgs,
	RunE: runChallenges,
}

func init() {
	rootCmd.AddCommand(challengesCmd)
}

func runChallenges(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	challenges := a.session.Challenges()
	if len(challenges) == 0 {
		fmt.Fprintln(out, "No challenges in the catalogue.")
		return nil
	}

	rows := make([][]string, 0, len(challenges))
	for _, ch := range challenges {
		done := ""
		if a.store.Contains(ch.TargetCharacter) {
			done = "✓"
		}
		rows = append(rows, []string{
			ch.ID,
			ch.TargetCharacter,
			ch.Pinyin,
			strings.Join(ch.AllowedRadicals, " "),
			done,
			ch.Meaning,
		})
	}
	printTable(out, []string{"ID", "TARGET", "PINYIN", "RADICALS", "SAVED", "MEANING"}, rows)
	return nil
}
