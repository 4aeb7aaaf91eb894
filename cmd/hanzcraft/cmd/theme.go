package cmd

import (
	"fmt"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := openApp(logOutput())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, a.themes.Get())
		return nil
	}

	var theme hanzcraft.Theme
	switch args[0] {
	case "toggle":
		theme, err = a.themes.Toggle()
	default:
		theme = hanzcraft.Theme(args[0])
		if !theme.Valid() {
			return fmt.Errorf("unknown theme %q (want light or dark)", args[0])
		}
		err = a.themes.Set(theme)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Theme set to %s\n", theme)
	return nil
}
