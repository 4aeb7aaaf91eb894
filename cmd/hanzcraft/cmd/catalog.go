package cmd

import (
	"fmt"

	"github.com/f3rmion/hanzcraft/internal/catalog"
	"github.com/f3rmion/hanzcraft/internal/pinyin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the radical and composition catalogue",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a catalogue and lint its pinyin",
	Long: `Validate a catalogue file (or the active catalogue) and compare its
pinyin against known readings. Structural problems are errors; pinyin
mismatches are reported as warnings.

Examples:
  hanzcraft catalog check
  hanzcraft catalog check my-catalog.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogCheck,
}

var catalogDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the built-in catalogue as YAML",
	Long: `Print the built-in catalogue. Use it as a starting point for your own:
  hanzcraft catalog dump > ~/.config/hanzcraft/catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(catalog.DefaultYAML())
		return err
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
	catalogCmd.AddCommand(catalogDumpCmd)
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	path := viper.GetString("catalog.path")
	if len(args) == 1 {
		path = args[0]
	} else if cfg, err := loadConfig(); err == nil {
		path = cfg.Catalog.Path
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	name := path
	if name == "" {
		name = "built-in catalog"
	}
	fmt.Fprintf(out, "%s: %d radicals, %d compositions, %d challenges\n",
		name, len(cat.Radicals), len(cat.Compositions), len(cat.Challenges))

	warnings := cat.Check(pinyin.NewParser())
	for _, w := range warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	if len(warnings) == 0 {
		fmt.Fprintln(out, "OK")
	}
	return nil
}
