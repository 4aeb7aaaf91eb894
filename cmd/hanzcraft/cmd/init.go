package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/hanzcraft/internal/catalog"
	"github.com/f3rmion/hanzcraft/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize HanzCraft configuration",
	Long: `Initialize HanzCraft configuration files in your config directory.

This creates:
  - config.yaml   (AI provider, storage and prompt settings)
  - catalog.yaml  (radicals, compositions and challenges; edit to add your own)

API keys are read from the environment or a .env file, never from config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	dir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	files := map[string]func(path string) error{
		config.FileName: func(path string) error {
			return config.Save(path, config.Default())
		},
		"catalog.yaml": func(path string) error {
			return os.WriteFile(path, catalog.DefaultYAML(), 0644)
		},
	}

	if !force {
		for name := range files {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return fmt.Errorf("%s already exists in %s\nUse --force to overwrite", name, dir)
			}
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing HanzCraft configuration in %s\n\n", dir)
	for _, name := range []string{config.FileName, "catalog.yaml"} {
		if err := files[name](filepath.Join(dir, name)); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Created %s\n", name)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Put ANTHROPIC_API_KEY in your environment or a .env file")
	fmt.Fprintln(out, "  2. Run 'hanzcraft' to start crafting")
	fmt.Fprintln(out, "  3. Run 'hanzcraft catalog check' after editing catalog.yaml")
	return nil
}
