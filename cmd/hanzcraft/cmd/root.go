// Package cmd contains all CLI commands for HanzCraft.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/hanzcraft/internal/config"
	"github.com/f3rmion/hanzcraft/internal/pinyin"
	"github.com/f3rmion/hanzcraft/internal/suggest"
	"github.com/f3rmion/hanzcraft/internal/tui"
	"github.com/f3rmion/hanzcraft/internal/tui/bigchar"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hanzcraft",
	Short: "HanzCraft - build Chinese characters from radicals",
	Long: `HanzCraft is a character crafting game for learners of Chinese.

Place radicals into a 2x2 grid and craft them into characters:
  - Exact arrangements form known characters (女 over 子 makes 好)
  - Crafted characters can be saved to your collection
  - Challenges restrict the radicals and set a target character
  - An AI model can suggest other characters built from your radicals

Running 'hanzcraft' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/hanzcraft)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().String("catalog", "", "catalogue YAML file replacing the built-in one")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
}

// initConfig reads .env, the config file and HANZCRAFT_* variables.
func initConfig() {
	// API keys usually live in .env next to the working directory.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	if cfgDir == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		cfgDir = dir
	}
	viper.Set("config_dir", cfgDir)

	defaults := config.Default()
	viper.SetDefault("llm.provider", defaults.LLM.Provider)
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.timeout", defaults.LLM.Timeout)
	viper.SetDefault("llm.endpoint", "")
	viper.SetDefault("storage.path", "")
	viper.SetDefault("catalog.path", "")
	viper.SetDefault("dictionary.path", "")
	viper.SetDefault("prompt.template", "")
	viper.SetDefault("prompt.max", defaults.Prompt.Max)
	viper.SetDefault("ui.font", "")

	viper.SetEnvPrefix("HANZCRAFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	path := filepath.Join(cfgDir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", path, err)
		}
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig builds the effective configuration from viper.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Resolve(getConfigDir())
	return cfg, nil
}

// runTUI launches the crafting game.
func runTUI(cmd *cobra.Command, args []string) error {
	dir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// The alt screen owns stdout, so diagnostics go to a file.
	logFile, err := os.OpenFile(filepath.Join(dir, "hanzcraft.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	a, err := openApp(logFile)
	if err != nil {
		return err
	}
	defer a.Close()

	bigchar.UseFont(a.cfg.UI.Font)

	annotator := suggest.NewAnnotator(pinyin.NewParser(), a.dict, a.session.Craftable)
	p := tea.NewProgram(
		tui.NewApp(a.session, tui.Options{
			Annotator:      annotator,
			Logger:         a.logger,
			SuggestTimeout: a.cfg.LLM.Timeout + 5*time.Second,
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
