package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/f3rmion/hanzcraft/internal/catalog"
	"github.com/f3rmion/hanzcraft/internal/collection"
	"github.com/f3rmion/hanzcraft/internal/config"
	"github.com/f3rmion/hanzcraft/internal/decomp"
	"github.com/f3rmion/hanzcraft/internal/game"
	"github.com/f3rmion/hanzcraft/internal/llm"
	"github.com/f3rmion/hanzcraft/internal/prompt"
	"github.com/f3rmion/hanzcraft/internal/settings"
	"github.com/f3rmion/hanzcraft/internal/storage"
	"github.com/f3rmion/hanzcraft/internal/suggest"
	"github.com/spf13/viper"
)

// app bundles everything a command needs to play or inspect the game.
type app struct {
	cfg     *config.Config
	kv      storage.KV
	cat     *catalog.Catalog
	store   *collection.Store
	themes  *settings.ThemeStore
	gateway *suggest.Gateway
	dict    *decomp.Dictionary
	session *game.Session
	logger  *log.Logger
}

// logOutput is where one-shot commands send diagnostics: stderr with
// --verbose, nowhere otherwise.
func logOutput() io.Writer {
	if viper.GetBool("verbose") {
		return os.Stderr
	}
	return io.Discard
}

// openApp loads the configuration and wires the game together. Diagnostics
// go to w.
func openApp(w io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := log.New(w, "hanzcraft: ", log.LstdFlags)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755); err != nil {
		logger.Printf("creating storage directory: %v", err)
	}
	kv, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		// Open hands back an in-memory store; the game still works, it just forgets.
		logger.Printf("opening %s: %v (collection will not persist)", cfg.Storage.Path, err)
	}

	a := &app{
		cfg:    cfg,
		kv:     kv,
		cat:    cat,
		store:  collection.NewStore(kv, logger),
		themes: settings.NewThemeStore(kv, logger),
		logger: logger,
	}

	gen, err := llm.New(cfg.LLM.Provider, llm.Options{
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
		Endpoint: cfg.LLM.Endpoint,
	})
	if err != nil {
		logger.Printf("AI suggestions disabled: %v", err)
		gen = nil
	}

	prompts := prompt.NewGenerator()
	if cfg.Prompt.Template != "" {
		if err := prompts.LoadTemplate(cfg.Prompt.Template); err != nil {
			a.Close()
			return nil, fmt.Errorf("loading prompt template: %w", err)
		}
	}
	a.gateway = suggest.NewGateway(gen, prompts, logger)
	a.gateway.SetMax(cfg.Prompt.Max)

	a.dict = decomp.NewDictionary()
	paths := []string{cfg.Dictionary.Path, "data/dictionary.jsonl"}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "data", "dictionary.jsonl"))
	}
	if used := a.dict.LoadFirst(paths...); used != "" {
		logger.Printf("dictionary: %d entries from %s", a.dict.Size(), used)
	}

	a.session = game.NewSession(game.Deps{
		Catalog:    cat,
		Collection: a.store,
		Themes:     a.themes,
		Suggester:  a.gateway,
		Logger:     logger,
	})
	return a, nil
}

// Close releases the storage backend.
func (a *app) Close() error {
	return a.kv.Close()
}
