package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := "llm:\n  provider: gemini\n  timeout: 5s\nstorage:\n  path: /tmp/x.db\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "gemini" || cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.Storage.Path != "/tmp/x.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Prompt.Max != 8 {
		t.Errorf("Prompt.Max = %d, want default 8", cfg.Prompt.Max)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.LLM.Model = "claude-sonnet-4-20250514"
	cfg.Dictionary.Path = "/data/dictionary.jsonl"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("llm: [unclosed"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("bad yaml: expected error")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte("radicals: []\n"), 0644)

	cfg := Default()
	cfg.Resolve(dir)

	if cfg.Storage.Path != filepath.Join(dir, "hanzcraft.db") {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Catalog.Path != filepath.Join(dir, "catalog.yaml") {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Dictionary.Path != "" {
		t.Errorf("Dictionary.Path = %q, want empty when absent", cfg.Dictionary.Path)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	got, err := EnsureConfigDir(dir)
	if err != nil || got != dir {
		t.Fatalf("EnsureConfigDir = %q, %v", got, err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}
