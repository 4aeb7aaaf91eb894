package settings

import (
	"testing"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/f3rmion/hanzcraft/internal/storage"
)

func TestThemeDefaultsToDark(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		set    bool
	}{
		{name: "absent"},
		{name: "corrupt", stored: "{", set: true},
		{name: "unknown value", stored: `"sepia"`, set: true},
		{name: "unquoted", stored: "light", set: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			if tt.set {
				kv.Set(ThemeKey, tt.stored)
			}
			if got := NewThemeStore(kv, nil).Get(); got != hanzcraft.ThemeDark {
				t.Errorf("Get() = %q, want dark", got)
			}
		})
	}
}

func TestThemeToggle(t *testing.T) {
	kv := storage.NewMemory()
	s := NewThemeStore(kv, nil)

	next, err := s.Toggle()
	if err != nil || next != hanzcraft.ThemeLight {
		t.Fatalf("Toggle() = %q, %v; want light", next, err)
	}
	if raw, _, _ := kv.Get(ThemeKey); raw != `"light"` {
		t.Errorf("stored = %s, want \"light\"", raw)
	}

	// A fresh store over the same kv sees the persisted value.
	if got := NewThemeStore(kv, nil).Get(); got != hanzcraft.ThemeLight {
		t.Errorf("reloaded Get() = %q, want light", got)
	}

	if next, _ := s.Toggle(); next != hanzcraft.ThemeDark {
		t.Errorf("second Toggle() = %q, want dark", next)
	}
}

func TestThemeSetRejectsUnknown(t *testing.T) {
	if err := NewThemeStore(storage.NewMemory(), nil).Set("sepia"); err == nil {
		t.Error("Set(sepia) returned nil error")
	}
}
