package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := kv.Set("theme", `"dark"`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, err := kv.Get("theme"); err != nil || !ok || v != `"dark"` {
		t.Fatalf("Get(theme) = %q, %v, %v", v, ok, err)
	}

	if err := kv.Set("theme", `"light"`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, _, _ := kv.Get("theme"); v != `"light"` {
		t.Errorf("Get after overwrite = %q", v)
	}

	if err := kv.Delete("theme"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get("theme"); ok {
		t.Error("key still present after Delete")
	}
	if err := kv.Delete("theme"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestMemory(t *testing.T) {
	testKV(t, NewMemory())
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory()
	m.Close()
	if err := m.Set("k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "hanzcraft.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	testKV(t, s)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hanzcraft.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set("hanzi-collection", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if v, ok, err := s.Get("hanzi-collection"); err != nil || !ok || v != "[]" {
		t.Errorf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestOpenFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	// A regular file where a directory is expected makes MkdirAll fail.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	kv, err := Open(filepath.Join(blocker, "hanzcraft.db"))
	if err == nil {
		t.Fatal("Open under a file returned nil error")
	}
	if _, ok := kv.(*Memory); !ok {
		t.Fatalf("Open fallback = %T, want *Memory", kv)
	}
	testKV(t, kv)
}
