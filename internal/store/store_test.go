package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenPath_MissingFileYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	s, err := OpenPath(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := s.Get("main"); ok {
		t.Fatalf("expected empty store")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")

	s, err := OpenPath(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set("main", "10; 20; 800; 600; 0")
	s.Set("settings", "0; 0; 400; 300; 1")
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v, ok := reloaded.Get("main"); !ok || v != "10; 20; 800; 600; 0" {
		t.Fatalf("main entry: got %q, %v", v, ok)
	}
	if v, ok := reloaded.Get("settings"); !ok || v != "0; 0; 400; 300; 1" {
		t.Fatalf("settings entry: got %q, %v", v, ok)
	}
}

func TestDelete(t *testing.T) {
	s, err := OpenPath(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set("main", "1; 2; 3; 4; 0")
	s.Delete("main")
	if _, ok := s.Get("main"); ok {
		t.Fatalf("expected entry removed")
	}
}

func TestNames_Sorted(t *testing.T) {
	s, err := OpenPath(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set("zeta", "1; 2; 3; 4; 0")
	s.Set("alpha", "1; 2; 3; 4; 0")

	names := s.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

func TestOpenPath_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("windows: [not: a map\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := OpenPath(path); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}
