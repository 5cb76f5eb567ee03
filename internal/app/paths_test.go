package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigPathsOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))

	paths := DefaultConfigPaths()
	if len(paths) != 2 {
		t.Fatalf("expected 2 config paths, got %d: %v", len(paths), paths)
	}
	if paths[0] != "config.json" {
		t.Fatalf("expected working directory config first, got %q", paths[0])
	}
	want := filepath.Join(home, ".config", "efb-connector", "config.json")
	if paths[1] != want {
		t.Fatalf("unexpected user config path %q, want %q", paths[1], want)
	}
}

func TestEnsureOutputDirCreatesNested(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureOutputDir(dir); err != nil {
		t.Fatalf("ensure output dir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat output dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", dir)
	}
	if err := EnsureOutputDir(dir); err != nil {
		t.Fatalf("ensure existing output dir: %v", err)
	}
}

func TestGPXPath(t *testing.T) {
	t.Parallel()

	if got := GPXPath("out", 42); got != filepath.Join("out", "activity_42.gpx") {
		t.Fatalf("unexpected gpx path %q", got)
	}
	if got := GPXPath("", 7); got != filepath.Join(".", "activity_7.gpx") {
		t.Fatalf("unexpected default gpx path %q", got)
	}
}
