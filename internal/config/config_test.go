package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestConfigParsing(t *testing.T) {
	configContent := `# Global options
glyphs unicode
arrows both

[view]
smooth true
scroll-step 3

[render]
cells 12`

	config, err := LoadFromReader(strings.NewReader(configContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if value, ok := config.GetGlobalOption("glyphs"); !ok || value != "unicode" {
		t.Errorf("Expected glyphs=unicode, got %s (exists: %v)", value, ok)
	}

	if value, ok := config.GetCommandOption("view", "smooth"); !ok || value != "true" {
		t.Errorf("Expected view.smooth=true, got %s (exists: %v)", value, ok)
	}

	if value, ok := config.GetCommandOption("render", "cells"); !ok || value != "12" {
		t.Errorf("Expected render.cells=12, got %s (exists: %v)", value, ok)
	}

	// fallback to global options
	if value, ok := config.GetCommandOption("view", "arrows"); !ok || value != "both" {
		t.Errorf("Expected view.arrows=both (fallback), got %s (exists: %v)", value, ok)
	}

	if value, ok := config.GetCommandOption("nonexistent", "option"); ok {
		t.Errorf("Expected nonexistent option to not exist, but got %s", value)
	}

	if config.HasWarnings() {
		t.Errorf("Expected no warnings, got %v", config.GetWarnings())
	}
}

func TestEmptyConfig(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Failed to load empty config: %v", err)
	}

	if len(config.Global) != 0 {
		t.Errorf("Expected empty global config, got %v", config.Global)
	}
	if len(config.Commands) != 0 {
		t.Errorf("Expected empty commands config, got %v", config.Commands)
	}
}

func TestConfigValueKeepsInnerSpaces(t *testing.T) {
	config, err := LoadFromReader(strings.NewReader("log-file   /tmp/my logs/t.log  \nsmooth"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if v, _ := config.GetGlobalOption("log-file"); v != "/tmp/my logs/t.log" {
		t.Errorf("unexpected log-file %q", v)
	}
	if v, ok := config.GetGlobalOption("smooth"); !ok || v != "" {
		t.Errorf("expected bare key with empty value, got %q (exists: %v)", v, ok)
	}
}

func TestConfigWarnings(t *testing.T) {
	configContent := `colour blue
scroll-step many
glyphs emoji
[view]
cells 3
[nope]
x y`

	config, err := LoadFromReader(strings.NewReader(configContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	want := []string{
		`global option "glyphs"`,
		`global option "scroll-step": expected int`,
		`unknown global option: "colour"`,
		`unknown option for command "view": "cells"`,
		`unknown section: [nope]`,
	}
	warnings := config.GetWarnings()
	if len(warnings) != len(want) {
		t.Fatalf("expected %d warnings, got %d: %v", len(want), len(warnings), warnings)
	}
	for i, w := range want {
		if !strings.Contains(warnings[i], w) {
			t.Errorf("warning %d: expected %q in %q", i, w, warnings[i])
		}
	}
}

func TestEmptySectionName(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("[ ]\nsmooth true")); err == nil {
		t.Fatal("expected error for empty section name")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromPath(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(cfg.Global) != 0 {
		t.Fatalf("expected empty config, got %v", cfg.Global)
	}

	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte("arrows end\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if v, _ := cfg.GetGlobalOption("arrows"); v != "end" {
		t.Fatalf("expected arrows=end, got %q", v)
	}
}

func TestLoadFromPathRejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.WriteFile(target, []byte("arrows end\n"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "config")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(link)
	if err == nil || !strings.Contains(err.Error(), "symlink not allowed") {
		t.Fatalf("expected symlink rejection, got %v", err)
	}
}

func TestSetOptions(t *testing.T) {
	c := NewConfig()
	c.SetGlobalOption("arrows", "both")
	c.SetCommandOption("render", "arrows", "none")

	if v, _ := c.GetCommandOption("render", "arrows"); v != "none" {
		t.Errorf("expected section override, got %q", v)
	}
	if v, _ := c.GetCommandOption("view", "arrows"); v != "both" {
		t.Errorf("expected global fallback, got %q", v)
	}
}
