package builtin

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	runtime := goja.New()
	registry := require.NewRegistry()

	result := Register(registry)
	if result.ScrollbarManager == nil {
		t.Fatal("expected scrollbar manager")
	}

	req := registry.Enable(runtime)
	modules := []string{
		"termscroll:termui/scrollbar",
		"termscroll:unicodetext",
	}

	for _, name := range modules {
		if _, err := req.Require(name); err != nil {
			t.Fatalf("expected module %s to load, got error: %v", name, err)
		}
	}

	if _, err := req.Require("termscroll:os"); err == nil {
		t.Fatal("expected unknown module to fail")
	}
}

func TestRegister_ManagerTracksScripts(t *testing.T) {
	t.Parallel()

	runtime := goja.New()
	registry := require.NewRegistry()
	result := Register(registry)
	registry.Enable(runtime)

	if _, err := runtime.RunString(`
		const sb = require('termscroll:termui/scrollbar');
		sb.new({contentLength: 10, viewportLength: 5});
		sb.new().dispose();
	`); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if n := result.ScrollbarManager.Len(); n != 1 {
		t.Fatalf("expected 1 live scrollbar, got %d", n)
	}
}
