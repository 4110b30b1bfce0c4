// Package unicodetext exposes terminal text measurement to scripts, so they
// can derive scrollbar lengths from real content.
//
//	const text = require('termscroll:unicodetext');
//	text.width("日本");                 // 4
//	text.truncate("scrollbar", 6);      // "scr..."
//	text.measure("a\nwide 日本\n");     // {lines: 2, columns: 9}
package unicodetext

import (
	"strings"

	"github.com/dop251/goja"
	"github.com/rivo/uniseg"
)

// Require returns the loader for the "termscroll:unicodetext" module.
func Require() func(runtime *goja.Runtime, module *goja.Object) {
	return func(runtime *goja.Runtime, module *goja.Object) {
		exports := module.Get("exports").(*goja.Object)

		_ = exports.Set("width", func(s string) int {
			return uniseg.StringWidth(s)
		})

		_ = exports.Set("truncate", func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				panic(runtime.NewTypeError("truncate(text, maxWidth[, tail]) requires at least 2 arguments"))
			}
			tail := "..."
			if t := call.Argument(2); !goja.IsUndefined(t) {
				tail = t.String()
			}
			return runtime.ToValue(Truncate(call.Argument(0).String(), int(call.Argument(1).ToInteger()), tail))
		})

		_ = exports.Set("measure", func(s string) map[string]int {
			lines, columns := Measure(s)
			return map[string]int{"lines": lines, "columns": columns}
		})
	}
}

// Truncate cuts s on grapheme boundaries so that it fits maxWidth cells
// including tail. A tail wider than maxWidth is returned alone.
func Truncate(s string, maxWidth int, tail string) string {
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	room := maxWidth - uniseg.StringWidth(tail)
	if room < 0 {
		return tail
	}
	var b strings.Builder
	used, state := 0, -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if used+w > room {
			break
		}
		used += w
		b.WriteString(cluster)
	}
	b.WriteString(tail)
	return b.String()
}

// Measure returns the line count and the widest line of s, counted the way the
// viewer counts them: one trailing line break is dropped and empty text is a
// single empty line.
func Measure(s string) (lines, columns int) {
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for line := range strings.SplitSeq(s, "\n") {
		lines++
		columns = max(columns, uniseg.StringWidth(line))
	}
	return lines, columns
}
