package scripting

import (
	"context"
	"log/slog"
	"sort"

	"github.com/dop251/goja"
)

var jsLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogObject builds the "log" global. Each method takes a message and an
// optional object whose properties become log attributes.
func newLogObject(vm *goja.Runtime, logger *slog.Logger) *goja.Object {
	obj := vm.NewObject()
	for name, level := range jsLogLevels {
		_ = obj.Set(name, func(call goja.FunctionCall) goja.Value {
			logger.LogAttrs(context.Background(), level, call.Argument(0).String(), logAttrs(vm, call.Argument(1))...)
			return goja.Undefined()
		})
	}
	return obj
}

func logAttrs(vm *goja.Runtime, v goja.Value) []slog.Attr {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj := v.ToObject(vm)
	keys := obj.Keys()
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, obj.Get(key).Export()))
	}
	return attrs
}
