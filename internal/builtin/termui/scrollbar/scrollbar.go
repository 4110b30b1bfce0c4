// Package scrollbar provides JavaScript bindings for
// github.com/joeycumines/termscroll/internal/termui/scrollbar.
//
// The module is exposed as "termscroll:termui/scrollbar". Scripts construct a
// scrollbar, keep its lengths and offset in sync with whatever they scroll,
// render it, and feed it pointer and wheel events.
//
// # JavaScript API
//
//	const scrollbar = require('termscroll:termui/scrollbar');
//
//	const bar = scrollbar.new({
//	    orientation: 'vertical',   // or 'horizontal'
//	    contentLength: 200,
//	    viewportLength: 20,
//	    offset: 0,
//	    arrows: 'both',            // none, start, end, both
//	    trackClick: 'page',        // page or jump
//	    scrollStep: 3,
//	    glyphs: 'unicode',         // see scrollbar.glyphSets()
//	});
//
//	const out = bar.view(1, 20);
//	const m = bar.metrics(18);      // m.thumbStart, m.thumbLength, ...
//
//	// Events use screen coordinates; area is where the bar was drawn.
//	const area = {x: 79, y: 0, width: 1, height: 20};
//	const offset = bar.handleEvent(area, {type: 'down', x: 79, y: 12});
//	if (offset !== null) {
//	    // bar.offset() === offset already; scroll the content to match
//	}
//
// Setters return the scrollbar object so calls can be chained. Invalid
// enumeration values throw a TypeError, as does a view larger than
// MaxViewCells.
package scrollbar

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/dop251/goja"

	termuisb "github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

// MaxViewCells bounds the width x height of a view rendered for a script.
const MaxViewCells = 1 << 20

var modelCounter uint64

// Manager holds scrollbar-related state per engine instance.
type Manager struct {
	mu     sync.RWMutex
	models map[uint64]*ModelWrapper
}

// ModelWrapper pairs a scrollbar with its interaction state under a mutex.
type ModelWrapper struct {
	mu sync.Mutex
	sb termuisb.ScrollBar
	in *termuisb.Interaction
	id uint64
}

// NewManager creates a new scrollbar manager for an engine instance.
func NewManager() *Manager {
	return &Manager{models: make(map[uint64]*ModelWrapper)}
}

func (m *Manager) registerModel(wrapper *ModelWrapper) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := atomic.AddUint64(&modelCounter, 1)
	wrapper.id = id
	m.models[id] = wrapper
	return id
}

func (m *Manager) getModel(id uint64) *ModelWrapper {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.models[id]
}

func (m *Manager) releaseModel(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.models, id)
}

// Len reports how many scrollbars are live.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.models)
}

// Require returns a CommonJS native module under "termscroll:termui/scrollbar".
func Require(manager *Manager) func(runtime *goja.Runtime, module *goja.Object) {
	return func(runtime *goja.Runtime, module *goja.Object) {
		exports := runtime.NewObject()
		_ = module.Set("exports", exports)

		_ = exports.Set("SUBCELL", termuisb.Subcell)

		_ = exports.Set("glyphSets", func(call goja.FunctionCall) goja.Value {
			return runtime.ToValue(termuisb.GlyphSetNames())
		})

		_ = exports.Set("new", func(call goja.FunctionCall) goja.Value {
			sb := termuisb.New()
			if arg := call.Argument(0); !isAbsent(arg) {
				opts, err := optionsFromObject(arg.ToObject(runtime))
				if err != nil {
					panic(runtime.NewTypeError(err.Error()))
				}
				sb = sb.With(opts...)
			}
			wrapper := &ModelWrapper{sb: sb, in: termuisb.NewInteraction()}
			id := manager.registerModel(wrapper)
			return createScrollbarObject(runtime, manager, id)
		})
	}
}

func isAbsent(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

func intProp(obj *goja.Object, name string) (int, bool) {
	v := obj.Get(name)
	if isAbsent(v) {
		return 0, false
	}
	return int(v.ToInteger()), true
}

func stringProp(obj *goja.Object, name string) (string, bool) {
	v := obj.Get(name)
	if isAbsent(v) {
		return "", false
	}
	return v.String(), true
}

// optionsFromObject reads the option bag accepted by new().
func optionsFromObject(obj *goja.Object) ([]termuisb.Option, error) {
	var opts []termuisb.Option
	if s, ok := stringProp(obj, "orientation"); ok {
		o, err := termuisb.ParseOrientation(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, termuisb.WithOrientation(o))
	}
	if n, ok := intProp(obj, "contentLength"); ok {
		opts = append(opts, termuisb.WithContentLen(n))
	}
	if n, ok := intProp(obj, "viewportLength"); ok {
		opts = append(opts, termuisb.WithViewportLen(n))
	}
	if n, ok := intProp(obj, "offset"); ok {
		opts = append(opts, termuisb.WithOffset(n))
	}
	if s, ok := stringProp(obj, "arrows"); ok {
		a, err := termuisb.ParseArrowMode(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, termuisb.WithArrows(a))
	}
	if s, ok := stringProp(obj, "trackClick"); ok {
		b, err := termuisb.ParseTrackClickBehavior(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, termuisb.WithTrackClickBehavior(b))
	}
	if n, ok := intProp(obj, "scrollStep"); ok {
		opts = append(opts, termuisb.WithScrollStep(n))
	}
	if s, ok := stringProp(obj, "glyphs"); ok {
		g, err := termuisb.GlyphSetByName(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, termuisb.WithGlyphSet(g))
	}
	return opts, nil
}

func rectFromObject(obj *goja.Object) termuisb.Rect {
	var r termuisb.Rect
	r.X, _ = intProp(obj, "x")
	r.Y, _ = intProp(obj, "y")
	r.Width, _ = intProp(obj, "width")
	r.Height, _ = intProp(obj, "height")
	return r
}

func parseButton(s string) (termuisb.PointerButton, error) {
	switch strings.ToLower(s) {
	case "", "primary", "left":
		return termuisb.ButtonPrimary, nil
	case "secondary", "right":
		return termuisb.ButtonSecondary, nil
	case "middle":
		return termuisb.ButtonMiddle, nil
	case "other":
		return termuisb.ButtonOther, nil
	}
	return 0, fmt.Errorf("unknown pointer button %q", s)
}

func parseAxis(s string) (termuisb.Axis, error) {
	switch strings.ToLower(s) {
	case "", "vertical":
		return termuisb.AxisVertical, nil
	case "horizontal":
		return termuisb.AxisHorizontal, nil
	}
	return 0, fmt.Errorf("unknown wheel axis %q", s)
}

// eventFromObject reads {type, x, y, button} pointer events and
// {type: 'wheel', axis, delta, x, y} wheel events.
func eventFromObject(obj *goja.Object) (termuisb.Event, error) {
	typ, _ := stringProp(obj, "type")
	x, _ := intProp(obj, "x")
	y, _ := intProp(obj, "y")
	var kind termuisb.PointerKind
	switch strings.ToLower(typ) {
	case "down", "press":
		kind = termuisb.PointerDown
	case "up", "release":
		kind = termuisb.PointerUp
	case "drag", "motion":
		kind = termuisb.PointerDrag
	case "wheel":
		axisName, _ := stringProp(obj, "axis")
		axis, err := parseAxis(axisName)
		if err != nil {
			return nil, err
		}
		delta, _ := intProp(obj, "delta")
		return termuisb.WheelEvent{Axis: axis, Delta: delta, Column: x, Row: y}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", typ)
	}
	buttonName, _ := stringProp(obj, "button")
	button, err := parseButton(buttonName)
	if err != nil {
		return nil, err
	}
	return termuisb.PointerEvent{Column: x, Row: y, Kind: kind, Button: button}, nil
}

func metricsObject(runtime *goja.Runtime, m termuisb.Metrics) goja.Value {
	start, end := m.ThumbRange()
	return runtime.ToValue(map[string]any{
		"contentLength":  m.ContentLen(),
		"viewportLength": m.ViewportLen(),
		"offset":         m.Offset(),
		"maxOffset":      m.MaxOffset(),
		"trackCells":     m.TrackCells(),
		"trackLength":    m.TrackLen(),
		"thumbLength":    m.ThumbLen(),
		"thumbStart":     start,
		"thumbEnd":       end,
		"thumbTravel":    m.ThumbTravel(),
	})
}

func createScrollbarObject(runtime *goja.Runtime, manager *Manager, id uint64) goja.Value {
	obj := runtime.NewObject()

	_ = obj.Set("_id", id)
	_ = obj.Set("_type", "termui/scrollbar")

	// set builds a chaining setter taking one argument.
	set := func(name string, apply func(w *ModelWrapper, v goja.Value) error) {
		_ = obj.Set(name, func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 1 {
				return goja.Undefined()
			}
			if wrapper := manager.getModel(id); wrapper != nil {
				wrapper.mu.Lock()
				err := apply(wrapper, call.Argument(0))
				wrapper.mu.Unlock()
				if err != nil {
					panic(runtime.NewTypeError(err.Error()))
				}
			}
			return obj
		})
	}
	// get builds a getter, returning zero once the scrollbar is disposed.
	get := func(name string, read func(w *ModelWrapper) any, zero any) {
		_ = obj.Set(name, func(call goja.FunctionCall) goja.Value {
			if wrapper := manager.getModel(id); wrapper != nil {
				wrapper.mu.Lock()
				defer wrapper.mu.Unlock()
				return runtime.ToValue(read(wrapper))
			}
			return runtime.ToValue(zero)
		})
	}
	// apply runs a command-producing helper and stores its offset.
	apply := func(name string, run func(w *ModelWrapper, call goja.FunctionCall) *termuisb.Command) {
		_ = obj.Set(name, func(call goja.FunctionCall) goja.Value {
			wrapper := manager.getModel(id)
			if wrapper == nil {
				return goja.Null()
			}
			wrapper.mu.Lock()
			defer wrapper.mu.Unlock()
			cmd := run(wrapper, call)
			if cmd == nil {
				return goja.Null()
			}
			wrapper.sb.Offset = cmd.Offset
			return runtime.ToValue(cmd.Offset)
		})
	}

	set("setContentLength", func(w *ModelWrapper, v goja.Value) error {
		w.sb.Lengths.ContentLen = max(int(v.ToInteger()), 0)
		return nil
	})
	set("setViewportLength", func(w *ModelWrapper, v goja.Value) error {
		w.sb.Lengths.ViewportLen = max(int(v.ToInteger()), 0)
		return nil
	})
	set("setOffset", func(w *ModelWrapper, v goja.Value) error {
		w.sb.Offset = max(int(v.ToInteger()), 0)
		return nil
	})
	set("setOrientation", func(w *ModelWrapper, v goja.Value) error {
		o, err := termuisb.ParseOrientation(v.String())
		if err == nil {
			w.sb.Orientation = o
			w.in.Reset()
		}
		return err
	})
	set("setArrows", func(w *ModelWrapper, v goja.Value) error {
		a, err := termuisb.ParseArrowMode(v.String())
		if err == nil {
			w.sb.Arrows = a
		}
		return err
	})
	set("setTrackClick", func(w *ModelWrapper, v goja.Value) error {
		b, err := termuisb.ParseTrackClickBehavior(v.String())
		if err == nil {
			w.sb.TrackClick = b
		}
		return err
	})
	set("setScrollStep", func(w *ModelWrapper, v goja.Value) error {
		w.sb.ScrollStep = int(v.ToInteger())
		return nil
	})
	set("setGlyphs", func(w *ModelWrapper, v goja.Value) error {
		g, err := termuisb.GlyphSetByName(v.String())
		if err == nil {
			w.sb.Glyphs = g
		}
		return err
	})
	set("setThumbForeground", func(w *ModelWrapper, v goja.Value) error {
		w.sb.ThumbStyle = w.sb.ThumbStyle.Foreground(lipgloss.Color(v.String()))
		return nil
	})
	set("setThumbBackground", func(w *ModelWrapper, v goja.Value) error {
		w.sb.ThumbStyle = w.sb.ThumbStyle.Background(lipgloss.Color(v.String()))
		return nil
	})
	set("setTrackForeground", func(w *ModelWrapper, v goja.Value) error {
		w.sb.TrackStyle = w.sb.TrackStyle.Foreground(lipgloss.Color(v.String()))
		return nil
	})
	set("setTrackBackground", func(w *ModelWrapper, v goja.Value) error {
		w.sb.TrackStyle = w.sb.TrackStyle.Background(lipgloss.Color(v.String()))
		return nil
	})
	set("setArrowForeground", func(w *ModelWrapper, v goja.Value) error {
		w.sb.ArrowStyle = w.sb.ArrowStyle.Foreground(lipgloss.Color(v.String()))
		return nil
	})

	get("contentLength", func(w *ModelWrapper) any { return w.sb.Lengths.ContentLen }, 0)
	get("viewportLength", func(w *ModelWrapper) any { return w.sb.Lengths.ViewportLen }, 0)
	get("offset", func(w *ModelWrapper) any { return w.sb.Offset }, 0)
	get("orientation", func(w *ModelWrapper) any { return w.sb.Orientation.String() }, "")
	get("dragging", func(w *ModelWrapper) any { return w.in.Dragging() }, false)

	_ = obj.Set("metrics", func(call goja.FunctionCall) goja.Value {
		wrapper := manager.getModel(id)
		if wrapper == nil {
			return goja.Null()
		}
		wrapper.mu.Lock()
		defer wrapper.mu.Unlock()
		m := termuisb.NewMetrics(wrapper.sb.Lengths, wrapper.sb.Offset, int(call.Argument(0).ToInteger()))
		return metricsObject(runtime, m)
	})

	_ = obj.Set("view", func(call goja.FunctionCall) goja.Value {
		wrapper := manager.getModel(id)
		if wrapper == nil {
			return runtime.ToValue("")
		}
		wrapper.mu.Lock()
		defer wrapper.mu.Unlock()
		width, height := 1, 1
		if wrapper.sb.Orientation == termuisb.Vertical {
			height = wrapper.sb.Lengths.ViewportLen
		} else {
			width = wrapper.sb.Lengths.ViewportLen
		}
		if len(call.Arguments) >= 2 {
			width = int(call.Argument(0).ToInteger())
			height = int(call.Argument(1).ToInteger())
		}
		if width > 0 && height > MaxViewCells/width {
			panic(runtime.NewTypeError(fmt.Sprintf("view(%d, %d) exceeds %d cells", width, height, MaxViewCells)))
		}
		return runtime.ToValue(wrapper.sb.View(width, height))
	})

	apply("handleEvent", func(w *ModelWrapper, call goja.FunctionCall) *termuisb.Command {
		if len(call.Arguments) < 2 {
			return nil
		}
		area := rectFromObject(call.Argument(0).ToObject(runtime))
		ev, err := eventFromObject(call.Argument(1).ToObject(runtime))
		if err != nil {
			panic(runtime.NewTypeError(err.Error()))
		}
		return w.sb.HandleEvent(area, ev, w.in)
	})
	apply("scrollBy", func(w *ModelWrapper, call goja.FunctionCall) *termuisb.Command {
		return w.sb.StepBy(int(call.Argument(0).ToInteger()))
	})
	apply("pageBy", func(w *ModelWrapper, call goja.FunctionCall) *termuisb.Command {
		return w.sb.PageBy(int(call.Argument(0).ToInteger()))
	})
	apply("scrollToStart", func(w *ModelWrapper, _ goja.FunctionCall) *termuisb.Command {
		return w.sb.ScrollToStart()
	})
	apply("scrollToEnd", func(w *ModelWrapper, _ goja.FunctionCall) *termuisb.Command {
		return w.sb.ScrollToEnd()
	})

	_ = obj.Set("reset", func(call goja.FunctionCall) goja.Value {
		if wrapper := manager.getModel(id); wrapper != nil {
			wrapper.mu.Lock()
			wrapper.in.Reset()
			wrapper.mu.Unlock()
		}
		return obj
	})

	_ = obj.Set("dispose", func(call goja.FunctionCall) goja.Value {
		manager.releaseModel(id)
		return goja.Undefined()
	})

	return obj
}
