// Package tcellbackend adapts tcell screens and mouse events to the scrollbar
// package.
//
// tcell reports the set of buttons held at each mouse event rather than
// press and release transitions, so MouseTracker remembers the previous
// button mask to tell a press from a drag.
package tcellbackend

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

type buttonDef struct {
	mask   tcell.ButtonMask
	button scrollbar.PointerButton
}

// Primary first: when several buttons change at once, the primary one wins.
var buttonDefs = []buttonDef{
	{tcell.Button1, scrollbar.ButtonPrimary},
	{tcell.Button2, scrollbar.ButtonSecondary},
	{tcell.Button3, scrollbar.ButtonMiddle},
}

const heldButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// MouseTracker converts tcell mouse events into scrollbar events. The zero
// value is ready to use. It is not safe for concurrent use.
type MouseTracker struct {
	prev tcell.ButtonMask
}

// Event converts ev. The second result is false for events with no scrollbar
// meaning, such as motion with no button held.
func (t *MouseTracker) Event(ev *tcell.EventMouse) (scrollbar.Event, bool) {
	if ev == nil {
		return nil, false
	}
	x, y := ev.Position()
	buttons := ev.Buttons()
	prev := t.prev
	t.prev = buttons & heldButtons

	if w, ok := wheel(buttons, ev.Modifiers()); ok {
		w.Column, w.Row = x, y
		return w, true
	}

	for _, def := range buttonDefs {
		now := buttons&def.mask != 0
		was := prev&def.mask != 0
		var kind scrollbar.PointerKind
		switch {
		case now && !was:
			kind = scrollbar.PointerDown
		case now && was:
			kind = scrollbar.PointerDrag
		case !now && was:
			kind = scrollbar.PointerUp
		default:
			continue
		}
		return scrollbar.PointerEvent{Column: x, Row: y, Kind: kind, Button: def.button}, true
	}
	return nil, false
}

// Reset forgets any held buttons, e.g. after the screen lost focus.
func (t *MouseTracker) Reset() { t.prev = tcell.ButtonNone }

func wheel(buttons tcell.ButtonMask, mods tcell.ModMask) (scrollbar.WheelEvent, bool) {
	var w scrollbar.WheelEvent
	switch {
	case buttons&tcell.WheelUp != 0:
		w = scrollbar.WheelEvent{Axis: scrollbar.AxisVertical, Delta: -1}
	case buttons&tcell.WheelDown != 0:
		w = scrollbar.WheelEvent{Axis: scrollbar.AxisVertical, Delta: 1}
	case buttons&tcell.WheelLeft != 0:
		w = scrollbar.WheelEvent{Axis: scrollbar.AxisHorizontal, Delta: -1}
	case buttons&tcell.WheelRight != 0:
		w = scrollbar.WheelEvent{Axis: scrollbar.AxisHorizontal, Delta: 1}
	default:
		return w, false
	}
	if mods&tcell.ModShift != 0 && w.Axis == scrollbar.AxisVertical {
		w.Axis = scrollbar.AxisHorizontal
	}
	return w, true
}

// Screen draws scrollbars onto a tcell.Screen.
type Screen struct {
	tcell.Screen
}

var _ scrollbar.Buffer = Screen{}

// SetCell implements scrollbar.Buffer. The cell is only written to the back
// buffer; call Show to flush it.
func (s Screen) SetCell(x, y int, glyph string, style lipgloss.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	s.SetContent(x, y, runes[0], runes[1:], Style(style))
}

// Bounds is the rectangle covering the whole screen.
func (s Screen) Bounds() scrollbar.Rect {
	w, h := s.Size()
	return scrollbar.Rect{Width: w, Height: h}
}

// Style converts the colors and attributes of a lipgloss style.
func Style(s lipgloss.Style) tcell.Style {
	st := tcell.StyleDefault
	if c, ok := Color(s.GetForeground()); ok {
		st = st.Foreground(c)
	}
	if c, ok := Color(s.GetBackground()); ok {
		st = st.Background(c)
	}
	return st.
		Bold(s.GetBold()).
		Italic(s.GetItalic()).
		Underline(s.GetUnderline()).
		Reverse(s.GetReverse()).
		Dim(s.GetFaint()).
		Blink(s.GetBlink()).
		StrikeThrough(s.GetStrikethrough())
}

// Color converts a lipgloss color. ANSI and ANSI256 colors map to palette
// entries and hex colors to RGB. It reports false for NoColor and for colors
// it cannot represent.
func Color(c lipgloss.TerminalColor) (tcell.Color, bool) {
	switch c := c.(type) {
	case nil, lipgloss.NoColor:
		return tcell.ColorDefault, false
	case lipgloss.ANSIColor:
		return tcell.PaletteColor(int(c)), true
	case lipgloss.Color:
		s := strings.TrimSpace(string(c))
		if s == "" {
			return tcell.ColorDefault, false
		}
		if strings.HasPrefix(s, "#") {
			col := tcell.GetColor(s)
			return col, col != tcell.ColorDefault
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 255 {
			return tcell.ColorDefault, false
		}
		return tcell.PaletteColor(n), true
	default:
		r, g, b, a := c.RGBA()
		if a == 0 {
			return tcell.ColorDefault, false
		}
		return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8)), true
	}
}

// KeyCommand maps navigation keys to a command, mirroring the Bubble Tea
// adapter: arrows and vi keys follow the orientation, page and home/end keys
// work for both.
func KeyCommand(sb scrollbar.ScrollBar, ev *tcell.EventKey) *scrollbar.Command {
	if ev == nil {
		return nil
	}
	var r rune
	if ev.Key() == tcell.KeyRune {
		r = ev.Rune()
	}
	if sb.Orientation == scrollbar.Horizontal {
		switch {
		case ev.Key() == tcell.KeyLeft || r == 'h':
			return sb.StepBy(-1)
		case ev.Key() == tcell.KeyRight || r == 'l':
			return sb.StepBy(1)
		}
	} else {
		switch {
		case ev.Key() == tcell.KeyUp || r == 'k':
			return sb.StepBy(-1)
		case ev.Key() == tcell.KeyDown || r == 'j':
			return sb.StepBy(1)
		}
	}
	switch {
	case ev.Key() == tcell.KeyPgUp:
		return sb.PageBy(-1)
	case ev.Key() == tcell.KeyPgDn || r == ' ':
		return sb.PageBy(1)
	case ev.Key() == tcell.KeyHome || r == 'g':
		return sb.ScrollToStart()
	case ev.Key() == tcell.KeyEnd || r == 'G':
		return sb.ScrollToEnd()
	}
	return nil
}
