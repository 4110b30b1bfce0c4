// Package teabackend adapts Bubble Tea input to the scrollbar package.
//
// Mouse messages map one to one onto scrollbar events, so the adapter keeps no
// state: press, release and motion become Down, Up and Drag, and wheel
// buttons become WheelEvent notches. Keyboard messages map onto the
// scrollbar's step, page and jump helpers.
package teabackend

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

var pointerButtons = map[tea.MouseButton]scrollbar.PointerButton{
	tea.MouseButtonLeft:   scrollbar.ButtonPrimary,
	tea.MouseButtonRight:  scrollbar.ButtonSecondary,
	tea.MouseButtonMiddle: scrollbar.ButtonMiddle,
}

type wheelDef struct {
	axis  scrollbar.Axis
	delta int
}

var wheelButtons = map[tea.MouseButton]wheelDef{
	tea.MouseButtonWheelUp:    {scrollbar.AxisVertical, -1},
	tea.MouseButtonWheelDown:  {scrollbar.AxisVertical, 1},
	tea.MouseButtonWheelLeft:  {scrollbar.AxisHorizontal, -1},
	tea.MouseButtonWheelRight: {scrollbar.AxisHorizontal, 1},
}

// MouseEvent converts a Bubble Tea mouse message. The second result is false
// for messages with no scrollbar meaning, such as hover motion.
//
// Shift turns a vertical wheel into a horizontal one, the usual convention
// for terminals without a horizontal wheel.
func MouseEvent(msg tea.MouseMsg) (scrollbar.Event, bool) {
	if w, ok := wheelButtons[msg.Button]; ok {
		if msg.Shift && w.axis == scrollbar.AxisVertical {
			w.axis = scrollbar.AxisHorizontal
		}
		return scrollbar.WheelEvent{Axis: w.axis, Delta: w.delta, Column: msg.X, Row: msg.Y}, true
	}

	button, known := pointerButtons[msg.Button]
	if !known {
		button = scrollbar.ButtonOther
	}

	var kind scrollbar.PointerKind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonNone {
			return nil, false
		}
		kind = scrollbar.PointerDown
	case tea.MouseActionRelease:
		// X10 mouse reporting does not say which button was released.
		if msg.Button == tea.MouseButtonNone {
			button = scrollbar.ButtonPrimary
		}
		kind = scrollbar.PointerUp
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonNone {
			return nil, false
		}
		kind = scrollbar.PointerDrag
	default:
		return nil, false
	}

	return scrollbar.PointerEvent{Column: msg.X, Row: msg.Y, Kind: kind, Button: button}, true
}

// HandleMouse converts msg and passes it to sb.HandleEvent.
func HandleMouse(sb scrollbar.ScrollBar, area scrollbar.Rect, msg tea.MouseMsg, in *scrollbar.Interaction) *scrollbar.Command {
	ev, ok := MouseEvent(msg)
	if !ok {
		return nil
	}
	return sb.HandleEvent(area, ev, in)
}

// KeyCommand maps navigation keys to a command. Arrow keys and vi keys follow
// the scrollbar's orientation; page and home/end keys work for both.
func KeyCommand(sb scrollbar.ScrollBar, msg tea.KeyMsg) *scrollbar.Command {
	key := msg.String()
	if sb.Orientation == scrollbar.Horizontal {
		switch key {
		case "left", "h":
			return sb.StepBy(-1)
		case "right", "l":
			return sb.StepBy(1)
		}
	} else {
		switch key {
		case "up", "k":
			return sb.StepBy(-1)
		case "down", "j":
			return sb.StepBy(1)
		}
	}
	switch key {
	case "pgup":
		return sb.PageBy(-1)
	case "pgdown", " ":
		return sb.PageBy(1)
	case "home", "g":
		return sb.ScrollToStart()
	case "end", "G":
		return sb.ScrollToEnd()
	}
	return nil
}

// ZoneRect returns the screen rectangle of a bubblezone zone. It reports
// false until the zone has been scanned at least once.
func ZoneRect(z *zone.ZoneInfo) (scrollbar.Rect, bool) {
	if z == nil || z.IsZero() {
		return scrollbar.Rect{}, false
	}
	return scrollbar.Rect{
		X:      z.StartX,
		Y:      z.StartY,
		Width:  z.EndX - z.StartX + 1,
		Height: z.EndY - z.StartY + 1,
	}, true
}
