package scrollbar

// Command is the result of handling an event: the offset the caller should
// store. A nil *Command means nothing changed.
type Command struct {
	Offset int
}

// Event is a backend-independent input event. It is implemented by
// PointerEvent and WheelEvent.
type Event interface {
	isEvent()
}

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerUp
	PointerDrag
)

func (k PointerKind) String() string {
	switch k {
	case PointerUp:
		return "up"
	case PointerDrag:
		return "drag"
	default:
		return "down"
	}
}

// PointerButton identifies the button behind a pointer event. Only
// ButtonPrimary interacts with the scrollbar.
type PointerButton int

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
	ButtonMiddle
	ButtonOther
)

// PointerEvent is a press, release or drag at a terminal cell.
type PointerEvent struct {
	Column, Row int
	Kind        PointerKind
	Button      PointerButton
}

// Axis is the direction of a wheel event.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// WheelEvent is a scroll wheel notch. Positive Delta scrolls towards the end
// (down or right).
type WheelEvent struct {
	Axis        Axis
	Delta       int
	Column, Row int
}

func (PointerEvent) isEvent() {}
func (WheelEvent) isEvent()   {}

// DragState is the drag capture kept between events.
type DragState struct {
	Dragging bool
	// GrabOffset is the distance in subcells between the pointer and the
	// thumb start when the drag began.
	GrabOffset int
}

// Interaction carries pointer capture across frames. Create one per
// scrollbar and pass it to every HandleEvent call.
type Interaction struct {
	drag DragState
}

// NewInteraction returns an idle interaction.
func NewInteraction() *Interaction { return &Interaction{} }

// Dragging reports whether a thumb drag is in progress.
func (in *Interaction) Dragging() bool { return in != nil && in.drag.Dragging }

// State returns a copy of the drag state.
func (in *Interaction) State() DragState {
	if in == nil {
		return DragState{}
	}
	return in.drag
}

// Reset abandons any drag in progress.
func (in *Interaction) Reset() {
	if in != nil {
		in.drag = DragState{}
	}
}

func (in *Interaction) startDrag(grabOffset int) {
	if in != nil {
		in.drag = DragState{Dragging: true, GrabOffset: grabOffset}
	}
}

// HandleEvent maps an input event over the scrollbar drawn in area to a new
// offset. It returns nil when the event does not change the offset. The
// scrollbar itself is not modified; the caller applies the command and
// rebuilds the scrollbar for the next frame.
func (sb ScrollBar) HandleEvent(area Rect, ev Event, in *Interaction) *Command {
	if area.Empty() {
		return nil
	}
	switch ev := ev.(type) {
	case PointerEvent:
		return sb.handlePointer(area, ev, in)
	case *PointerEvent:
		if ev == nil {
			return nil
		}
		return sb.handlePointer(area, *ev, in)
	case WheelEvent:
		return sb.handleWheel(area, ev)
	case *WheelEvent:
		if ev == nil {
			return nil
		}
		return sb.handleWheel(area, *ev)
	}
	return nil
}

func (sb ScrollBar) handlePointer(area Rect, ev PointerEvent, in *Interaction) *Command {
	if ev.Button != ButtonPrimary {
		return nil
	}

	layout := sb.Layout(area)
	track := layout.Track
	m := NewMetrics(sb.Lengths, sb.Offset, sb.trackCells(track))

	switch ev.Kind {
	case PointerUp:
		in.Reset()
		return nil

	case PointerDrag:
		if !in.Dragging() || m.TrackLen() == 0 {
			return nil
		}
		cell := clampInt(sb.axisIndex(track, ev.Column, ev.Row), 0, m.TrackCells()-1)
		position := cell*Subcell + Subcell/2
		thumbStart := max(position-in.State().GrabOffset, 0)
		return &Command{Offset: m.OffsetForThumbStart(thumbStart)}

	case PointerDown:
		if !area.Contains(ev.Column, ev.Row) {
			return nil
		}
		if layout.Start != nil && layout.Start.Contains(ev.Column, ev.Row) {
			return sb.arrowStep(m, -1, in)
		}
		if layout.End != nil && layout.End.Contains(ev.Column, ev.Row) {
			return sb.arrowStep(m, 1, in)
		}
		if !track.Contains(ev.Column, ev.Row) || m.TrackLen() == 0 {
			return nil
		}

		position := sb.axisIndex(track, ev.Column, ev.Row)*Subcell + Subcell/2
		if m.HitTest(position) == HitThumb {
			in.startDrag(position - m.ThumbStart())
			return nil
		}

		in.Reset()
		switch sb.TrackClick {
		case TrackClickJump:
			return &Command{Offset: m.OffsetForThumbStart(max(position-m.ThumbLen()/2, 0))}
		default:
			delta := m.ViewportLen()
			if position < m.ThumbStart() {
				delta = -delta
			}
			return &Command{Offset: addClamped(m.Offset(), delta, m.MaxOffset())}
		}
	}
	return nil
}

func (sb ScrollBar) arrowStep(m Metrics, direction int, in *Interaction) *Command {
	in.Reset()
	if m.MaxOffset() == 0 {
		return nil
	}
	return &Command{Offset: addClamped(m.Offset(), mulClamped(direction, sb.step()), m.MaxOffset())}
}

func (sb ScrollBar) handleWheel(area Rect, ev WheelEvent) *Command {
	if (ev.Axis == AxisHorizontal) != (sb.Orientation == Horizontal) {
		return nil
	}
	m := NewMetrics(sb.Lengths, sb.Offset, sb.trackCells(sb.Layout(area).Track))
	return &Command{Offset: addClamped(m.Offset(), mulClamped(ev.Delta, sb.step()), m.MaxOffset())}
}

// axisIndex converts a cell coordinate to a cell index along the track,
// relative to the track start. The result may be out of range.
func (sb ScrollBar) axisIndex(track Rect, column, row int) int {
	if sb.Orientation == Horizontal {
		return column - track.X
	}
	return row - track.Y
}
