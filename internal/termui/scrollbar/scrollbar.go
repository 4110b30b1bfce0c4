// Package scrollbar provides a proportional scrollbar for terminal UIs.
//
// Thumb geometry is computed with subcell precision (eighths of a cell, see
// Metrics) and drawn with fractional block glyphs (see GlyphSet). Pointer and
// wheel input is translated into a Command carrying the new offset; the
// scrollbar never owns the offset itself, so a ScrollBar is rebuilt from the
// caller's state on every frame. The only state kept across frames is drag
// capture, held in an Interaction.
package scrollbar

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Orientation is the axis a scrollbar scrolls along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation accepts "vertical"/"v" and "horizontal"/"h".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown orientation %q", s)
}

// ArrowMode selects which ends of the scrollbar get an arrow endcap.
type ArrowMode int

const (
	ArrowsNone ArrowMode = iota
	ArrowsStart
	ArrowsEnd
	ArrowsBoth
)

func (a ArrowMode) String() string {
	switch a {
	case ArrowsStart:
		return "start"
	case ArrowsEnd:
		return "end"
	case ArrowsBoth:
		return "both"
	default:
		return "none"
	}
}

func (a ArrowMode) hasStart() bool { return a == ArrowsStart || a == ArrowsBoth }
func (a ArrowMode) hasEnd() bool   { return a == ArrowsEnd || a == ArrowsBoth }

// ParseArrowMode accepts none, start, end and both.
func ParseArrowMode(s string) (ArrowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return ArrowsNone, nil
	case "start":
		return ArrowsStart, nil
	case "end":
		return ArrowsEnd, nil
	case "both":
		return ArrowsBoth, nil
	}
	return ArrowsNone, fmt.Errorf("unknown arrow mode %q", s)
}

// TrackClickBehavior is what a click on the track, outside the thumb, does.
type TrackClickBehavior int

const (
	// TrackClickPage moves the offset by one viewport towards the click.
	TrackClickPage TrackClickBehavior = iota
	// TrackClickJump centers the thumb on the click.
	TrackClickJump
)

func (b TrackClickBehavior) String() string {
	if b == TrackClickJump {
		return "jump"
	}
	return "page"
}

// ParseTrackClickBehavior accepts "page" and "jump" (or "jump-to-click").
func ParseTrackClickBehavior(s string) (TrackClickBehavior, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "page":
		return TrackClickPage, nil
	case "jump", "jump-to-click":
		return TrackClickJump, nil
	}
	return TrackClickPage, fmt.Errorf("unknown track click behavior %q", s)
}

// ScrollBar describes a scrollbar for one frame. It is a plain value:
// build it from the current offset, render it, pass it input, and discard it.
type ScrollBar struct {
	Orientation Orientation
	Lengths     Lengths
	// Offset is the current scroll offset, in the same unit as Lengths.
	Offset int

	ThumbStyle lipgloss.Style
	TrackStyle lipgloss.Style
	ArrowStyle lipgloss.Style

	Glyphs     GlyphSet
	Arrows     ArrowMode
	TrackClick TrackClickBehavior
	// ScrollStep is the offset delta for one arrow click or wheel notch.
	ScrollStep int
}

// Option is used to set options in New.
type Option func(*ScrollBar)

// New creates a vertical scrollbar with default settings.
func New(opts ...Option) ScrollBar {
	sb := ScrollBar{
		Orientation: Vertical,
		ThumbStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("57")),
		TrackStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		ArrowStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Glyphs:     GlyphSetMinimal(),
		Arrows:     ArrowsNone,
		TrackClick: TrackClickPage,
		ScrollStep: 1,
	}
	return sb.With(opts...)
}

// NewVertical creates a vertical scrollbar for the given lengths.
func NewVertical(lengths Lengths, opts ...Option) ScrollBar {
	return New(append([]Option{WithOrientation(Vertical), WithLengths(lengths)}, opts...)...)
}

// NewHorizontal creates a horizontal scrollbar for the given lengths.
func NewHorizontal(lengths Lengths, opts ...Option) ScrollBar {
	return New(append([]Option{WithOrientation(Horizontal), WithLengths(lengths)}, opts...)...)
}

// With returns a copy of the scrollbar with the options applied.
func (sb ScrollBar) With(opts ...Option) ScrollBar {
	for _, opt := range opts {
		opt(&sb)
	}
	return sb
}

// WithOrientation sets the axis the bar scrolls.
func WithOrientation(o Orientation) Option {
	return func(sb *ScrollBar) { sb.Orientation = o }
}

// WithLengths sets the content and viewport lengths together.
func WithLengths(l Lengths) Option {
	return func(sb *ScrollBar) { sb.Lengths = l }
}

// WithContentLen sets the total length of the scrollable content.
func WithContentLen(n int) Option {
	return func(sb *ScrollBar) { sb.Lengths.ContentLen = n }
}

// WithViewportLen sets the length of the visible window.
func WithViewportLen(n int) Option {
	return func(sb *ScrollBar) { sb.Lengths.ViewportLen = n }
}

// WithOffset sets the scroll offset. It is clamped when metrics are computed.
func WithOffset(offset int) Option {
	return func(sb *ScrollBar) { sb.Offset = offset }
}

// WithStyles sets the styles for the thumb and track.
func WithStyles(thumb, track lipgloss.Style) Option {
	return func(sb *ScrollBar) {
		sb.ThumbStyle = thumb
		sb.TrackStyle = track
	}
}

// WithThumbStyle sets the thumb style.
func WithThumbStyle(s lipgloss.Style) Option {
	return func(sb *ScrollBar) { sb.ThumbStyle = s }
}

// WithTrackStyle sets the track style.
func WithTrackStyle(s lipgloss.Style) Option {
	return func(sb *ScrollBar) { sb.TrackStyle = s }
}

// WithArrowStyle sets the style of the arrow buttons.
func WithArrowStyle(s lipgloss.Style) Option {
	return func(sb *ScrollBar) { sb.ArrowStyle = s }
}

// WithGlyphSet sets the glyphs used to draw the bar.
func WithGlyphSet(g GlyphSet) Option {
	return func(sb *ScrollBar) { sb.Glyphs = g }
}

// WithArrows sets whether arrow buttons are drawn at the track ends.
func WithArrows(a ArrowMode) Option {
	return func(sb *ScrollBar) { sb.Arrows = a }
}

// WithTrackClickBehavior sets what a click on the track does.
func WithTrackClickBehavior(b TrackClickBehavior) Option {
	return func(sb *ScrollBar) { sb.TrackClick = b }
}

// WithScrollStep sets the arrow and wheel step. Values below one are treated
// as one.
func WithScrollStep(step int) Option {
	return func(sb *ScrollBar) { sb.ScrollStep = step }
}

func (sb ScrollBar) step() int { return max(sb.ScrollStep, 1) }

// Layout is the split of a scrollbar area into arrow endcaps and track.
type Layout struct {
	Track Rect
	// Start and End are the arrow cells, nil when not drawn.
	Start *Rect
	End   *Rect
}

// Layout splits area into endcaps and track. Each requested arrow consumes
// one cell along the scroll axis; the start arrow wins when the area is too
// short for both.
func (sb ScrollBar) Layout(area Rect) Layout {
	var l Layout
	if area.Empty() {
		return l
	}
	track := area
	if sb.Arrows.hasStart() {
		cell := area
		if sb.Orientation == Horizontal {
			cell.Width = 1
			track.X++
			track.Width--
		} else {
			cell.Height = 1
			track.Y++
			track.Height--
		}
		l.Start = &cell
	}
	if sb.Arrows.hasEnd() && !track.Empty() {
		cell := track
		if sb.Orientation == Horizontal {
			cell.X = track.X + track.Width - 1
			cell.Width = 1
			track.Width--
		} else {
			cell.Y = track.Y + track.Height - 1
			cell.Height = 1
			track.Height--
		}
		l.End = &cell
	}
	if track.Empty() {
		track = Rect{X: track.X, Y: track.Y}
	}
	l.Track = track
	return l
}

// trackCells is the number of cells along the scroll axis.
func (sb ScrollBar) trackCells(track Rect) int {
	if track.Empty() {
		return 0
	}
	if sb.Orientation == Horizontal {
		return track.Width
	}
	return track.Height
}

// Metrics computes the thumb geometry for the track inside area.
func (sb ScrollBar) Metrics(area Rect) Metrics {
	return NewMetrics(sb.Lengths, sb.Offset, sb.trackCells(sb.Layout(area).Track))
}

// Render draws the scrollbar into area, one glyph per cell. Cells across the
// scroll axis repeat the same glyph, so a vertical bar two columns wide draws
// two identical columns.
func (sb ScrollBar) Render(area Rect, buf Buffer) {
	if area.Empty() || buf == nil {
		return
	}
	layout := sb.Layout(area)
	startGlyph, endGlyph := sb.Glyphs.arrows(sb.Orientation)
	if layout.Start != nil {
		fillRect(buf, *layout.Start, startGlyph, sb.ArrowStyle)
	}
	if layout.End != nil {
		fillRect(buf, *layout.End, endGlyph, sb.ArrowStyle)
	}

	track := layout.Track
	m := NewMetrics(sb.Lengths, sb.Offset, sb.trackCells(track))
	for i := 0; i < m.TrackCells(); i++ {
		glyph, style := sb.Glyphs.Select(m.CellFill(i), sb.Orientation, sb.TrackStyle, sb.ThumbStyle)
		cell := track
		if sb.Orientation == Horizontal {
			cell.X += i
			cell.Width = 1
		} else {
			cell.Y += i
			cell.Height = 1
		}
		fillRect(buf, cell, glyph, style)
	}
}

func fillRect(buf Buffer, r Rect, glyph string, style lipgloss.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			buf.SetCell(x, y, glyph, style)
		}
	}
}

// View renders the scrollbar into a width x height block of text, suitable
// for composing into a Bubble Tea view with lipgloss.JoinHorizontal.
func (sb ScrollBar) View(width, height int) string {
	if width <= 0 || height <= 0 || height > math.MaxInt/width {
		return ""
	}
	g := NewGrid(width, height)
	sb.Render(g.Bounds(), g)
	return g.String()
}

// StepBy returns the command for moving n scroll steps. Negative n scrolls
// towards the start.
func (sb ScrollBar) StepBy(n int) *Command {
	return sb.moveBy(mulClamped(n, sb.step()))
}

// PageBy returns the command for moving n viewports.
func (sb ScrollBar) PageBy(n int) *Command {
	m := NewMetrics(sb.Lengths, sb.Offset, 0)
	return sb.moveBy(mulClamped(n, m.ViewportLen()))
}

// ScrollToStart returns the command for offset zero.
func (sb ScrollBar) ScrollToStart() *Command {
	return &Command{Offset: 0}
}

// ScrollToEnd returns the command for the maximum offset.
func (sb ScrollBar) ScrollToEnd() *Command {
	return &Command{Offset: NewMetrics(sb.Lengths, sb.Offset, 0).MaxOffset()}
}

func (sb ScrollBar) moveBy(delta int) *Command {
	m := NewMetrics(sb.Lengths, sb.Offset, 0)
	return &Command{Offset: addClamped(m.Offset(), delta, m.MaxOffset())}
}
