// Package demo is the interactive file viewer behind "termscroll view". A
// Pager holds the scroll state shared by the Bubble Tea and tcell front ends.
package demo

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/joeycumines/termscroll/internal/config"
	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

const tabWidth = 4

// Axis selects one of the pager's two scrollbars.
type Axis int

const (
	AxisY Axis = iota
	AxisX
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Layout is where each part of the pager is drawn, in screen cells.
type Layout struct {
	Body       scrollbar.Rect
	Vertical   scrollbar.Rect
	Horizontal scrollbar.Rect
	Status     scrollbar.Rect
}

// Pager tracks the content, window size and scroll offsets of the viewer.
type Pager struct {
	title    string
	lines    []string
	maxWidth int
	settings config.Settings
	logger   *slog.Logger

	width, height int
	y, x          int
	vIn, hIn      *scrollbar.Interaction
}

// NewPager prepares text for display. Tabs are expanded so that column
// arithmetic matches what the terminal shows, and other control characters
// are replaced by visible symbols so file content cannot drive the terminal.
func NewPager(title, text string, settings config.Settings, logger *slog.Logger) *Pager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := strings.Split(text, "\n")
	maxWidth := 0
	for i, line := range lines {
		line = sanitizeLine(line)
		lines[i] = line
		maxWidth = max(maxWidth, runewidth.StringWidth(line))
	}
	return &Pager{
		title:    title,
		lines:    lines,
		maxWidth: maxWidth,
		settings: settings,
		logger:   logger,
		vIn:      scrollbar.NewInteraction(),
		hIn:      scrollbar.NewInteraction(),
	}
}

func sanitizeLine(s string) string {
	if !strings.ContainsFunc(s, unicode.IsControl) {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch {
		case r == '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		case r < 0x20:
			// control pictures block
			r = 0x2400 + r
		case r == 0x7f:
			r = '\u2421'
		case unicode.IsControl(r):
			r = unicode.ReplacementChar
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// Resize sets the window size and clamps the offsets to the new range.
func (p *Pager) Resize(width, height int) {
	p.width, p.height = max(width, 0), max(height, 0)
	p.y = p.Vertical().Metrics(p.Layout().Vertical).Offset()
	p.x = p.Horizontal().Metrics(p.Layout().Horizontal).Offset()
	p.logger.Debug("resize", "width", p.width, "height", p.height, "y", p.y, "x", p.x)
}

// Size returns the window size.
func (p *Pager) Size() (width, height int) { return p.width, p.height }

// Layout splits the window: the body with the vertical bar on its right, the
// horizontal bar below it, and a status line at the bottom.
func (p *Pager) Layout() Layout {
	bodyW := max(p.width-1, 0)
	bodyH := max(p.height-2, 0)
	return Layout{
		Body:       scrollbar.Rect{Width: bodyW, Height: bodyH},
		Vertical:   scrollbar.Rect{X: bodyW, Width: min(p.width, 1), Height: bodyH},
		Horizontal: scrollbar.Rect{Y: bodyH, Width: bodyW, Height: min(max(p.height-1, 0), 1)},
		Status:     scrollbar.Rect{Y: max(p.height-1, 0), Width: p.width, Height: min(p.height, 1)},
	}
}

// Offset returns the logical offset along axis.
func (p *Pager) Offset(axis Axis) int {
	if axis == AxisX {
		return p.x
	}
	return p.y
}

// Lines returns the number of content lines.
func (p *Pager) Lines() int { return len(p.lines) }

// Vertical returns the vertical scrollbar at the current offset.
func (p *Pager) Vertical() scrollbar.ScrollBar {
	return p.VerticalAt(p.y)
}

// VerticalAt returns the vertical scrollbar drawn at offset y, which may
// differ from the logical offset while an animation is running.
func (p *Pager) VerticalAt(y int) scrollbar.ScrollBar {
	opts := append(p.settings.ScrollBarOptions(),
		scrollbar.WithOrientation(scrollbar.Vertical),
		scrollbar.WithLengths(scrollbar.Lengths{ContentLen: len(p.lines), ViewportLen: p.Layout().Body.Height}),
		scrollbar.WithOffset(y),
	)
	return scrollbar.New(opts...)
}

// Horizontal returns the horizontal scrollbar at the current offset.
func (p *Pager) Horizontal() scrollbar.ScrollBar {
	return p.HorizontalAt(p.x)
}

// HorizontalAt is VerticalAt for the horizontal bar.
func (p *Pager) HorizontalAt(x int) scrollbar.ScrollBar {
	opts := append(p.settings.ScrollBarOptions(),
		scrollbar.WithOrientation(scrollbar.Horizontal),
		scrollbar.WithLengths(scrollbar.Lengths{ContentLen: p.maxWidth, ViewportLen: p.Layout().Body.Width}),
		scrollbar.WithOffset(x),
	)
	return scrollbar.New(opts...)
}

// Dragging reports whether either scrollbar has a drag in progress.
func (p *Pager) Dragging() bool { return p.vIn.Dragging() || p.hIn.Dragging() }

// HandleEvent routes a pointer or wheel event to the scrollbars, which are
// located at vArea and hArea. A bar that is being dragged gets every pointer
// event; otherwise presses go to the bar under the pointer, releases go to
// both and wheel events go to the bar of matching axis. It reports the axes
// whose offset changed.
func (p *Pager) HandleEvent(ev scrollbar.Event, vArea, hArea scrollbar.Rect) []Axis {
	var changed []Axis
	apply := func(axis Axis, cmd *scrollbar.Command) {
		if p.Apply(axis, cmd) {
			changed = append(changed, axis)
		}
	}
	wasV, wasH := p.vIn.Dragging(), p.hIn.Dragging()
	defer func() {
		if v := p.vIn.Dragging(); v != wasV {
			p.logger.Debug("drag", "axis", AxisY, "dragging", v)
		}
		if h := p.hIn.Dragging(); h != wasH {
			p.logger.Debug("drag", "axis", AxisX, "dragging", h)
		}
	}()

	switch e := ev.(type) {
	case scrollbar.WheelEvent:
		apply(AxisY, p.Vertical().HandleEvent(vArea, e, p.vIn))
		apply(AxisX, p.Horizontal().HandleEvent(hArea, e, p.hIn))
	case scrollbar.PointerEvent:
		switch {
		case e.Kind == scrollbar.PointerUp:
			apply(AxisY, p.Vertical().HandleEvent(vArea, e, p.vIn))
			apply(AxisX, p.Horizontal().HandleEvent(hArea, e, p.hIn))
		case wasV:
			apply(AxisY, p.Vertical().HandleEvent(vArea, e, p.vIn))
		case wasH:
			apply(AxisX, p.Horizontal().HandleEvent(hArea, e, p.hIn))
		case vArea.Contains(e.Column, e.Row):
			apply(AxisY, p.Vertical().HandleEvent(vArea, e, p.vIn))
		case hArea.Contains(e.Column, e.Row):
			apply(AxisX, p.Horizontal().HandleEvent(hArea, e, p.hIn))
		}
	}
	return changed
}

// Apply sets the offset of axis from cmd. It reports whether the offset
// changed.
func (p *Pager) Apply(axis Axis, cmd *scrollbar.Command) bool {
	if cmd == nil {
		return false
	}
	target := &p.y
	if axis == AxisX {
		target = &p.x
	}
	if *target == cmd.Offset {
		return false
	}
	p.logger.Debug("scroll", "axis", axis, "from", *target, "to", cmd.Offset)
	*target = cmd.Offset
	return true
}

// Visible returns the body rows for offsets y and x, each cut to the body
// width and padded with spaces.
func (p *Pager) Visible(y, x int) []string {
	body := p.Layout().Body
	rows := make([]string, body.Height)
	for i := range rows {
		var line string
		if n := y + i; n >= 0 && n < len(p.lines) {
			line = p.lines[n]
		}
		rows[i] = sliceColumns(line, x, body.Width)
	}
	return rows
}

// Columns returns every content line cut to the body width starting at
// column x.
func (p *Pager) Columns(x int) []string {
	width := p.Layout().Body.Width
	rows := make([]string, len(p.lines))
	for i, line := range p.lines {
		rows[i] = sliceColumns(line, x, width)
	}
	return rows
}

// sliceColumns returns the columns [x, x+width) of s, padded with spaces. A
// wide rune cut by either edge becomes spaces.
func sliceColumns(s string, x, width int) string {
	var b strings.Builder
	col, end := 0, x+width
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		switch {
		case col >= end:
		case col >= x && col+w <= end:
			b.WriteRune(r)
		case col+w > x:
			b.WriteString(strings.Repeat(" ", min(col+w, end)-max(col, x)))
		}
		col += w
		if col >= end {
			break
		}
	}
	return runewidth.FillRight(b.String(), width)
}

// Status is the text of the status line.
func (p *Pager) Status() string {
	body := p.Layout().Body
	last := min(p.y+body.Height, len(p.lines))
	s := fmt.Sprintf(" %s  lines %d-%d/%d  col %d/%d  q quit", p.title, min(p.y+1, last), last, len(p.lines), p.x, p.maxWidth)
	return runewidth.FillRight(runewidth.Truncate(s, p.width, ""), p.width)
}
