package scrollbar

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rect is a rectangular region of terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the cell at (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Buffer is a grid of terminal cells a scrollbar can draw into.
type Buffer interface {
	SetCell(x, y int, glyph string, style lipgloss.Style)
}

type gridCell struct {
	glyph string
	style lipgloss.Style
}

// Grid is an in-memory Buffer, used to produce the string form of a
// scrollbar for Bubble Tea views. Writes outside the grid are dropped.
type Grid struct {
	width, height int
	cells         []gridCell
}

// NewGrid allocates a width x height grid of unstyled spaces. A size whose
// cell count does not fit in an int yields an empty grid.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	if width > 0 && height > math.MaxInt/width {
		width, height = 0, 0
	}
	g := &Grid{width: width, height: height, cells: make([]gridCell, width*height)}
	for i := range g.cells {
		g.cells[i] = gridCell{glyph: " ", style: lipgloss.NewStyle()}
	}
	return g
}

// Width is the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height is the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Bounds is the rectangle covering the whole grid.
func (g *Grid) Bounds() Rect { return Rect{Width: g.width, Height: g.height} }

// SetCell implements Buffer. Cells outside the grid are ignored.
func (g *Grid) SetCell(x, y int, glyph string, style lipgloss.Style) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = gridCell{glyph: glyph, style: style}
}

// Glyph returns the unstyled glyph at (x, y), or "" outside the grid.
func (g *Grid) Glyph(x, y int) string {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return ""
	}
	return g.cells[y*g.width+x].glyph
}

// Style returns the style stored at (x, y).
func (g *Grid) Style(x, y int) lipgloss.Style {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return lipgloss.NewStyle()
	}
	return g.cells[y*g.width+x].style
}

// String renders the grid row by row, rows separated by newlines.
func (g *Grid) String() string {
	var s strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			glyph := c.glyph
			// A plain space lets lipgloss drop the background escape.
			if glyph == " " {
				glyph = "\u00A0"
			}
			s.WriteString(c.style.Render(glyph))
		}
		if y < g.height-1 {
			s.WriteRune('\n')
		}
	}
	return s.String()
}

// Plain renders the grid without styles, which is handy in tests and logs.
func (g *Grid) Plain() string {
	var s strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			s.WriteString(g.cells[y*g.width+x].glyph)
		}
		if y < g.height-1 {
			s.WriteRune('\n')
		}
	}
	return s.String()
}
