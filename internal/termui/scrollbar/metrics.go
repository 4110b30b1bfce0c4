package scrollbar

import (
	"math"
	"math/bits"
)

// Subcell is the number of positional units in one terminal cell. Thumb
// geometry is computed in subcells so partial cells can be drawn with
// eighth-block glyphs.
const Subcell = 8

// Lengths describes the scrollable content and the visible window, in
// whatever logical unit the caller scrolls by (lines, rows, pixels).
type Lengths struct {
	ContentLen  int
	ViewportLen int
}

// HitArea classifies a subcell position along the track.
type HitArea int

const (
	HitTrack HitArea = iota
	HitThumb
)

func (h HitArea) String() string {
	if h == HitThumb {
		return "thumb"
	}
	return "track"
}

// FillKind is the coverage class of a single track cell.
type FillKind int

const (
	FillEmpty FillKind = iota
	FillFull
	FillPartial
)

// CellFill describes how much of one track cell the thumb covers.
//
// Start and Len are only meaningful for FillPartial. Start is relative to the
// cell's leading edge (top or left); zero means the covered part begins at
// that edge.
type CellFill struct {
	Kind  FillKind
	Start int
	Len   int
}

var (
	emptyFill = CellFill{Kind: FillEmpty}
	fullFill  = CellFill{Kind: FillFull, Len: Subcell}
)

// Metrics is the thumb geometry for one set of lengths, offset and track
// size. It is a value computed on demand, typically once per frame.
type Metrics struct {
	contentLen  int
	viewportLen int
	offset      int
	maxOffset   int
	trackCells  int
	trackLen    int
	thumbLen    int
	thumbStart  int
}

// NewMetrics computes the thumb geometry. Degenerate inputs are coerced:
// lengths below one become one, the viewport is clamped to the content, the
// offset is clamped to [0, MaxOffset] and a non-positive track yields an
// empty thumb.
func NewMetrics(lengths Lengths, offset, trackCells int) Metrics {
	contentLen := max(lengths.ContentLen, 1)
	viewportLen := min(max(lengths.ViewportLen, 1), contentLen)
	maxOffset := contentLen - viewportLen
	offset = clampInt(offset, 0, maxOffset)
	trackCells = clampInt(trackCells, 0, math.MaxInt/Subcell)
	trackLen := trackCells * Subcell

	m := Metrics{
		contentLen:  contentLen,
		viewportLen: viewportLen,
		offset:      offset,
		maxOffset:   maxOffset,
		trackCells:  trackCells,
		trackLen:    trackLen,
	}

	switch {
	case trackLen == 0:
		// nothing to draw
	case maxOffset == 0:
		m.thumbLen = trackLen
	default:
		m.thumbLen = clampInt(mulDiv(trackLen, viewportLen, contentLen), Subcell, trackLen)
		m.thumbStart = m.ThumbStartForOffset(offset)
	}

	return m
}

// ContentLen is the content length after coercion.
func (m Metrics) ContentLen() int { return m.contentLen }

// ViewportLen is the viewport length, at most ContentLen.
func (m Metrics) ViewportLen() int { return m.viewportLen }

// Offset is the clamped offset the geometry was computed for.
func (m Metrics) Offset() int { return m.offset }

// MaxOffset is ContentLen minus ViewportLen.
func (m Metrics) MaxOffset() int { return m.maxOffset }

// TrackCells is the track length in terminal cells.
func (m Metrics) TrackCells() int { return m.trackCells }

// TrackLen is the track length in subcells.
func (m Metrics) TrackLen() int { return m.trackLen }

// ThumbLen is the thumb length in subcells.
func (m Metrics) ThumbLen() int { return m.thumbLen }

// ThumbStart is the thumb position in subcells from the track start.
func (m Metrics) ThumbStart() int { return m.thumbStart }

// ThumbTravel is how far, in subcells, the thumb can move.
func (m Metrics) ThumbTravel() int { return m.trackLen - m.thumbLen }

// ThumbRange returns the half-open subcell range [start, end) the thumb
// occupies.
func (m Metrics) ThumbRange() (start, end int) {
	return m.thumbStart, m.thumbStart + m.thumbLen
}

// HitTest reports whether the subcell position lies on the thumb or the
// track. Positions outside the track are reported as track.
func (m Metrics) HitTest(position int) HitArea {
	start, end := m.ThumbRange()
	if position >= start && position < end {
		return HitThumb
	}
	return HitTrack
}

// CellFill returns the thumb coverage of the track cell at index.
func (m Metrics) CellFill(index int) CellFill {
	if index < 0 || index >= m.trackCells || m.thumbLen == 0 {
		return emptyFill
	}
	cellStart := index * Subcell
	cellEnd := cellStart + Subcell
	thumbStart, thumbEnd := m.ThumbRange()

	start := max(cellStart, thumbStart)
	end := min(cellEnd, thumbEnd)
	if end <= start {
		return emptyFill
	}

	n := min(end-start, Subcell)
	if n == Subcell {
		return fullFill
	}
	return CellFill{Kind: FillPartial, Start: start - cellStart, Len: n}
}

// ThumbStartForOffset maps a content offset onto a thumb position in
// subcells.
func (m Metrics) ThumbStartForOffset(offset int) int {
	travel := m.ThumbTravel()
	if m.maxOffset == 0 || travel <= 0 {
		return 0
	}
	offset = clampInt(offset, 0, m.maxOffset)
	return mulDiv(travel, offset, m.maxOffset)
}

// OffsetForThumbStart is the inverse of ThumbStartForOffset, used to turn
// pointer positions back into content offsets.
func (m Metrics) OffsetForThumbStart(thumbStart int) int {
	travel := m.ThumbTravel()
	if m.maxOffset == 0 || travel <= 0 {
		return 0
	}
	thumbStart = clampInt(thumbStart, 0, travel)
	return mulDiv(m.maxOffset, thumbStart, travel)
}

// mulDiv returns a*b/c without overflowing the intermediate product. It
// requires non-negative a, 0 <= b <= c and c > 0.
func mulDiv(a, b, c int) int {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	q, _ := bits.Div64(hi, lo, uint64(c))
	return int(q)
}

// addClamped returns v+delta clamped to [0, hi], for v already in range.
func addClamped(v, delta, hi int) int {
	switch {
	case delta > hi-v:
		return hi
	case delta < -v:
		return 0
	default:
		return v + delta
	}
}

// mulClamped returns a*b, saturated to the int range when the product
// overflows.
func mulClamped(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		if (a < 0) != (b < 0) {
			return math.MinInt
		}
		return math.MaxInt
	}
	return p
}

func clampInt(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
