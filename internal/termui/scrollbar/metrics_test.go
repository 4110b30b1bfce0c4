package scrollbar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	tests := []struct {
		name       string
		lengths    Lengths
		offset     int
		trackCells int

		wantOffset     int
		wantMaxOffset  int
		wantThumbLen   int
		wantThumbStart int
	}{
		{
			name:       "content fits",
			lengths:    Lengths{ContentLen: 10, ViewportLen: 10},
			trackCells: 5,
			wantThumbLen: 40,
		},
		{
			name:           "half visible at top",
			lengths:        Lengths{ContentLen: 20, ViewportLen: 10},
			trackCells:     10,
			wantMaxOffset:  10,
			wantThumbLen:   40,
			wantThumbStart: 0,
		},
		{
			name:           "half visible at bottom",
			lengths:        Lengths{ContentLen: 20, ViewportLen: 10},
			offset:         10,
			trackCells:     10,
			wantOffset:     10,
			wantMaxOffset:  10,
			wantThumbLen:   40,
			wantThumbStart: 40,
		},
		{
			name:           "offset clamped above max",
			lengths:        Lengths{ContentLen: 20, ViewportLen: 10},
			offset:         999,
			trackCells:     10,
			wantOffset:     10,
			wantMaxOffset:  10,
			wantThumbLen:   40,
			wantThumbStart: 40,
		},
		{
			name:          "negative offset clamped",
			lengths:       Lengths{ContentLen: 20, ViewportLen: 10},
			offset:        -5,
			trackCells:    10,
			wantMaxOffset: 10,
			wantThumbLen:  40,
		},
		{
			name:          "huge content floors thumb at one cell",
			lengths:       Lengths{ContentLen: 100000, ViewportLen: 10},
			trackCells:    10,
			wantMaxOffset: 99990,
			wantThumbLen:  Subcell,
		},
		{
			name:       "zero lengths coerced to one",
			lengths:    Lengths{},
			trackCells: 3,
			wantThumbLen: 24,
		},
		{
			name:       "zero track",
			lengths:    Lengths{ContentLen: 100, ViewportLen: 10},
			offset:     50,
			wantOffset: 50,
			wantMaxOffset: 90,
		},
		{
			name:       "negative track",
			lengths:    Lengths{ContentLen: 100, ViewportLen: 10},
			trackCells: -4,
			wantMaxOffset: 90,
		},
		{
			name:           "fractional thumb",
			lengths:        Lengths{ContentLen: 10, ViewportLen: 3},
			offset:         1,
			trackCells:     4,
			wantOffset:     1,
			wantMaxOffset:  7,
			wantThumbLen:   9,
			wantThumbStart: 3,
		},
		{
			name:         "viewport exceeds content",
			lengths:      Lengths{ContentLen: 5, ViewportLen: 10},
			trackCells:   1,
			wantThumbLen: Subcell,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMetrics(tc.lengths, tc.offset, tc.trackCells)
			assert.Equal(t, tc.wantOffset, m.Offset(), "offset")
			assert.Equal(t, tc.wantMaxOffset, m.MaxOffset(), "max offset")
			assert.Equal(t, tc.wantThumbLen, m.ThumbLen(), "thumb len")
			assert.Equal(t, tc.wantThumbStart, m.ThumbStart(), "thumb start")
			assert.Equal(t, max(tc.trackCells, 0)*Subcell, m.TrackLen(), "track len")
			assert.LessOrEqual(t, m.ThumbStart()+m.ThumbLen(), m.TrackLen())
		})
	}
}

func TestMetrics_ViewportClampedToContent(t *testing.T) {
	m := NewMetrics(Lengths{ContentLen: 5, ViewportLen: 10}, 3, 4)
	assert.Equal(t, 5, m.ContentLen())
	assert.Equal(t, 5, m.ViewportLen())
	assert.Equal(t, 0, m.Offset())
	assert.Equal(t, 0, m.ThumbTravel())
}

func TestMetrics_ScaleInvariance(t *testing.T) {
	base := []struct {
		lengths Lengths
		offset  int
		cells   int
	}{
		{Lengths{ContentLen: 10, ViewportLen: 3}, 1, 4},
		{Lengths{ContentLen: 16, ViewportLen: 8}, 4, 4},
		{Lengths{ContentLen: 100, ViewportLen: 20}, 40, 10},
		{Lengths{ContentLen: 64, ViewportLen: 8}, 56, 8},
		{Lengths{ContentLen: 40, ViewportLen: 40}, 0, 6},
	}
	for _, b := range base {
		want := NewMetrics(b.lengths, b.offset, b.cells)
		for _, k := range []int{1, 2, 3, Subcell, 7 * Subcell, 1000} {
			scaled := Lengths{ContentLen: b.lengths.ContentLen * k, ViewportLen: b.lengths.ViewportLen * k}
			got := NewMetrics(scaled, b.offset*k, b.cells)
			assert.Equal(t, want.ThumbLen(), got.ThumbLen(), "thumb len %+v k=%d", b, k)
			assert.Equal(t, want.ThumbStart(), got.ThumbStart(), "thumb start %+v k=%d", b, k)
		}
	}
}

func TestMetrics_NoScrollFillsTrack(t *testing.T) {
	for cells := 1; cells <= 20; cells++ {
		for content := 1; content <= 12; content++ {
			m := NewMetrics(Lengths{ContentLen: content, ViewportLen: content + cells%3}, cells, cells)
			require.Equal(t, m.TrackLen(), m.ThumbLen(), "cells=%d content=%d", cells, content)
			require.Zero(t, m.ThumbStart())
		}
	}
}

func TestMetrics_OffsetClampIdempotent(t *testing.T) {
	lengths := Lengths{ContentLen: 37, ViewportLen: 9}
	for offset := -10; offset <= 50; offset++ {
		once := NewMetrics(lengths, offset, 6).Offset()
		twice := NewMetrics(lengths, once, 6).Offset()
		require.Equal(t, once, twice, "offset=%d", offset)
	}
}

func TestMetrics_RoundTrip(t *testing.T) {
	// Offsets are finer than subcells here, so every thumb position is
	// reachable.
	m := NewMetrics(Lengths{ContentLen: 5000, ViewportLen: 250}, 0, 12)
	require.Greater(t, m.MaxOffset(), m.ThumbTravel())
	for start := 0; start <= m.ThumbTravel(); start++ {
		got := m.ThumbStartForOffset(m.OffsetForThumbStart(start))
		assert.InDelta(t, start, got, 1, "thumb start %d", start)
	}
}

func TestMetrics_OffsetForThumbStartClamps(t *testing.T) {
	m := NewMetrics(Lengths{ContentLen: 100, ViewportLen: 20}, 0, 10)
	assert.Equal(t, 0, m.OffsetForThumbStart(-50))
	assert.Equal(t, m.MaxOffset(), m.OffsetForThumbStart(m.ThumbTravel()+50))
	assert.Equal(t, m.ThumbTravel(), m.ThumbStartForOffset(1<<20))

	fits := NewMetrics(Lengths{ContentLen: 10, ViewportLen: 10}, 0, 10)
	assert.Zero(t, fits.OffsetForThumbStart(30))
	assert.Zero(t, fits.ThumbStartForOffset(30))
}

func TestMetrics_HitTestPartition(t *testing.T) {
	m := NewMetrics(Lengths{ContentLen: 10, ViewportLen: 3}, 4, 4)
	start, end := m.ThumbRange()
	var thumb []int
	for pos := 0; pos < m.TrackLen(); pos++ {
		switch m.HitTest(pos) {
		case HitThumb:
			thumb = append(thumb, pos)
		case HitTrack:
			assert.True(t, pos < start || pos >= end, "position %d", pos)
		default:
			t.Fatalf("unexpected hit area for %d", pos)
		}
	}
	require.NotEmpty(t, thumb)
	assert.Equal(t, start, thumb[0])
	assert.Equal(t, end-1, thumb[len(thumb)-1])
	assert.Len(t, thumb, m.ThumbLen())
	assert.Equal(t, HitTrack, m.HitTest(-1))
	assert.Equal(t, HitTrack, m.HitTest(m.TrackLen()))
}

func TestMetrics_CellFill(t *testing.T) {
	m := NewMetrics(Lengths{ContentLen: 10, ViewportLen: 3}, 1, 4)
	assert.Equal(t, CellFill{Kind: FillPartial, Start: 3, Len: 5}, m.CellFill(0))
	assert.Equal(t, CellFill{Kind: FillPartial, Start: 0, Len: 4}, m.CellFill(1))
	assert.Equal(t, FillEmpty, m.CellFill(2).Kind)
	assert.Equal(t, FillEmpty, m.CellFill(3).Kind)
	assert.Equal(t, FillEmpty, m.CellFill(-1).Kind)
	assert.Equal(t, FillEmpty, m.CellFill(99).Kind)

	degenerate := NewMetrics(Lengths{ContentLen: 5, ViewportLen: 10}, 0, 1)
	assert.Equal(t, Subcell, degenerate.ThumbLen())
	assert.Equal(t, FillFull, degenerate.CellFill(0).Kind)
}

func TestMetrics_CellFillCoverage(t *testing.T) {
	for content := 2; content <= 40; content += 3 {
		for viewport := 1; viewport < content; viewport += 2 {
			for cells := 1; cells <= 9; cells++ {
				for offset := 0; offset <= content-viewport; offset += 3 {
					m := NewMetrics(Lengths{ContentLen: content, ViewportLen: viewport}, offset, cells)
					sum := 0
					for i := 0; i < cells; i++ {
						f := m.CellFill(i)
						switch f.Kind {
						case FillFull:
							sum += Subcell
						case FillPartial:
							require.True(t, f.Len >= 1 && f.Len < Subcell)
							require.True(t, f.Start >= 0 && f.Start < Subcell)
							sum += f.Len
						}
					}
					require.Equal(t, m.ThumbLen(), sum, "content=%d viewport=%d cells=%d offset=%d", content, viewport, cells, offset)
				}
			}
		}
	}
}

func TestHitArea_String(t *testing.T) {
	assert.Equal(t, "thumb", HitThumb.String())
	assert.Equal(t, "track", HitTrack.String())
}

func TestMetrics_HugeLengthsDoNotOverflow(t *testing.T) {
	const huge = math.MaxInt
	m := NewMetrics(Lengths{ContentLen: huge, ViewportLen: huge - huge/2}, huge, 10)
	assert.Equal(t, huge/2, m.MaxOffset())
	assert.Equal(t, m.MaxOffset(), m.Offset())
	// half the content is visible, so half the track is thumb
	assert.Equal(t, 40, m.ThumbLen())
	assert.Equal(t, m.ThumbTravel(), m.ThumbStart())
	assert.Equal(t, m.MaxOffset(), m.OffsetForThumbStart(m.ThumbTravel()))
	assert.Equal(t, m.MaxOffset()/2, m.OffsetForThumbStart(20))
}

func TestMetrics_HugeTrackDoesNotOverflow(t *testing.T) {
	m := NewMetrics(Lengths{ContentLen: 100, ViewportLen: 20}, 50, 1<<60+1)
	assert.Equal(t, math.MaxInt/Subcell, m.TrackCells())
	assert.Positive(t, m.TrackLen())
	assert.Positive(t, m.ThumbLen())
	start, end := m.ThumbRange()
	assert.LessOrEqual(t, 0, start)
	assert.LessOrEqual(t, end, m.TrackLen())
	assert.Equal(t, emptyFill, m.CellFill(math.MaxInt))
}

func TestMetrics_CellFillOutsideTrack(t *testing.T) {
	m := NewMetrics(Lengths{ContentLen: 10, ViewportLen: 10}, 0, 4)
	assert.Equal(t, fullFill, m.CellFill(3))
	assert.Equal(t, emptyFill, m.CellFill(4))
	assert.Equal(t, emptyFill, m.CellFill(-1))
}

func TestMulClamped(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, math.MaxInt, 0},
		{3, 4, 12},
		{-3, 4, -12},
		{math.MaxInt, 2, math.MaxInt},
		{math.MaxInt, -2, math.MinInt},
		{math.MinInt, 3, math.MinInt},
		{math.MinInt, -1, math.MaxInt},
		{-1, math.MinInt, math.MaxInt},
		{math.MinInt, 1, math.MinInt},
		{1 << 32, 1 << 32, math.MaxInt},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, mulClamped(tc.a, tc.b), "%+v", tc)
	}
}

func TestAddClamped(t *testing.T) {
	tests := []struct{ v, delta, hi, want int }{
		{5, 3, 10, 8},
		{5, 30, 10, 10},
		{5, -30, 10, 0},
		{0, math.MaxInt, math.MaxInt, math.MaxInt},
		{math.MaxInt, math.MaxInt, math.MaxInt, math.MaxInt},
		{math.MaxInt, math.MinInt, math.MaxInt, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, addClamped(tc.v, tc.delta, tc.hi), "%+v", tc)
	}
}
