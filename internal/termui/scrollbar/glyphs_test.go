package scrollbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphSetPresetsValidate(t *testing.T) {
	for _, name := range GlyphSetNames() {
		t.Run(name, func(t *testing.T) {
			g, err := GlyphSetByName(name)
			require.NoError(t, err)
			require.NoError(t, g.Validate())
			assert.Equal(t, "█", g.ThumbVerticalLower[Subcell-1])
			assert.Equal(t, "█", g.ThumbHorizontalLeft[Subcell-1])
		})
	}
}

func TestGlyphSetByName(t *testing.T) {
	g, err := GlyphSetByName(" Symbols_For_Legacy_Computing ")
	require.NoError(t, err)
	assert.Equal(t, GlyphSetBoxDrawing(), g)

	_, err = GlyphSetByName("fancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fancy")
}

func TestGlyphSetValidateRejectsWideGlyphs(t *testing.T) {
	g := GlyphSetUnicode()
	g.ThumbVerticalUpper[2] = "██"
	err := g.Validate()
	require.ErrorIs(t, err, ErrInvalidGlyph)
	assert.Contains(t, err.Error(), "thumb vertical upper[2]")

	g = GlyphSetMinimal()
	g.TrackVertical = "界"
	require.ErrorIs(t, g.Validate(), ErrInvalidGlyph)

	g = GlyphSetMinimal()
	g.ArrowLeft = ""
	require.ErrorIs(t, g.Validate(), ErrInvalidGlyph)
}

func TestGlyphSetSelect(t *testing.T) {
	g := GlyphSetSymbolsForLegacyComputing()
	track := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	thumb := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	tests := []struct {
		name        string
		fill        CellFill
		orientation Orientation
		wantGlyph   string
		wantThumb   bool
	}{
		{"empty vertical", CellFill{Kind: FillEmpty}, Vertical, "│", false},
		{"empty horizontal", CellFill{Kind: FillEmpty}, Horizontal, "─", false},
		{"full vertical", CellFill{Kind: FillFull, Len: Subcell}, Vertical, "█", true},
		{"full horizontal", CellFill{Kind: FillFull, Len: Subcell}, Horizontal, "█", true},
		{"leading vertical", CellFill{Kind: FillPartial, Start: 0, Len: 4}, Vertical, "▀", true},
		{"trailing vertical", CellFill{Kind: FillPartial, Start: 3, Len: 5}, Vertical, "▅", true},
		{"leading horizontal", CellFill{Kind: FillPartial, Start: 0, Len: 1}, Horizontal, "▏", true},
		{"trailing horizontal", CellFill{Kind: FillPartial, Start: 4, Len: 4}, Horizontal, "▐", true},
		{"legacy upper quarter", CellFill{Kind: FillPartial, Start: 0, Len: 2}, Vertical, "\U0001FB82", true},
		{"oversized len clamps", CellFill{Kind: FillPartial, Start: 1, Len: 12}, Vertical, "█", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			glyph, style := g.Select(tc.fill, tc.orientation, track, thumb)
			assert.Equal(t, tc.wantGlyph, glyph)
			want := track
			if tc.wantThumb {
				want = thumb
			}
			assert.Equal(t, want.GetForeground(), style.GetForeground())
		})
	}
}

func TestGlyphSetUnicodeFallsBackForUpperFills(t *testing.T) {
	g := GlyphSetUnicode()
	glyph, _ := g.Select(CellFill{Kind: FillPartial, Len: 1}, Vertical, lipgloss.NewStyle(), lipgloss.NewStyle())
	assert.Equal(t, "▔", glyph)
	glyph, _ = g.Select(CellFill{Kind: FillPartial, Start: 5, Len: 3}, Vertical, lipgloss.NewStyle(), lipgloss.NewStyle())
	assert.Equal(t, "▃", glyph)
	glyph, _ = g.Select(CellFill{Kind: FillPartial, Start: 2, Len: 6}, Horizontal, lipgloss.NewStyle(), lipgloss.NewStyle())
	assert.Equal(t, "▐", glyph)
}
