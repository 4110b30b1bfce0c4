package scrollbar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// ErrInvalidGlyph is returned by GlyphSet.Validate for glyphs that do not
// occupy exactly one terminal cell.
var ErrInvalidGlyph = errors.New("invalid scrollbar glyph")

// GlyphSet holds the characters used to draw a scrollbar.
//
// The four thumb tables are indexed by the number of covered subcells minus
// one. "Lower" and "Right" glyphs are anchored at the bottom/right edge of the
// cell, "Upper" and "Left" at the top/left edge. Index 7 of each table is
// expected to be a full block.
type GlyphSet struct {
	Name string

	TrackVertical   string
	TrackHorizontal string

	ArrowUp    string
	ArrowDown  string
	ArrowLeft  string
	ArrowRight string

	ThumbVerticalLower   [Subcell]string
	ThumbVerticalUpper   [Subcell]string
	ThumbHorizontalLeft  [Subcell]string
	ThumbHorizontalRight [Subcell]string
}

// GlyphSetMinimal uses only half and full blocks, which nearly every
// terminal font has. Thumb edges snap to half cells.
func GlyphSetMinimal() GlyphSet {
	return GlyphSet{
		Name:                 "minimal",
		TrackVertical:        "│",
		TrackHorizontal:      "─",
		ArrowUp:              "^",
		ArrowDown:            "v",
		ArrowLeft:            "<",
		ArrowRight:           ">",
		ThumbVerticalLower:   [Subcell]string{"▄", "▄", "▄", "▄", "█", "█", "█", "█"},
		ThumbVerticalUpper:   [Subcell]string{"▀", "▀", "▀", "▀", "█", "█", "█", "█"},
		ThumbHorizontalLeft:  [Subcell]string{"▌", "▌", "▌", "▌", "█", "█", "█", "█"},
		ThumbHorizontalRight: [Subcell]string{"▐", "▐", "▐", "▐", "█", "█", "█", "█"},
	}
}

// GlyphSetUnicode uses the block elements from the core Unicode range. Lower
// and left fills have full eighth precision; upper and right fills fall back
// to the one-eighth and half blocks.
func GlyphSetUnicode() GlyphSet {
	return GlyphSet{
		Name:                 "unicode",
		TrackVertical:        "│",
		TrackHorizontal:      "─",
		ArrowUp:              "▲",
		ArrowDown:            "▼",
		ArrowLeft:            "◀",
		ArrowRight:           "▶",
		ThumbVerticalLower:   [Subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper:   [Subcell]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
		ThumbHorizontalLeft:  [Subcell]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"},
		ThumbHorizontalRight: [Subcell]string{"▕", "▕", "▐", "▐", "▐", "▐", "█", "█"},
	}
}

// GlyphSetSymbolsForLegacyComputing adds the upper and right eighth blocks
// from the Symbols for Legacy Computing block (U+1FB82..U+1FB8B), giving
// eighth precision in every direction.
func GlyphSetSymbolsForLegacyComputing() GlyphSet {
	return GlyphSet{
		Name:                 "box-drawing",
		TrackVertical:        "│",
		TrackHorizontal:      "─",
		ArrowUp:              "▲",
		ArrowDown:            "▼",
		ArrowLeft:            "◀",
		ArrowRight:           "▶",
		ThumbVerticalLower:   [Subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper:   [Subcell]string{"▔", "\U0001FB82", "\U0001FB83", "▀", "\U0001FB84", "\U0001FB85", "\U0001FB86", "█"},
		ThumbHorizontalLeft:  [Subcell]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"},
		ThumbHorizontalRight: [Subcell]string{"▕", "\U0001FB87", "\U0001FB88", "▐", "\U0001FB89", "\U0001FB8A", "\U0001FB8B", "█"},
	}
}

// GlyphSetBoxDrawing is an alias for GlyphSetSymbolsForLegacyComputing.
func GlyphSetBoxDrawing() GlyphSet { return GlyphSetSymbolsForLegacyComputing() }

// GlyphSetNames lists the names accepted by GlyphSetByName.
func GlyphSetNames() []string {
	return []string{"minimal", "unicode", "box-drawing", "legacy"}
}

// GlyphSetByName returns a preset glyph set. Names are case-insensitive and
// underscores are treated as dashes.
func GlyphSetByName(name string) (GlyphSet, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-") {
	case "minimal":
		return GlyphSetMinimal(), nil
	case "unicode":
		return GlyphSetUnicode(), nil
	case "box-drawing", "legacy", "symbols-for-legacy-computing":
		return GlyphSetSymbolsForLegacyComputing(), nil
	default:
		return GlyphSet{}, fmt.Errorf("unknown glyph set %q (want one of %s)", name, strings.Join(GlyphSetNames(), ", "))
	}
}

// Validate checks that every glyph is a single grapheme cluster one cell
// wide.
func (g GlyphSet) Validate() error {
	check := func(field, s string) error {
		if uniseg.GraphemeClusterCount(s) != 1 || uniseg.StringWidth(s) != 1 {
			return fmt.Errorf("%w: %s %q must be one cell wide", ErrInvalidGlyph, field, s)
		}
		return nil
	}
	singles := []struct{ field, glyph string }{
		{"track vertical", g.TrackVertical},
		{"track horizontal", g.TrackHorizontal},
		{"arrow up", g.ArrowUp},
		{"arrow down", g.ArrowDown},
		{"arrow left", g.ArrowLeft},
		{"arrow right", g.ArrowRight},
	}
	for _, s := range singles {
		if err := check(s.field, s.glyph); err != nil {
			return err
		}
	}
	tables := []struct {
		field string
		table [Subcell]string
	}{
		{"thumb vertical lower", g.ThumbVerticalLower},
		{"thumb vertical upper", g.ThumbVerticalUpper},
		{"thumb horizontal left", g.ThumbHorizontalLeft},
		{"thumb horizontal right", g.ThumbHorizontalRight},
	}
	for _, t := range tables {
		for i, s := range t.table {
			if err := check(fmt.Sprintf("%s[%d]", t.field, i), s); err != nil {
				return err
			}
		}
	}
	return nil
}

// Select picks the glyph and style for one track cell.
func (g GlyphSet) Select(fill CellFill, orientation Orientation, trackStyle, thumbStyle lipgloss.Style) (string, lipgloss.Style) {
	switch fill.Kind {
	case FillFull:
		if orientation == Horizontal {
			return g.ThumbHorizontalLeft[Subcell-1], thumbStyle
		}
		return g.ThumbVerticalLower[Subcell-1], thumbStyle
	case FillPartial:
		i := clampInt(fill.Len, 1, Subcell) - 1
		leading := fill.Start == 0
		switch {
		case orientation == Horizontal && leading:
			return g.ThumbHorizontalLeft[i], thumbStyle
		case orientation == Horizontal:
			return g.ThumbHorizontalRight[i], thumbStyle
		case leading:
			return g.ThumbVerticalUpper[i], thumbStyle
		default:
			return g.ThumbVerticalLower[i], thumbStyle
		}
	default:
		return g.track(orientation), trackStyle
	}
}

func (g GlyphSet) track(orientation Orientation) string {
	if orientation == Horizontal {
		return g.TrackHorizontal
	}
	return g.TrackVertical
}

// arrows returns the glyphs for the start and end endcaps.
func (g GlyphSet) arrows(orientation Orientation) (start, end string) {
	if orientation == Horizontal {
		return g.ArrowLeft, g.ArrowRight
	}
	return g.ArrowUp, g.ArrowDown
}
