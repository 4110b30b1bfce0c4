package command

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/joeycumines/termscroll/internal/config"
	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

// RenderCommand prints a single scrollbar, for scripts and snapshots.
type RenderCommand struct {
	*BaseCommand
	config *config.Config
	flags  settingsFlags

	content, viewport, offset, cells int
	horizontal                       bool
	color                            string
	metrics                          bool
}

func NewRenderCommand(cfg *config.Config) *RenderCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &RenderCommand{
		BaseCommand: NewBaseCommand(
			"render",
			"Print a scrollbar for the given lengths and offset",
			"render [options]",
		),
		config: cfg,
	}
}

func (c *RenderCommand) intDefault(key string) int {
	n, err := c.config.IntOption(config.SectionRender, key)
	if err != nil {
		// reported by Execute
		return 0
	}
	return n
}

func (c *RenderCommand) SetupFlags(fs *flag.FlagSet) {
	c.flags.register(fs, true)
	fs.IntVar(&c.content, "content", c.intDefault("content"), "Content length")
	fs.IntVar(&c.viewport, "viewport", c.intDefault("viewport"), "Viewport length")
	fs.IntVar(&c.offset, "offset", 0, "Scroll offset")
	fs.IntVar(&c.cells, "cells", c.intDefault("cells"), "Scrollbar length in cells")
	fs.BoolVar(&c.horizontal, "horizontal", false, "Draw a horizontal scrollbar")
	fs.StringVar(&c.color, "color", "auto", "Color output: auto, always or never")
	fs.BoolVar(&c.metrics, "metrics", false, "Print the thumb geometry after the scrollbar")
}

func (c *RenderCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	for _, key := range []string{"content", "viewport", "cells"} {
		if _, err := c.config.IntOption(config.SectionRender, key); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	if c.cells < 1 {
		return fmt.Errorf("-cells must be at least 1: %d", c.cells)
	}

	s, err := resolveSettings(c.config, config.SectionRender, &c.flags)
	if err != nil {
		return err
	}
	if c.horizontal {
		s.Orientation = scrollbar.Horizontal
	}
	profile, err := colorProfile(c.color, stdout)
	if err != nil {
		return err
	}
	lipgloss.SetColorProfile(profile)

	logger, closer, err := newLogger(s, c.Name())
	if err != nil {
		return err
	}
	defer closer.Close()

	sb := scrollbar.New(append(s.ScrollBarOptions(),
		scrollbar.WithLengths(scrollbar.Lengths{ContentLen: c.content, ViewportLen: c.viewport}),
		scrollbar.WithOffset(c.offset),
	)...)
	width, height := 1, c.cells
	if s.Orientation == scrollbar.Horizontal {
		width, height = c.cells, 1
	}
	m := sb.Metrics(scrollbar.Rect{Width: width, Height: height})
	logger.Debug("render", "orientation", s.Orientation, "glyphs", s.Glyphs.Name, "offset", m.Offset(), "thumb_start", m.ThumbStart(), "thumb_len", m.ThumbLen())

	_, _ = fmt.Fprintln(stdout, sb.View(width, height))
	if c.metrics {
		start, end := m.ThumbRange()
		_, _ = fmt.Fprintf(stdout, "content=%d viewport=%d offset=%d max=%d track=%d thumb=%d..%d travel=%d\n",
			m.ContentLen(), m.ViewportLen(), m.Offset(), m.MaxOffset(), m.TrackLen(), start, end, m.ThumbTravel())
	}
	return nil
}

func colorProfile(mode string, w io.Writer) (termenv.Profile, error) {
	switch strings.ToLower(mode) {
	case "never":
		return termenv.Ascii, nil
	case "always":
		return termenv.ANSI256, nil
	case "auto", "":
		return termenv.NewOutput(w).EnvColorProfile(), nil
	}
	return termenv.Ascii, fmt.Errorf("invalid -color %q: expected auto, always or never", mode)
}
