package config

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

// Settings are the typed, validated options for one subcommand.
type Settings struct {
	Glyphs      scrollbar.GlyphSet
	Arrows      scrollbar.ArrowMode
	TrackClick  scrollbar.TrackClickBehavior
	ScrollStep  int
	Orientation scrollbar.Orientation
	ThumbColor  string
	TrackColor  string
	ArrowColor  string
	Smooth      bool
	LogLevel    slog.Level
	LogFile     string
	LogMaxSize  int
	LogMaxFiles int
}

// DefaultSettings returns the schema defaults, ignoring the environment.
func DefaultSettings() Settings {
	schema := DefaultSchema()
	s, err := parseSettings(func(key string) string { return schema.Lookup("", key).Default })
	if err != nil {
		panic(err)
	}
	return s
}

// Settings resolves every global option as seen by command (see
// ConfigSchema.Resolve) and parses it. Unlike loading, which only warns,
// an invalid value is an error here.
func (c *Config) Settings(command string) (Settings, error) {
	schema := DefaultSchema()
	return parseSettings(func(key string) string { return schema.Resolve(c, command, key) })
}

func parseSettings(get func(key string) string) (Settings, error) {
	var (
		s   Settings
		err error
	)
	if s.Glyphs, err = scrollbar.GlyphSetByName(get("glyphs")); err != nil {
		return Settings{}, fmt.Errorf("glyphs: %w", err)
	}
	if s.Arrows, err = scrollbar.ParseArrowMode(get("arrows")); err != nil {
		return Settings{}, fmt.Errorf("arrows: %w", err)
	}
	if s.TrackClick, err = scrollbar.ParseTrackClickBehavior(get("track-click")); err != nil {
		return Settings{}, fmt.Errorf("track-click: %w", err)
	}
	if s.ScrollStep, err = strconv.Atoi(get("scroll-step")); err != nil {
		return Settings{}, fmt.Errorf("scroll-step: %w", err)
	}
	if s.ScrollStep < 1 {
		return Settings{}, fmt.Errorf("scroll-step must be at least 1: %d", s.ScrollStep)
	}
	if s.Orientation, err = scrollbar.ParseOrientation(get("orientation")); err != nil {
		return Settings{}, fmt.Errorf("orientation: %w", err)
	}
	if s.Smooth, err = parseBool(get("smooth")); err != nil {
		return Settings{}, fmt.Errorf("smooth: %w", err)
	}
	if err = s.LogLevel.UnmarshalText([]byte(get("log-level"))); err != nil {
		return Settings{}, fmt.Errorf("log-level: %w", err)
	}
	if s.LogMaxSize, err = strconv.Atoi(get("log-max-size-mb")); err != nil {
		return Settings{}, fmt.Errorf("log-max-size-mb: %w", err)
	}
	if s.LogMaxFiles, err = strconv.Atoi(get("log-max-files")); err != nil {
		return Settings{}, fmt.Errorf("log-max-files: %w", err)
	}
	s.ThumbColor = get("thumb-color")
	s.TrackColor = get("track-color")
	s.ArrowColor = get("arrow-color")
	s.LogFile = get("log-file")
	return s, nil
}

// IntOption resolves a section option registered as TypeInt.
func (c *Config) IntOption(command, key string) (int, error) {
	v := DefaultSchema().Resolve(c, command, key)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// ScrollBarOptions converts the settings into scrollbar options.
func (s Settings) ScrollBarOptions() []scrollbar.Option {
	opts := []scrollbar.Option{
		scrollbar.WithOrientation(s.Orientation),
		scrollbar.WithGlyphSet(s.Glyphs),
		scrollbar.WithArrows(s.Arrows),
		scrollbar.WithTrackClickBehavior(s.TrackClick),
		scrollbar.WithScrollStep(s.ScrollStep),
	}
	if s.ThumbColor != "" {
		opts = append(opts, scrollbar.WithThumbStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(s.ThumbColor))))
	}
	if s.TrackColor != "" {
		opts = append(opts, scrollbar.WithTrackStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(s.TrackColor))))
	}
	if s.ArrowColor != "" {
		opts = append(opts, scrollbar.WithArrowStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(s.ArrowColor))))
	}
	return opts
}
