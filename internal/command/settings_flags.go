package command

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/joeycumines/termscroll/internal/config"
	"github.com/joeycumines/termscroll/internal/scripting"
	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

// optionalBool is a bool flag that remembers whether it was given.
type optionalBool struct {
	set, value bool
}

func (b *optionalBool) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.set, b.value = true, v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

// settingsFlags are the command line overrides shared by every command that
// draws or logs. Empty or zero values leave the configuration alone.
type settingsFlags struct {
	glyphs     string
	arrows     string
	trackClick string
	step       int
	smooth     optionalBool
	logFile    string
	logLevel   string
}

func (f *settingsFlags) register(fs *flag.FlagSet, drawing bool) {
	if drawing {
		fs.StringVar(&f.glyphs, "glyphs", "", "Glyph set: minimal, unicode, box-drawing or legacy")
		fs.StringVar(&f.arrows, "arrows", "", "Arrow endcaps: none, start, end or both")
		fs.StringVar(&f.trackClick, "track-click", "", "Track click behavior: page or jump")
		fs.IntVar(&f.step, "step", 0, "Lines per wheel notch or arrow click")
		fs.Var(&f.smooth, "smooth", "Animate scrolling with a spring")
	}
	fs.StringVar(&f.logFile, "log", "", "Write logs to this file")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func (f *settingsFlags) apply(s *config.Settings) error {
	var err error
	if f.glyphs != "" {
		if s.Glyphs, err = scrollbar.GlyphSetByName(f.glyphs); err != nil {
			return fmt.Errorf("-glyphs: %w", err)
		}
	}
	if f.arrows != "" {
		if s.Arrows, err = scrollbar.ParseArrowMode(f.arrows); err != nil {
			return fmt.Errorf("-arrows: %w", err)
		}
	}
	if f.trackClick != "" {
		if s.TrackClick, err = scrollbar.ParseTrackClickBehavior(f.trackClick); err != nil {
			return fmt.Errorf("-track-click: %w", err)
		}
	}
	switch {
	case f.step < 0:
		return fmt.Errorf("-step must be at least 1: %d", f.step)
	case f.step > 0:
		s.ScrollStep = f.step
	}
	if f.smooth.set {
		s.Smooth = f.smooth.value
	}
	if f.logFile != "" {
		s.LogFile = f.logFile
	}
	if f.logLevel != "" {
		if err := s.LogLevel.UnmarshalText([]byte(f.logLevel)); err != nil {
			return fmt.Errorf("-log-level: %w", err)
		}
	}
	return nil
}

// resolveSettings reads the settings for section and applies the flags.
func resolveSettings(cfg *config.Config, section string, f *settingsFlags) (config.Settings, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	s, err := cfg.Settings(section)
	if err != nil {
		return config.Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := f.apply(&s); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger opens the log file named by s. Every record carries a run id so
// that runs sharing a file can be told apart. Without a log file the logger
// discards everything.
func newLogger(s config.Settings, command string) (*slog.Logger, io.Closer, error) {
	if s.LogFile == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	w, err := scripting.OpenRotatingFile(s.LogFile, s.LogMaxSize, s.LogMaxFiles)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", s.LogFile, err)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.LogLevel})).
		With("run", uuid.NewString(), "command", command)
	return logger, w, nil
}
