package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/joeycumines/termscroll/internal/config"
	"github.com/joeycumines/termscroll/internal/demo"
	"github.com/joeycumines/termscroll/internal/storage"
	"github.com/joeycumines/termscroll/internal/termui/scrollbar"
)

const savePositionTimeout = 2 * time.Second

// ErrNotTerminal is returned by the view command when stdout is not a
// terminal.
var ErrNotTerminal = errors.New("view requires a terminal")

// ViewCommand opens a file in the interactive viewer.
type ViewCommand struct {
	*BaseCommand
	config *config.Config
	flags  settingsFlags

	backend string
	title   string
	resume  bool

	positions *storage.Store

	stdin      io.Reader
	isTerminal func(io.Writer) bool
	runTea     func(ctx context.Context, p *demo.Pager, smooth bool, in io.Reader, out io.Writer) error
	runTcell   func(ctx context.Context, p *demo.Pager) error
}

// NewViewCommand creates a view command. The last position of every viewed
// file is recorded in positions, unless it is nil.
func NewViewCommand(cfg *config.Config, stdin io.Reader, positions *storage.Store) *ViewCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &ViewCommand{
		BaseCommand: NewBaseCommand(
			"view",
			"Scroll through a file with mouse-driven scrollbars",
			"view [options] FILE",
		),
		config:     cfg,
		positions:  positions,
		stdin:      stdin,
		isTerminal: isTerminal,
		runTea:     demo.Run,
		runTcell: func(ctx context.Context, p *demo.Pager) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			return demo.RunTcell(ctx, screen, p)
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *ViewCommand) SetupFlags(fs *flag.FlagSet) {
	c.flags.register(fs, true)
	fs.StringVar(&c.backend, "backend", "tea", "Terminal backend: tea or tcell")
	fs.StringVar(&c.title, "title", "", "Title shown in the status line (default: file name)")
	fs.BoolVar(&c.resume, "resume", false, "Start at the position the file was last closed at")
}

func (c *ViewCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) != 1 {
		_, _ = fmt.Fprintf(stderr, "Usage: termscroll %s\n", c.Usage())
		return fmt.Errorf("expected exactly one file, got %d arguments", len(args))
	}
	backend := strings.ToLower(c.backend)
	if backend != "tea" && backend != "tcell" {
		return fmt.Errorf("invalid -backend %q: expected tea or tcell", c.backend)
	}

	s, err := resolveSettings(c.config, config.SectionView, &c.flags)
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !c.isTerminal(stdout) {
		return ErrNotTerminal
	}

	logger, closer, err := newLogger(s, c.Name())
	if err != nil {
		return err
	}
	defer closer.Close()

	title := c.title
	if title == "" {
		title = filepath.Base(path)
	}
	p := demo.NewPager(title, string(data), s, logger)
	if c.resume && c.positions != nil {
		pos, ok, err := c.positions.Get(path)
		switch {
		case err != nil:
			logger.Warn("failed to load position", "file", path, "error", err)
		case ok:
			// clamped by the first resize
			p.Apply(demo.AxisY, &scrollbar.Command{Offset: pos.Y})
			p.Apply(demo.AxisX, &scrollbar.Command{Offset: pos.X})
		}
	}
	logger.Info("view", "file", path, "backend", backend, "lines", p.Lines(), "glyphs", s.Glyphs.Name, "smooth", s.Smooth)

	if backend == "tcell" {
		err = c.runTcell(ctx, p)
	} else {
		err = c.runTea(ctx, p, s.Smooth, c.stdin, stdout)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("view failed", "error", err)
		return err
	}
	logger.Info("view closed", "y", p.Offset(demo.AxisY), "x", p.Offset(demo.AxisX))

	if c.positions != nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), savePositionTimeout)
		defer cancel()
		pos := storage.Position{Y: p.Offset(demo.AxisY), X: p.Offset(demo.AxisX)}
		if err := c.positions.Put(saveCtx, path, pos); err != nil {
			logger.Warn("failed to save position", "file", path, "error", err)
			_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}
	return nil
}
