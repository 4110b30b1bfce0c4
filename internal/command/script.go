package command

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dop251/goja_nodejs/require"

	"github.com/joeycumines/termscroll/internal/builtin"
	"github.com/joeycumines/termscroll/internal/config"
	"github.com/joeycumines/termscroll/internal/scripting"
)

// ScriptCommand runs a JavaScript file with the termscroll modules available
// through require().
type ScriptCommand struct {
	*BaseCommand
	config  *config.Config
	flags   settingsFlags
	timeout time.Duration
}

func NewScriptCommand(cfg *config.Config) *ScriptCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &ScriptCommand{
		BaseCommand: NewBaseCommand(
			"script",
			"Run a JavaScript file against the scrollbar module",
			"script [options] FILE.js",
		),
		config: cfg,
	}
}

func (c *ScriptCommand) SetupFlags(fs *flag.FlagSet) {
	c.flags.register(fs, false)
	fs.DurationVar(&c.timeout, "timeout", 30*time.Second, "Maximum run time of the script (0 for none)")
}

func (c *ScriptCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) != 1 {
		_, _ = fmt.Fprintf(stderr, "Usage: termscroll %s\n", c.Usage())
		return fmt.Errorf("expected exactly one script, got %d arguments", len(args))
	}
	s, err := resolveSettings(c.config, config.SectionScript, &c.flags)
	if err != nil {
		return err
	}

	path := args[0]
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	logger, closer, err := newLogger(s, c.Name())
	if err != nil {
		return err
	}
	defer closer.Close()

	registry := require.NewRegistry()
	modules := builtin.Register(registry)

	rt, err := scripting.NewRuntime(ctx, registry, stdout,
		scripting.WithLogger(logger),
		scripting.WithTimeout(c.timeout),
	)
	if err != nil {
		return err
	}
	defer rt.Close()

	logger.Debug("script start", "file", path)
	if err := rt.LoadScript(path, string(code)); err != nil {
		logger.Error("script failed", "file", path, "error", err)
		return err
	}
	logger.Debug("script done", "file", path, "scrollbars", modules.ScrollbarManager.Len())
	return nil
}
