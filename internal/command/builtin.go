package command

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/joeycumines/termscroll/internal/config"
)

// HelpCommand displays help information for commands.
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(
			"help",
			"Display help information for commands",
			"help [command]",
		),
		registry: registry,
	}
}

func (c *HelpCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(stdout, "termscroll - subcell-precision terminal scrollbars")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Usage: termscroll [-config path] <command> [options] [args...]")
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Available commands:")

		w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
		for _, name := range c.registry.List() {
			if cmd, err := c.registry.Get(name); err == nil {
				_, _ = fmt.Fprintf(w, "  %s\t%s\n", name, cmd.Description())
			}
		}
		_ = w.Flush()

		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Use 'termscroll help <command>' for more information about a specific command.")
		return nil
	}

	cmd, err := c.registry.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		return err
	}

	_, _ = fmt.Fprintf(stdout, "Command: %s\n", cmd.Name())
	_, _ = fmt.Fprintf(stdout, "Description: %s\n", cmd.Description())
	_, _ = fmt.Fprintf(stdout, "Usage: termscroll %s\n", cmd.Usage())

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	buf := &bytes.Buffer{}
	fs.SetOutput(buf)
	cmd.SetupFlags(fs)
	fs.PrintDefaults()
	if buf.Len() > 0 {
		_, _ = fmt.Fprintln(stdout, "")
		_, _ = fmt.Fprintln(stdout, "Flags:")
		_, _ = fmt.Fprint(stdout, buf.String())
	}
	return nil
}

// VersionCommand displays version information.
type VersionCommand struct {
	*BaseCommand
	version string
}

func NewVersionCommand(version string) *VersionCommand {
	return &VersionCommand{
		BaseCommand: NewBaseCommand(
			"version",
			"Display version information",
			"version",
		),
		version: version,
	}
}

func (c *VersionCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	_, _ = fmt.Fprintf(stdout, "termscroll version %s\n", c.version)
	return nil
}

// ConfigCommand reads, writes and validates configuration.
type ConfigCommand struct {
	*BaseCommand
	config     *config.Config
	configPath string
	section    string
	showAll    bool
}

// NewConfigCommand creates a config command. An empty configPath skips
// persisting changes to disk.
func NewConfigCommand(cfg *config.Config, configPath string) *ConfigCommand {
	return &ConfigCommand{
		BaseCommand: NewBaseCommand(
			"config",
			"Manage configuration settings",
			"config [options] [key [value] | validate | schema]",
		),
		config:     cfg,
		configPath: configPath,
	}
}

func (c *ConfigCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.section, "section", "", "Section to read or write (view, render or script); global when empty")
	fs.BoolVar(&c.showAll, "all", false, "Show all configuration (global and per-section)")
}

func (c *ConfigCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		if c.showAll {
			_, _ = fmt.Fprintln(stdout, "Global configuration:")
			writeOptions(stdout, "  ", c.config.Global)
			sections := make([]string, 0, len(c.config.Commands))
			for name := range c.config.Commands {
				sections = append(sections, name)
			}
			sort.Strings(sections)
			for _, name := range sections {
				_, _ = fmt.Fprintf(stdout, "[%s]\n", name)
				writeOptions(stdout, "  ", c.config.Commands[name])
			}
			return nil
		}
		_, _ = fmt.Fprintln(stdout, "Configuration management:")
		_, _ = fmt.Fprintln(stdout, "  config <key>             - Show the effective value")
		_, _ = fmt.Fprintln(stdout, "  config <key> <value>     - Set a value in the config file")
		_, _ = fmt.Fprintln(stdout, "  config -section render   - Read or write a section instead of the globals")
		_, _ = fmt.Fprintln(stdout, "  config -all              - Show all configuration")
		_, _ = fmt.Fprintln(stdout, "  config validate          - Validate configuration")
		_, _ = fmt.Fprintln(stdout, "  config schema            - Show configuration schema")
		return nil
	}

	schema := config.DefaultSchema()
	switch args[0] {
	case "validate":
		return c.executeValidate(stdout, schema)
	case "schema":
		_, _ = fmt.Fprint(stdout, schema.FormatHelp())
		return nil
	}

	switch len(args) {
	case 1:
		key := args[0]
		if !schema.IsKnown(c.section, key) {
			_, _ = fmt.Fprintf(stdout, "Configuration key '%s' not found\n", key)
			return nil
		}
		_, _ = fmt.Fprintf(stdout, "%s: %s\n", key, schema.Resolve(c.config, c.section, key))
		return nil
	case 2:
		key, value := args[0], args[1]
		if err := schema.ValidateOption(c.section, key, value); err != nil {
			return err
		}
		if c.section == "" {
			c.config.SetGlobalOption(key, value)
		} else {
			c.config.SetCommandOption(c.section, key, value)
		}
		if c.configPath != "" {
			if err := config.SetKeyInFile(c.configPath, c.section, key, value); err != nil {
				return fmt.Errorf("failed to persist config: %w", err)
			}
		}
		_, _ = fmt.Fprintf(stdout, "Set configuration: %s = %s\n", key, value)
		return nil
	}

	_, _ = fmt.Fprintln(stderr, "Invalid number of arguments")
	return fmt.Errorf("invalid arguments")
}

func (c *ConfigCommand) executeValidate(stdout io.Writer, schema *config.ConfigSchema) error {
	issues := config.ValidateConfig(c.config, schema)
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(stdout, "Configuration is valid.")
		return nil
	}
	_, _ = fmt.Fprintf(stdout, "Configuration has %d issue(s):\n", len(issues))
	for _, issue := range issues {
		_, _ = fmt.Fprintf(stdout, "  - %s\n", issue)
	}
	return nil
}

func writeOptions(w io.Writer, indent string, options map[string]string) {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", indent, key, options[key])
	}
}

// InitCommand writes a commented default config file.
type InitCommand struct {
	*BaseCommand
	configPath string
	force      bool
}

func NewInitCommand(configPath string) *InitCommand {
	return &InitCommand{
		BaseCommand: NewBaseCommand(
			"init",
			"Write a default configuration file",
			"init [options]",
		),
		configPath: configPath,
	}
}

func (c *InitCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "Overwrite an existing configuration file")
}

const defaultConfig = `# termscroll configuration file
# Format: optionName remainingLineIsTheValue
# Use [view], [render] and [script] sections for per-command overrides.
# Run 'termscroll config schema' for every option.

glyphs minimal
arrows none
track-click page
scroll-step 1
smooth false

[view]
arrows both
`

func (c *InitCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	if c.configPath == "" {
		return fmt.Errorf("no config path")
	}

	if _, err := os.Stat(c.configPath); err == nil && !c.force {
		_, _ = fmt.Fprintf(stdout, "Configuration already exists at: %s\n", c.configPath)
		_, _ = fmt.Fprintln(stdout, "Use -force to overwrite existing configuration")
		return nil
	}

	if err := config.WriteFile(c.configPath, []byte(defaultConfig)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "Configuration written to: %s\n", c.configPath)
	return nil
}
