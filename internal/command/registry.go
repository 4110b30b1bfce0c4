package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
)

// Registry holds the available subcommands by name.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd, replacing any command of the same name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get returns a command by name.
func (r *Registry) Get(name string) (Command, error) {
	if cmd, ok := r.commands[name]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("command not found: %s", name)
}

// List returns the sorted command names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run parses the flags of the named command and executes it. A -h or -help
// flag prints the command usage and returns nil.
func (r *Registry) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd, err := r.Get(name)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", name)
		_, _ = fmt.Fprintln(stderr, "Use 'termscroll help' to see available commands.")
		return err
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: termscroll %s\n", cmd.Usage())
		_, _ = fmt.Fprintf(stderr, "\n%s\n\n", cmd.Description())
		_, _ = fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	cmd.SetupFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	return cmd.Execute(ctx, fs.Args(), stdout, stderr)
}
