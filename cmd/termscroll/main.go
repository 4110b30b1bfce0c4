package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joeycumines/termscroll/internal/command"
	"github.com/joeycumines/termscroll/internal/config"
	"github.com/joeycumines/termscroll/internal/storage"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("termscroll", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "Path to the configuration file (default: $"+config.EnvConfigPath+" or ~/.termscroll/config)")
	if err := global.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		_, _ = fmt.Fprintf(stderr, "Warning: %s\n", w)
	}

	registry := command.NewRegistry()
	helpCmd := command.NewHelpCommand(registry)
	registry.Register(helpCmd)
	registry.Register(command.NewVersionCommand(version))
	registry.Register(command.NewConfigCommand(cfg, path))
	registry.Register(command.NewInitCommand(path))
	registry.Register(command.NewViewCommand(cfg, stdin, storage.NewStore(storage.PathFor(path))))
	registry.Register(command.NewRenderCommand(cfg))
	registry.Register(command.NewScriptCommand(cfg))

	rest := global.Args()
	if len(rest) == 0 {
		return helpCmd.Execute(ctx, nil, stdout, stderr)
	}
	return registry.Run(ctx, rest[0], rest[1:], stdout, stderr)
}
