package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/Makepad-fr/kanban/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "extra config file (YAML)")
	theme := flag.String("theme", "", "colour theme: classic, neon or mono")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, args, cli.Options{
		ConfigPath: *configPath,
		Theme:      *theme,
		Debug:      *debug,
	})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
