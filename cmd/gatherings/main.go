// Command gatherings manages shared-expense gatherings from the terminal.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/mmynk/gatherings/internal/backend"
	"github.com/mmynk/gatherings/internal/cli"
	"github.com/mmynk/gatherings/internal/config"
	"github.com/mmynk/gatherings/internal/repository"
	"github.com/mmynk/gatherings/pkg/logging"
)

var plain = flag.Bool("plain", false, "print raw markdown instead of styled output")

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	// Info logs would interleave with command output; only show them on request.
	level := slog.LevelWarn
	if _, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level, _ = logging.ParseLevel(cfg.LogLevel)
	}
	logging.SetupWithLevel(level)
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := backend.Open(cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}

	app := cli.NewApp(repository.New(store))
	app.Plain = *plain

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx, app)
	stop()
	store.Close()
	os.Exit(int(status))
}
