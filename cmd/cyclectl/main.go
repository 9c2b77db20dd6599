package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/blaisecz/meal-cycle/internal/config"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/internal/repository"
	"github.com/blaisecz/meal-cycle/internal/syncqueue"
)

var CLI struct {
	LogLevel string `help:"Log level." default:"warn" env:"LOG_LEVEL"`

	Profile struct {
		Show     ProfileShowCmd     `cmd:"" help:"Print a cycle profile as YAML." default:"1"`
		Validate ProfileValidateCmd `cmd:"" help:"Validate a profile file."`
	} `cmd:"" help:"Inspect cycle profiles."`
	Queue struct {
		List  QueueListCmd  `cmd:"" help:"List queued mutations." default:"1"`
		Flush QueueFlushCmd `cmd:"" help:"Send queued mutations to the remote store."`
	} `cmd:"" help:"Inspect and drain the local mutation queue."`
}

// Context is passed to every command's Run method.
type Context struct {
	Out io.Writer
	// OpenRemote connects to the remote store at a database URL.
	OpenRemote func(databaseURL string) (syncqueue.RemoteStore, error)
}

func openRemote(databaseURL string) (syncqueue.RemoteStore, error) {
	db, err := config.NewDatabase(&config.Config{DatabaseURL: databaseURL, LogLevel: "warn"})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repository.NewCycleRepository(db), nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cyclectl"),
		kong.Description("Meal cycle profile and queue maintenance"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
	)

	if err := logger.Init(logger.Config{Level: CLI.LogLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err := ctx.Run(&Context{Out: os.Stdout, OpenRemote: openRemote})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
