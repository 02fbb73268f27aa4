package main

import (
	"context"
	"fmt"

	"github.com/quireapp/quire/internal/shared"
	"github.com/urfave/cli/v3"
)

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize storage and optionally write a starter config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path for the starter configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "write-config",
				Usage: "Write the example configuration to the --config path",
			},
		},
		Action: r.Setup,
	}
}

func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete every sheet and playlist from the library",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Skip the confirmation check",
			},
		},
		Action: r.Reset,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, sheetCommand, playlistCommand, resetCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Setup initializes the sqlite database, runs migrations via the backend
// open path, and reports the library contents.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("write-config") {
		path := cmd.String("config")
		if err := shared.CreateConfigFile(path); err != nil {
			return err
		}
		r.writePlain("Wrote starter config to %s\n", path)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	r.writePlain("Storage ready at %s\n", r.config.Storage.Path)
	r.writePlain("Library: %d sheets, %d playlists\n", len(store.Sheets()), len(store.Playlists()))
	return nil
}

// Reset empties both collections and removes their durable keys.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("force") {
		return fmt.Errorf("%w: pass --force to delete the whole library", shared.ErrInvalidInput)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	if err := store.ClearAll(); err != nil {
		return err
	}

	r.writePlain("Library cleared\n")
	return nil
}
