package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/quireapp/quire/internal/formatter"
	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate creates a playlist. Seed sheet ids are not checked for
// existence; dangling references resolve to nothing at read time.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	playlist, err := store.AddPlaylist(name, cmd.StringSlice("sheets"))
	if err != nil {
		return err
	}

	r.writePlain("Created playlist %s (ID: %s)\n", playlist.Name, playlist.ID)
	return nil
}

// PlaylistList prints the playlist collection, newest first.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.PlaylistsToText(store.Playlists()))
}

// PlaylistShow prints a playlist with its resolved sheets.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	playlist, err := r.service.Playlist(id)
	if err != nil {
		return err
	}
	sheets := store.PlaylistSheets(id)

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(playlist, true)
	case cmd.Bool("markdown"):
		return r.writePlain("%s", formatter.PlaylistToMarkdown(playlist, sheets))
	default:
		return r.writePlain("%s", formatter.PlaylistToText(playlist, sheets))
	}
}

// PlaylistAddSheets appends sheet ids to a playlist.
func (r *Runner) PlaylistAddSheets(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("%w: playlist id and at least one sheet id", shared.ErrMissingArgument)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	playlist, err := r.service.Playlist(args[0])
	if err != nil {
		return err
	}

	sheetIDs := append(slices.Clone(playlist.SheetIDs), args[1:]...)
	updated, err := store.UpdatePlaylist(playlist.ID, models.PlaylistPatch{SheetIDs: sheetIDs})
	if err != nil {
		return err
	}

	r.writePlain("Playlist %s now references %d sheets\n", updated.Name, len(updated.SheetIDs))
	return nil
}

// PlaylistRemoveSheets removes sheet ids from a playlist.
func (r *Runner) PlaylistRemoveSheets(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("%w: playlist id and at least one sheet id", shared.ErrMissingArgument)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	playlist, err := r.service.Playlist(args[0])
	if err != nil {
		return err
	}

	remove := args[1:]
	sheetIDs := slices.DeleteFunc(slices.Clone(playlist.SheetIDs), func(id string) bool {
		return slices.Contains(remove, id)
	})

	updated, err := store.UpdatePlaylist(playlist.ID, models.PlaylistPatch{SheetIDs: sheetIDs})
	if err != nil {
		return err
	}

	r.writePlain("Playlist %s now references %d sheets\n", updated.Name, len(updated.SheetIDs))
	return nil
}

// PlaylistRename updates a playlist's name.
func (r *Runner) PlaylistRename(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	name := cmd.StringArg("name")
	if id == "" || name == "" {
		return fmt.Errorf("%w: playlist id and new name", shared.ErrMissingArgument)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	playlist, err := store.UpdatePlaylist(id, models.PlaylistPatch{Name: &name})
	if err != nil {
		return err
	}

	r.writePlain("Renamed to %s\n", playlist.Name)
	return nil
}

// PlaylistDelete removes a playlist. Deleting an unknown id succeeds.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	if err := store.DeletePlaylist(id); err != nil {
		return err
	}

	r.writePlain("Deleted %s\n", id)
	return nil
}
