// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// sheetCommand groups sheet operations
func sheetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "sheet",
		Aliases: []string{"s"},
		Usage:   "Sheet operations",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Import one or more files (PDF, PNG, JPG) as sheets",
				ArgsUsage: "<file>...",
				Action:    r.SheetAdd,
			},
			{
				Name:  "list",
				Usage: "List all sheets, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output CSV",
					},
				},
				Action: r.SheetList,
			},
			{
				Name:  "show",
				Usage: "Show a sheet's metadata",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
				},
				Action: r.SheetShow,
			},
			{
				Name:  "rename",
				Usage: "Rename a sheet",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.SheetRename,
			},
			{
				Name:  "delete",
				Usage: "Delete a sheet (no error if it does not exist)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SheetDelete,
			},
			{
				Name:  "search",
				Usage: "Find sheets by name substring (case-insensitive)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Action: r.SheetSearch,
			},
			{
				Name:  "export",
				Usage: "Decode stored sheets back to their original files",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every sheet in the library",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
				},
				Action: r.SheetExport,
			},
		},
	}
}

// playlistCommand groups playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a playlist, optionally seeding sheet ids",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "sheets",
						Usage: "Sheet ids to include",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:   "list",
				Usage:  "List all playlists, newest first",
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist and its resolved sheets",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
					&cli.BoolFlag{
						Name:  "markdown",
						Usage: "Output Markdown",
					},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:      "add",
				Usage:     "Append sheet ids to a playlist",
				ArgsUsage: "<playlist-id> <sheet-id>...",
				Action:    r.PlaylistAddSheets,
			},
			{
				Name:      "remove",
				Usage:     "Remove sheet ids from a playlist",
				ArgsUsage: "<playlist-id> <sheet-id>...",
				Action:    r.PlaylistRemoveSheets,
			},
			{
				Name:  "rename",
				Usage: "Rename a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.PlaylistRename,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist (no error if it does not exist)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaylistDelete,
			},
		},
	}
}

// tuiCommand launches the interactive terminal interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse the library interactively",
		Action: r.TUI,
	}
}
