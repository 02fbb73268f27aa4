package main

import (
	"context"
	"fmt"

	"github.com/quireapp/quire/internal/formatter"
	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/shared"
	"github.com/quireapp/quire/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SheetAdd imports files as sheets. Rejected files are reported individually
// and never abort the rest of the batch.
func (r *Runner) SheetAdd(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one file path", shared.ErrMissingArgument)
	}

	if _, err := r.ensureStore(); err != nil {
		return err
	}

	prog := make(chan tasks.ProgressUpdate, len(paths)*2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.Import(ctx, prog, paths)
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("Imported %d of %d files\n", result.Imported, result.Total)
	return nil
}

// SheetList prints the sheet collection, newest first.
func (r *Runner) SheetList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	sheets := store.Sheets()

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(withoutPayloads(sheets), true)
	case cmd.Bool("csv"):
		data, err := formatter.SheetsToCSV(sheets)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	default:
		return r.writePlain("%s", formatter.SheetsToText(sheets))
	}
}

// SheetShow prints one sheet's metadata.
func (r *Runner) SheetShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: sheet id", shared.ErrMissingArgument)
	}

	if _, err := r.ensureStore(); err != nil {
		return err
	}

	sheet, err := r.service.Sheet(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(withoutPayload(sheet), true)
	}
	return r.writePlain("%s", formatter.SheetToText(sheet))
}

// SheetRename updates a sheet's display name.
func (r *Runner) SheetRename(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	name := cmd.StringArg("name")
	if id == "" || name == "" {
		return fmt.Errorf("%w: sheet id and new name", shared.ErrMissingArgument)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	sheet, err := store.UpdateSheet(id, models.SheetPatch{Name: &name})
	if err != nil {
		return err
	}

	r.writePlain("Renamed to %s\n", sheet.Name)
	return nil
}

// SheetDelete removes a sheet. Deleting an unknown id succeeds.
func (r *Runner) SheetDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: sheet id", shared.ErrMissingArgument)
	}

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	if err := store.DeleteSheet(id); err != nil {
		return err
	}

	r.writePlain("Deleted %s\n", id)
	return nil
}

// SheetSearch filters sheets by name substring.
func (r *Runner) SheetSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")

	store, err := r.ensureStore()
	if err != nil {
		return err
	}

	matched := store.SearchSheets(query)
	if len(matched) == 0 {
		return r.writePlain("No sheets found matching %q\n", query)
	}
	return r.writePlain("%s", formatter.SheetsToText(matched))
}

// SheetExport decodes stored payloads back to files on disk.
func (r *Runner) SheetExport(ctx context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output")

	if _, err := r.ensureStore(); err != nil {
		return err
	}

	if cmd.Bool("all") {
		prog := make(chan tasks.ProgressUpdate, 64)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for update := range prog {
				r.writePlain("%s\n", update.Message)
			}
		}()

		result, err := r.engine.ExportAll(ctx, prog, outputDir)
		close(prog)
		<-done
		if err != nil {
			return err
		}

		r.writePlain("Exported %d of %d sheets to %s\n", result.Exported, result.Total, result.OutputDirectory)
		return nil
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: sheet id (or --all)", shared.ErrMissingArgument)
	}

	sheet, err := r.service.Sheet(id)
	if err != nil {
		return err
	}

	path, err := tasks.ExportSheet(sheet, outputDir)
	if err != nil {
		return err
	}

	r.writePlain("Exported to %s\n", path)
	return nil
}

// withoutPayloads strips the encoded file data from sheets for metadata
// output, where the payload would drown everything else.
func withoutPayloads(sheets []models.Sheet) []models.Sheet {
	out := make([]models.Sheet, len(sheets))
	for i, sheet := range sheets {
		out[i] = withoutPayload(sheet)
	}
	return out
}

func withoutPayload(sheet models.Sheet) models.Sheet {
	sheet.FileData = fmt.Sprintf("<%d bytes>", formatter.PayloadSize(sheet))
	return sheet
}
