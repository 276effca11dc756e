package main

import (
	"context"

	"github.com/desertthunder/scaffold/internal/models"
	"github.com/urfave/cli/v3"
)

// EntryCreate stores a new entry for an existing user.
func (r *Runner) EntryCreate(ctx context.Context, cmd *cli.Command) error {
	_, entries, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	entry := models.NewEntry(cmd.Int64("user-id"), cmd.String("title"), cmd.String("content"))
	if err := entries.Create(ctx, entry); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entry, cmd.Bool("pretty"))
	}
	return r.writeOK("created entry %d", *entry.GetID())
}

// EntryList prints entries, optionally restricted to one owner.
func (r *Runner) EntryList(ctx context.Context, cmd *cli.Command) error {
	_, entries, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	list, err := entries.List(ctx, map[string]any{"user_id": cmd.Int64("user-id")})
	if err != nil {
		return err
	}
	return writeEntities(r, cmd, "Entries", list)
}

// EntryDelete removes an entry by id.
func (r *Runner) EntryDelete(ctx context.Context, cmd *cli.Command) error {
	_, entries, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	if err := entries.Delete(ctx, id); err != nil {
		return err
	}
	return r.writeOK("deleted entry %d", id)
}
