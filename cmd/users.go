package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/scaffold/internal/models"
	"github.com/desertthunder/scaffold/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserCreate stores a new user and prints the id assigned by the database.
func (r *Runner) UserCreate(ctx context.Context, cmd *cli.Command) error {
	users, _, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	user := models.NewUser(cmd.String("login"), cmd.String("email"))
	user.FirstName = cmd.String("first-name")
	user.LastName = cmd.String("last-name")
	if lang := cmd.String("lang"); lang != "" {
		user.LangKey = lang
	}

	if err := users.Create(ctx, user); err != nil {
		return err
	}

	r.logger.Debug("created user", "user", user)
	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}
	if err := r.writeOK("created user %d", *user.GetID()); err != nil {
		return err
	}
	return r.writePlain("activation key: %s\n", user.ActivationKey)
}

// UserGet prints a single user by id or login.
func (r *Runner) UserGet(ctx context.Context, cmd *cli.Command) error {
	users, _, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	var user *models.User
	switch id, login := cmd.Int64("id"), cmd.String("login"); {
	case id != 0:
		user, err = users.Get(ctx, id)
	case login != "":
		user, err = users.GetByLogin(ctx, login)
	default:
		return fmt.Errorf("%w: either --id or --login must be provided", shared.ErrMissingArgument)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", user)
}

// UserList prints every user matching the filter flags.
func (r *Runner) UserList(ctx context.Context, cmd *cli.Command) error {
	users, _, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	criteria := map[string]any{"email": cmd.String("email")}
	if cmd.IsSet("activated") {
		criteria["activated"] = cmd.Bool("activated")
	}

	list, err := users.List(ctx, criteria)
	if err != nil {
		return err
	}
	return writeEntities(r, cmd, "Users", list)
}

// UserActivate activates a user with the key issued at creation.
func (r *Runner) UserActivate(ctx context.Context, cmd *cli.Command) error {
	users, _, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	user, err := users.Get(ctx, cmd.Int64("id"))
	if err != nil {
		return err
	}

	if err := user.Activate(cmd.String("key")); err != nil {
		return err
	}

	if err := users.Update(ctx, user); err != nil {
		return err
	}
	return r.writeOK("activated %s", user.Login)
}

// UserDelete removes a user and, through the foreign key cascade, their entries.
func (r *Runner) UserDelete(ctx context.Context, cmd *cli.Command) error {
	users, _, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	if err := users.Delete(ctx, id); err != nil {
		return err
	}
	return r.writeOK("deleted user %d", id)
}
