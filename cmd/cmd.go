// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func idFlag(usage string) cli.Flag {
	return &cli.Int64Flag{
		Name:     "id",
		Usage:    usage,
		Required: true,
	}
}

// setupCommand initializes config and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml if missing, initialize database and run migrations",
		Action: r.Setup,
	}
}

// migrateCommand inspects and rolls back schema migrations.
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Schema migration commands",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "List migrations and when they were applied",
				Action: r.MigrateStatus,
			},
			{
				Name:   "down",
				Usage:  "Roll back the most recent migration",
				Action: r.MigrateDown,
			},
		},
	}
}

// userCommand handles user accounts
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "User account operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a user; the database assigns its id",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "login", Usage: "Unique login", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "first-name", Usage: "First name"},
					&cli.StringFlag{Name: "last-name", Usage: "Last name"},
					&cli.StringFlag{Name: "lang", Usage: "Language key"},
				}, outputFlags()...),
				Action: r.UserCreate,
			},
			{
				Name:  "get",
				Usage: "Show a user by id or login",
				Flags: append([]cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "User id"},
					&cli.StringFlag{Name: "login", Usage: "User login"},
				}, outputFlags()...),
				Action: r.UserGet,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List users",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Filter by email"},
					&cli.BoolFlag{Name: "activated", Usage: "Filter by activation state"},
				}, outputFlags()...),
				Action: r.UserList,
			},
			{
				Name:  "activate",
				Usage: "Activate a user with its activation key",
				Flags: []cli.Flag{
					idFlag("User id"),
					&cli.StringFlag{Name: "key", Usage: "Activation key", Required: true},
				},
				Action: r.UserActivate,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a user and their entries",
				Flags:   []cli.Flag{idFlag("User id")},
				Action:  r.UserDelete,
			},
		},
	}
}

// entryCommand handles entries
func entryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "entry",
		Usage: "Entry operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create an entry owned by a user",
				Flags: append([]cli.Flag{
					&cli.Int64Flag{Name: "user-id", Usage: "Owner id", Required: true},
					&cli.StringFlag{Name: "title", Usage: "Entry title", Required: true},
					&cli.StringFlag{Name: "content", Usage: "Entry body"},
				}, outputFlags()...),
				Action: r.EntryCreate,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List entries",
				Flags: append([]cli.Flag{
					&cli.Int64Flag{Name: "user-id", Usage: "Filter by owner id"},
				}, outputFlags()...),
				Action: r.EntryList,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete an entry",
				Flags:   []cli.Flag{idFlag("Entry id")},
				Action:  r.EntryDelete,
			},
		},
	}
}

// serveCommand runs the JSON API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve users and entries over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Listen host (overrides config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (overrides config)"},
		},
		Action: r.Serve,
	}
}
