package main

import (
	"context"

	"github.com/desertthunder/scaffold/internal/server"
	"github.com/desertthunder/scaffold/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the entity JSON API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	users, entries, err := r.openRepositories(ctx)
	if err != nil {
		return err
	}

	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}

	logger := shared.WithLogger(r.logger, "component", "server")
	api := server.NewAPI(server.APIOpts{
		Users:     users,
		Entries:   entries,
		Logger:    logger,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
	})

	return server.NewServer(cfg.Addr(), api, logger).Run(ctx)
}
