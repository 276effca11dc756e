package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scaffold/internal/repositories"
	"github.com/desertthunder/scaffold/internal/shared"
	"github.com/desertthunder/scaffold/internal/ui"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette

	db      *sql.DB
	ownsDB  bool
	gdb     *gorm.DB
	users   *repositories.UserRepository
	entries *repositories.EntryRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	// DB is used instead of opening Config.Database.Path. The caller keeps ownership.
	DB *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    ui.Styles,
		db:         opts.DB,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, migrateCommand, userCommand, entryCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before loads the config file named by --config, if present, and applies logging flags.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, err
			}
			r.config = config
			r.logger.Debug("loaded config", "path", r.configPath)
		}
	}

	shared.SetLogLevel(r.logger, shared.ParseLogLevel(r.config.Log.Level))
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	return ctx, nil
}

// openRepositories opens the database on first use, applies pending migrations and builds the repositories.
func (r *Runner) openRepositories(ctx context.Context) (*repositories.UserRepository, *repositories.EntryRepository, error) {
	if r.gdb != nil {
		return r.users, r.entries, nil
	}

	db, err := r.database()
	if err != nil {
		return nil, nil, err
	}

	if err := shared.RunMigrations(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	gdb, err := repositories.Open(db, r.logger)
	if err != nil {
		return nil, nil, err
	}

	r.gdb = gdb
	r.users = repositories.NewUserRepository(gdb)
	r.entries = repositories.NewEntryRepository(gdb)
	return r.users, r.entries, nil
}

// database opens the configured SQLite file once and reuses the connection afterwards.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.db, r.ownsDB = db, true
	return db, nil
}

// Close releases the database if the runner opened it.
func (r *Runner) Close() error {
	if r.ownsDB && r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeOK(format string, args ...any) error {
	return r.writePlain("%s\n", r.palette.OK(fmt.Sprintf(format, args...)))
}

// writeEntities prints one debug rendering per line, or JSON when --json is set.
func writeEntities[T fmt.Stringer](r *Runner, cmd *cli.Command, title string, items []T) error {
	if cmd.Bool("json") {
		if items == nil {
			items = []T{}
		}
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if err := r.writePlain("%s\n", r.palette.Title(fmt.Sprintf("%s (%d)", title, len(items)))); err != nil {
		return err
	}
	for _, item := range items {
		if err := r.writePlain("%s\n", item.String()); err != nil {
			return err
		}
	}
	return nil
}
