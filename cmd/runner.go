package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/presets"
	"github.com/desertthunder/lacery/internal/shared"
	"github.com/desertthunder/lacery/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	db     *sql.DB
	ownsDB bool
	store  *presets.Store
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	// DB is used for the preset store instead of opening config.Database.Path.
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
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		db:     opts.DB,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, presetCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the runner's config when the command sets --config explicitly.
func (r *Runner) loadConfig(cmd *cli.Command) error {
	if !cmd.IsSet("config") {
		return nil
	}

	config, err := shared.ResolveConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	r.config = config
	return nil
}

// openStore returns the preset store, opening the database and running migrations on first use.
func (r *Runner) openStore() (*presets.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database)
		if err != nil {
			return nil, err
		}
		r.db, r.ownsDB = db, true
	}

	if _, err := r.migrate(); err != nil {
		return nil, err
	}

	r.store = presets.NewStore(r.db, shared.WithLogger(r.logger, "component", "presets"))
	return r.store, nil
}

// migrator wraps the open database with a migrations logger.
func (r *Runner) migrator() (*shared.Migrator, error) {
	return shared.NewMigrator(r.db, shared.WithLogger(r.logger, "component", "migrations"))
}

// migrate brings the open database up to the latest schema and returns the applied versions.
func (r *Runner) migrate() ([]int, error) {
	m, err := r.migrator()
	if err != nil {
		return nil, err
	}
	applied, err := m.Up()
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return applied, nil
}

// close releases the database if openStore opened it. An injected database stays open.
func (r *Runner) close() error {
	if r.db == nil || !r.ownsDB {
		return nil
	}
	err := r.db.Close()
	r.db, r.ownsDB, r.store = nil, false, nil
	return err
}

// scene builds a fresh demo panel over a default [Scene].
func (r *Runner) scene() (*lace.Lace, *Scene, error) {
	s := NewScene()
	l, err := buildScene(r.config, r.logger, s)
	if err != nil {
		return nil, nil, err
	}
	return l, s, nil
}

// engine creates a task engine that loads presets into fresh demo panels.
func (r *Runner) engine(store *presets.Store) (*tasks.Engine, error) {
	if _, err := lace.ParseSize(r.config.UI.Size); err != nil {
		return nil, err
	}

	scene := func() (*lace.Lace, any) {
		s := NewScene()
		l, _ := buildScene(r.config, r.logger, s) // size validated above
		return l, s
	}
	return tasks.NewEngine(store, scene, shared.WithLogger(r.logger, "component", "tasks")), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
