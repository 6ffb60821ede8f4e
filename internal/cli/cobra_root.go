package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"todo-store/internal/config"
	"todo-store/internal/logging"
	"todo-store/internal/services"
)

// ServiceFactory opens the store described by cfg and returns a service on
// top of it. The closer releases the store.
type ServiceFactory func(cfg *config.Config) (*services.TaskService, io.Closer, error)

// DefaultServiceFactory builds the logger, repository and service from cfg
func DefaultServiceFactory(cfg *config.Config) (*services.TaskService, io.Closer, error) {
	logger, err := logging.New(cfg.LoggerConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	repo, err := config.CreateRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	service := services.NewTaskService(repo,
		services.WithLogger(logger),
		services.WithWindowSource(config.WindowSource(cfg)),
	)
	logger.Debug("task service ready",
		zap.String("backend", cfg.Database.Backend),
		zap.String("path", cfg.GetDatabasePath()),
		zap.String("window", cfg.Query.Window),
	)
	return service, repo, nil
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory ServiceFactory
	config  *config.Config
	app     *App
	closer  io.Closer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory ServiceFactory) *RootCommand {
	if factory == nil {
		factory = DefaultServiceFactory
	}
	root := &RootCommand{
		loader:  loader,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A small persistent task list",
		Long: `todo stores named tasks in a local embedded database.

EXAMPLES:
  todo add "Buy milk"                      # Save a new task
  todo all                                 # Show every stored task
  todo list                                # Show active tasks overlapping the query window
  todo rename <id> "Buy oat milk"          # Rename a task
  todo delete <id>                         # Delete a task
  todo count                               # Count stored tasks

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env file > defaults

    TODO_DB_BACKEND                        sqlite or bolt (default: sqlite)
    TODO_DB_DIR                            Database directory (default: ~/.todo)
    TODO_DB_FILENAME                       Database filename (default: todo.db)
    TODO_DB_BUCKET                         Bolt bucket name (default: tasks)
    TODO_DB_QUERY_TIMEOUT                  Query timeout (default: 10s)
    TODO_QUERY_WINDOW                      static or day (default: static)
    TODO_LOG_LEVEL                         Log level (default: warn)
    TODO_LOG_ENCODING                      console or json (default: console)
    TODO_APP_TIMEOUT                       Application timeout (default: 60s)
    TODO_DEBUG                             Force debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the store afterwards
func (r *RootCommand) Execute() error {
	defer r.close()
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("env-file", config.DefaultEnvFile, "Dotenv file read before the environment")
	flags.String("backend", "", "Storage backend, sqlite or bolt (overrides TODO_DB_BACKEND)")
	flags.String("db-dir", "", "Database directory (overrides TODO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TODO_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TODO_DB_QUERY_TIMEOUT)")
	flags.String("window", "", "Fetch window, static or day (overrides TODO_QUERY_WINDOW)")
	flags.String("log-level", "", "Log level (overrides TODO_LOG_LEVEL)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides TODO_APP_TIMEOUT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add [task name]",
		Short: "Save a new task",
		Long:  "Save a new task stamped with the current time. An empty name saves nothing.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.runE("add"),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active tasks in the query window",
		Long: `List tasks that are active, have both a start and an end date, and
overlap the query window. The window is fixed at startup unless
TODO_QUERY_WINDOW=day is set.`,
		Args: cobra.NoArgs,
		RunE: r.runE("list"),
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "List every stored task",
		Args:  cobra.NoArgs,
		RunE:  r.runE("all"),
	}

	renameCmd := &cobra.Command{
		Use:   "rename [id] [new name]",
		Short: "Rename a task",
		Args:  cobra.MinimumNArgs(2),
		RunE:  r.runE("rename"),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long:  "Delete a task by id. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runE("delete"),
	}

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Count stored tasks",
		Args:  cobra.NoArgs,
		RunE:  r.runE("count"),
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		allCmd,
		renameCmd,
		deleteCmd,
		countCmd,
	)
}

// runE returns a RunE that dispatches to the named handler under the app timeout
func (r *RootCommand) runE(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.ensureApp(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return app.Run(ctx, append([]string{name}, args...))
	}
}

// ensureApp opens the store on first use
func (r *RootCommand) ensureApp(out io.Writer) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	service, closer, err := r.factory(r.config)
	if err != nil {
		return nil, err
	}
	r.app = NewApp(service, out)
	r.closer = closer
	return r.app, nil
}

func (r *RootCommand) close() {
	if r.closer != nil {
		r.closer.Close()
		r.closer = nil
	}
	r.app = nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// loadConfig loads configuration and applies the flags that were set
func (r *RootCommand) loadConfig() error {
	if r.loader == nil {
		return fmt.Errorf("configuration loader not initialized")
	}

	if flags := r.cmd.PersistentFlags(); flags.Changed("env-file") {
		envFile, _ := flags.GetString("env-file")
		r.loader.WithEnvFile(envFile)
	}

	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	return nil
}

// overridesFromFlags collects the global flags that were set explicitly
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("backend") {
		v, _ := flags.GetString("backend")
		overrides.DBBackend = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("window") {
		v, _ := flags.GetString("window")
		overrides.Window = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}

	return overrides
}
