// Package cli implements the tilestack command-line interface.
//
// # Commands
//
//   - serve: run the HTTP API
//   - generate: print or save a new board
//   - themes: list, show and import themes
//   - preview: browse a board in the terminal
//   - cache: inspect and clear the theme cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// installs logging observability hooks. The [logging] config section can add
// a rotating log file and JSON output.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilestack/pkg/buildinfo"
	"github.com/matzehuels/tilestack/pkg/cache"
	"github.com/matzehuels/tilestack/pkg/config"
	"github.com/matzehuels/tilestack/pkg/observability"
	"github.com/matzehuels/tilestack/pkg/pipeline"
	"github.com/matzehuels/tilestack/pkg/theme"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tilestack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
	verbose    bool
	logOut     io.Writer
	closers    []io.Closer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tilestack generates boards for tile-matching puzzles",
		Long:         `Tilestack builds tile-matching boards from layered themes. Every tile gets one layer from each group of the theme, and every layer variant is placed in pairs so the board can be cleared.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.Close()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config and applies its logging settings.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	closer, err := configureLogger(c.Logger, c.logOut, cfg.Logging, c.verbose)
	if err != nil {
		return err
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}

	if c.verbose {
		observability.NewLogHooks(c.Logger).Install()
	}
	return nil
}

// Close releases resources opened by commands (log files, connections).
func (c *CLI) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// =============================================================================
// Factories
// =============================================================================

// newCache opens the configured theme cache.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		c.Logger.Debug("connecting to redis", "addr", cfg.RedisAddr)
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	default:
		return cache.NewFileCache(cfg.Dir)
	}
}

// newStore opens the configured theme backend without caching.
func (c *CLI) newStore(ctx context.Context) (theme.Catalog, error) {
	if c.Config.Themes.Backend != config.BackendMongo {
		return theme.NewDirCatalog(c.Config.Themes.Dir), nil
	}

	m := c.Config.Mongo
	c.Logger.Debug("connecting to mongo", "database", m.Database, "collection", m.Collection)
	store, err := theme.NewMongoCatalog(ctx, theme.MongoOptions{
		URI:        m.URI,
		Database:   m.Database,
		Collection: m.Collection,
		Timeout:    m.Timeout,
	})
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closerFunc(func() error {
		return store.Close(context.Background())
	}))
	return store, nil
}

// newRegistry builds the public theme registry over the cached store.
func (c *CLI) newRegistry(ctx context.Context) (*theme.Registry, error) {
	store, err := c.newStore(ctx)
	if err != nil {
		return nil, err
	}
	tc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, tc)

	t := c.Config.Themes
	return theme.NewRegistry(theme.NewCachedCatalog(store, tc, c.Config.Cache.TTL), theme.RegistryOptions{
		IDs:      t.IDs,
		Aliases:  t.Aliases,
		Fixtures: t.Fixtures,
	}), nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	reg, err := c.newRegistry(ctx)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(reg, c.Logger)
	r.DefaultRowSize = c.Config.Generator.DefaultRowSize
	r.DefaultColumnSize = c.Config.Generator.DefaultColumnSize
	r.MaxTiles = c.Config.Generator.MaxTiles
	r.Strict = c.Config.Generator.Strict
	return r, nil
}
