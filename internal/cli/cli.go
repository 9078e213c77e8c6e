package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paragon/pkg/buildinfo"
	"github.com/matzehuels/paragon/pkg/cache"
	"github.com/matzehuels/paragon/pkg/config"
	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/pipeline"
	"github.com/matzehuels/paragon/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "paragon"
)

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

	// configPath is the --config flag value.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Paragon enumerates board layouts for a character class",
		Long: `Paragon places every board of a character class around its base board, in
every rotation, and writes each completed layout as stitched text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvConfig+")")

	// Register all subcommands
	root.AddCommand(c.enumerateCommand())
	root.AddCommand(c.boardsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config or $PARAGON_CONFIG.
// Without either, the defaults are used.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.LoadOrDefault(c.configPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner with the cache and store selected by cfg.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	backend := cfg.Cache.Backend
	if noCache {
		backend = config.BackendNone
	}
	cc, err := newCache(ctx, backend, cfg.Cache.RedisAddr)
	if err != nil {
		return nil, err
	}

	r := pipeline.NewRunner(cc, nil, c.Logger)
	r.Store, err = newStore(ctx, cfg)
	if err != nil {
		cc.Close()
		return nil, err
	}
	r.StoreName = cfg.Store.Backend
	return r, nil
}

func newCache(ctx context.Context, backend, redisAddr string) (cache.Cache, error) {
	switch backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, redisAddr)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newStore returns nil for the "none" backend so the runner skips persistence.
func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendNone:
		return nil, nil
	case config.BackendFile:
		return store.NewFileStore(cfg.OutputDir), nil
	case config.BackendMongo:
		ms, err := store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database, cfg.Store.Collection)
		if err != nil {
			return nil, err
		}
		return ms, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Store.Backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/paragon/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
