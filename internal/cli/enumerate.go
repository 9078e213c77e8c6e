package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paragon/pkg/config"
	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/pipeline"
	"github.com/matzehuels/paragon/pkg/search"
)

// enumerateFlags holds the flag values of the enumerate command.
type enumerateFlags struct {
	classDir  string
	outputDir string
	edge      int
	limit     int
	workers   int
	timeout   int
	noCache   bool
	store     string
	print     bool
}

// apply overrides cfg with every flag the user set explicitly.
func (f *enumerateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("class-dir") {
		cfg.ClassDir = f.classDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if flags.Changed("edge") {
		cfg.Edge = f.edge
	}
	if flags.Changed("limit") {
		cfg.Search.Limit = f.limit
	}
	if flags.Changed("workers") {
		cfg.Search.Workers = f.workers
	}
	if flags.Changed("timeout") {
		cfg.Search.TimeoutSeconds = f.timeout
	}
	if flags.Changed("store") {
		cfg.Store.Backend = f.store
	}
}

// enumerateCommand creates the enumerate command.
func (c *CLI) enumerateCommand() *cobra.Command {
	var flags enumerateFlags

	cmd := &cobra.Command{
		Use:   "enumerate <class>",
		Short: "Enumerate every board layout of a character class",
		Long: `Enumerate places every board of the class around its base board, trying
each board in each of its four rotations, and writes every completed layout
as stitched text to <class>_stitched_boards_<timestamp>.txt.

The number of layouts grows combinatorially with the number of boards; use
--limit or --timeout to bound large classes.`,
		Example: `  paragon enumerate paragon
  paragon enumerate paragon --limit 1000 --workers 8
  paragon enumerate paragon --class-dir ./classes --edge 21 -o out/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEnumerate(cmd, args[0], &flags)
		},
	}

	cmd.Flags().StringVar(&flags.classDir, "class-dir", "", "directory containing one sub-directory per class")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "directory for stitched layout files")
	cmd.Flags().IntVar(&flags.edge, "edge", 0, "board edge length")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "stop after this many layouts (0 = no limit)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "goroutines for the first placement level")
	cmd.Flags().IntVar(&flags.timeout, "timeout", 0, "search deadline in seconds (0 = none)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().StringVar(&flags.store, "store", "", "where to save layouts: file, mongo or none")
	cmd.Flags().BoolVar(&flags.print, "print", false, "print stitched layouts to stdout")

	return cmd
}

func (c *CLI) runEnumerate(cmd *cobra.Command, class string, flags *enumerateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	flags.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Enumerating %s...", class))
	opts := pipeline.Options{
		ClassDir:   cfg.ClassDir,
		Class:      class,
		EdgeLength: cfg.Edge,
		Limit:      cfg.Search.Limit,
		Workers:    cfg.Search.Workers,
		Timeout:    cfg.Search.Timeout(),
		CacheTTL:   cfg.Cache.TTL(),
		Logger:     logger,
		Progress: func(s search.Stats) {
			spinner.SetMessage(fmt.Sprintf("Enumerating %s... %d layouts, %d placements", class, s.Recorded, s.Placements))
		},
	}

	prog := newProgress(logger)
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if result == nil {
		return err
	}

	prog.done("enumerated", "class", class, "layouts", len(result.Layouts), "cached", result.CacheHit)
	printSuccess("%s: %d layouts from %d boards", class, len(result.Layouts), len(result.BoardNames))
	printStats(len(result.Layouts), result.Stats.Placements, result.Stats.Pruned, result.CacheHit)

	switch {
	case result.TimedOut:
		printWarning("Search stopped after %s; layouts are incomplete", opts.Timeout.Round(time.Second))
	case result.Truncated:
		printWarning("Search stopped at the limit of %d layouts", opts.Limit)
	}

	if flags.print {
		printNewline()
		printLayouts(result.Layouts)
		printNewline()
	}

	if err != nil {
		if errors.Is(err, errors.ErrCodeStoreFailed) {
			printWarning("Layouts were not saved: %s", errors.UserMessage(err))
		}
		return err
	}

	if result.Location != "" {
		printFile(result.Location)
		if cfg.Store.Backend == config.BackendFile {
			printNextStep("Browse the layouts", fmt.Sprintf("paragon browse %s", result.Location))
		}
	}
	return nil
}
