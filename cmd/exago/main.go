package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/hotolab/exago-app/internal/client"
	"github.com/hotolab/exago-app/internal/config"
	"github.com/hotolab/exago-app/internal/project"
	"github.com/hotolab/exago-app/internal/report"
	"github.com/hotolab/exago-app/internal/results"
	"github.com/hotolab/exago-app/internal/sections"
	"github.com/hotolab/exago-app/internal/store"
	"github.com/spf13/cobra"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

// globalFlags are shared by every command that talks to a loader.
type globalFlags struct {
	configPath string
	apiURL     string
	file       string
	verbose    bool
}

func main() {
	var g globalFlags

	root := &cobra.Command{
		Use:   "exago",
		Short: "Exago: code quality reports for Go repositories",
		Long: `Exago fetches the analysis results of a Go repository (tests,
coverage, third parties, checklist and score) and renders them
as a report, interactively or as text and JSON.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "",
		"path to config file (default: ./"+config.FileName+")")
	root.PersistentFlags().StringVar(&g.apiURL, "api", "",
		"exago API root URL (overrides api_url)")
	root.PersistentFlags().StringVar(&g.file, "file", "",
		"read results from a file or directory instead of the API")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(newViewCmd(&g))
	root.AddCommand(newReportCmd(&g))
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newInitCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides. Empty
// overrides leave the file values in place.
func loadConfig(path, apiURL, file string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if file != "" {
		cfg.ResultsDir = file
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// newStore builds the results store for cfg: a file loader when a
// results path is configured, the HTTP API otherwise.
func newStore(cfg *config.Config) (*store.Store, error) {
	var (
		loader store.Loader
		err    error
	)
	if cfg.ResultsDir != "" {
		logger.Debug("reading results from disk", "path", cfg.ResultsDir)
		loader, err = client.NewFileLoader(cfg.ResultsDir)
	} else {
		logger.Debug("reading results from api", "url", cfg.APIURL)
		loader, err = client.NewHTTPLoader(cfg.APIURL, cfg.Timeout, logger)
	}
	if err != nil {
		return nil, err
	}
	return store.New(loader,
		store.WithCache(cfg.CacheSize, cfg.CacheTTL),
		store.WithLogger(logger),
	), nil
}

func (g *globalFlags) setup() (*config.Config, *store.Store, error) {
	cfg, err := loadConfig(g.configPath, g.apiURL, g.file)
	if err != nil {
		return nil, nil, err
	}
	st, err := newStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

// reportParams holds the parsed flags for the report command.
type reportParams struct {
	repository string
	format     string
	charts     bool
	cachedOnly bool
	badgeURL   string
	store      *store.Store
	stdout     io.Writer
	stderr     io.Writer
}

// runReport is the extracted, testable body of the report command.
func runReport(ctx context.Context, p reportParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}

	loaded, err := p.store.Preload(ctx, p.repository)
	if err != nil {
		return err
	}
	if !loaded {
		if p.cachedOnly {
			return fmt.Errorf("no cached results for %s", p.repository)
		}
		logger.Info("running analysis", "repository", p.repository)
		if _, err := p.store.Load(ctx, p.repository); err != nil {
			return err
		}
	}

	view := project.NewViewState()
	view.Apply(p.store.Snapshot(p.repository))
	if view.State() == project.StateError {
		return view.Err()
	}

	page, err := sections.Build(view.Document())
	if err != nil {
		return fmt.Errorf("building report for %s: %w", p.repository, err)
	}
	if page.Name == "" {
		page.Name = p.repository
	}
	for _, serr := range page.SectionErrors {
		logger.Warn("section left empty", "repository", p.repository, "err", serr)
	}
	logger.Info("report ready", "repository", p.repository, "score", page.Score != nil)

	opts := report.Options{
		Charts:   p.charts,
		BadgeURL: p.badgeURL,
		Version:  version,
	}
	switch p.format {
	case "json":
		return report.WriteJSON(p.stdout, page, opts)
	default:
		return report.WriteText(p.stdout, page, opts)
	}
}

func newReportCmd(g *globalFlags) *cobra.Command {
	var (
		format     string
		charts     bool
		cachedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "report [repository]",
		Short: "Print the code quality report of a repository",
		Long: `Fetch the analysis results of a repository and print every
report section. Results already cached by the API are served
without running a new analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := g.setup()
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), reportParams{
				repository: args[0],
				format:     format,
				charts:     charts,
				cachedOnly: cachedOnly,
				badgeURL:   cfg.BadgeURL(args[0]),
				store:      st,
				stdout:     os.Stdout,
				stderr:     os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")
	cmd.Flags().BoolVar(&charts, "charts", false,
		"include the test duration and coverage charts")
	cmd.Flags().BoolVar(&cachedOnly, "cached-only", false,
		"fail instead of running an analysis when no results are cached")

	return cmd
}

func newViewCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view [repository]",
		Short: "Browse the code quality report of a repository",
		Long: `Open an interactive report. Press e to explore the charts,
r to run the analysis again and ? for every key binding.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := g.setup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err := st.Preload(ctx, args[0]); err != nil {
				logger.Warn("preloading results failed", "repository", args[0], "err", err)
			}
			return runInteractiveView(ctx, args[0], st, report.Options{
				BadgeURL: cfg.BadgeURL(args[0]),
			})
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for results documents",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of the results served by the exago API. Useful for
validating producer output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), results.Schema)
			return err
		},
	}
}

// runValidate checks the results document at path against the schema.
func runValidate(path string, stdout io.Writer) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path
	if err != nil {
		return fmt.Errorf("reading results document: %w", err)
	}
	if _, err := results.Parse(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = fmt.Fprintf(stdout, "%s: valid\n", path)
	return err
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a results document against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], cmd.OutOrStdout())
		},
	}
}

// runInit writes a default config file into dir.
func runInit(dir string, force bool, stdout io.Writer) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // user-provided dir
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	if err := config.Write(f, config.Default()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "wrote %s\n", path)
	return err
}

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName + " in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			return runInit(dir, force, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
