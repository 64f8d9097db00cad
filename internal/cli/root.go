// Package cli implements the papercode command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/paper-code/go-papercode/internal/config"
	"github.com/paper-code/go-papercode/internal/prompt"
	"github.com/paper-code/go-papercode/pkg/logger"
	"github.com/paper-code/go-papercode/pkg/tracer"
)

// app carries state shared by every subcommand for one invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg      *config.Config
	logger   *slog.Logger
	driver   prompt.Driver
	shutdown func(context.Context) error
}

// Option customises the command tree. Tests use it to inject a prompt driver.
type Option func(*app)

// WithPromptDriver replaces the survey-backed driver used by init.
func WithPromptDriver(d prompt.Driver) Option {
	return func(a *app) {
		a.driver = d
	}
}

// NewRootCmd builds the papercode command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "papercode",
		Short: "Generate project documentation from templates",
		Long: "papercode validates a project description against its catalog of project types,\n" +
			"tech stacks and libraries, optionally asks an AI model for a description, and\n" +
			"renders a documentation tree from Jinja-style templates.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default papercode.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newGenerateCmd(a),
		newInitCmd(a),
		newCatalogCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the command tree and exits 1 on error.
func Execute() {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	a.cfg = cfg
	a.logger = logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	shutdown, err := tracer.Init(cmd.Context(), tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRate:  cfg.Tracing.SampleRate,
		Enabled:     cfg.Tracing.Enabled,
	})
	if err != nil {
		return err
	}
	a.shutdown = shutdown
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return a.shutdown(ctx)
}

func printFiles(w io.Writer, root string, files []string) {
	fmt.Fprintf(w, "Generated %d files in %s\n", len(files), root)
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
