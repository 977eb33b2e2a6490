// Package main is the entry point for the quotegen CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brewmecoffee/quote-generator/internal/adapters/quotes"
	"github.com/brewmecoffee/quote-generator/internal/adapters/render"
	"github.com/brewmecoffee/quote-generator/internal/app"
	"github.com/brewmecoffee/quote-generator/internal/platform/config"
	"github.com/brewmecoffee/quote-generator/internal/platform/logging"
	"github.com/brewmecoffee/quote-generator/internal/ports"
	"github.com/brewmecoffee/quote-generator/internal/ui"
)

// Build-time variables, injected via ldflags.
var (
	// Version is the semantic version of the tool.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "quotegen",
		Short: "Render a delimited quotes file into styled square images",
		Long: `quotegen reads a UTF-8 text file of quotes separated by "---" lines
and renders one PNG per quote: auto-fit left-aligned text on a styled
square canvas with an attribution caption, ready for posting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, profile)
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "config profile (configs/<profile>.yaml)")

	cmd.Flags().String("input", "", "quotes file path")
	cmd.Flags().String("delimiter", "", "quote delimiter line")
	cmd.Flags().String("out", "", "output directory")
	cmd.Flags().String("prefix", "", "output filename prefix")
	cmd.Flags().String("author", "", "attribution text (empty string disables)")
	cmd.Flags().Int("width", 0, "canvas width in pixels")
	cmd.Flags().Int("height", 0, "canvas height in pixels")
	cmd.Flags().String("font", "", "TTF/OTF font file path")
	cmd.Flags().Int("font-size", 0, "maximum font size")
	cmd.Flags().Int("author-size", 0, "attribution font size")
	cmd.Flags().String("background", "", "background color (name or #hex)")
	cmd.Flags().String("color", "", "text color (name or #hex)")
	cmd.Flags().Int("padding", -1, "canvas padding in pixels")
	cmd.Flags().Int("line-spacing", -1, "extra spacing between lines")
	cmd.Flags().Int("workers", 0, "parallel render workers")
	cmd.Flags().Bool("border", false, "draw the debug text-box border")
	cmd.Flags().Bool("quiet", false, "disable the progress bar")
	cmd.Flags().Bool("halt-on-error", false, "abort the batch on the first render failure")

	return cmd
}

func run(cmd *cobra.Command, profile string) error {
	// 1. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 2. Initialize logging
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting quotegen",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("input", cfg.Input.Path),
		slog.String("out_dir", cfg.Output.Dir),
	)

	// 3. Resolve render options
	opts, err := cfg.Render.ToRenderOptions()
	if err != nil {
		return fmt.Errorf("invalid render config: %w", err)
	}

	// 4. Wire adapters into the batch service
	var reporter ports.ProgressReporter = app.NopProgress{}
	if cfg.Batch.Progress {
		reporter = ui.NewProgressBar(os.Stdout)
	}

	batch := app.NewBatchService(app.BatchConfig{
		Source:          quotes.NewFileSource(cfg.Input.Path, cfg.Input.Delimiter),
		Renderer:        render.NewImageRenderer(render.NewFontLoader(logger), logger),
		Progress:        reporter,
		Options:         opts,
		OutDir:          cfg.Output.Dir,
		FilePrefix:      cfg.Output.FilePrefix,
		Workers:         cfg.Batch.Workers,
		ContinueOnError: cfg.Batch.ContinueOnError,
		Logger:          logger,
	})

	// 5. Run until done or interrupted
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := batch.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %d/%d quote images in %q\n",
		summary.Rendered, summary.Total, cfg.Output.Dir)

	if summary.Failed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d quote(s) failed, see log output\n", summary.Failed)
	}

	return nil
}

// applyFlags overrides loaded config with any flag the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	stringFlag := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	intFlag := func(name string, dst *int) {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}
	boolFlag := func(name string, dst *bool) {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}

	stringFlag("input", &cfg.Input.Path)
	stringFlag("delimiter", &cfg.Input.Delimiter)
	stringFlag("out", &cfg.Output.Dir)
	stringFlag("prefix", &cfg.Output.FilePrefix)
	stringFlag("author", &cfg.Render.AuthorText)
	stringFlag("font", &cfg.Render.FontPath)
	stringFlag("background", &cfg.Render.Background)
	stringFlag("color", &cfg.Render.TextColor)

	intFlag("width", &cfg.Render.Width)
	intFlag("height", &cfg.Render.Height)
	intFlag("font-size", &cfg.Render.FontSize)
	intFlag("author-size", &cfg.Render.AuthorFontSize)
	intFlag("padding", &cfg.Render.Padding)
	intFlag("line-spacing", &cfg.Render.LineSpacing)
	intFlag("workers", &cfg.Batch.Workers)

	boolFlag("border", &cfg.Render.DebugBorder)

	if flags.Changed("quiet") {
		if quiet, _ := flags.GetBool("quiet"); quiet {
			cfg.Batch.Progress = false
		}
	}

	if flags.Changed("halt-on-error") {
		if halt, _ := flags.GetBool("halt-on-error"); halt {
			cfg.Batch.ContinueOnError = false
		}
	}
}
