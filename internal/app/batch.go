// Package app contains application services that orchestrate use cases.
// The batch service coordinates the quote source, the renderer and the
// progress display through port interfaces; it holds no rendering or
// parsing logic of its own.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/brewmecoffee/quote-generator/internal/domain"
	"github.com/brewmecoffee/quote-generator/internal/platform/logging"
	"github.com/brewmecoffee/quote-generator/internal/ports"
)

// DefaultFilePrefix names output files <prefix>_<index>.png.
const DefaultFilePrefix = "quote"

// BatchService renders one image per parsed quote.
// It depends on port interfaces, not concrete implementations.
type BatchService struct {
	source   ports.QuoteSource
	renderer ports.QuoteRenderer
	progress ports.ProgressReporter
	logger   *slog.Logger

	opts            domain.RenderOptions
	outDir          string
	filePrefix      string
	workers         int
	continueOnError bool
}

// BatchConfig contains the dependencies and policy for a batch run.
type BatchConfig struct {
	Source   ports.QuoteSource
	Renderer ports.QuoteRenderer
	Progress ports.ProgressReporter

	Options    domain.RenderOptions
	OutDir     string
	FilePrefix string

	// Workers bounds render parallelism; values below 1 mean serial.
	Workers int

	// ContinueOnError logs and skips per-quote failures instead of
	// aborting the whole batch.
	ContinueOnError bool

	Logger *slog.Logger
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Total        int
	Rendered     int
	Failed       int
	Clipped      int
	FontFallback int
	Elapsed      time.Duration
}

// NewBatchService creates a batch service with the provided
// dependencies. Source and Renderer are required.
func NewBatchService(cfg BatchConfig) *BatchService {
	if cfg.Source == nil {
		panic("app: BatchConfig.Source is required")
	}

	if cfg.Renderer == nil {
		panic("app: BatchConfig.Renderer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	progress := cfg.Progress
	if progress == nil {
		progress = NopProgress{}
	}

	prefix := cfg.FilePrefix
	if prefix == "" {
		prefix = DefaultFilePrefix
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &BatchService{
		source:          cfg.Source,
		renderer:        cfg.Renderer,
		progress:        progress,
		logger:          logger.With(slog.String("component", "app.BatchService")),
		opts:            cfg.Options,
		outDir:          cfg.OutDir,
		filePrefix:      prefix,
		workers:         workers,
		continueOnError: cfg.ContinueOnError,
	}
}

// Run parses the input and renders every quote, reporting progress
// after each image. Parsing failures abort the run; per-quote render
// failures are skipped or fatal depending on ContinueOnError.
func (s *BatchService) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	ctx = logging.WithBatchID(ctx, uuid.New().String())
	logger := logging.FromContext(ctx)

	parsed, err := s.source.Quotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading quotes: %w", err)
	}

	logger.InfoContext(ctx, "starting batch",
		slog.Int("quotes", len(parsed)),
		slog.String("out_dir", s.outDir),
		slog.Int("workers", s.workers),
	)

	s.progress.Start(len(parsed))
	defer s.progress.Finish()

	summary := &Summary{Total: len(parsed)}

	results, err := s.renderAll(ctx, parsed)
	if err != nil {
		return nil, err
	}

	for i, res := range results {
		if res.Err != nil {
			summary.Failed++

			logger.ErrorContext(ctx, "skipping quote after render failure",
				slog.Int("quote_index", parsed[i].Index),
				slog.Any("error", res.Err),
			)

			continue
		}

		summary.Rendered++

		if res.Value.Clipped {
			summary.Clipped++
		}

		if res.Value.FontFallback {
			summary.FontFallback++
		}
	}

	summary.Elapsed = time.Since(start)

	logger.InfoContext(ctx, "batch finished",
		slog.Int("rendered", summary.Rendered),
		slog.Int("failed", summary.Failed),
		slog.Int("clipped", summary.Clipped),
		slog.Duration("elapsed", summary.Elapsed),
	)

	return summary, nil
}

// renderAll renders the quotes with the configured parallelism and
// failure policy.
func (s *BatchService) renderAll(
	ctx context.Context,
	parsed []domain.Quote,
) ([]PartialResult[*domain.RenderResult], error) {
	var done atomic.Int64

	total := len(parsed)
	fns := make([]func(context.Context) (*domain.RenderResult, error), total)

	for i, quote := range parsed {
		fns[i] = func(ctx context.Context) (*domain.RenderResult, error) {
			result, err := s.renderOne(ctx, quote)

			n := int(done.Add(1))
			s.progress.Advance(n, total, fmt.Sprintf("quote %d/%d", n, total))

			return result, err
		}
	}

	if s.continueOnError {
		return ParallelPartialLimit(ctx, s.workers, fns...), nil
	}

	values, err := ParallelLimit(ctx, s.workers, fns...)
	if err != nil {
		return nil, fmt.Errorf("rendering batch: %w", err)
	}

	results := make([]PartialResult[*domain.RenderResult], len(values))
	for i, v := range values {
		results[i] = PartialResult[*domain.RenderResult]{Value: v}
	}

	return results, nil
}

// renderOne renders a single quote to its deterministic output path.
func (s *BatchService) renderOne(ctx context.Context, quote domain.Quote) (*domain.RenderResult, error) {
	ctx = logging.WithQuoteIndex(ctx, quote.Index)

	outPath := filepath.Join(s.outDir, fmt.Sprintf("%s_%d.png", s.filePrefix, quote.Index))

	result, err := s.renderer.Render(ctx, quote, s.opts, outPath)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "rendered quote",
		slog.String("path", result.Path),
		slog.Int("font_size", result.FontSize),
		slog.Int("lines", result.Lines),
		slog.Bool("clipped", result.Clipped),
	)

	return result, nil
}

// NopProgress discards progress updates. Used in quiet mode and tests.
type NopProgress struct{}

// Start implements ports.ProgressReporter.
func (NopProgress) Start(int) {}

// Advance implements ports.ProgressReporter.
func (NopProgress) Advance(int, int, string) {}

// Finish implements ports.ProgressReporter.
func (NopProgress) Finish() {}
