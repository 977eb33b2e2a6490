//go:build integration

package integration

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewmecoffee/quote-generator/internal/adapters/quotes"
	"github.com/brewmecoffee/quote-generator/internal/adapters/render"
	"github.com/brewmecoffee/quote-generator/internal/app"
	"github.com/brewmecoffee/quote-generator/internal/platform/config"
	"github.com/brewmecoffee/quote-generator/internal/platform/logging"
)

const quotesFixture = `The obstacle is the way.
---
What we do in life
echoes in eternity.
---
Still waters run deep.
`

// TestBatchPipeline runs the whole pipeline the way the CLI wires it:
// config load, quote parsing, parallel rendering, output files.
func TestBatchPipeline(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	inputPath := filepath.Join(dir, "quotes.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte(quotesFixture), 0o644))

	t.Setenv("QUOTEGEN_INPUT_PATH", inputPath)
	t.Setenv("QUOTEGEN_OUTPUT_DIR", filepath.Join(dir, "out"))
	t.Setenv("QUOTEGEN_BATCH_WORKERS", "2")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Render.ToRenderOptions()
	require.NoError(t, err)

	logger := logging.NewWithWriter(logging.Config{Level: "error", Format: "json"}, os.Stderr)

	svc := app.NewBatchService(app.BatchConfig{
		Source:          quotes.NewFileSource(cfg.Input.Path, cfg.Input.Delimiter),
		Renderer:        render.NewImageRenderer(nil, logger),
		Options:         opts,
		OutDir:          cfg.Output.Dir,
		FilePrefix:      cfg.Output.FilePrefix,
		Workers:         cfg.Batch.Workers,
		ContinueOnError: cfg.Batch.ContinueOnError,
		Logger:          logger,
	})

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Rendered)
	assert.Equal(t, 0, summary.Failed)

	for i := 1; i <= 3; i++ {
		path := filepath.Join(cfg.Output.Dir, fmt.Sprintf("quote_%d.png", i))

		f, err := os.Open(path)
		require.NoError(t, err)

		img, err := png.Decode(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)

		assert.Equal(t, cfg.Render.Width, img.Bounds().Dx())
		assert.Equal(t, cfg.Render.Height, img.Bounds().Dy())
	}
}

// TestBatchPipeline_MissingInput verifies the pipeline surfaces a
// missing input file as a typed error before any rendering happens.
func TestBatchPipeline_MissingInput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	logger := logging.NewWithWriter(logging.Config{Level: "error", Format: "json"}, os.Stderr)

	svc := app.NewBatchService(app.BatchConfig{
		Source:   quotes.NewFileSource(filepath.Join(dir, "absent.txt"), ""),
		Renderer: render.NewImageRenderer(nil, logger),
		OutDir:   filepath.Join(dir, "out"),
		Logger:   logger,
	})

	_, err := svc.Run(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr))
}
