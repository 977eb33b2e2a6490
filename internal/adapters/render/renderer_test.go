package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewmecoffee/quote-generator/internal/domain"
)

func testOptions() domain.RenderOptions {
	opts := domain.DefaultRenderOptions()
	// Smaller canvas keeps the tests quick.
	opts.Width = 400
	opts.Height = 400
	opts.Padding = 40
	opts.FontSize = 40
	opts.AuthorFontSize = 20

	return opts
}

func newTestRenderer() *ImageRenderer {
	return NewImageRenderer(NewFontLoader(testLogger()), testLogger())
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	return img
}

func countPixels(img image.Image, want color.RGBA) int {
	var n int

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if uint8(r>>8) == want.R && uint8(g>>8) == want.G &&
				uint8(b>>8) == want.B && uint8(a>>8) == want.A {
				n++
			}
		}
	}

	return n
}

func TestRender_WritesNonEmptyPNG(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out", "quote_1.png")
	renderer := newTestRenderer()

	result, err := renderer.Render(
		context.Background(),
		domain.Quote{Index: 1, Text: "Hello world"},
		testOptions(),
		outPath,
	)
	require.NoError(t, err)

	assert.Equal(t, outPath, result.Path)
	assert.Positive(t, result.Bytes)
	assert.Positive(t, result.Lines)
	assert.False(t, result.Clipped)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), result.Bytes)

	img := decodePNG(t, outPath)
	assert.Equal(t, image.Rect(0, 0, 400, 400), img.Bounds())

	// White text on the black background.
	white := color.RGBA{255, 255, 255, 255}
	assert.Positive(t, countPixels(img, white), "expected drawn text pixels")
}

func TestRender_MissingFontFallsBack(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "quote_1.png")
	renderer := newTestRenderer()

	opts := testOptions()
	opts.FontPath = "no/such/font.ttf"

	result, err := renderer.Render(
		context.Background(),
		domain.Quote{Index: 1, Text: "still works"},
		opts,
		outPath,
	)
	require.NoError(t, err)

	assert.True(t, result.FontFallback)
	assert.Positive(t, result.Bytes)
}

func TestRender_ClipsInsteadOfFailing(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "quote_1.png")
	renderer := newTestRenderer()

	opts := testOptions()
	opts.Width = 300
	opts.Height = 300
	opts.Padding = 100

	long := "a very long quote that cannot possibly fit in a tiny text box no matter how small the font gets because there is simply far too much of it"

	result, err := renderer.Render(
		context.Background(),
		domain.Quote{Index: 1, Text: long},
		opts,
		outPath,
	)
	require.NoError(t, err)

	assert.True(t, result.Clipped)
	assert.Equal(t, opts.MinFontSize, result.FontSize)
	assert.Positive(t, result.Bytes)
}

func TestRender_DebugBorder(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "quote_1.png")
	renderer := newTestRenderer()

	opts := testOptions()
	opts.DebugBorder = true
	opts.AuthorText = ""

	_, err := renderer.Render(
		context.Background(),
		domain.Quote{Index: 1, Text: "bordered"},
		opts,
		outPath,
	)
	require.NoError(t, err)

	img := decodePNG(t, outPath)

	yellow := color.RGBA{255, 255, 0, 255}
	assert.Positive(t, countPixels(img, yellow), "expected border pixels")

	r, g, b, _ := img.At(opts.Padding, opts.Padding).RGBA()
	assert.Equal(t, yellow, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255})
}

func TestRender_NoAuthorText(t *testing.T) {
	outDir := t.TempDir()
	renderer := newTestRenderer()

	opts := testOptions()
	opts.AuthorText = ""

	_, err := renderer.Render(
		context.Background(),
		domain.Quote{Index: 1, Text: "x"},
		opts,
		filepath.Join(outDir, "quote_1.png"),
	)
	require.NoError(t, err)
}

func TestRender_InvalidOptions(t *testing.T) {
	renderer := newTestRenderer()

	opts := testOptions()
	opts.Padding = 500 // Larger than the canvas.

	_, err := renderer.Render(
		context.Background(),
		domain.Quote{Index: 1, Text: "x"},
		opts,
		filepath.Join(t.TempDir(), "quote_1.png"),
	)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestRender_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	// A file where the output directory should be.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	renderer := newTestRenderer()

	_, err := renderer.Render(
		context.Background(),
		domain.Quote{Index: 1, Text: "x"},
		testOptions(),
		filepath.Join(blocker, "quote_1.png"),
	)
	require.Error(t, err)
	assert.True(t, domain.IsOutputWrite(err))
}

// One renderer, many goroutines, same font path. Run with -race: the
// shared loader hands each render its own faces, so concurrent glyph
// rasterization must not collide.
func TestRender_ConcurrentSharedRenderer(t *testing.T) {
	outDir := t.TempDir()
	renderer := newTestRenderer()
	opts := testOptions()

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Go(func() {
			result, err := renderer.Render(
				context.Background(),
				domain.Quote{Index: i, Text: fmt.Sprintf("concurrent quote number %d with enough words to wrap", i)},
				opts,
				filepath.Join(outDir, fmt.Sprintf("quote_%d.png", i)),
			)
			if assert.NoError(t, err) {
				assert.Positive(t, result.Bytes)
			}
		})
	}
	wg.Wait()
}

func TestRender_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := newTestRenderer()

	_, err := renderer.Render(
		ctx,
		domain.Quote{Index: 1, Text: "x"},
		testOptions(),
		filepath.Join(t.TempDir(), "quote_1.png"),
	)
	require.ErrorIs(t, err, context.Canceled)
}
