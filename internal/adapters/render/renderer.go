package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/brewmecoffee/quote-generator/internal/domain"
)

// borderColor and borderWidth style the optional debug rectangle
// outlining the text box.
var borderColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

const borderWidth = 3

// ImageRenderer composes quote images and writes them as PNG files.
// It implements ports.QuoteRenderer. Safe for concurrent use; renders
// share only the font cache.
type ImageRenderer struct {
	fonts  *FontLoader
	logger *slog.Logger
}

// NewImageRenderer creates a renderer. Nil arguments default to a
// fresh font loader and slog.Default.
func NewImageRenderer(fonts *FontLoader, logger *slog.Logger) *ImageRenderer {
	if logger == nil {
		logger = slog.Default()
	}

	if fonts == nil {
		fonts = NewFontLoader(logger)
	}

	return &ImageRenderer{fonts: fonts, logger: logger}
}

// Render lays out quote within the canvas described by opts and writes
// the encoded PNG to outPath, creating the destination directory if
// absent.
func (r *ImageRenderer) Render(
	ctx context.Context,
	quote domain.Quote,
	opts domain.RenderOptions,
	outPath string,
) (*domain.RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("render options: %w", err)
	}

	layout, fallback, err := r.layout(quote.Text, opts)
	if err != nil {
		return nil, err
	}

	img, err := r.compose(layout, opts)
	if err != nil {
		return nil, err
	}

	n, err := writePNG(outPath, img)
	if err != nil {
		return nil, err
	}

	return &domain.RenderResult{
		Path:         outPath,
		FontSize:     layout.Size,
		Lines:        len(layout.Lines),
		Clipped:      layout.Clipped,
		FontFallback: fallback,
		Bytes:        n,
	}, nil
}

// layout runs the auto-fit search for the quote text.
func (r *ImageRenderer) layout(text string, opts domain.RenderOptions) (Layout, bool, error) {
	fallback := false

	faces := func(size int) (font.Face, error) {
		face, fb, err := r.fonts.Face(opts.FontPath, size)
		fallback = fallback || fb

		return face, err
	}

	layout, err := Fit(faces, text, Constraints{
		MaxSize:     opts.FontSize,
		MinSize:     opts.MinFontSize,
		Step:        opts.FontSizeStep,
		MaxWidth:    opts.TextBoxWidth(),
		MaxHeight:   opts.TextBoxHeight(),
		LineSpacing: opts.LineSpacing,
	})
	if err != nil {
		return Layout{}, false, err
	}

	return layout, fallback, nil
}

// compose draws the background, the vertically centered quote block,
// the attribution and the optional debug border.
func (r *ImageRenderer) compose(layout Layout, opts domain.RenderOptions) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	if opts.DebugBorder {
		box := image.Rect(
			opts.Padding,
			opts.Padding,
			opts.Width-opts.Padding,
			opts.Height-opts.Padding-opts.AuthorReserve(),
		)
		drawRectOutline(img, box, borderColor, borderWidth)
	}

	face, _, err := r.fonts.Face(opts.FontPath, layout.Size)
	if err != nil {
		return nil, fmt.Errorf("face for fitted size %d: %w", layout.Size, err)
	}

	// Center the block vertically inside the text box, left-align each
	// line at the padding boundary. Lines anchor at the ascender to
	// match the measured block height.
	lineHeight := layout.Size + opts.LineSpacing
	y := opts.Padding + (opts.TextBoxHeight()-layout.BlockHeight(opts.LineSpacing))/2
	ascent := face.Metrics().Ascent.Ceil()

	for _, line := range layout.Lines {
		drawLine(img, face, opts.TextColor, opts.Padding, y+ascent, line)
		y += lineHeight
	}

	if opts.AuthorText != "" {
		if err := r.drawAuthor(img, opts); err != nil {
			return nil, err
		}
	}

	return img, nil
}

// drawAuthor renders the attribution at the bottom-left padding
// boundary in the smaller author face.
func (r *ImageRenderer) drawAuthor(img *image.RGBA, opts domain.RenderOptions) error {
	face, _, err := r.fonts.Face(opts.FontPath, opts.AuthorFontSize)
	if err != nil {
		return fmt.Errorf("author face: %w", err)
	}

	top := opts.Height - opts.Padding - opts.AuthorFontSize
	drawLine(img, face, opts.TextColor, opts.Padding, top+face.Metrics().Ascent.Ceil(), opts.AuthorText)

	return nil
}

// drawLine draws a single line of text with its baseline at y.
func drawLine(img *image.RGBA, face font.Face, col color.Color, x, y int, text string) {
	if text == "" {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// drawRectOutline draws a rectangle outline of the given stroke width.
func drawRectOutline(img *image.RGBA, rect image.Rectangle, col color.Color, width int) {
	src := image.NewUniform(col)

	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), // top
		image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), // bottom
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y), // left
		image.Rect(rect.Max.X-width, rect.Min.Y, rect.Max.X, rect.Max.Y), // right
	}

	for _, edge := range edges {
		draw.Draw(img, edge, src, image.Point{}, draw.Src)
	}
}

// writePNG encodes img to path, creating parent directories as needed,
// and returns the number of bytes written.
func writePNG(path string, img image.Image) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, domain.NewOutputWriteError(path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, domain.NewOutputWriteError(path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()

		return 0, domain.NewOutputWriteError(path, err)
	}

	if err := f.Close(); err != nil {
		return 0, domain.NewOutputWriteError(path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, domain.NewOutputWriteError(path, err)
	}

	return info.Size(), nil
}
