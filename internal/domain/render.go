package domain

import "image/color"

// Default values for RenderOptions. The canvas defaults target square
// social-media posts.
const (
	DefaultCanvasWidth  = 1080
	DefaultCanvasHeight = 1080

	DefaultFontSize     = 80
	DefaultMinFontSize  = 20
	DefaultFontSizeStep = 5

	DefaultAuthorText     = "12 am Stories"
	DefaultAuthorFontSize = 40

	DefaultPadding     = 120
	DefaultLineSpacing = 18
)

// RenderOptions is the value object describing how a single quote image
// is composed. It is supplied per call and carries no shared mutable
// state; rendering is a pure function of (Quote, RenderOptions) plus the
// font file contents.
type RenderOptions struct {
	// Width and Height are the canvas dimensions in pixels.
	Width  int
	Height int

	// Background fills the canvas; TextColor draws the quote and the
	// attribution.
	Background color.Color
	TextColor  color.Color

	// FontPath points at a TTF/OTF file. An unreadable path falls back
	// to the built-in default face rather than failing the render.
	FontPath string

	// FontSize is the maximum size the auto-fit search starts from.
	// MinFontSize is the floor; below it overflow is accepted.
	// FontSizeStep is the decrement between fit attempts.
	FontSize     int
	MinFontSize  int
	FontSizeStep int

	// AuthorText is the attribution caption drawn at the bottom-left
	// padding boundary. Empty disables it.
	AuthorText     string
	AuthorFontSize int

	// Padding is the margin reserved on all sides before layout.
	// LineSpacing is the extra vertical gap between wrapped lines.
	Padding     int
	LineSpacing int

	// DebugBorder outlines the computed text box, for layout debugging.
	DebugBorder bool
}

// DefaultRenderOptions returns the documented defaults: 1080x1080,
// black background, white text, 120px padding, 18px line spacing.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:          DefaultCanvasWidth,
		Height:         DefaultCanvasHeight,
		Background:     color.Black,
		TextColor:      color.White,
		FontSize:       DefaultFontSize,
		MinFontSize:    DefaultMinFontSize,
		FontSizeStep:   DefaultFontSizeStep,
		AuthorText:     DefaultAuthorText,
		AuthorFontSize: DefaultAuthorFontSize,
		Padding:        DefaultPadding,
		LineSpacing:    DefaultLineSpacing,
	}
}

// TextBoxWidth returns the horizontal space available for wrapped text.
func (o RenderOptions) TextBoxWidth() int {
	return o.Width - 2*o.Padding
}

// TextBoxHeight returns the vertical space available for the quote
// block after reserving room for the attribution caption.
func (o RenderOptions) TextBoxHeight() int {
	return o.Height - 2*o.Padding - o.AuthorReserve()
}

// AuthorReserve is the vertical space withheld from the text box for
// the attribution line and its fixed bottom gap.
func (o RenderOptions) AuthorReserve() int {
	return o.AuthorFontSize + AuthorGap
}

// AuthorGap is the fixed offset between the text box and the
// attribution baseline area.
const AuthorGap = 40

// Validate checks that the options describe a drawable canvas.
func (o RenderOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return NewValidationError("dimensions", "width and height must be positive")
	}

	if o.FontSize <= 0 || o.AuthorFontSize <= 0 {
		return NewValidationError("font_size", "font sizes must be positive")
	}

	if o.MinFontSize <= 0 || o.MinFontSize > o.FontSize {
		return NewValidationError("min_font_size", "must be positive and not above font_size")
	}

	if o.FontSizeStep <= 0 {
		return NewValidationError("font_size_step", "must be positive")
	}

	if o.Padding < 0 || 2*o.Padding >= min(o.Width, o.Height) {
		return NewValidationError("padding", "must be non-negative and leave room on the canvas")
	}

	if o.LineSpacing < 0 {
		return NewValidationError("line_spacing", "must be non-negative")
	}

	if o.TextBoxWidth() <= 0 || o.TextBoxHeight() <= 0 {
		return NewValidationError("padding", "padding is too large for the image size")
	}

	return nil
}
