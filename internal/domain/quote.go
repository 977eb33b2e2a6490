// Package domain contains core business entities and rules.
package domain

// Quote is one text segment between delimiters in the input file.
// It has no identity beyond its position in the source file and is
// immutable once parsed. Embedded newlines are paragraph breaks.
type Quote struct {
	// Index is the 1-based position of the quote in the source file.
	Index int

	// Text is the quote body, whitespace-trimmed at the edges.
	Text string
}

// RenderResult describes the outcome of rendering a single quote.
type RenderResult struct {
	// Path is the filesystem location the image was written to.
	Path string

	// FontSize is the size chosen by the auto-fit search.
	FontSize int

	// Lines is the number of wrapped lines drawn.
	Lines int

	// Clipped reports that the text did not fit even at the minimum
	// font size and was rendered with visual overflow.
	Clipped bool

	// FontFallback reports that the configured font could not be
	// loaded and the built-in default face was used instead.
	FontFallback bool

	// Bytes is the encoded image size on disk.
	Bytes int64
}
