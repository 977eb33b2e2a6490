// Package render lays out quote text and composes the output images.
package render

import (
	"strings"

	"golang.org/x/image/font"
)

// Constraints bound the auto-fit search for one quote.
type Constraints struct {
	// MaxSize is the starting (and largest permitted) font size.
	MaxSize int

	// MinSize is the floor; below it overflow is accepted.
	MinSize int

	// Step is the decrement between fit attempts.
	Step int

	// MaxWidth and MaxHeight describe the padded text box.
	MaxWidth  int
	MaxHeight int

	// LineSpacing is the extra vertical gap between lines.
	LineSpacing int
}

// Layout is the result of the auto-fit search: the chosen font size
// and the lines word-wrapped at that size.
type Layout struct {
	Size    int
	Lines   []string
	Clipped bool
}

// BlockHeight is the total vertical extent of the wrapped block.
func (l Layout) BlockHeight(lineSpacing int) int {
	return len(l.Lines) * (l.Size + lineSpacing)
}

// Wrap word-wraps text against maxWidth using face for measurement.
// Explicit line breaks split the text into paragraphs first; blank
// paragraphs are preserved as empty lines so spacing in the source
// survives. A single word wider than maxWidth is placed on its own
// line without being split.
func Wrap(face font.Face, text string, maxWidth int) []string {
	var lines []string

	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			lines = append(lines, "")

			continue
		}

		lines = append(lines, wrapParagraph(face, paragraph, maxWidth)...)
	}

	return lines
}

// wrapParagraph greedily packs words into lines, breaking before the
// word that would overflow maxWidth.
func wrapParagraph(face font.Face, paragraph string, maxWidth int) []string {
	var (
		lines   []string
		current []string
	)

	for _, word := range strings.Fields(paragraph) {
		candidate := strings.Join(append(current, word), " ")

		if font.MeasureString(face, candidate).Ceil() <= maxWidth || len(current) == 0 {
			current = append(current, word)

			continue
		}

		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	return lines
}

// faceProvider builds a measuring face for a font size. Satisfied by
// a FontLoader bound to a font path.
type faceProvider func(size int) (font.Face, error)

// Fit chooses the largest font size within c that keeps the wrapped
// text block inside the box. Sizes are checked in descending order, so
// ties resolve to the larger size. When even the minimum size
// overflows, the minimum is returned with Clipped set and the caller
// renders with visual clipping rather than failing.
func Fit(faces faceProvider, text string, c Constraints) (Layout, error) {
	var last Layout

	for _, size := range fitSizes(c) {
		face, err := faces(size)
		if err != nil {
			return Layout{}, err
		}

		last = Layout{Size: size, Lines: Wrap(face, text, c.MaxWidth)}

		if last.BlockHeight(c.LineSpacing) <= c.MaxHeight {
			return last, nil
		}
	}

	last.Clipped = true

	return last, nil
}

// fitSizes enumerates candidate sizes from MaxSize down in Step
// decrements, always ending on MinSize so the floor is attempted even
// when the stepping would skip past it.
func fitSizes(c Constraints) []int {
	if c.MaxSize <= c.MinSize {
		return []int{c.MinSize}
	}

	var sizes []int
	for size := c.MaxSize; size > c.MinSize; size -= c.Step {
		sizes = append(sizes, size)
	}

	return append(sizes, c.MinSize)
}
