// Package quotes parses delimiter-separated quote files.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"strings"

	"github.com/brewmecoffee/quote-generator/internal/domain"
)

// DefaultDelimiter separates quotes in the input file.
const DefaultDelimiter = "---"

// Split yields the non-empty, whitespace-trimmed segments of content.
// Segments are separated by lines whose trimmed text equals delim.
// Interior blank lines survive as paragraph breaks; blank lines at
// segment edges are trimmed away with the rest of the edge whitespace.
func Split(content, delim string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var sb strings.Builder

		flush := func() bool {
			segment := strings.TrimSpace(sb.String())
			sb.Reset()

			if segment == "" {
				return true
			}

			return yield(segment)
		}

		for line := range strings.Lines(content) {
			trimmed := strings.TrimRight(line, "\r\n")

			if strings.TrimSpace(trimmed) == delim {
				if !flush() {
					return
				}

				continue
			}

			sb.WriteString(trimmed)
			sb.WriteString("\n")
		}

		flush()
	}
}

// FileSource reads quotes from a delimited UTF-8 text file. It
// implements ports.QuoteSource.
type FileSource struct {
	path  string
	delim string
}

// NewFileSource creates a source for the given file path. An empty
// delimiter selects DefaultDelimiter.
func NewFileSource(path, delim string) *FileSource {
	if delim == "" {
		delim = DefaultDelimiter
	}

	return &FileSource{path: path, delim: delim}
}

// Quotes parses the file and returns all quotes in file order,
// numbered 1-based. A missing file is reported as
// domain.ErrInputNotFound rather than an empty sequence.
func (s *FileSource) Quotes(ctx context.Context) ([]domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewInputNotFoundError(s.path)
		}

		return nil, fmt.Errorf("reading quotes file %q: %w", s.path, err)
	}

	var parsed []domain.Quote
	for segment := range Split(string(content), s.delim) {
		parsed = append(parsed, domain.Quote{
			Index: len(parsed) + 1,
			Text:  segment,
		})
	}

	if len(parsed) == 0 {
		return nil, fmt.Errorf("parsing %q: %w", s.path, domain.ErrNoQuotes)
	}

	return parsed, nil
}
