package render

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/brewmecoffee/quote-generator/internal/domain"
)

// faceDPI keeps one font point equal to one pixel, matching the
// pixel-based layout arithmetic.
const faceDPI = 72

// FontLoader parses font files and builds faces for them. Parsed fonts
// are cached per path so the auto-fit search and parallel renders never
// re-read the same file; faces are built fresh on every call because an
// opentype.Face carries mutable rasterizer state and must not be shared
// between goroutines. A path that cannot be loaded falls back to the
// embedded Go Regular face; the substitution is reported, not fatal.
type FontLoader struct {
	logger *slog.Logger

	mu    sync.Mutex
	fonts map[string]*parsedFont
}

type parsedFont struct {
	font     *opentype.Font
	fallback bool
}

// NewFontLoader creates a loader. A nil logger defaults to slog.Default.
func NewFontLoader(logger *slog.Logger) *FontLoader {
	if logger == nil {
		logger = slog.Default()
	}

	return &FontLoader{
		logger: logger,
		fonts:  make(map[string]*parsedFont),
	}
}

// Face returns a new face for the font at path rendered at the given
// pixel size. The boolean reports whether the built-in default face was
// substituted for an unreadable path. The returned face is exclusive to
// the caller; only the underlying parsed font is shared.
func (l *FontLoader) Face(path string, size int) (font.Face, bool, error) {
	pf, err := l.load(path)
	if err != nil {
		return nil, false, err
	}

	face, err := opentype.NewFace(pf.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     faceDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, false, fmt.Errorf("creating %dpx face for %q: %w", size, path, err)
	}

	return face, pf.fallback, nil
}

// load parses the font file at path, memoizing the result. Failures
// are logged and replaced with the embedded default font.
func (l *FontLoader) load(path string) (*parsedFont, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if pf, ok := l.fonts[path]; ok {
		return pf, nil
	}

	pf, err := l.parse(path)
	if err != nil {
		return nil, err
	}

	l.fonts[path] = pf

	return pf, nil
}

func (l *FontLoader) parse(path string) (*parsedFont, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			fnt, parseErr := opentype.Parse(data)
			if parseErr == nil {
				return &parsedFont{font: fnt}, nil
			}

			err = parseErr
		}

		l.logger.Warn("font unavailable, using built-in default face",
			slog.String("font_path", path),
			slog.Any("error", domain.NewFontLoadError(path, err)),
		)
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// goregular is embedded and known-good; reaching this means a
		// toolchain problem, not a user error.
		return nil, fmt.Errorf("parsing embedded default font: %w", err)
	}

	return &parsedFont{font: fnt, fallback: path != ""}, nil
}
