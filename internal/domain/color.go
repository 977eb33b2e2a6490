package domain

import (
	"fmt"
	"image/color"
	"strings"
)

// namedColors are the color keywords accepted in configuration.
var namedColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"magenta": {255, 0, 255, 255},
	"cyan":    {0, 255, 255, 255},
}

// ParseColor converts a configuration color value into a concrete
// color. Accepted forms are named colors ("black", "white", ...) and
// hex notation ("#rgb" or "#rrggbb"), case-insensitive.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	if c, ok := namedColors[name]; ok {
		return c, nil
	}

	if strings.HasPrefix(name, "#") {
		return parseHexColor(name)
	}

	return color.RGBA{}, NewValidationErrorWithValue("color", "unknown color", s)
}

// parseHexColor parses "#rgb" and "#rrggbb".
func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}

	var err error

	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		// Expand each nibble: #f0a -> #ff00aa.
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("hex color must be 4 or 7 characters, got %d", len(s))
	}

	if err != nil {
		return color.RGBA{}, NewValidationErrorWithValue("color", "invalid hex color", s)
	}

	return c, nil
}
