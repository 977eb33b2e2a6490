// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/brewmecoffee/quote-generator/internal/domain"
)

// EnvPrefix selects the environment variables that override file and
// default configuration, e.g. QUOTEGEN_RENDER_PADDING=90.
const EnvPrefix = "QUOTEGEN_"

// Default configuration values not already defined by the domain.
const (
	// DefaultInputPath is the quotes file read when no --input is given.
	DefaultInputPath = "quotes.txt"

	// DefaultOutputDir receives the generated images.
	DefaultOutputDir = "quote_images"

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App    AppConfig    `koanf:"app"    validate:"required"`
	Log    LogConfig    `koanf:"log"    validate:"required"`
	Input  InputConfig  `koanf:"input"  validate:"required"`
	Output OutputConfig `koanf:"output" validate:"required"`
	Render RenderConfig `koanf:"render" validate:"required"`
	Batch  BatchConfig  `koanf:"batch"  validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name    string `koanf:"name"    validate:"required"`
	Version string `koanf:"version" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// InputConfig describes the quotes file.
type InputConfig struct {
	Path      string `koanf:"path"      validate:"required"`
	Delimiter string `koanf:"delimiter" validate:"required"`
}

// OutputConfig describes where and how images are written.
type OutputConfig struct {
	Dir        string `koanf:"dir"         validate:"required"`
	FilePrefix string `koanf:"file_prefix" validate:"required"`
}

// RenderConfig contains the per-image layout settings. Colors are
// strings (named or hex) and are resolved by ToRenderOptions.
type RenderConfig struct {
	Width          int    `koanf:"width"            validate:"required,min=1"`
	Height         int    `koanf:"height"           validate:"required,min=1"`
	Background     string `koanf:"background"       validate:"required,color"`
	TextColor      string `koanf:"text_color"       validate:"required,color"`
	FontPath       string `koanf:"font_path"`
	FontSize       int    `koanf:"font_size"        validate:"required,min=1"`
	MinFontSize    int    `koanf:"min_font_size"    validate:"required,min=1"`
	FontSizeStep   int    `koanf:"font_size_step"   validate:"required,min=1"`
	AuthorText     string `koanf:"author_text"`
	AuthorFontSize int    `koanf:"author_font_size" validate:"required,min=1"`
	Padding        int    `koanf:"padding"          validate:"min=0"`
	LineSpacing    int    `koanf:"line_spacing"     validate:"min=0"`
	DebugBorder    bool   `koanf:"debug_border"`
}

// BatchConfig contains batch execution policy.
type BatchConfig struct {
	Workers         int  `koanf:"workers"           validate:"required,min=1,max=64"`
	ContinueOnError bool `koanf:"continue_on_error"`
	Progress        bool `koanf:"progress"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":    "quotegen",
		"app.version": "dev",

		"log.level":            "info",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quotegen.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"input.path":      DefaultInputPath,
		"input.delimiter": "---",

		"output.dir":         DefaultOutputDir,
		"output.file_prefix": "quote",

		"render.width":            domain.DefaultCanvasWidth,
		"render.height":           domain.DefaultCanvasHeight,
		"render.background":       "black",
		"render.text_color":       "white",
		"render.font_path":        "fonts/JosefinSans-Light.ttf",
		"render.font_size":        domain.DefaultFontSize,
		"render.min_font_size":    domain.DefaultMinFontSize,
		"render.font_size_step":   domain.DefaultFontSizeStep,
		"render.author_text":      domain.DefaultAuthorText,
		"render.author_font_size": domain.DefaultAuthorFontSize,
		"render.padding":          domain.DefaultPadding,
		"render.line_spacing":     domain.DefaultLineSpacing,
		"render.debug_border":     false,

		"batch.workers":           1,
		"batch.continue_on_error": true,
		"batch.progress":          true,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (QUOTEGEN_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with QUOTEGEN_ prefix
	err = k.Load(env.Provider(EnvPrefix, ".", envKeyTransform), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKeyPaths maps an env-style name (RENDER_FONT_SIZE) to its koanf
// path (render.font_size) for every known configuration key, so keys
// with underscores in their names stay addressable via the environment.
var envKeyPaths = func() map[string]string {
	paths := make(map[string]string)
	for key := range defaults() {
		paths[strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}

	return paths
}()

// envKeyTransform resolves a QUOTEGEN_* variable name to a config key.
// Unknown names fall back to the naive underscore-to-dot mapping.
func envKeyTransform(s string) string {
	name := strings.TrimPrefix(s, EnvPrefix)

	if path, ok := envKeyPaths[name]; ok {
		return path
	}

	return strings.ReplaceAll(strings.ToLower(name), "_", ".")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// ToRenderOptions resolves the render section into the domain value
// object, parsing color strings.
func (c *RenderConfig) ToRenderOptions() (domain.RenderOptions, error) {
	background, err := domain.ParseColor(c.Background)
	if err != nil {
		return domain.RenderOptions{}, fmt.Errorf("render.background: %w", err)
	}

	textColor, err := domain.ParseColor(c.TextColor)
	if err != nil {
		return domain.RenderOptions{}, fmt.Errorf("render.text_color: %w", err)
	}

	opts := domain.RenderOptions{
		Width:          c.Width,
		Height:         c.Height,
		Background:     background,
		TextColor:      textColor,
		FontPath:       c.FontPath,
		FontSize:       c.FontSize,
		MinFontSize:    c.MinFontSize,
		FontSizeStep:   c.FontSizeStep,
		AuthorText:     c.AuthorText,
		AuthorFontSize: c.AuthorFontSize,
		Padding:        c.Padding,
		LineSpacing:    c.LineSpacing,
		DebugBorder:    c.DebugBorder,
	}

	if err := opts.Validate(); err != nil {
		return domain.RenderOptions{}, err
	}

	return opts, nil
}
