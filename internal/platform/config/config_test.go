package config

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied
// correctly. This test doesn't depend on YAML files - it only tests
// the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "quotegen", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "pretty", cfg.Log.Format)

	assert.Equal(t, DefaultInputPath, cfg.Input.Path)
	assert.Equal(t, "---", cfg.Input.Delimiter)

	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
	assert.Equal(t, "quote", cfg.Output.FilePrefix)

	assert.Equal(t, 1080, cfg.Render.Width)
	assert.Equal(t, 1080, cfg.Render.Height)
	assert.Equal(t, "black", cfg.Render.Background)
	assert.Equal(t, "white", cfg.Render.TextColor)
	assert.Equal(t, 80, cfg.Render.FontSize)
	assert.Equal(t, 20, cfg.Render.MinFontSize)
	assert.Equal(t, 120, cfg.Render.Padding)
	assert.Equal(t, 18, cfg.Render.LineSpacing)
	assert.Equal(t, "12 am Stories", cfg.Render.AuthorText)

	assert.Equal(t, 1, cfg.Batch.Workers)
	assert.True(t, cfg.Batch.ContinueOnError)
	assert.True(t, cfg.Batch.Progress)
}

// TestLoad_Defaults_Validate tests that the default config passes
// validation.
func TestLoad_Defaults_Validate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}

// TestLoad_EnvVarOverrides tests that environment variables override
// defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("QUOTEGEN_LOG_LEVEL", "warn")
	t.Setenv("QUOTEGEN_INPUT_PATH", "other.txt")
	t.Setenv("QUOTEGEN_RENDER_PADDING", "60")
	t.Setenv("QUOTEGEN_BATCH_WORKERS", "4")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "other.txt", cfg.Input.Path)
	assert.Equal(t, 60, cfg.Render.Padding)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

// TestLoad_EnvVarOverrides_UnderscoreKeys tests that config keys whose
// names contain underscores resolve from the environment too.
func TestLoad_EnvVarOverrides_UnderscoreKeys(t *testing.T) {
	t.Setenv("QUOTEGEN_RENDER_FONT_SIZE", "64")
	t.Setenv("QUOTEGEN_RENDER_MIN_FONT_SIZE", "16")
	t.Setenv("QUOTEGEN_OUTPUT_FILE_PREFIX", "img")
	t.Setenv("QUOTEGEN_BATCH_CONTINUE_ON_ERROR", "false")
	t.Setenv("QUOTEGEN_LOG_FILE_MAX_BACKUPS", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Render.FontSize)
	assert.Equal(t, 16, cfg.Render.MinFontSize)
	assert.Equal(t, "img", cfg.Output.FilePrefix)
	assert.False(t, cfg.Batch.ContinueOnError)
	assert.Equal(t, 7, cfg.Log.File.MaxBackups)
}

// TestLoad_NonExistentProfile tests that a missing profile file
// doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "quotegen", cfg.App.Name)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantMsg: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantMsg: "log.format",
		},
		{
			name:    "missing input path",
			mutate:  func(c *Config) { c.Input.Path = "" },
			wantMsg: "input.path",
		},
		{
			name:    "bad background color",
			mutate:  func(c *Config) { c.Render.Background = "blurple" },
			wantMsg: "must be a named color",
		},
		{
			name:    "bad text color",
			mutate:  func(c *Config) { c.Render.TextColor = "#12" },
			wantMsg: "must be a named color",
		},
		{
			name:    "zero width",
			mutate:  func(c *Config) { c.Render.Width = 0 },
			wantMsg: "render.width",
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Batch.Workers = 1000 },
			wantMsg: "batch.workers",
		},
		{
			name:    "min font size above max",
			mutate:  func(c *Config) { c.Render.MinFontSize = c.Render.FontSize + 1 },
			wantMsg: "min_font_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRenderConfig_ToRenderOptions(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	opts, err := cfg.Render.ToRenderOptions()
	require.NoError(t, err)

	assert.Equal(t, 1080, opts.Width)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, opts.Background)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, opts.TextColor)
	assert.Equal(t, "12 am Stories", opts.AuthorText)
}

func TestRenderConfig_ToRenderOptions_BadColor(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Render.Background = "nope"

	_, err = cfg.Render.ToRenderOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.background")
}
