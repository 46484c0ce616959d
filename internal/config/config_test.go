// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/crank"
	"github.com/matt-FFFFFF/crank/color"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `bar:
  colors: [cyan, green]
  color_cycle_delay_ms: 0
  width: 20
throbber:
  frames: [".", "o", "O"]
  colors: [blue]
  frame_delay_ms: 50
  plain: true
`

const hclConfig = `bar {
  colors = ["magenta"]
  width  = 10
}

throbber {
  frame_delay_ms = 75
}
`

func stubFs(t *testing.T, files map[string]string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)
}

func TestLoad_YAML(t *testing.T) {
	stubFs(t, map[string]string{"/etc/crank.yaml": yamlConfig})

	cfg, err := Load(context.Background(), "/etc/crank.yaml")
	require.NoError(t, err)

	assert.Equal(t, []color.Code{color.FgCyan, color.FgGreen}, cfg.Bar.Colors)
	assert.Equal(t, time.Duration(0), cfg.Bar.ColorCycleDelay)
	assert.Equal(t, 20, cfg.Bar.Width)
	assert.False(t, cfg.Bar.Plain)

	assert.Equal(t, []string{".", "o", "O"}, cfg.Throbber.Frames)
	assert.Equal(t, []color.Code{color.FgBlue}, cfg.Throbber.Colors)
	assert.Equal(t, 50*time.Millisecond, cfg.Throbber.FrameDelay)
	assert.True(t, cfg.Throbber.Plain)
}

func TestLoad_HCL(t *testing.T) {
	stubFs(t, map[string]string{"crank.hcl": hclConfig})

	cfg, err := Load(context.Background(), "crank.hcl")
	require.NoError(t, err)

	assert.Equal(t, []color.Code{color.FgMagenta}, cfg.Bar.Colors)
	assert.Equal(t, 10, cfg.Bar.Width)
	assert.Equal(t, crank.DefaultColorCycleDelay, cfg.Bar.ColorCycleDelay, "omitted fields keep defaults")

	assert.Equal(t, crank.DefaultThrobberConfig().Frames, cfg.Throbber.Frames)
	assert.Equal(t, 75*time.Millisecond, cfg.Throbber.FrameDelay)
}

func TestParse_HCLDefaultsVariables(t *testing.T) {
	data := `bar {
  width = defaults.bar.width / 2
}

throbber {
  frame_delay_ms = defaults.throbber.frame_delay_ms * 2
}
`

	cfg, err := Parse("crank.hcl", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, crank.DefaultBarWidth/2, cfg.Bar.Width)
	assert.Equal(t, 2*crank.DefaultFrameDelay, cfg.Throbber.FrameDelay)
}

func TestLoad_MissingFile(t *testing.T) {
	stubFs(t, nil)

	_, err := Load(context.Background(), "nope.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestParse_EmptySectionsKeepDefaults(t *testing.T) {
	cfg, err := Parse("empty.yml", []byte("{}\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		expected error
	}{
		{
			name:     "unsupported extension",
			filename: "crank.toml",
			data:     "",
			expected: ErrUnsupportedFormat,
		},
		{
			name:     "malformed yaml",
			filename: "crank.yaml",
			data:     "bar: [",
			expected: ErrParseConfig,
		},
		{
			name:     "unknown yaml field",
			filename: "crank.yaml",
			data:     "bar:\n  colour: red\n",
			expected: ErrParseConfig,
		},
		{
			name:     "malformed hcl",
			filename: "crank.hcl",
			data:     "bar {",
			expected: ErrParseConfig,
		},
		{
			name:     "unknown color",
			filename: "crank.yaml",
			data:     "bar:\n  colors: [ultraviolet]\n",
			expected: color.ErrUnknownColor,
		},
		{
			name:     "empty frames",
			filename: "crank.yaml",
			data:     "throbber:\n  frames: []\n",
			expected: crank.ErrEmptyFrames,
		},
		{
			name:     "zero width",
			filename: "crank.hcl",
			data:     "bar {\n  width = 0\n}\n",
			expected: crank.ErrInvalidWidth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.filename, []byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestParse_ReportsBothSections(t *testing.T) {
	data := "bar:\n  width: -1\nthrobber:\n  frame_delay_ms: -5\n"

	_, err := Parse("crank.yaml", []byte(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSection)
	assert.ErrorIs(t, err, crank.ErrInvalidWidth)
	assert.ErrorIs(t, err, crank.ErrNegativeDelay)
	assert.Contains(t, err.Error(), "bar:")
	assert.Contains(t, err.Error(), "throbber:")
}
