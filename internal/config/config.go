// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/crank"
	"github.com/matt-FFFFFF/crank/color"
	"github.com/matt-FFFFFF/crank/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read configuration file")
	// ErrParseConfig is returned when the configuration file cannot be decoded.
	ErrParseConfig = errors.New("failed to parse configuration file")
	// ErrUnsupportedFormat is returned for file extensions other than .yaml, .yml and .hcl.
	ErrUnsupportedFormat = errors.New("unsupported configuration file format")
	// ErrInvalidSection is returned when a section decodes but does not make a valid configuration.
	ErrInvalidSection = errors.New("invalid configuration section")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Config is the resolved configuration for both indicators.
type Config struct {
	Bar      crank.BarConfig
	Throbber crank.ThrobberConfig
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Bar:      crank.DefaultBarConfig(),
		Throbber: crank.DefaultThrobberConfig(),
	}
}

type file struct {
	Bar      *barSection      `yaml:"bar" hcl:"bar,block"`
	Throbber *throbberSection `yaml:"throbber" hcl:"throbber,block"`
}

type barSection struct {
	Colors            []string `yaml:"colors" hcl:"colors,optional"`
	ColorCycleDelayMs *int     `yaml:"color_cycle_delay_ms" hcl:"color_cycle_delay_ms,optional"`
	Width             *int     `yaml:"width" hcl:"width,optional"`
	Plain             bool     `yaml:"plain" hcl:"plain,optional"`
}

type throbberSection struct {
	Frames       []string `yaml:"frames" hcl:"frames,optional"`
	Colors       []string `yaml:"colors" hcl:"colors,optional"`
	FrameDelayMs *int     `yaml:"frame_delay_ms" hcl:"frame_delay_ms,optional"`
	Plain        bool     `yaml:"plain" hcl:"plain,optional"`
}

// Load reads and parses the file at path from the filesystem returned by FsFactory.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadConfig, err)
	}

	ctxlog.Debug(ctx, "loaded configuration file", "path", path, "bytes", len(data))

	return Parse(path, data)
}

// Parse decodes data, choosing the format from the extension of filename,
// and overlays it onto the defaults. Every invalid value is reported.
func Parse(filename string, data []byte) (*Config, error) {
	var f file

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseConfig, filename, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filename, data, evalContext(), &f); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseConfig, filename, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	cfg := Default()

	var result *multierror.Error

	if f.Bar != nil {
		if err := f.Bar.apply(&cfg.Bar); err != nil {
			result = multierror.Append(result, fmt.Errorf("bar: %w", err))
		}
	}

	if f.Throbber != nil {
		if err := f.Throbber.apply(&cfg.Throbber); err != nil {
			result = multierror.Append(result, fmt.Errorf("throbber: %w", err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Join(ErrInvalidSection, err)
	}

	return cfg, nil
}

func (s *barSection) apply(c *crank.BarConfig) error {
	if s.Colors != nil {
		codes, err := color.ParseAll(s.Colors)
		if err != nil {
			return err
		}

		c.Colors = codes
	}

	if s.ColorCycleDelayMs != nil {
		c.ColorCycleDelay = millis(*s.ColorCycleDelayMs)
	}

	if s.Width != nil {
		c.Width = *s.Width
	}

	c.Plain = s.Plain

	return c.Validate()
}

func (s *throbberSection) apply(c *crank.ThrobberConfig) error {
	if s.Frames != nil {
		c.Frames = s.Frames
	}

	if s.Colors != nil {
		codes, err := color.ParseAll(s.Colors)
		if err != nil {
			return err
		}

		c.Colors = codes
	}

	if s.FrameDelayMs != nil {
		c.FrameDelay = millis(*s.FrameDelayMs)
	}

	c.Plain = s.Plain

	return c.Validate()
}

// evalContext exposes the built-in defaults to HCL expressions, for example
// `width = defaults.bar.width / 2`.
func evalContext() *hcl.EvalContext {
	d := Default()

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"bar": cty.ObjectVal(map[string]cty.Value{
					"color_cycle_delay_ms": cty.NumberIntVal(d.Bar.ColorCycleDelay.Milliseconds()),
					"width":                cty.NumberIntVal(int64(d.Bar.Width)),
				}),
				"throbber": cty.ObjectVal(map[string]cty.Value{
					"frames":         stringList(d.Throbber.Frames),
					"frame_delay_ms": cty.NumberIntVal(d.Throbber.FrameDelay.Milliseconds()),
				}),
			}),
		},
	}
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}

	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}

	return cty.ListVal(vals)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
