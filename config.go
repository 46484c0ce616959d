// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package crank

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/crank/color"
)

var (
	// ErrInvalidConfig is returned by the WithConfig constructors when the configuration is rejected.
	ErrInvalidConfig = errors.New("invalid indicator configuration")
	// ErrEmptyPalette is returned when no colors are configured.
	ErrEmptyPalette = errors.New("color palette must not be empty")
	// ErrEmptyFrames is returned when a throbber has no animation frames.
	ErrEmptyFrames = errors.New("frame table must not be empty")
	// ErrInvalidWidth is returned when the bar width is not positive.
	ErrInvalidWidth = errors.New("bar width must be positive")
	// ErrNegativeDelay is returned when a delay is negative.
	ErrNegativeDelay = errors.New("delay must not be negative")
	// ErrInvalidFrameDelay is returned when the throbber frame delay is not positive.
	ErrInvalidFrameDelay = errors.New("frame delay must be positive")
)

const (
	// DefaultBarWidth is the number of characters between the brackets.
	DefaultBarWidth = 40
	// DefaultColorCycleDelay is how often an idle bar is recolored.
	DefaultColorCycleDelay = 600 * time.Millisecond
	// DefaultFrameDelay is the interval between throbber frames.
	DefaultFrameDelay = 150 * time.Millisecond
)

// BarConfig controls how a Bar is drawn.
type BarConfig struct {
	// Colors is the palette cycled through, one step per redraw.
	Colors []color.Code
	// ColorCycleDelay repaints the bar at this interval even when no progress
	// is reported, so the color keeps cycling. Zero disables it.
	ColorCycleDelay time.Duration
	// Width is the number of fill characters when complete.
	Width int
	// Plain disables color output.
	Plain bool
}

// DefaultBarConfig returns the default bar configuration.
func DefaultBarConfig() BarConfig {
	return BarConfig{
		Colors:          []color.Code{color.FgGreen, color.FgYellow, color.FgMagenta, color.FgCyan},
		ColorCycleDelay: DefaultColorCycleDelay,
		Width:           DefaultBarWidth,
	}
}

// Validate reports every problem with the configuration.
func (c BarConfig) Validate() error {
	var result *multierror.Error

	if len(c.Colors) == 0 {
		result = multierror.Append(result, ErrEmptyPalette)
	}

	if c.Width <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: got %d", ErrInvalidWidth, c.Width))
	}

	if c.ColorCycleDelay < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: color cycle delay %s", ErrNegativeDelay, c.ColorCycleDelay))
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

func (c BarConfig) clone() BarConfig {
	c.Colors = slices.Clone(c.Colors)
	return c
}

// ThrobberConfig controls how a Throbber is animated.
type ThrobberConfig struct {
	// Frames are the glyphs shown in order, one per FrameDelay.
	Frames []string
	// Colors is the palette cycled through, one step per frame.
	Colors []color.Code
	// FrameDelay is the interval between frames.
	FrameDelay time.Duration
	// Plain disables color output.
	Plain bool
}

// DefaultThrobberConfig returns the default throbber configuration.
func DefaultThrobberConfig() ThrobberConfig {
	return ThrobberConfig{
		Frames: []string{"|", "/", "-", "\\"},
		Colors: []color.Code{
			color.FgGreen, color.FgYellow, color.FgMagenta, color.FgCyan,
			color.FgBlue, color.FgRed, color.FgWhite, color.FgHiBlack,
		},
		FrameDelay: DefaultFrameDelay,
	}
}

// Validate reports every problem with the configuration.
func (c ThrobberConfig) Validate() error {
	var result *multierror.Error

	if len(c.Frames) == 0 {
		result = multierror.Append(result, ErrEmptyFrames)
	}

	if len(c.Colors) == 0 {
		result = multierror.Append(result, ErrEmptyPalette)
	}

	switch {
	case c.FrameDelay < 0:
		result = multierror.Append(result, fmt.Errorf("%w: frame delay %s", ErrNegativeDelay, c.FrameDelay))
	case c.FrameDelay == 0:
		result = multierror.Append(result, ErrInvalidFrameDelay)
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

func (c ThrobberConfig) clone() ThrobberConfig {
	c.Frames = slices.Clone(c.Frames)
	c.Colors = slices.Clone(c.Colors)

	return c
}
