// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package crank

import (
	"strings"
	"time"
)

const (
	// DefaultIndeterminateWidth is the track width of an indeterminate bar.
	DefaultIndeterminateWidth = 20
	// DefaultIndeterminateSegment is the length of the bouncing segment.
	DefaultIndeterminateSegment = 4
	indeterminateFrameDelay     = 80 * time.Millisecond
)

// IndeterminateBar is a bar-shaped throbber: a segment bouncing between the
// brackets, for work of unknown length. It starts running on creation.
type IndeterminateBar struct {
	*Throbber
}

// NewIndeterminateBar creates and starts an indeterminate bar.
func NewIndeterminateBar(message string, opts ...Option) *IndeterminateBar {
	cfg := DefaultThrobberConfig()
	cfg.Frames = IndeterminateFrames(DefaultIndeterminateWidth, DefaultIndeterminateSegment)
	cfg.FrameDelay = indeterminateFrameDelay

	t, _ := NewThrobberWithConfig(message, cfg, opts...)
	t.Start()

	return &IndeterminateBar{Throbber: t}
}

// Finish stops the bar, clears its line and releases its goroutines.
func (b *IndeterminateBar) Finish() {
	b.Close()
}

// IndeterminateFrames returns one full bounce of a segment of the given
// length across a track of width characters: left to right and back, without
// repeating the end positions. A segment as wide as the track yields a single
// full frame. It returns nil if width is not positive.
func IndeterminateFrames(width, segment int) []string {
	if width <= 0 {
		return nil
	}

	segment = min(max(segment, 1), width)
	travel := width - segment

	if travel == 0 {
		return []string{bounceFrame(width, segment, 0)}
	}

	frames := make([]string, 0, 2*travel)
	for pos := 0; pos <= travel; pos++ {
		frames = append(frames, bounceFrame(width, segment, pos))
	}

	for pos := travel - 1; pos > 0; pos-- {
		frames = append(frames, bounceFrame(width, segment, pos))
	}

	return frames
}

func bounceFrame(width, segment, pos int) string {
	sb := strings.Builder{}
	sb.Grow(width + 2)
	sb.WriteString("[")
	sb.WriteString(strings.Repeat(barBlank, pos))
	sb.WriteString(strings.Repeat(barFill, segment))
	sb.WriteString(strings.Repeat(barBlank, width-segment-pos))
	sb.WriteString("]")

	return sb.String()
}
