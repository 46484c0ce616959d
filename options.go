// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package crank

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/matt-FFFFFF/crank/color"
	"github.com/matt-FFFFFF/crank/internal/ctxlog"
	"github.com/matt-FFFFFF/crank/internal/terminal"
	"github.com/matt-FFFFFF/crank/progress"
)

// Option implements a functional options pattern for the indicator constructors.
type Option func(o *options)

type options struct {
	ctx      context.Context
	writer   io.Writer
	reporter progress.Reporter
	colour   *bool
}

// WithContext ties the indicator's background goroutines to ctx. Cancelling
// it has the same effect as Close. The logger carried by ctx (see ctxlog) is
// used for diagnostics.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithWriter sets where the indicator is drawn. The default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithReporter sends lifecycle events to r. Reporting happens while the
// indicator's lock is held, so r must not block.
func WithReporter(r progress.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithColour forces color output on or off, overriding terminal detection.
func WithColour(enabled bool) Option {
	return func(o *options) {
		o.colour = &enabled
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		ctx:    context.Background(),
		writer: os.Stdout,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.reporter == nil {
		o.reporter = progress.NewNullReporter()
	}

	return o
}

// surface builds the terminal surface. Color is used when forced with
// WithColour, or when the writer is a color capable file.
func (o *options) surface(plain bool) *terminal.Surface {
	colour := false

	switch {
	case plain:
	case o.colour != nil:
		colour = *o.colour
	default:
		if f, ok := o.writer.(*os.File); ok {
			colour = color.EnabledFor(f)
		}
	}

	return terminal.New(o.writer, colour)
}

func (o *options) logger(indicator progress.Indicator) *slog.Logger {
	return ctxlog.Logger(o.ctx).With("indicator", indicator.String())
}
