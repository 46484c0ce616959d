// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, opts ...Option) *slog.Logger {
	opts = append(opts, WithDestinationWriter(buf))

	return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...))
}

func TestPrettyHandler_Plain(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf)

	logger.Info("render loop exited", "indicator", "bar")

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "INFO: render loop exited")
	assert.Contains(t, out, `"indicator"`)
	assert.Contains(t, out, `"bar"`)
	assert.NotContains(t, out, "\033[", "no escape codes without colour")
}

func TestPrettyHandler_Colour(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf, WithColour())

	logger.Warn("paint failed")

	assert.Contains(t, buf.String(), "\033[")
}

func TestPrettyHandler_EmptyAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	newTestLogger(buf).Info("no attrs")
	assert.NotContains(t, buf.String(), "{")

	buf.Reset()
	newTestLogger(buf, WithOutputEmptyAttrs()).Info("no attrs")
	assert.Contains(t, buf.String(), "{}")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf).With("frames", 4).WithGroup("state")

	logger.Debug("tick", "frame_index", 3)

	out := buf.String()
	assert.Contains(t, out, `"frames"`)
	assert.Contains(t, out, `"state"`)
	assert.Contains(t, out, `"frame_index"`)
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestPrettyHandler_WriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(errWriter{}))

	r := slog.Record{Level: slog.LevelError, Message: "boom"}
	err := h.Handle(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}
