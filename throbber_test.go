// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package crank

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/matt-FFFFFF/crank/color"
	"github.com/matt-FFFFFF/crank/internal/terminal"
	"github.com/matt-FFFFFF/crank/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func fourFrameConfig() ThrobberConfig {
	return ThrobberConfig{
		Frames:     []string{"|", "/", "-", "\\"},
		Colors:     []color.Code{color.FgRed, color.FgGreen, color.FgBlue},
		FrameDelay: 10 * time.Millisecond,
	}
}

// idleThrobber returns a throbber whose goroutines were never started.
func idleThrobber(buf *bytes.Buffer) *Throbber {
	return newThrobber("working", fourFrameConfig(), newOptions([]Option{WithWriter(buf)}))
}

func TestThrobber_StartsStopped(t *testing.T) {
	th := idleThrobber(&bytes.Buffer{})
	assert.False(t, th.Running())
	assert.False(t, th.tick(), "a stopped throbber does not animate")
	assert.Equal(t, 0, th.snapshot().frameIndex)
}

func TestThrobber_TickWraps(t *testing.T) {
	th := idleThrobber(&bytes.Buffer{})
	th.Start()

	for range 3 {
		require.True(t, th.tick())
	}

	st := th.snapshot()
	assert.Equal(t, 3, st.frameIndex)
	assert.Equal(t, 0, st.colorIndex, "three colors wrap after three ticks")

	require.True(t, th.tick())

	st = th.snapshot()
	assert.Equal(t, 0, st.frameIndex)
	assert.Equal(t, 1, st.colorIndex)
}

func TestThrobber_IndicesCycleModulo(t *testing.T) {
	th := idleThrobber(&bytes.Buffer{})
	th.Start()

	for ticks := 1; ticks <= 25; ticks++ {
		th.tick()

		st := th.snapshot()
		assert.Equal(t, ticks%4, st.frameIndex)
		assert.Equal(t, ticks%3, st.colorIndex)
	}
}

func TestThrobber_StartWhileRunningIsNoop(t *testing.T) {
	th := idleThrobber(&bytes.Buffer{})
	th.Start()
	th.tick()
	th.tick()
	th.Start()

	st := th.snapshot()
	assert.Equal(t, 2, st.frameIndex)
	assert.Equal(t, 2, st.colorIndex)
}

func TestThrobber_StopStartResets(t *testing.T) {
	th := idleThrobber(&bytes.Buffer{})
	th.Start()
	th.tick()
	th.tick()
	th.Stop()
	assert.False(t, th.Running())

	th.Start()

	st := th.snapshot()
	assert.True(t, st.running)
	assert.Equal(t, 0, st.frameIndex)
	assert.Equal(t, 0, st.colorIndex)
}

func TestThrobber_Draw(t *testing.T) {
	buf := &bytes.Buffer{}
	th := idleThrobber(buf)

	th.draw()
	assert.Empty(t, buf.String(), "nothing is drawn or cleared before the first start")

	th.Start()
	th.tick()
	th.draw()
	assert.Equal(t, []string{"/ working"}, terminal.Visible(buf.String()))

	buf.Reset()
	th.Stop()
	th.draw()
	assert.Equal(t, "\r"+ansi.EraseEntireLine, buf.String())

	buf.Reset()
	th.draw()
	assert.Empty(t, buf.String(), "the line is cleared only once")
}

func TestThrobber_DrawWithoutMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	th := newThrobber("", fourFrameConfig(), newOptions([]Option{WithWriter(buf)}))
	th.Start()
	th.draw()

	assert.Equal(t, []string{"|"}, terminal.Visible(buf.String()))
}

func TestThrobber_SetMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	th := idleThrobber(buf)
	th.Start()
	th.SetMessage("almost")
	th.draw()

	assert.Equal(t, []string{"| almost"}, terminal.Visible(buf.String()))
}

func TestThrobber_Animates(t *testing.T) {
	defer goleak.VerifyNone(t)

	buf := &bytes.Buffer{}
	cfg := fourFrameConfig()
	cfg.FrameDelay = 2 * time.Millisecond

	th, err := NewThrobberWithConfig("spinning", cfg, WithWriter(buf))
	require.NoError(t, err)

	th.Start()
	require.Eventually(t, func() bool {
		return th.snapshot().frameIndex > 0
	}, time.Second, time.Millisecond, "animation driver should advance the frame")
	require.Eventually(t, func() bool {
		return th.snapshot().painted
	}, time.Second, time.Millisecond)

	th.Close()

	out := buf.String()
	assert.Contains(t, out, " spinning")
	assert.True(t, strings.HasSuffix(out, "\r"+ansi.EraseEntireLine), "the line is cleared on close")
	assert.False(t, th.Running())
}

func TestThrobber_RestartReusesLoops(t *testing.T) {
	defer goleak.VerifyNone(t)

	buf := &bytes.Buffer{}
	th, err := NewThrobberWithConfig("again", fourFrameConfig(), WithWriter(buf))
	require.NoError(t, err)

	for range 2 {
		th.Start()
		require.Eventually(t, func() bool { return th.snapshot().painted }, time.Second, time.Millisecond)

		th.Stop()
		require.Eventually(t, func() bool { return !th.snapshot().painted }, time.Second, time.Millisecond)
	}

	th.Close()
	th.Close()
}

func TestThrobber_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	th := NewThrobber("ctx", WithContext(ctx), WithWriter(&bytes.Buffer{}))
	th.Start()

	cancel()
	th.wg.Wait()

	assert.False(t, th.Running())
}

func TestThrobber_ReportsEvents(t *testing.T) {
	reporter := progress.NewChannelReporter(context.Background(), 10)
	th := newThrobber("events", fourFrameConfig(), newOptions([]Option{WithWriter(&bytes.Buffer{}), WithReporter(reporter)}))

	th.Start()
	th.Start()
	th.SetMessage("still going")
	th.Stop()
	th.Stop()
	reporter.Close()

	var got []progress.EventType
	for e := range reporter.Events() {
		assert.Equal(t, progress.IndicatorThrobber, e.Indicator)
		got = append(got, e.Type)
	}

	assert.Equal(t, []progress.EventType{
		progress.EventStarted,
		progress.EventMessage,
		progress.EventStopped,
	}, got)
}

func TestNewThrobberWithConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ThrobberConfig
		expected []error
	}{
		{
			name:     "empty tables",
			cfg:      ThrobberConfig{FrameDelay: time.Millisecond},
			expected: []error{ErrEmptyFrames, ErrEmptyPalette},
		},
		{
			name:     "zero delay",
			cfg:      ThrobberConfig{Frames: []string{"."}, Colors: []color.Code{color.FgRed}},
			expected: []error{ErrInvalidFrameDelay},
		},
		{
			name:     "negative delay",
			cfg:      ThrobberConfig{Frames: []string{"."}, Colors: []color.Code{color.FgRed}, FrameDelay: -1},
			expected: []error{ErrNegativeDelay},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := NewThrobberWithConfig("x", tt.cfg)
			require.Error(t, err)
			assert.Nil(t, th)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			for _, e := range tt.expected {
				assert.ErrorIs(t, err, e)
			}
		})
	}
}

func TestThrobberConfig_CopiedAtConstruction(t *testing.T) {
	cfg := fourFrameConfig()
	th := newThrobber("copy", cfg, newOptions([]Option{WithWriter(&bytes.Buffer{})}))

	cfg.Frames[0] = "X"
	assert.Equal(t, "|", th.cfg.Frames[0])
}
