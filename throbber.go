// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package crank

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-FFFFFF/crank/internal/terminal"
	"github.com/matt-FFFFFF/crank/internal/wake"
	"github.com/matt-FFFFFF/crank/progress"
)

// throbberState is only read or written with Throbber.mu held.
type throbberState struct {
	frameIndex int
	colorIndex int
	running    bool
	message    string
	painted    bool // a frame is on the line and must be cleared on stop
}

// Throbber is an indeterminate spinner. It is created stopped; Start and
// Stop may be called any number of times. All methods are safe for
// concurrent use.
//
// The render loop and the animation driver are started once by the
// constructor and run until Close. While stopped they idle.
type Throbber struct {
	mu       sync.Mutex
	state    throbberState
	cfg      ThrobberConfig
	surface  *terminal.Surface
	signal   *wake.Signal
	reporter progress.Reporter
	logger   *slog.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	writeFailed bool
}

// NewThrobber creates a stopped throbber with the default configuration.
func NewThrobber(message string, opts ...Option) *Throbber {
	t, _ := NewThrobberWithConfig(message, DefaultThrobberConfig(), opts...)
	return t
}

// NewThrobberWithConfig creates a stopped throbber with cfg.
// The error wraps ErrInvalidConfig when cfg fails validation.
func NewThrobberWithConfig(message string, cfg ThrobberConfig, opts ...Option) (*Throbber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := newThrobber(message, cfg, newOptions(opts))
	t.start()

	return t, nil
}

// newThrobber builds the throbber without starting any goroutine.
func newThrobber(message string, cfg ThrobberConfig, o *options) *Throbber {
	ctx, cancel := context.WithCancel(o.ctx)

	return &Throbber{
		state: throbberState{
			message: message,
		},
		cfg:      cfg.clone(),
		surface:  o.surface(cfg.Plain),
		signal:   wake.New(),
		reporter: o.reporter,
		logger:   o.logger(progress.IndicatorThrobber),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (t *Throbber) start() {
	t.wg.Add(2)

	go t.renderLoop()
	go t.animate()
}

// Start begins animating from the first frame and color. It is a no-op if
// the throbber is already running.
func (t *Throbber) Start() {
	t.mu.Lock()

	if !t.state.running {
		t.state.running = true
		t.state.frameIndex = 0
		t.state.colorIndex = 0
		t.report(progress.EventStarted)
	}

	t.mu.Unlock()
	t.signal.Notify()
}

// Stop halts the animation and clears the line.
func (t *Throbber) Stop() {
	t.mu.Lock()

	if t.state.running {
		t.state.running = false
		t.report(progress.EventStopped)
	}

	t.mu.Unlock()
	t.signal.Notify()
}

// SetMessage changes the text shown after the glyph.
func (t *Throbber) SetMessage(msg string) {
	t.mu.Lock()
	t.state.message = msg
	t.report(progress.EventMessage)
	t.mu.Unlock()
	t.signal.Notify()
}

// Running reports whether the throbber is animating.
func (t *Throbber) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.running
}

// Close stops the throbber, clears the line and waits for the background
// goroutines to exit. Close is idempotent.
func (t *Throbber) Close() {
	t.Stop()
	t.cancel()
	t.wg.Wait()
}

func (t *Throbber) renderLoop() {
	defer t.wg.Done()

	t.logger.Debug("render loop started", "frames", len(t.cfg.Frames))

	for {
		select {
		case <-t.ctx.Done():
			t.mu.Lock()
			t.state.running = false
			t.clearLocked()
			t.mu.Unlock()
			t.logger.Debug("render loop closed")

			return
		case <-t.signal.C():
		}

		t.draw()
	}
}

func (t *Throbber) draw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.running {
		t.clearLocked()
		return
	}

	line := t.cfg.Frames[t.state.frameIndex]
	if t.state.message != "" {
		line += " " + t.state.message
	}

	t.swallow(t.surface.Redraw(line, t.cfg.Colors[t.state.colorIndex]))
	t.state.painted = true
}

func (t *Throbber) clearLocked() {
	if !t.state.painted {
		return
	}

	t.state.painted = false
	t.swallow(t.surface.Clear())
}

// animate advances the frame every FrameDelay while running.
func (t *Throbber) animate() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.cfg.FrameDelay)
	defer ticker.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			if t.tick() {
				t.signal.Notify()
			}
		}
	}
}

// tick advances both indices if running and reports whether it did.
func (t *Throbber) tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.running {
		return false
	}

	t.state.frameIndex = (t.state.frameIndex + 1) % len(t.cfg.Frames)
	t.state.colorIndex = (t.state.colorIndex + 1) % len(t.cfg.Colors)

	return true
}

func (t *Throbber) swallow(err error) {
	if err == nil || t.writeFailed {
		return
	}

	t.writeFailed = true
	t.logger.Debug("terminal write failed, further errors suppressed", "error", err)
}

func (t *Throbber) report(et progress.EventType) {
	t.reporter.Report(progress.Event{
		Indicator: progress.IndicatorThrobber,
		Type:      et,
		Message:   t.state.message,
		Timestamp: time.Now(),
	})
}

func (t *Throbber) snapshot() throbberState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}
