// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package crank

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/matt-FFFFFF/crank/internal/terminal"
	"github.com/matt-FFFFFF/crank/internal/wake"
	"github.com/matt-FFFFFF/crank/progress"
)

const (
	barFill  = "="
	barBlank = " "
)

// barState is only read or written with Bar.mu held.
type barState struct {
	current    uint64
	total      uint64
	finished   bool
	message    string
	colorIndex int
	closed     bool // the terminal frame has been painted
}

// Bar is a determinate progress bar. All methods are safe for concurrent use.
type Bar struct {
	mu       sync.Mutex
	state    barState
	cfg      BarConfig
	surface  *terminal.Surface
	signal   *wake.Signal
	reporter progress.Reporter
	logger   *slog.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	done        chan struct{}
	writeFailed bool
}

// NewBar creates a bar with the default configuration and starts drawing it.
func NewBar(total uint64, opts ...Option) *Bar {
	b, _ := NewBarWithConfig(total, DefaultBarConfig(), opts...)
	return b
}

// NewBarWithConfig creates a bar with cfg and starts drawing it.
// The error wraps ErrInvalidConfig when cfg fails validation.
func NewBarWithConfig(total uint64, cfg BarConfig, opts ...Option) (*Bar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := newBar(total, cfg, newOptions(opts))
	b.start()

	return b, nil
}

// newBar builds the bar without starting any goroutine.
func newBar(total uint64, cfg BarConfig, o *options) *Bar {
	ctx, cancel := context.WithCancel(o.ctx)

	return &Bar{
		state: barState{
			total:    total,
			finished: total == 0,
		},
		cfg:      cfg.clone(),
		surface:  o.surface(cfg.Plain),
		signal:   wake.New(),
		reporter: o.reporter,
		logger:   o.logger(progress.IndicatorBar),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

func (b *Bar) start() {
	b.mu.Lock()
	b.report(progress.EventStarted)
	b.mu.Unlock()

	b.wg.Add(1)

	go b.renderLoop()

	if b.cfg.ColorCycleDelay > 0 {
		b.wg.Add(1)

		go b.pace()
	}

	// draw the empty bar straight away
	b.signal.Notify()
}

// Inc advances the bar by delta, never past its total. It is a no-op once
// the bar has finished. Reaching the total finishes the bar.
func (b *Bar) Inc(delta uint64) {
	b.mu.Lock()

	if b.state.finished {
		b.mu.Unlock()
		return
	}

	// compare before adding so a huge delta cannot overflow
	if delta >= b.state.total-b.state.current {
		b.state.current = b.state.total
		b.state.finished = true
	} else {
		b.state.current += delta
	}

	b.report(progress.EventProgress)

	if b.state.finished {
		b.report(progress.EventCompleted)
	}

	b.mu.Unlock()
	b.signal.Notify()
}

// SetMessage changes the text shown after the percentage. It is ignored once
// the bar has finished.
func (b *Bar) SetMessage(msg string) {
	b.mu.Lock()

	if b.state.finished {
		b.mu.Unlock()
		return
	}

	b.state.message = msg
	b.report(progress.EventMessage)
	b.mu.Unlock()
	b.signal.Notify()
}

// Finish completes the bar, keeping the current message.
func (b *Bar) Finish() {
	b.mu.Lock()
	b.finishLocked()
	b.mu.Unlock()
	b.signal.Notify()
}

// FinishWithMessage completes the bar and replaces its message.
// It applies even if the bar has already finished.
func (b *Bar) FinishWithMessage(msg string) {
	b.mu.Lock()
	b.state.message = msg
	b.finishLocked()
	b.mu.Unlock()
	b.signal.Notify()
}

func (b *Bar) finishLocked() {
	wasFinished := b.state.finished
	b.state.current = b.state.total
	b.state.finished = true

	if !wasFinished {
		b.report(progress.EventCompleted)
	}
}

// Wait blocks until the bar has drawn its final frame, either because it
// finished or because it was closed.
func (b *Bar) Wait() {
	<-b.done
}

// Done returns a channel that is closed once the bar has drawn its final frame.
func (b *Bar) Done() <-chan struct{} {
	return b.done
}

// Close stops the bar's goroutines and waits for them. An unfinished bar is
// left on screen as it stands. Close is idempotent.
func (b *Bar) Close() {
	b.cancel()
	b.wg.Wait()
}

func (b *Bar) renderLoop() {
	defer b.wg.Done()
	defer close(b.done)
	// the pacer has no reason to outlive the render loop
	defer b.cancel()

	b.logger.Debug("render loop started", "total", b.state.total)

	for {
		select {
		case <-b.ctx.Done():
			b.mu.Lock()
			b.paintFinal()
			b.mu.Unlock()
			b.logger.Debug("render loop closed")

			return
		case <-b.signal.C():
		}

		if b.step() {
			b.logger.Debug("render loop finished")
			return
		}
	}
}

// step paints one frame and reports whether it was the terminal frame.
func (b *Bar) step() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.finished {
		b.paintFinal()
		return true
	}

	b.paint()
	b.state.colorIndex = (b.state.colorIndex + 1) % len(b.cfg.Colors)

	return false
}

// paintFinal draws the last frame once and moves off the line.
func (b *Bar) paintFinal() {
	if b.state.closed {
		return
	}

	b.state.closed = true
	b.paint()
	b.swallow(b.surface.Newline())
}

func (b *Bar) paint() {
	line := renderBar(b.state.current, b.state.total, b.cfg.Width, b.state.message)
	b.swallow(b.surface.Redraw(line, b.cfg.Colors[b.state.colorIndex]))
}

// swallow drops write errors, logging the first one.
func (b *Bar) swallow(err error) {
	if err == nil || b.writeFailed {
		return
	}

	b.writeFailed = true
	b.logger.Debug("terminal write failed, further errors suppressed", "error", err)
}

// pace wakes the render loop every ColorCycleDelay.
func (b *Bar) pace() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.ColorCycleDelay)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			b.signal.Notify()
		}
	}
}

func (b *Bar) report(t progress.EventType) {
	b.reporter.Report(progress.Event{
		Indicator: progress.IndicatorBar,
		Type:      t,
		Current:   b.state.current,
		Total:     b.state.total,
		Message:   b.state.message,
		Timestamp: time.Now(),
	})
}

// snapshot returns a copy of the state.
func (b *Bar) snapshot() barState {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// fraction is current/total clamped to 1. A zero total counts as complete.
func fraction(current, total uint64) float64 {
	if total == 0 {
		return 1
	}

	return math.Min(float64(current)/float64(total), 1)
}

// renderBar formats "[=====     ] 50% message".
func renderBar(current, total uint64, width int, message string) string {
	p := fraction(current, total)
	filled := int(math.Round(p * float64(width)))
	percent := int(math.Round(p * 100))

	sb := strings.Builder{}
	sb.Grow(width + len(message) + 8)
	sb.WriteString("[")
	sb.WriteString(strings.Repeat(barFill, filled))
	sb.WriteString(strings.Repeat(barBlank, width-filled))
	sb.WriteString("] ")
	sb.WriteString(strconv.Itoa(percent))
	sb.WriteString("%")

	if message != "" {
		sb.WriteString(" ")
		sb.WriteString(message)
	}

	return sb.String()
}
