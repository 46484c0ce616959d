// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package wake provides a coalescing wake-up signal for render loops.
//
// Any number of Notify calls made before the waiter consumes the signal
// collapse into a single wakeup. A Notify with no waiter present is
// remembered for exactly one subsequent wait.
package wake

import (
	"context"
)

// Signal is a single-slot notification. The zero value is not usable, use New.
type Signal struct {
	ch chan struct{}
}

// New returns a Signal with no pending notification.
func New() *Signal {
	return &Signal{
		ch: make(chan struct{}, 1),
	}
}

// Notify marks the signal as pending. It never blocks.
func (s *Signal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
		// already pending
	}
}

// C returns the channel that receives one value per pending notification.
// Receiving from it consumes the notification.
func (s *Signal) C() <-chan struct{} {
	return s.ch
}

// Wait blocks until the signal is notified or the context is done.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports whether a notification is waiting to be consumed.
// It does not consume it.
func (s *Signal) Pending() bool {
	return len(s.ch) > 0
}
