// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event represents a state change of an indicator.
type Event struct {
	Indicator Indicator // Which kind of indicator emitted the event
	Type      EventType // What happened
	Current   uint64    // Units completed, bars only
	Total     uint64    // Units expected, bars only
	Message   string    // Message shown next to the indicator
	Timestamp time.Time // When the state change happened
}

// Indicator is the kind of indicator that emitted an event.
type Indicator int

const (
	// IndicatorBar is a determinate progress bar.
	IndicatorBar Indicator = iota
	// IndicatorThrobber is an indeterminate spinner.
	IndicatorThrobber
)

// String implements the Stringer interface for Indicator.
func (i Indicator) String() string {
	switch i {
	case IndicatorBar:
		return "bar"
	case IndicatorThrobber:
		return "throbber"
	default:
		return "unknown"
	}
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventStarted indicates a bar was created or a throbber started animating.
	EventStarted EventType = iota
	// EventProgress indicates a bar advanced.
	EventProgress
	// EventMessage indicates the message changed.
	EventMessage
	// EventCompleted indicates a bar reached its total or was finished explicitly.
	EventCompleted
	// EventStopped indicates a throbber stopped animating.
	EventStopped
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventMessage:
		return "message"
	case EventCompleted:
		return "completed"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Fraction returns Current/Total clamped to [0, 1]. A zero Total is complete.
func (e Event) Fraction() float64 {
	if e.Total == 0 {
		return 1
	}

	f := float64(e.Current) / float64(e.Total)
	if f > 1 {
		return 1
	}

	return f
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends an event. Implementations must be non-blocking
	// and handle the case where the receiver is not listening.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives progress events.
type Listener interface {
	// OnEvent is called for each event. Implementations should return quickly.
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(event Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// NullReporter is a no-op implementation of Reporter.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(_ Event) {}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
