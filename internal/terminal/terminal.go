// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package terminal implements the single-line redraw protocol used by the indicators:
// return to column 0, clear the line, select a foreground color, write the text
// and reset the color. Each redraw is issued as one Write call.
package terminal

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/matt-FFFFFF/crank/color"
)

// ErrWrite is returned when the underlying writer fails.
var ErrWrite = errors.New("error when writing to terminal")

const (
	carriageReturn = "\r"
	newline        = "\n"
)

// Surface writes redraws to an io.Writer. It holds no lock of its own,
// callers serialize access.
type Surface struct {
	w      io.Writer
	colour bool
}

// New creates a Surface. When colour is false no SGR sequences are emitted.
func New(w io.Writer, colour bool) *Surface {
	return &Surface{
		w:      w,
		colour: colour,
	}
}

// Colour reports whether the surface emits color sequences.
func (s *Surface) Colour() bool {
	return s.colour
}

// Redraw overwrites the current line with text in the given foreground color.
func (s *Surface) Redraw(text string, fg color.Code) error {
	sb := strings.Builder{}
	sb.Grow(len(text) + len(carriageReturn) + len(ansi.EraseEntireLine) + len(color.ResetSequence) + 8)
	sb.WriteString(carriageReturn)
	sb.WriteString(ansi.EraseEntireLine)

	if s.colour {
		sb.WriteString(color.Sequence(fg))
		sb.WriteString(text)
		sb.WriteString(color.ResetSequence)
	} else {
		sb.WriteString(text)
	}

	return s.write(sb.String())
}

// Clear empties the current line and leaves the cursor at column 0.
func (s *Surface) Clear() error {
	return s.write(carriageReturn + ansi.EraseEntireLine)
}

// Newline moves to the next line, leaving the last redraw in place.
func (s *Surface) Newline() error {
	return s.write(newline)
}

func (s *Surface) write(str string) error {
	if _, err := io.WriteString(s.w, str); err != nil {
		return errors.Join(ErrWrite, err)
	}

	return nil
}

// Visible strips escape sequences and carriage returns from out and returns
// the text of the last redraw in each line. It is intended for assertions on
// captured output.
func Visible(out string) []string {
	lines := strings.Split(out, newline)
	res := make([]string, 0, len(lines))

	for _, l := range lines {
		if idx := strings.LastIndex(l, carriageReturn); idx >= 0 {
			l = l[idx+len(carriageReturn):]
		}

		res = append(res, ansi.Strip(l))
	}

	return res
}
