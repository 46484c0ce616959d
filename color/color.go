// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	sbPadding = 16 // padding for the strings.Builder
)

// ErrUnknownColor is returned by Parse when the name does not match a known color.
var ErrUnknownColor = errors.New("unknown color")

// Code represents an ANSI SGR control code.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
	// ResetSequence clears all SGR attributes.
	ResetSequence = "\033[0m"
	prefix        = "\033["
	suffix        = "m"
)

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var names = map[string]Code{
	"black":     FgBlack,
	"red":       FgRed,
	"green":     FgGreen,
	"yellow":    FgYellow,
	"blue":      FgBlue,
	"magenta":   FgMagenta,
	"cyan":      FgCyan,
	"white":     FgWhite,
	"darkgrey":  FgHiBlack,
	"grey":      FgHiBlack,
	"hiblack":   FgHiBlack,
	"hired":     FgHiRed,
	"higreen":   FgHiGreen,
	"hiyellow":  FgHiYellow,
	"hiblue":    FgHiBlue,
	"himagenta": FgHiMagenta,
	"hicyan":    FgHiCyan,
	"hiwhite":   FgHiWhite,
}

// Parse returns the foreground Code for a color name such as "green" or "hiblue".
// Matching ignores case, spaces, dashes and underscores.
func Parse(name string) (Code, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)

	c, ok := names[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}

	return c, nil
}

// ParseAll parses every name in order, stopping at the first unknown one.
func ParseAll(names []string) ([]Code, error) {
	codes := make([]Code, 0, len(names))

	for _, n := range names {
		c, err := Parse(n)
		if err != nil {
			return nil, err
		}

		codes = append(codes, c)
	}

	return codes, nil
}

// Sequence returns the escape sequence that selects the given codes.
func Sequence(c ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(prefix) + len(suffix) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range c {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)

	return sb.String()
}

var enabled bool

func init() {
	enabled = isColorCapable(os.Stdout)
}

// Colorize returns str wrapped in the given codes followed by a reset,
// or str unchanged when color output is disabled.
func Colorize(str string, codes ...Code) string {
	if !enabled {
		return str
	}

	return Wrap(str, codes...)
}

// Wrap is Colorize without the enabled check.
func Wrap(str string, codes ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(ResetSequence) + sbPadding)
	sb.WriteString(Sequence(codes...))
	sb.WriteString(str)
	sb.WriteString(ResetSequence)

	return sb.String()
}

// Enabled reports whether color output is enabled for stdout.
// It is initialized in package init().
//
// NO_COLOR disables color. Otherwise FORCE_COLOR enables it, and failing that
// color is enabled only when stdout is a terminal, as reported by golang.org/x/term.
func Enabled() bool {
	return enabled
}

// EnabledFor applies the same rules as Enabled to an arbitrary file.
func EnabledFor(f *os.File) bool {
	return isColorCapable(f)
}

func isColorCapable(f *os.File) bool {
	if nc := os.Getenv(NoColor); nc != "" {
		return false
	}

	if fc := os.Getenv(ForceColor); fc != "" {
		return true
	}

	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
