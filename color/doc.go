// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color provides the ANSI foreground codes used for indicator palettes.
// It decides whether color output is enabled from the NO_COLOR and FORCE_COLOR
// environment variables, falling back to terminal detection of stdout using the
// golang.org/x/term package. Color names can be parsed so that palettes may be
// supplied in configuration files.
package color
