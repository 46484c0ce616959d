// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog logger on a context.Context.
//
// The default logger is a pretty console handler on stderr. Its level is taken
// from the CRANK_LOG_LEVEL environment variable ("DEBUG", "INFO", "WARN" or
// "ERROR"), defaulting to WARN.
package ctxlog
