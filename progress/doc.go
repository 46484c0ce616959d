// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress defines the lifecycle events emitted by bars and throbbers.
// A Reporter can be attached to an indicator to observe increments, message
// changes and completion without reading the terminal output. Reporting is
// always non-blocking so that a slow listener never stalls the producer.
package progress
