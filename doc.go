// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package crank renders live single-line terminal indicators: a determinate
// progress Bar and an indeterminate Throbber.
//
// Progress is reported from any number of goroutines. Reporting never paints:
// each operation updates the indicator's state under a lock and wakes a
// background render loop, which redraws at its own cadence. Wakeups coalesce,
// so a burst of increments between two redraws costs a single paint.
//
//	bar := crank.NewBar(100)
//	for range 100 {
//		doWork()
//		bar.Inc(1)
//	}
//	bar.Wait()
//
// Every indicator owns background goroutines until it finishes or Close is
// called. Use WithContext to tie that lifetime to a context.
package crank
