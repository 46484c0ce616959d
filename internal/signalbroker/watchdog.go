// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/crank/internal/ctxlog"
)

// Watch monitors the signal channel until it is closed or ctx is done.
// The first signal of any type calls interrupt, so running indicators can
// finish with a message. The second signal of a type already seen calls
// cancel and returns.
func Watch(ctx context.Context, sigCh chan os.Signal, interrupt, cancel context.CancelFunc) {
	sigMap := make(map[os.Signal]struct{})

	for {
		var sig os.Signal

		select {
		case <-ctx.Done():
			return
		case s, ok := <-sigCh:
			if !ok {
				return
			}

			sig = s
		}

		if _, ok := sigMap[sig]; ok {
			ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
			cancel()

			return
		}

		ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type, interrupting", "signal", sig.String())

		sigMap[sig] = struct{}{}

		interrupt()
	}
}
