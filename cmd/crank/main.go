// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the crank command-line demo.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/crank"
	"github.com/matt-FFFFFF/crank/cmd/crank/demo"
	"github.com/matt-FFFFFF/crank/internal/ctxlog"
	"github.com/matt-FFFFFF/crank/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	defer cancel()

	work, interrupt := context.WithCancel(ctx)
	defer interrupt()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, interrupt, cancel)

	root := demo.RootCmd()
	root.Version = fmt.Sprintf("%s (commit: %s)", crank.Version, crank.Commit)

	err := root.Run(work, os.Args)

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		os.Exit(1)
	}
}
