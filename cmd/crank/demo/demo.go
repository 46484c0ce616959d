// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package demo implements the crank demo commands.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/crank"
	"github.com/matt-FFFFFF/crank/internal/config"
	"github.com/matt-FFFFFF/crank/internal/ctxlog"
	"github.com/matt-FFFFFF/crank/progress"
	"github.com/urfave/cli/v3"
)

const (
	configFlag   = "config"
	totalFlag    = "total"
	stepFlag     = "step"
	durationFlag = "duration"
	messageFlag  = "message"
	plainFlag    = "plain"
	eventsFlag   = "events"

	eventBufferSize    = 64
	interruptedMessage = "interrupted"
)

// ErrInvalidTotal is returned when --total is not positive.
var ErrInvalidTotal = errors.New("total must be positive")

var heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func logEventsFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  eventsFlag,
		Usage: "Log indicator lifecycle events to stderr",
	}
}

// Flags carry parsed state, so every command gets its own instances.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      configFlag,
			Aliases:   []string{"c"},
			Usage:     "Read indicator settings from a YAML (.yaml, .yml) or HCL (.hcl) file",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:  plainFlag,
			Usage: "Disable colors",
		},
		logEventsFlag(),
	}
}

func barFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  totalFlag,
			Usage: "Number of units of simulated work",
			Value: 100,
		},
		&cli.DurationFlag{
			Name:  stepFlag,
			Usage: "Time taken by each unit of work",
			Value: 25 * time.Millisecond,
		},
	}
}

func throbberFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:  durationFlag,
			Usage: "How long the throbber spins",
			Value: 3 * time.Second,
		},
		&cli.StringFlag{
			Name:  messageFlag,
			Usage: "Message shown next to the throbber",
			Value: "Throbbing...",
		},
	}
}

// RootCmd returns the root command for the demo CLI.
func RootCmd() *cli.Command {
	return &cli.Command{
		Name:        "crank",
		Usage:       "crank demo --total 50",
		Description: "Demonstrates the crank progress bar and throbber against simulated work.",
		Copyright:   "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Commands: []*cli.Command{
			{
				Name:   "bar",
				Usage:  "Show a progress bar filling up",
				Flags:  flags(commonFlags(), barFlags()),
				Action: barAction,
			},
			{
				Name:   "throbber",
				Usage:  "Show a throbber for a fixed duration",
				Flags:  flags(commonFlags(), throbberFlags()),
				Action: throbberAction,
			},
			{
				Name:   "indeterminate",
				Usage:  "Show an indeterminate bar for a fixed duration",
				Flags:  flags([]cli.Flag{logEventsFlag()}, throbberFlags()),
				Action: indeterminateAction,
			},
			{
				Name:   "demo",
				Usage:  "Show a progress bar followed by a throbber",
				Flags:  flags(commonFlags(), barFlags(), throbberFlags()),
				Action: demoAction,
			},
		},
		EnableShellCompletion: true,
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var res []cli.Flag
	for _, g := range groups {
		res = append(res, g...)
	}

	return res
}

func barAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	return runBar(ctx, cmd, cfg.Bar)
}

func throbberAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	return runThrobber(ctx, cmd, cfg.Throbber)
}

func demoAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	if err := runBar(ctx, cmd, cfg.Bar); err != nil {
		return err
	}

	if ctx.Err() != nil {
		return nil
	}

	return runThrobber(ctx, cmd, cfg.Throbber)
}

func indeterminateAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	printHeading(w, "Indeterminate bar")

	opts, closeEvents := indicatorOptions(ctx, cmd, w)
	defer closeEvents()

	b := crank.NewIndeterminateBar(cmd.String(messageFlag), opts...)
	sleep(ctx, cmd.Duration(durationFlag))
	b.Finish()

	return nil
}

func loadConfig(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()

	if path := cmd.String(configFlag); path != "" {
		var err error

		cfg, err = config.Load(ctx, path)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Bool(plainFlag) {
		cfg.Bar.Plain = true
		cfg.Throbber.Plain = true
	}

	return cfg, nil
}

func runBar(ctx context.Context, cmd *cli.Command, cfg crank.BarConfig) error {
	total := cmd.Int(totalFlag)
	if total <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTotal, total)
	}

	w := cmd.Root().Writer
	printHeading(w, "Progress bar")

	opts, closeEvents := indicatorOptions(ctx, cmd, w)
	defer closeEvents()

	bar, err := crank.NewBarWithConfig(uint64(total), cfg, opts...)
	if err != nil {
		return err
	}
	defer bar.Close()

	step := cmd.Duration(stepFlag)
	done := uint64(0)

	// stop one short so the final message is set together with completion
	for done+1 < uint64(total) {
		if !sleep(ctx, step) {
			bar.FinishWithMessage(interruptedMessage)
			bar.Wait()

			return nil
		}

		done++
		bar.Inc(1)
		bar.SetMessage(milestone(done, uint64(total)))
	}

	sleep(ctx, step)
	bar.FinishWithMessage("Done!")
	bar.Wait()

	return nil
}

func runThrobber(ctx context.Context, cmd *cli.Command, cfg crank.ThrobberConfig) error {
	w := cmd.Root().Writer
	printHeading(w, "Throbber")

	opts, closeEvents := indicatorOptions(ctx, cmd, w)
	defer closeEvents()

	th, err := crank.NewThrobberWithConfig(cmd.String(messageFlag), cfg, opts...)
	if err != nil {
		return err
	}

	th.Start()

	finished := sleep(ctx, cmd.Duration(durationFlag))
	th.Close()

	if finished {
		_, _ = fmt.Fprintln(w, "Finished!")
	} else {
		_, _ = fmt.Fprintln(w, interruptedMessage)
	}

	return nil
}

// indicatorOptions keeps the logger from ctx but not its cancellation, so
// an interrupt finishes the indicator with a message instead of freezing it.
// The returned func must be called once the indicator is closed.
func indicatorOptions(ctx context.Context, cmd *cli.Command, w io.Writer) ([]crank.Option, func()) {
	indicatorCtx := context.WithoutCancel(ctx)
	opts := []crank.Option{
		crank.WithContext(indicatorCtx),
		crank.WithWriter(w),
	}

	if !cmd.Bool(eventsFlag) {
		return opts, func() {}
	}

	ctxlog.LevelVar.Set(min(ctxlog.LevelVar.Level(), slog.LevelInfo))

	r := progress.NewChannelReporter(indicatorCtx, eventBufferSize)
	r.Listen(progress.ListenerFunc(func(e progress.Event) {
		ctxlog.Info(indicatorCtx, "indicator event",
			"indicator", e.Indicator.String(),
			"type", e.Type.String(),
			"current", e.Current,
			"total", e.Total,
			"message", e.Message,
		)
	}))

	return append(opts, crank.WithReporter(r)), r.Close
}

func printHeading(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, heading.Render(title))
}

// milestone returns the message shown at a given point of the bar.
func milestone(current, total uint64) string {
	switch pct := current * 100 / total; {
	case pct >= 100:
		return "Complete!"
	case pct >= 75:
		return "Almost there..."
	case pct >= 50:
		return "Halfway done"
	case pct >= 25:
		return "Quarter done"
	default:
		return "Working..."
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
