// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// payments replays a CSV transaction log and prints the final state of
// every client account as CSV on stdout.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/luxfi/geth/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/luxfi/payments/core"
	"github.com/luxfi/payments/csvio"
)

func lvlFromString(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	case "crit":
		return log.LevelCrit, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
}

var logLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Usage: "log level (trace, debug, info, warn, error, crit)",
	Value: "warn",
}

var app = &cli.App{
	Name:      "payments",
	Usage:     "batch payment-transaction processor",
	ArgsUsage: "<transactions.csv>",
	Flags:     []cli.Flag{logLevelFlag},
}

func init() {
	app.Action = run
	app.Before = func(ctx *cli.Context) error {
		level, err := lvlFromString(ctx.String(logLevelFlag.Name))
		if err != nil {
			return err
		}
		useColor := isatty.IsTerminal(os.Stderr.Fd())
		log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)))
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument, the transactions CSV path")
	}

	sink := csvio.NewWriter(os.Stdout)
	engine := core.NewEngine()
	if err := engine.Process(csvio.NewFileSource(ctx.Args().First()), sink); err != nil {
		return err
	}
	return sink.Flush()
}
