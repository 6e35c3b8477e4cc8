//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"whirl/app"
	"whirl/hal"
	"whirl/internal/statsview"
)

func main() {
	var cfg hal.HeadlessConfig
	var stats bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.BoolVar(&cfg.Keys, "keys", false, "Headless mode: hold a/b/c on the terminal to press buttons, q to quit.")
	flag.StringVar(&cfg.WAVPath, "wav", "", "Headless mode: write the speaker output to this WAV file on exit.")
	flag.BoolVar(&stats, "statsview", false, "Serve a runtime stats dashboard.")
	flag.Parse()

	if stats {
		statsview.Launch(os.Stderr)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, app.New, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(app.New); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
