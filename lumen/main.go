// Command lumen tokenizes, parses and explores lighting DSL sources.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/npillmayer/lumen"
	"github.com/npillmayer/lumen/lumen/cli"
)

func main() {
	var stop context.CancelFunc
	lumen.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cli.Execute()
}
