//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// batchSignals abort an in-flight batch. SIGTERM does not exist on
// Windows; Ctrl+C delivers os.Interrupt.
var batchSignals = []os.Signal{os.Interrupt}

func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, batchSignals...)
}
