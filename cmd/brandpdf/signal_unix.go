//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// batchSignals abort an in-flight batch. Cancellation flows through the
// batch context; scratch cleanup still runs via the deferred removal in run.
var batchSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, batchSignals...)
}
