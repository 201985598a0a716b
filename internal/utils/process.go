package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// InterruptContext returns a context that is cancelled when the process
// receives an interrupt (Ctrl+C) or termination signal (SIGTERM). A running
// sort observes the cancellation between chunks and merge steps.
func InterruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
