// Package signalwatcher turns termination signals into context cancellation.
package signalwatcher

import (
	"context"
	"os"
	"os/signal"

	"github.com/buildkite/orffinder/logger"
)

// Context returns a copy of parent that is cancelled when the process receives
// one of the watched signals, or when the returned CancelFunc is called.
func Context(parent context.Context, l logger.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, watched...)

	go func() {
		defer signal.Stop(signals)

		select {
		case sig := <-signals:
			l.Notice("Received %v, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
