// Package context provides context utilities with proper resource cleanup
package context

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Interrupts returns the signals that stop a run.
func Interrupts() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}

// WithSignal creates a new context that cancels when any of the specified
// signals are received. The returned cancel function must be called to
// stop signal delivery.
//
// Example:
//
//	ctx, cancel := WithSignal(context.Background(), Interrupts()...)
//	defer cancel()
func WithSignal(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, sigs...)
}

// WithSignalTimeout creates a context that cancels on signal or after
// timeout. A timeout of zero or less means no deadline.
func WithSignalTimeout(parent context.Context, timeout time.Duration, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return WithSignal(parent, sigs...)
	}

	timed, cancelTimeout := context.WithTimeout(parent, timeout)
	ctx, stop := signal.NotifyContext(timed, sigs...)
	return ctx, func() {
		stop()
		cancelTimeout()
	}
}
