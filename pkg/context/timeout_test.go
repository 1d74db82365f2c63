//go:build unix

package context

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func TestWithSignalTimeoutExpires(t *testing.T) {
	ctx, cancel := WithSignalTimeout(context.Background(), 20*time.Millisecond, syscall.SIGUSR1)
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context did not expire")
	}
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Errorf("Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}

func TestWithSignalTimeoutZeroHasNoDeadline(t *testing.T) {
	ctx, cancel := WithSignalTimeout(context.Background(), 0, syscall.SIGUSR1)
	defer cancel()

	if _, ok := ctx.Deadline(); ok {
		t.Error("expected no deadline")
	}
	cancel()
	if ctx.Err() == nil {
		t.Error("cancel did not cancel the context")
	}
}

func TestWithSignalCancelsOnSignal(t *testing.T) {
	ctx, cancel := WithSignal(context.Background(), syscall.SIGUSR1)
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled by signal")
	}
}

func TestWithSignalParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := WithSignal(parent, syscall.SIGUSR1)
	defer cancel()

	cancelParent()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not follow parent")
	}
}

func TestInterrupts(t *testing.T) {
	if len(Interrupts()) != 2 {
		t.Errorf("Interrupts() = %v", Interrupts())
	}
}
