package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds container-backed tests.
const DefaultTimeout = 30 * time.Second

// Context returns a context that expires after DefaultTimeout and is cancelled with the test.
func Context(t testing.TB) context.Context {
	return ContextWithTimeout(t, DefaultTimeout)
}

// ContextWithTimeout создаёт context с timeout и автоматически отменяет его при завершении теста.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

// ContextWithCancel returns a cancellable context; cancel also runs at test cleanup
// so journal goroutines never outlive the test.
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx, cancel
}
