package observability

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownFunc is a function that performs cleanup during shutdown
type ShutdownFunc func(ctx context.Context) error

// ShutdownManager coordinates graceful shutdown across components.
// Registered functions run in reverse order so dependents stop before
// the things they depend on.
type ShutdownManager struct {
	logger  *Logger
	timeout time.Duration

	mu    sync.Mutex
	funcs []namedShutdownFunc
}

type namedShutdownFunc struct {
	name string
	fn   ShutdownFunc
}

// NewShutdownManager creates a shutdown manager with the given timeout
func NewShutdownManager(logger *Logger, timeout time.Duration) *ShutdownManager {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ShutdownManager{
		logger:  logger.WithField("component", "shutdown"),
		timeout: timeout,
	}
}

// Register adds a named cleanup function to run during shutdown
func (m *ShutdownManager) Register(name string, fn ShutdownFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, namedShutdownFunc{name: name, fn: fn})
}

// Wait blocks until SIGINT or SIGTERM, then runs all registered
// shutdown functions
func (m *ShutdownManager) Wait() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	m.logger.WithField("signal", sig.String()).Info("Shutdown signal received")
	m.Shutdown()
}

// Shutdown runs all registered functions in reverse registration order
func (m *ShutdownManager) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.mu.Lock()
	funcs := make([]namedShutdownFunc, len(m.funcs))
	copy(funcs, m.funcs)
	m.mu.Unlock()

	for i := len(funcs) - 1; i >= 0; i-- {
		f := funcs[i]
		m.logger.WithField("target", f.name).Debug("Shutting down component")
		if err := f.fn(ctx); err != nil {
			m.logger.WithError(err).WithField("target", f.name).Error("Shutdown error")
		}
	}
	m.logger.Info("Shutdown complete")
}
