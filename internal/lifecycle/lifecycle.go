// Package lifecycle orchestrates startup and shutdown of the long-running
// server components.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/netatlas/netatlas/internal/logging"
)

// Component is implemented by everything the manager supervises.
type Component interface {
	// Start initializes the component. It must return promptly; long-running
	// work belongs in goroutines the component owns.
	Start(ctx context.Context) error

	// Stop shuts the component down, respecting the context deadline.
	Stop(ctx context.Context) error

	// Name returns the human-readable component name used in logs.
	Name() string
}

// Manager starts registered components in registration order and stops them
// in reverse, giving each its own shutdown grace period. A failed start
// rolls back the components already running.
type Manager struct {
	mu              sync.Mutex
	components      []Component
	started         []Component
	shutdownTimeout time.Duration
	logger          *logging.Logger
}

// NewManager creates a manager with a 30-second per-component shutdown grace
// period.
func NewManager() *Manager {
	return &Manager{
		shutdownTimeout: 30 * time.Second,
		logger:          logging.GetLogger("lifecycle"),
	}
}

// Register adds a component. Components start in registration order, so
// register dependencies before their dependents.
func (m *Manager) Register(c Component) error {
	if c == nil {
		return fmt.Errorf("cannot register nil component")
	}
	if c.Name() == "" {
		return fmt.Errorf("component must have a non-empty name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.components {
		if existing == c {
			return fmt.Errorf("component %s is already registered", c.Name())
		}
	}
	m.components = append(m.components, c)
	return nil
}

// Start starts every registered component. On failure the already started
// components are stopped in reverse order and the error is returned.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = nil
	for _, c := range m.components {
		m.logger.Info("Starting %s", c.Name())
		begin := time.Now()

		if err := c.Start(ctx); err != nil {
			m.logger.Error("Failed to start %s: %v", c.Name(), err)
			m.rollback()
			return fmt.Errorf("failed to start %s: %w", c.Name(), err)
		}

		m.started = append(m.started, c)
		m.logger.Info("%s started (took %dms)", c.Name(), time.Since(begin).Milliseconds())
	}

	m.logger.Info("All components started")
	return nil
}

// Stop stops the started components in reverse order. Shutdown errors are
// logged, never fatal: every component gets its chance to stop.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.started) - 1; i >= 0; i-- {
		c := m.started[i]
		m.logger.Info("Stopping %s", c.Name())

		stopCtx, cancel := context.WithTimeout(ctx, m.shutdownTimeout)
		if err := c.Stop(stopCtx); err != nil {
			m.logger.Error("Error stopping %s: %v", c.Name(), err)
		}
		cancel()
	}

	m.started = nil
	m.logger.Info("All components stopped")
	return nil
}

func (m *Manager) rollback() {
	for i := len(m.started) - 1; i >= 0; i-- {
		c := m.started[i]
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.Stop(ctx); err != nil {
			m.logger.Warn("Error stopping %s during rollback: %v", c.Name(), err)
		}
		cancel()
	}
	m.started = nil
}
