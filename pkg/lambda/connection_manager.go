package lambda

import (
	"context"
	"sync"

	"fitness-api/internal/config"
	"fitness-api/pkg/server"
)

// ConnectionManager owns the service container for a Lambda process so that
// clients are built once per cold start and reused by warm invocations
type ConnectionManager struct {
	container *server.Container
	mu        sync.RWMutex
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = &ConnectionManager{}
	})
	return globalConnectionManager
}

// Initialize builds the container from cfg. Calling it again after a
// successful initialization is a no-op.
func (cm *ConnectionManager) Initialize(ctx context.Context, cfg *config.Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		return nil
	}

	container, err := server.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}

	cm.container = container
	return nil
}

// GetContainer returns the container, loading configuration on first use.
// A failed initialization is retried on the next call.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.RLock()
	container := cm.container
	cm.mu.RUnlock()
	if container != nil {
		return container, nil
	}

	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		return nil, err
	}
	if err := cm.Initialize(ctx, cfg); err != nil {
		return nil, err
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.container, nil
}

// Cleanup closes the container and forgets it. The runtime calls it when
// the execution environment receives SIGTERM.
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}
	err := cm.container.Close()
	cm.container = nil
	return err
}
