// internal/backend/registry.go
package backend

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/pkg/printer"
)

// Backend names
const (
	BackendSpooler     = "spooler"
	BackendShell       = "shell"
	BackendUnsupported = "unsupported"
)

// Dependencies are handed to every backend factory
type Dependencies struct {
	Printing config.PrintingConfig
	Runner   printer.CommandRunner
	Logger   *zap.Logger
}

// BackendFactory creates a printer backend
type BackendFactory func(deps Dependencies) (printer.Backend, error)

// Registry maps OS families to backend factories
type Registry struct {
	factories map[string]BackendFactory
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewRegistry creates a new backend registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		factories: make(map[string]BackendFactory),
		logger:    logger,
	}
}

// Register registers a backend factory for an OS family
func (r *Registry) Register(goos string, factory BackendFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[goos] = factory
	r.logger.Debug("Printer backend registered", zap.String("goos", goos))
}

// CreateBackend creates the backend for goos. An OS family without a
// factory gets the unsupported backend, never an error.
func (r *Registry) CreateBackend(goos string, deps Dependencies) (printer.Backend, error) {
	r.mu.RLock()
	factory, exists := r.factories[goos]
	r.mu.RUnlock()

	if !exists {
		r.logger.Info("Using unsupported printer backend", zap.String("goos", goos))
		return NewUnsupportedBackend(goos), nil
	}

	if deps.Logger == nil {
		deps.Logger = r.logger
	}
	b, err := factory(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create printer backend for %s: %w", goos, err)
	}

	r.logger.Info("Printer backend selected",
		zap.String("goos", goos),
		zap.String("backend", b.Name()),
	)
	return b, nil
}

// IsSupported checks if an OS family has a registered backend
func (r *Registry) IsSupported(goos string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[goos]
	return exists
}

// SupportedPlatforms returns registered OS families in sorted order
func (r *Registry) SupportedPlatforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]string, 0, len(r.factories))
	for goos := range r.factories {
		platforms = append(platforms, goos)
	}
	sort.Strings(platforms)
	return platforms
}
