// Package strategies wires the individual forecast strategies behind a
// name-keyed registry.
package strategies

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/staybase/demandcast/internal/strategies/arima"
	"github.com/staybase/demandcast/internal/strategies/garch"
	"github.com/staybase/demandcast/internal/strategies/neural"
	"github.com/staybase/demandcast/internal/strategies/smoothing"
	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/interfaces"
)

// Registry implements interfaces.StrategyRegistry.
type Registry struct {
	creators map[string]interfaces.StrategyCreateFunc
	mu       sync.RWMutex
	logger   *logrus.Logger
}

// NewRegistry creates a registry with the four default strategies
// registered under their method names.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
	}

	registry := &Registry{
		creators: make(map[string]interfaces.StrategyCreateFunc),
		logger:   logger,
	}
	registry.registerDefaults()
	return registry
}

// Create returns a new strategy instance for the given method name.
func (r *Registry) Create(method string) (interfaces.Strategy, error) {
	r.mu.RLock()
	create, exists := r.creators[method]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NewUnknownMethodError(method)
	}
	return create(), nil
}

// Register adds a strategy creator under a method name.
func (r *Registry) Register(method string, create interfaces.StrategyCreateFunc) error {
	if method == "" {
		return errors.NewValidationError(errors.CodeInvalidInput, "strategy method name cannot be empty")
	}
	if create == nil {
		return errors.NewValidationError(errors.CodeInvalidInput, "strategy create function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.creators[method] = create

	r.logger.WithFields(logrus.Fields{
		"method": method,
	}).Debug("Registered forecast strategy")

	return nil
}

// Available lists the registered method names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods := make([]string, 0, len(r.creators))
	for method := range r.creators {
		methods = append(methods, method)
	}
	return methods
}

func (r *Registry) registerDefaults() {
	r.creators[constants.MethodARIMA] = func() interfaces.Strategy {
		return arima.New(nil, r.logger)
	}
	r.creators[constants.MethodExponential] = func() interfaces.Strategy {
		return smoothing.New(nil, r.logger)
	}
	r.creators[constants.MethodGARCH] = func() interfaces.Strategy {
		return garch.New(nil, r.logger)
	}
	r.creators[constants.MethodNeural] = func() interfaces.Strategy {
		return neural.New(nil, r.logger)
	}
}
