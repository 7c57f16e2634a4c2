// Package specrepo stores the tool registry backing dispatch lookups.
package specrepo

import (
	"context"
	"log/slog"
	"sync"

	"sportsbridge/internal/domain"
)

// InMemorySpecRepository provides an in-memory implementation of
// usecase.SpecRepository. The registry is written once during initialization
// and only read afterwards; the RWMutex keeps the rare concurrent
// registration path safe.
type InMemorySpecRepository struct {
	mu     sync.RWMutex
	specs  map[string]domain.ToolSpec
	logger *slog.Logger
}

// New creates a new in-memory repository.
func New(logger *slog.Logger) *InMemorySpecRepository {
	return &InMemorySpecRepository{
		specs:  make(map[string]domain.ToolSpec),
		logger: logger.With("component", "spec_repo"),
	}
}

// Save validates and stores the given tool specs. A spec failing its internal
// consistency check (template placeholders not covered by declared parameters)
// rejects the whole batch: that is a programming error, caught at startup.
func (r *InMemorySpecRepository) Save(ctx context.Context, specs []domain.ToolSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			r.logger.Error("Rejecting invalid tool spec", slog.Any("error", err))
			return err
		}
	}
	for _, spec := range specs {
		r.specs[spec.Name] = spec
	}
	r.logger.Info("Saved tool specs", slog.Int("count", len(specs)), slog.Int("total", len(r.specs)))
	return nil
}

// List returns all registered specs.
func (r *InMemorySpecRepository) List(ctx context.Context) ([]domain.ToolSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.ToolSpec, 0, len(r.specs))
	for _, spec := range r.specs {
		list = append(list, spec)
	}
	return list, nil
}

// FindByName retrieves a spec by its unique tool name.
func (r *InMemorySpecRepository) FindByName(ctx context.Context, name string) (*domain.ToolSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[name]
	if !ok {
		r.logger.Warn("Tool spec not found", slog.String("tool_name", name))
		return nil, domain.ErrUnknownTool
	}
	return &spec, nil
}
