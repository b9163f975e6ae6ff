package statement

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/de-tools/statement-atlas/pkg/services/accounts"
	"github.com/de-tools/statement-atlas/pkg/services/config"
	"github.com/de-tools/statement-atlas/pkg/services/source"
)

// Dependencies are the collaborators handed to a rule-set factory
type Dependencies struct {
	Source   source.Source
	Accounts accounts.Lookup
	Config   *config.Config
}

// Factory builds a RuleSet from its collaborators
type Factory func(deps Dependencies) (RuleSet, error)

// Registry manages rule-set factories keyed by report type
type Registry interface {
	// Register adds a new rule-set factory
	Register(reportType string, factory Factory) error
	// Create instantiates the rule-set registered for reportType
	Create(reportType string, deps Dependencies) (RuleSet, error)
	// ListTypes returns the registered report types in sorted order
	ListTypes() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry holding the given factories
func NewRegistry(factories map[string]Factory) (Registry, error) {
	r := &registry{
		factories: make(map[string]Factory),
	}
	for reportType, factory := range factories {
		if err := r.Register(reportType, factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(reportType string, factory Factory) error {
	key := normalize(reportType)
	if key == "" {
		return fmt.Errorf("report type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("report type %q is already registered", key)
	}

	r.factories[key] = factory
	return nil
}

func (r *registry) Create(reportType string, deps Dependencies) (RuleSet, error) {
	r.mu.RLock()
	factory, exists := r.factories[normalize(reportType)]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, reportType)
	}

	return factory(deps)
}

func (r *registry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for reportType := range r.factories {
		types = append(types, reportType)
	}
	sort.Strings(types)
	return types
}

func normalize(reportType string) string {
	return strings.ToUpper(strings.TrimSpace(reportType))
}
