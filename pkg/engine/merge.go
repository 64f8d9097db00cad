package engine

import (
	"fmt"
	"sort"
	"sync"
)

const (
	// MergeSkip leaves an existing file byte-for-byte untouched. It is the
	// update-mode default.
	MergeSkip = "skip"
	// MergeOverwrite replaces an existing file with the rendered content.
	MergeOverwrite = "overwrite"
)

// MergeStrategy decides the content of a file that already exists when the
// engine runs in update mode. Returning existing unchanged means no write.
type MergeStrategy interface {
	Name() string
	Merge(existing, rendered []byte) ([]byte, error)
}

// MergeFunc adapts a function into a named MergeStrategy.
func MergeFunc(name string, fn func(existing, rendered []byte) ([]byte, error)) MergeStrategy {
	return mergeFunc{name: name, fn: fn}
}

type mergeFunc struct {
	name string
	fn   func(existing, rendered []byte) ([]byte, error)
}

func (m mergeFunc) Name() string { return m.name }

func (m mergeFunc) Merge(existing, rendered []byte) ([]byte, error) {
	return m.fn(existing, rendered)
}

// MergeRegistry stores merge strategies by name.
type MergeRegistry struct {
	mu         sync.RWMutex
	strategies map[string]MergeStrategy
}

// NewMergeRegistry creates a registry holding the built-in skip and overwrite
// strategies.
func NewMergeRegistry() *MergeRegistry {
	r := &MergeRegistry{strategies: make(map[string]MergeStrategy)}
	r.MustRegister(MergeFunc(MergeSkip, func(existing, _ []byte) ([]byte, error) {
		return existing, nil
	}))
	r.MustRegister(MergeFunc(MergeOverwrite, func(_, rendered []byte) ([]byte, error) {
		return rendered, nil
	}))
	return r
}

// Register adds a strategy by its Name(). Duplicate names return an error.
func (r *MergeRegistry) Register(strategy MergeStrategy) error {
	if strategy == nil {
		return fmt.Errorf("engine: merge strategy is required")
	}
	name := strategy.Name()
	if name == "" {
		return fmt.Errorf("engine: merge strategy name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("engine: merge strategy %q already registered", name)
	}
	r.strategies[name] = strategy
	return nil
}

// MustRegister panics on registration failure.
func (r *MergeRegistry) MustRegister(strategy MergeStrategy) {
	if err := r.Register(strategy); err != nil {
		panic(err)
	}
}

// Get retrieves a strategy by name. An empty name resolves to MergeSkip.
func (r *MergeRegistry) Get(name string) (MergeStrategy, error) {
	if name == "" {
		name = MergeSkip
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("engine: merge strategy %q not found", name)
	}
	return strategy, nil
}

// List returns the sorted strategy names.
func (r *MergeRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
