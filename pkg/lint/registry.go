package lint

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the set of known checks, indexed by name and alias.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Check
	aliases map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Check),
		aliases: make(map[string]string),
	}
}

// Register adds a check to the registry. Registering a duplicate name is
// an error.
func (r *Registry) Register(check Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := check.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("check already registered: %s", name)
	}
	r.byName[name] = check
	return nil
}

// MustRegister adds a check and panics on duplicate names. Intended for
// package init time.
func (r *Registry) MustRegister(check Check) {
	if err := r.Register(check); err != nil {
		panic(err)
	}
}

// Alias registers an alternative name for an existing check.
func (r *Registry) Alias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; !exists {
		return fmt.Errorf("alias target not registered: %s", name)
	}
	if _, exists := r.byName[alias]; exists {
		return fmt.Errorf("alias collides with check name: %s", alias)
	}
	r.aliases[alias] = name
	return nil
}

// Get returns the check with the given name or alias.
func (r *Registry) Get(name string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.aliases[name]; ok {
		name = target
	}
	check, ok := r.byName[name]
	return check, ok
}

// All returns every registered check, sorted by name.
func (r *Registry) All() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checks := make([]Check, 0, len(r.byName))
	for _, check := range r.byName {
		checks = append(checks, check)
	}
	sort.Slice(checks, func(i, j int) bool {
		return checks[i].Name() < checks[j].Name()
	})
	return checks
}

// Names returns the sorted names of all registered checks.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the registry that built-in checks register into.
var DefaultRegistry = NewRegistry()
