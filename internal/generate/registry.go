package generate

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrUnknownProvider is returned by Get for names nothing registered.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrDuplicateProvider is returned by Register for a name already taken.
	ErrDuplicateProvider = errors.New("provider already registered")
)

// Registry holds the generation providers available to one process, keyed
// by lower-cased name so "OpenAI" from the environment finds "openai".
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

func providerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds p under its name.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return errors.New("register provider: nil")
	}
	key := providerKey(p.Name())
	if key == "" {
		return errors.New("register provider: empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, key)
	}
	r.providers[key] = p
	return nil
}

// Get returns the provider registered under name. The error wraps
// ErrUnknownProvider and lists what is available.
func (r *Registry) Get(name string) (Provider, error) {
	key := providerKey(name)

	r.mu.RLock()
	p, ok := r.providers[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, name, strings.Join(r.List(), ", "))
	}
	return p, nil
}

// List returns the registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.providers))
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[providerKey(name)]
	return ok
}
