// Package registry provides a global registry of word provider factories.
// Providers register themselves in init() functions, allowing the CLI to
// pick a source by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/typefall/internal/config"
	"github.com/vovakirdan/typefall/internal/wordbank"
)

// ProviderInfo contains metadata about a registered provider.
type ProviderInfo struct {
	ID          string
	Description string
}

// Factory builds a provider from the word bank configuration. A nil
// provider means the bank runs on its built-in list alone. The closer
// releases whatever the provider holds open.
type Factory func(cfg config.WordBankConfig) (wordbank.Provider, io.Closer, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a provider factory to the registry.
// Panics if a provider with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: provider %q already registered", id))
	}

	factories[id] = f
	descriptions[id] = description
}

// List returns information about all registered providers, sorted by ID.
func List() []ProviderInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ProviderInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ProviderInfo{
			ID:          id,
			Description: descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the provider registered under id.
// Returns an error if the ID is not registered or the factory fails.
func Create(id string, cfg config.WordBankConfig) (wordbank.Provider, io.Closer, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("registry: unknown provider %q", id)
	}

	p, closer, err := f(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("registry: provider %q: %w", id, err)
	}
	if closer == nil {
		closer = nopCloser{}
	}
	return p, closer, nil
}

// Exists checks if a provider with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
