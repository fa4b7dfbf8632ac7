package admin

import (
	"fmt"
	"sync"
)

// SectionDefinition describes one dashboard section.
type SectionDefinition struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Registry holds section definitions and their providers. Sections render in
// registration order, so order here is display order.
type Registry struct {
	mu          sync.RWMutex
	order       []string
	definitions map[string]SectionDefinition
	providers   map[string]SectionProvider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: map[string]SectionDefinition{},
		providers:   map[string]SectionProvider{},
	}
}

// RegisterSection stores a definition together with its provider. Registering
// an existing code replaces the provider but keeps the original position.
func (r *Registry) RegisterSection(def SectionDefinition, provider SectionProvider) error {
	if def.Code == "" {
		return fmt.Errorf("admin: section definition code is required")
	}
	if provider == nil {
		return fmt.Errorf("admin: section %s: provider cannot be nil", def.Code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[def.Code]; !ok {
		r.order = append(r.order, def.Code)
	}
	r.definitions[def.Code] = def
	r.providers[def.Code] = provider
	return nil
}

// Definition fetches a section definition by code.
func (r *Registry) Definition(code string) (SectionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider fetches a section provider by code.
func (r *Registry) Provider(code string) (SectionProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []SectionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]SectionDefinition, 0, len(r.order))
	for _, code := range r.order {
		defs = append(defs, r.definitions[code])
	}
	return defs
}
