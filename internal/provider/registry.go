package provider

import (
	"fmt"
	"sort"
)

// Registry holds providers in fixed tier order. Tier priority is assigned
// at construction and never changes: higher tiers are preferred even when
// a lower tier would also succeed, because tiers differ in data richness,
// not just availability.
type Registry struct {
	providers []Provider
}

// NewRegistry builds a registry from the given providers, sorted by tier.
// Duplicate tiers or names are rejected.
func NewRegistry(providers ...Provider) (*Registry, error) {
	tiers := make(map[int]string, len(providers))
	names := make(map[string]bool, len(providers))
	for _, p := range providers {
		if other, dup := tiers[p.Tier()]; dup {
			return nil, fmt.Errorf("tier %d assigned to both %q and %q", p.Tier(), other, p.Name())
		}
		if names[p.Name()] {
			return nil, fmt.Errorf("duplicate provider name %q", p.Name())
		}
		tiers[p.Tier()] = p.Name()
		names[p.Name()] = true
	}

	sorted := make([]Provider, len(providers))
	copy(sorted, providers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Tier() < sorted[j].Tier()
	})

	return &Registry{providers: sorted}, nil
}

// Tiers returns the providers in ascending tier order.
func (r *Registry) Tiers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Get returns the provider with the given name, or nil.
func (r *Registry) Get(name string) Provider {
	for _, p := range r.providers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Len returns the number of registered providers.
func (r *Registry) Len() int { return len(r.providers) }
