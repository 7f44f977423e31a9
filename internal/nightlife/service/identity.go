package service

import (
	"context"
	"slices"
	"sync"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/domain"
)

// IdentityProvider is an OAuth login provider such as GitHub. The handshake
// itself is the provider implementation's business; the service only needs
// the redirect URL and the resulting identity.
type IdentityProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (domain.ExternalIdentity, error)
}

// IdentityProviders is the set of providers enabled at startup.
type IdentityProviders struct {
	mu        sync.RWMutex
	providers map[string]IdentityProvider
}

func NewIdentityProviders(providers ...IdentityProvider) *IdentityProviders {
	p := &IdentityProviders{providers: make(map[string]IdentityProvider)}
	for _, provider := range providers {
		p.Register(provider)
	}
	return p
}

func (p *IdentityProviders) Register(provider IdentityProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.providers[provider.Name()] = provider
}

// Get returns the provider called name or ErrUnknownProvider.
func (p *IdentityProviders) Get(name string) (IdentityProvider, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	provider, ok := p.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return provider, nil
}

// Names lists registered providers in sorted order.
func (p *IdentityProviders) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.providers))
	for name := range p.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
