package payments

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrMissingCredentials = errors.New("payments credentials are missing")
	ErrNotConnected       = errors.New("payments client is not connected")
)

// Factory builds a gateway for one set of credentials.
type Factory func(ctx context.Context, creds Credentials) (Gateway, error)

// Registry owns one gateway per user. A gateway exists from Connect
// (credentials submitted) until Disconnect (logout). When a shared gateway is
// configured it serves users that never connected their own.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]Gateway
	factory Factory
	shared  Gateway
}

func NewRegistry(factory Factory, shared Gateway) *Registry {
	return &Registry{
		clients: make(map[uint]Gateway),
		factory: factory,
		shared:  shared,
	}
}

// HTTPFactory returns a Factory producing OAuth2-backed HTTP clients.
func HTTPFactory(cfg Config) Factory {
	return func(ctx context.Context, creds Credentials) (Gateway, error) {
		return NewClient(ctx, cfg, creds)
	}
}

func (r *Registry) Connect(ctx context.Context, userID uint, creds Credentials) error {
	gateway, err := r.factory(ctx, creds)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.clients[userID] = gateway
	r.mu.Unlock()
	return nil
}

func (r *Registry) Disconnect(userID uint) {
	r.mu.Lock()
	delete(r.clients, userID)
	r.mu.Unlock()
}

func (r *Registry) Get(userID uint) (Gateway, error) {
	r.mu.RLock()
	gateway, ok := r.clients[userID]
	r.mu.RUnlock()
	if ok {
		return gateway, nil
	}
	if r.shared != nil {
		return r.shared, nil
	}
	return nil, ErrNotConnected
}

func (r *Registry) Connected(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[userID]
	return ok
}

// Users lists the users holding their own gateway, in ascending order.
func (r *Registry) Users() []uint {
	r.mu.RLock()
	users := make([]uint, 0, len(r.clients))
	for userID := range r.clients {
		users = append(users, userID)
	}
	r.mu.RUnlock()
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}
