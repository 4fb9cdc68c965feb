package email

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrSenderNotFound is returned when no sender is registered under the
// requested provider name.
var ErrSenderNotFound = errors.New("email sender not found")

// Sender sends outbound emails through one delivery provider.
type Sender interface {
	Type() ProviderName
	Send(ctx context.Context, msg OutboundEmail) (messageID string, err error)
}

// Registry holds all registered email senders.
type Registry struct {
	mu      sync.RWMutex
	senders map[ProviderName]Sender
}

func NewRegistry() *Registry {
	return &Registry{senders: make(map[ProviderName]Sender)}
}

func (r *Registry) Register(s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders[s.Type()] = s
}

func (r *Registry) Get(name ProviderName) (Sender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.senders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSenderNotFound, name)
	}
	return s, nil
}
