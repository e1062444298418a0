package inmemory

import (
	"context"
	"sync"

	"github.com/blackmichael/posting/internal/domain"
)

// Repository implements domain.MessageRepository in memory. It remembers the
// last saved message so callers can inspect what the use case stored.
type Repository struct {
	mu       sync.RWMutex
	messages map[string]domain.Message
	last     *domain.Message
}

// NewRepository creates an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		messages: make(map[string]domain.Message),
	}
}

// Save stores msg, replacing any message with the same ID.
func (r *Repository) Save(_ context.Context, msg domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[msg.ID] = msg
	r.last = &msg
	return nil
}

// LastSaved returns the most recently saved message. ok is false when
// nothing has been saved yet.
func (r *Repository) LastSaved() (msg domain.Message, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.last == nil {
		return domain.Message{}, false
	}
	return *r.last, true
}

// Get returns the message stored under id.
func (r *Repository) Get(id string) (domain.Message, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msg, ok := r.messages[id]
	return msg, ok
}

// Len returns the number of stored messages.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}
