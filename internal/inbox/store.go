// Package inbox persists contact messages for the admin view.
package inbox

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/williambechay/portfolio/internal/backend"
)

// Store persists contact messages. List returns newest first.
type Store interface {
	Insert(ctx context.Context, msg backend.NewMessage) (backend.StoredMessage, error)
	List(ctx context.Context) ([]backend.StoredMessage, error)
}

// MemoryStore keeps messages in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []backend.StoredMessage
	nextID   int64
	now      func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, now: time.Now}
}

// Insert stores msg with the next ID and the current time.
func (m *MemoryStore) Insert(ctx context.Context, msg backend.NewMessage) (backend.StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return backend.StoredMessage{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := backend.StoredMessage{
		ID:        m.nextID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Reason:    msg.Reason,
		Message:   msg.Message,
		CreatedAt: m.now().UTC(),
	}
	m.nextID++
	m.messages = append(m.messages, stored)
	return stored, nil
}

// List returns a copy of all messages ordered by created_at descending.
func (m *MemoryStore) List(ctx context.Context) ([]backend.StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := append([]backend.StoredMessage(nil), m.messages...)
	m.mu.RUnlock()
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(messages []backend.StoredMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}
