package contact

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mycontacts/mycontacts/internal/apperr"
)

type memoryEntry struct {
	seq     uint64
	contact Contact
}

type memoryRepository struct {
	mu      sync.RWMutex
	seq     uint64
	storage map[string]memoryEntry
}

// NewMemoryRepository constructs an in-memory repository for tests and local development.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]memoryEntry)}
}

func (r *memoryRepository) List(_ context.Context, ownerID string) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]memoryEntry, 0)
	for _, e := range r.storage {
		if e.contact.UserID == ownerID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	contacts := make([]Contact, 0, len(entries))
	for _, e := range entries {
		contacts = append(contacts, e.contact)
	}
	return contacts, nil
}

func (r *memoryRepository) Get(_ context.Context, ownerID, id string) (Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.storage[id]
	if !ok || e.contact.UserID != ownerID {
		return Contact{}, fmt.Errorf("contact: %w", apperr.ErrNotFound)
	}
	return e.contact, nil
}

func (r *memoryRepository) Create(_ context.Context, c Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[c.ID]; exists {
		return fmt.Errorf("%w: contact %s exists", apperr.ErrConflict, c.ID)
	}
	r.seq++
	r.storage[c.ID] = memoryEntry{seq: r.seq, contact: c}
	return nil
}

func (r *memoryRepository) Update(_ context.Context, ownerID, id string, patch UpdateInput, at time.Time) (Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.storage[id]
	if !ok || e.contact.UserID != ownerID {
		return Contact{}, fmt.Errorf("contact: %w", apperr.ErrNotFound)
	}
	if patch.FirstName != nil {
		e.contact.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		e.contact.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		e.contact.Phone = *patch.Phone
	}
	e.contact.UpdatedAt = at.UTC()
	r.storage[id] = e
	return e.contact, nil
}

func (r *memoryRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.storage[id]
	if !ok || e.contact.UserID != ownerID {
		return fmt.Errorf("contact: %w", apperr.ErrNotFound)
	}
	delete(r.storage, id)
	return nil
}
