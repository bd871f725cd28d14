package slots

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps slots in process memory. It backs tests and the
// "memory" storage driver.
type MemoryRepository struct {
	mu          sync.RWMutex
	slots       map[string]Slot
	clock       func() time.Time
	broadcaster *changeBroadcaster
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slots:       make(map[string]Slot),
		clock:       time.Now,
		broadcaster: newChangeBroadcaster(),
	}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (*Slot, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	slot, ok := r.slots[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSlotNotFound
	}
	return &slot, nil
}

func (r *MemoryRepository) Put(_ context.Context, key, value string) (*Slot, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	slot := newRevision(key, value, r.clock())

	r.mu.Lock()
	_, exists := r.slots[key]
	r.slots[key] = slot
	r.mu.Unlock()

	eventType := ChangeCreated
	if exists {
		eventType = ChangeUpdated
	}
	r.broadcaster.Broadcast(ChangeEvent{Type: eventType, Slot: slot})

	return &slot, nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	r.mu.Lock()
	slot, ok := r.slots[key]
	if !ok {
		r.mu.Unlock()
		return ErrSlotNotFound
	}
	delete(r.slots, key)
	r.mu.Unlock()

	r.broadcaster.Broadcast(ChangeEvent{Type: ChangeDeleted, Slot: slot})
	return nil
}

// Subscribe delivers change events until ctx is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}
