// Package slots persists named text slots: single keys holding the latest
// value written to them. Memory and Bun (SQLite, Postgres) repositories are
// provided; both broadcast change events to subscribers.
package slots

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrSlotNotFound indicates that no value was ever written to the key.
var ErrSlotNotFound = errors.New("slots: slot not found")

// ErrSlotKeyRequired indicates that a slot operation was given an empty key.
var ErrSlotKeyRequired = errors.New("slots: slot key is required")

// Slot is the stored value of a key together with its write metadata.
type Slot struct {
	Key       string
	Value     string
	Revision  uuid.UUID
	UpdatedAt time.Time
}

// Repository exposes persistence operations for slots.
type Repository interface {
	Get(ctx context.Context, key string) (*Slot, error)
	Put(ctx context.Context, key, value string) (*Slot, error)
	Delete(ctx context.Context, key string) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates slot change events.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports a slot mutation to subscribers.
type ChangeEvent struct {
	Type ChangeType
	Slot Slot
}

func normalizeKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", ErrSlotKeyRequired
	}
	return trimmed, nil
}

func newRevision(key, value string, now time.Time) Slot {
	return Slot{
		Key:       key,
		Value:     value,
		Revision:  uuid.New(),
		UpdatedAt: now.UTC(),
	}
}
