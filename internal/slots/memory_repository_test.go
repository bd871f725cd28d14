package slots

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepository_PutGetDeleteEvents(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	created, err := repo.Put(ctx, "markdown-content", "# Title")
	if err != nil {
		t.Fatalf("Put() create error = %v", err)
	}
	if created.Key != "markdown-content" || created.Value != "# Title" {
		t.Fatalf("Put() returned %+v", created)
	}
	assertEvent(t, events, ChangeCreated)

	updated, err := repo.Put(ctx, "markdown-content", "# Title\n\nbody")
	if err != nil {
		t.Fatalf("Put() update error = %v", err)
	}
	if updated.Revision == created.Revision {
		t.Fatal("expected a new revision on every write")
	}
	assertEvent(t, events, ChangeUpdated)

	fetched, err := repo.Get(ctx, " markdown-content ")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetched.Value != "# Title\n\nbody" {
		t.Fatalf("Get() returned %q", fetched.Value)
	}

	if err := repo.Delete(ctx, "markdown-content"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	assertEvent(t, events, ChangeDeleted)

	if _, err := repo.Get(ctx, "markdown-content"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestMemoryRepository_RequiresKey(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Put(ctx, "", "x"); !errors.Is(err, ErrSlotKeyRequired) {
		t.Fatalf("expected ErrSlotKeyRequired, got %v", err)
	}
	if _, err := repo.Get(ctx, "  "); !errors.Is(err, ErrSlotKeyRequired) {
		t.Fatalf("expected ErrSlotKeyRequired, got %v", err)
	}
	if err := repo.Delete(ctx, ""); !errors.Is(err, ErrSlotKeyRequired) {
		t.Fatalf("expected ErrSlotKeyRequired, got %v", err)
	}
}

func TestMemoryRepository_EmptyValueIsStored(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Put(ctx, "k", ""); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	slot, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if slot.Value != "" {
		t.Fatalf("expected empty value, got %q", slot.Value)
	}
}

func TestSubscribeClosesChannelOnCancel(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := repo.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func assertEvent(t *testing.T, events <-chan ChangeEvent, want ChangeType) {
	t.Helper()
	select {
	case evt := <-events:
		if evt.Type != want {
			t.Fatalf("expected %s event, got %s", want, evt.Type)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s event", want)
	}
}
