package textstore

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-mdpad/internal/slots"
)

const defaultDoc = "# Welcome to mdpad\n\nStart typing your content..."

func TestReadReturnsDefaultWhenNeverWritten(t *testing.T) {
	store := New(slots.NewMemoryRepository(), "markdown-content", defaultDoc)

	if got := store.Read(context.Background()); got != defaultDoc {
		t.Fatalf("expected default %q, got %q", defaultDoc, got)
	}
	if store.Degraded() {
		t.Fatal("missing value must not degrade the store")
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	store := New(repo, "markdown-content", defaultDoc)

	store.Write(ctx, "X")
	if got := store.Read(ctx); got != "X" {
		t.Fatalf("expected X, got %q", got)
	}

	// a new store over the same repository simulates a restart
	restarted := New(repo, "markdown-content", defaultDoc)
	if got := restarted.Read(ctx); got != "X" {
		t.Fatalf("expected X after restart, got %q", got)
	}
}

func TestWriteEmptyStringIsNotDefault(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	New(repo, "k", defaultDoc).Write(ctx, "")

	if got := New(repo, "k", defaultDoc).Read(ctx); got != "" {
		t.Fatalf("expected empty document after restart, got %q", got)
	}
}

func TestWriteFailureDegradesToMemory(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepository{putErr: errors.New("quota exceeded")}
	store := New(repo, "markdown-content", defaultDoc)

	store.Write(ctx, "first")
	if !store.Degraded() {
		t.Fatal("expected store to degrade after a failed write")
	}
	if store.Err() == nil {
		t.Fatal("expected degrade cause to be recorded")
	}
	if got := store.Read(ctx); got != "first" {
		t.Fatalf("expected in-memory value, got %q", got)
	}

	store.Write(ctx, "second")
	if repo.puts != 1 {
		t.Fatalf("expected failed write not to be retried, got %d puts", repo.puts)
	}
	if got := store.Read(ctx); got != "second" {
		t.Fatalf("expected second, got %q", got)
	}
}

func TestReadFailureReturnsDefault(t *testing.T) {
	repo := &failingRepository{getErr: errors.New("disk I/O error")}
	store := New(repo, "markdown-content", defaultDoc)

	if got := store.Read(context.Background()); got != defaultDoc {
		t.Fatalf("expected default on read failure, got %q", got)
	}
	if !store.Degraded() {
		t.Fatal("expected store to degrade after a failed read")
	}
}

func TestNilRepositoryStartsInMemory(t *testing.T) {
	ctx := context.Background()
	store := New(nil, "markdown-content", defaultDoc)

	if !errors.Is(store.Err(), ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", store.Err())
	}
	if got := store.Read(ctx); got != defaultDoc {
		t.Fatalf("expected default, got %q", got)
	}
	store.Write(ctx, "kept")
	if got := store.Read(ctx); got != "kept" {
		t.Fatalf("expected kept, got %q", got)
	}
}

type failingRepository struct {
	getErr error
	putErr error
	puts   int
}

func (f *failingRepository) Get(context.Context, string) (*slots.Slot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return nil, slots.ErrSlotNotFound
}

func (f *failingRepository) Put(context.Context, string, string) (*slots.Slot, error) {
	f.puts++
	return nil, f.putErr
}

func (f *failingRepository) Delete(context.Context, string) error { return nil }

func (f *failingRepository) Subscribe(context.Context) (<-chan slots.ChangeEvent, error) {
	return nil, nil
}
