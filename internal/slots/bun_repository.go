package slots

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var errNoDatabase = errors.New("slots: bun repository requires a database")

// BunRepository stores slots in the mdpad_slots table through Bun.
type BunRepository struct {
	db          *bun.DB
	clock       func() time.Time
	broadcaster *changeBroadcaster
}

// NewBunRepository constructs a Bun-backed repository. Call Migrate once
// before first use so the table exists.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:          db,
		clock:       time.Now,
		broadcaster: newChangeBroadcaster(),
	}
}

// Migrate creates the slots table when it is missing.
func (r *BunRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return errNoDatabase
	}
	_, err := r.db.NewCreateTable().Model((*slotModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (r *BunRepository) Get(ctx context.Context, key string) (*Slot, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}

	model, err := r.find(ctx, key)
	if err != nil {
		return nil, err
	}
	slot := model.toSlot()
	return &slot, nil
}

func (r *BunRepository) Put(ctx context.Context, key, value string) (*Slot, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}

	// The lookup only picks the event type; the write itself is a single
	// upsert so a concurrent writer cannot trip the primary key.
	created := false
	if _, err := r.find(ctx, key); err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			return nil, err
		}
		created = true
	}

	model := slotModelFrom(newRevision(key, value, r.clock()))
	if err := r.upsert(ctx, &model); err != nil {
		return nil, err
	}

	slot := model.toSlot()
	eventType := ChangeUpdated
	if created {
		eventType = ChangeCreated
	}
	r.broadcaster.Broadcast(ChangeEvent{Type: eventType, Slot: slot})
	return &slot, nil
}

func (r *BunRepository) Delete(ctx context.Context, key string) error {
	if r.db == nil {
		return errNoDatabase
	}
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	model, err := r.find(ctx, key)
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(model).WherePK().Exec(ctx); err != nil {
		return err
	}

	r.broadcaster.Broadcast(ChangeEvent{Type: ChangeDeleted, Slot: model.toSlot()})
	return nil
}

// Subscribe delivers change events until ctx is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

func (r *BunRepository) upsert(ctx context.Context, model *slotModel) error {
	_, err := r.db.NewInsert().
		Model(model).
		On("CONFLICT (slot_key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("revision = EXCLUDED.revision").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (r *BunRepository) find(ctx context.Context, key string) (*slotModel, error) {
	var model slotModel
	err := r.db.NewSelect().Model(&model).Where("slot_key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &model, nil
}

type slotModel struct {
	bun.BaseModel `bun:"table:mdpad_slots"`

	Key       string    `bun:"slot_key,pk"`
	Value     string    `bun:"value,notnull"`
	Revision  uuid.UUID `bun:"revision,type:uuid"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func slotModelFrom(slot Slot) slotModel {
	return slotModel{
		Key:       slot.Key,
		Value:     slot.Value,
		Revision:  slot.Revision,
		UpdatedAt: slot.UpdatedAt,
	}
}

func (m *slotModel) toSlot() Slot {
	return Slot{
		Key:       m.Key,
		Value:     m.Value,
		Revision:  m.Revision,
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}
