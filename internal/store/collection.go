package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
)

// Collection is a typed read/write wrapper around one slot. Load falls back
// to the configured seed when the slot is absent or its payload does not
// deserialize; the seed is never written back implicitly.
type Collection[T any] struct {
	store  SlotStore
	key    string
	seed   []T
	bus    Publisher
	logger zerolog.Logger
}

// NewCollection binds a typed collection to its slot key. bus may be nil when
// no change notification is wanted.
func NewCollection[T any](slots SlotStore, key string, seed []T, bus Publisher, logger zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		store:  slots,
		key:    key,
		seed:   seed,
		bus:    bus,
		logger: logger.With().Str("component", "collection").Str("slot", key).Logger(),
	}
}

// Key returns the slot key the collection is bound to.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the stored sequence, or the seed when the slot is missing,
// unreadable, or holds malformed JSON. Failures are logged, never propagated.
func (c *Collection[T]) Load(ctx context.Context) []T {
	payload, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, ErrSlotMissing) {
			c.logger.Warn().Err(err).Msg("slot read failed, serving seed data")
		}
		return c.seedCopy()
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		c.logger.Warn().Err(err).Msg("slot payload malformed, serving seed data")
		return c.seedCopy()
	}

	return items
}

// Save serializes the whole collection and overwrites the slot, then notifies
// the change bus. It is a full replace, not an incremental patch.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}

	if err := c.store.Set(ctx, c.key, payload); err != nil {
		return err
	}

	if c.bus != nil {
		c.bus.Publish(ctx, c.key)
	}

	return nil
}

func (c *Collection[T]) seedCopy() []T {
	items := make([]T, len(c.seed))
	copy(items, c.seed)
	return items
}
