package store

import (
	"context"
	"errors"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/prontuario/api/internal/platform/apperr"
)

// ErrUnchanged may be returned from a Mutate callback to skip the save.
// Mutate then returns nil.
var ErrUnchanged = errors.New("collection unchanged")

// Entity is anything stored in a Collection. IDs are positive and assigned
// by NextID.
type Entity interface {
	GetID() int
}

// Collection is a typed view over one named document of a Backend. All
// mutations run load -> mutate -> save under an exclusive per-collection
// lock, so concurrent requests against the same collection are serialized.
type Collection[T Entity] struct {
	name    string
	backend Backend
	logger  zerolog.Logger
	mu      sync.RWMutex
}

func NewCollection[T Entity](name string, backend Backend, logger zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		name:    name,
		backend: backend,
		logger:  logger.With().Str("collection", name).Logger(),
	}
}

func (c *Collection[T]) Name() string { return c.name }

// LoadAll returns the persisted sequence. A missing or unreadable document
// yields an empty sequence: reads fail open so the service boots with no
// prior state.
func (c *Collection[T]) LoadAll(ctx context.Context) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load(ctx)
}

// SaveAll replaces the persisted sequence.
func (c *Collection[T]) SaveAll(ctx context.Context, entities []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, entities)
}

// View runs fn over a snapshot under the read lock.
func (c *Collection[T]) View(ctx context.Context, fn func([]T) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(c.load(ctx))
}

// Mutate loads the sequence, hands it to fn and persists what fn returns,
// all under the write lock. When fn fails nothing is saved.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.load(ctx))
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}

func (c *Collection[T]) load(ctx context.Context) []T {
	payload, err := c.backend.Load(ctx, c.name)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			c.logger.Debug().Msg("collection not found, starting empty")
		} else {
			c.logger.Warn().Err(err).Msg("collection unreadable, starting empty")
		}
		return []T{}
	}

	var entities []T
	if err := json.Unmarshal(payload, &entities); err != nil {
		c.logger.Warn().Err(err).Msg("collection corrupt, starting empty")
		return []T{}
	}
	if entities == nil {
		entities = []T{}
	}
	return entities
}

func (c *Collection[T]) save(ctx context.Context, entities []T) error {
	if err := ctx.Err(); err != nil {
		return apperr.StorageWrite(c.name, err)
	}
	if entities == nil {
		entities = []T{}
	}
	payload, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return apperr.StorageWrite(c.name, err)
	}
	if err := c.backend.Save(ctx, c.name, payload); err != nil {
		c.logger.Error().Err(err).Int("count", len(entities)).Msg("collection save failed")
		return apperr.StorageWrite(c.name, err)
	}
	return nil
}

// NextID returns the last element's id plus one, or 1 for an empty sequence.
// Sequences are append-ordered, so the last element holds the largest id.
func NextID[T Entity](entities []T) int {
	if len(entities) == 0 {
		return 1
	}
	return entities[len(entities)-1].GetID() + 1
}

// IndexOf returns the position of the entity with the given id, or -1.
func IndexOf[T Entity](entities []T, id int) int {
	for i, e := range entities {
		if e.GetID() == id {
			return i
		}
	}
	return -1
}
