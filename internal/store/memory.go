package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

// MemoryStore implements Store with a bounded, ordered in-memory slice.
// A single RWMutex guards the slice and the id counter.
type MemoryStore struct {
	mu       sync.RWMutex
	items    []model.Item
	nextID   int64
	maxItems int
}

// Option configures a MemoryStore.
type Option func(*options)

type options struct {
	maxItems int
	seed     bool
}

// WithMaxItems sets the store capacity. Non-positive values keep the default.
func WithMaxItems(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxItems = n
		}
	}
}

// WithFixtures seeds the store with Fixtures at construction time.
func WithFixtures() Option {
	return func(o *options) {
		o.seed = true
	}
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := options{maxItems: DefaultMaxItems}
	for _, opt := range opts {
		opt(&o)
	}

	s := &MemoryStore{
		items:    make([]model.Item, 0, o.maxItems),
		nextID:   1,
		maxItems: o.maxItems,
	}

	if o.seed {
		s.seedLocked()
	}

	itemsCapacity.Set(float64(s.maxItems))
	itemsStored.Set(float64(len(s.items)))

	return s
}

// Seed populates an empty store with Fixtures. It is a no-op once the store
// holds any item.
func (s *MemoryStore) Seed(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("seed items: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seedLocked()
	itemsStored.Set(float64(len(s.items)))

	return nil
}

func (s *MemoryStore) seedLocked() {
	if len(s.items) > 0 {
		return
	}

	for _, f := range Fixtures {
		if len(s.items) >= s.maxItems {
			break
		}
		s.items = append(s.items, model.Item{
			ID:    s.nextID,
			Name:  model.Name(f.Name),
			Value: f.Value,
		})
		s.nextID++
	}
}

// List returns all items from the store in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, len(s.items))
	copy(items, s.items)

	observeOperation("list", nil)
	return items, nil
}

// Get retrieves an item by its ID.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		observeOperation("get", ErrNotFound)
		return nil, ErrNotFound
	}

	item := s.items[idx]
	observeOperation("get", nil)
	return &item, nil
}

// Create adds a new item to the store and returns the created item with
// the next ID. A full store is reported before an invalid name.
func (s *MemoryStore) Create(ctx context.Context, name string, value int64) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) >= s.maxItems {
		observeOperation("create", ErrCapacityExceeded)
		return nil, ErrCapacityExceeded
	}

	validName, err := model.NewName(name)
	if err != nil {
		observeOperation("create", err)
		return nil, fmt.Errorf("create item: %w", err)
	}

	newItem := model.Item{
		ID:    s.nextID,
		Name:  validName,
		Value: value,
	}
	s.nextID++
	s.items = append(s.items, newItem)

	itemsStored.Set(float64(len(s.items)))
	observeOperation("create", nil)
	return &newItem, nil
}

// Update modifies an existing item in the store. The patch is validated in
// full before any field is written.
func (s *MemoryStore) Update(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("update item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		observeOperation("update", ErrNotFound)
		return nil, ErrNotFound
	}

	updated := s.items[idx]

	if patch.Name != nil {
		validName, err := model.NewName(*patch.Name)
		if err != nil {
			observeOperation("update", err)
			return nil, fmt.Errorf("update item: %w", err)
		}
		updated.Name = validName
	}

	if patch.Value != nil {
		updated.Value = *patch.Value
	}

	s.items[idx] = updated

	observeOperation("update", nil)
	return &updated, nil
}

// Delete removes an item from the store by its ID, shifting later items one
// position earlier.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		observeOperation("delete", ErrNotFound)
		return ErrNotFound
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)

	itemsStored.Set(float64(len(s.items)))
	observeOperation("delete", nil)
	return nil
}

// Len returns the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Capacity returns the maximum number of items the store accepts.
func (s *MemoryStore) Capacity() int {
	return s.maxItems
}

// indexOf returns the position of id, or -1. Callers must hold mu.
func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
