// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

// DefaultMaxItems is the default capacity of a MemoryStore.
const DefaultMaxItems = 100

// Store errors.
var (
	ErrNotFound         = errors.New("item not found")
	ErrCapacityExceeded = errors.New("item storage capacity exceeded")
)

// Store defines the interface for item storage operations.
//
// Implementations keep items in insertion order, assign strictly increasing
// ids that are never reused, and apply every mutation atomically.
type Store interface {
	// List returns all items in insertion order.
	List(ctx context.Context) ([]model.Item, error)

	// Get retrieves an item by its ID.
	Get(ctx context.Context, id int64) (*model.Item, error)

	// Create appends a new item and returns it with its assigned ID.
	Create(ctx context.Context, name string, value int64) (*model.Item, error)

	// Update applies the present fields of patch to an existing item.
	Update(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error)

	// Delete removes an item, keeping the relative order of the rest.
	Delete(ctx context.Context, id int64) error

	// Len returns the number of stored items.
	Len() int

	// Capacity returns the maximum number of items.
	Capacity() int
}

// Fixtures are the items a freshly seeded store starts with.
var Fixtures = []struct {
	Name  string
	Value int64
}{
	{Name: "First Item", Value: 100},
	{Name: "Second Item", Value: 200},
}
