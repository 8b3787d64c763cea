package store

import (
	"sync"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// Container caches the last fetched collection of one entity family together
// with a loading flag and an error slot. It never fetches on its own.
type Container[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	err     string
}

type (
	BusinessStore = Container[model.Business]
	ProductStore  = Container[model.Product]
	OrderStore    = Container[model.Order]
)

// Items returns a copy of the collection, nil before the first Set or after Clear.
func (c *Container[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.items == nil {
		return nil
	}
	return append(make([]T, 0, len(c.items)), c.items...)
}

// Set replaces the whole collection.
func (c *Container[T]) Set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(make([]T, 0, len(items)), items...)
}

func (c *Container[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.err = ""
}

func (c *Container[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Container[T]) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = loading
}

func (c *Container[T]) Error() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Container[T]) SetError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = message
}
