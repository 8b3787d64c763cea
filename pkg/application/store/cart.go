package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// Carts holds one checkout cart per profile. Changes to a cart are serialized;
// different profiles never wait on each other.
type Carts struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*cartEntry
}

type cartEntry struct {
	mu   sync.Mutex
	cart model.Cart
}

func NewCarts() *Carts {
	return &Carts{carts: make(map[uuid.UUID]*cartEntry)}
}

// Update runs fn on the profile's cart and returns a copy of the result. When
// fn fails the cart is left as it was.
func (c *Carts) Update(profileID uuid.UUID, fn func(cart *model.Cart) error) (model.Cart, error) {
	entry := c.entry(profileID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	working := copyCart(entry.cart)
	if err := fn(&working); err != nil {
		return copyCart(entry.cart), err
	}
	entry.cart = working
	return copyCart(working), nil
}

func (c *Carts) Get(profileID uuid.UUID) model.Cart {
	entry := c.entry(profileID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return copyCart(entry.cart)
}

func (c *Carts) Forget(profileID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, profileID)
}

func (c *Carts) entry(profileID uuid.UUID) *cartEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.carts[profileID]
	if !ok {
		entry = &cartEntry{}
		c.carts[profileID] = entry
	}
	return entry
}

func copyCart(cart model.Cart) model.Cart {
	if cart.Items == nil {
		return model.Cart{}
	}
	return model.Cart{Items: append([]model.CartItem(nil), cart.Items...)}
}
