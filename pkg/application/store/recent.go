package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

const DefaultRecentOrdersLimit = 1000

// RecentOrders keeps the orders placed through this process so a customer's
// pending orders can be listed without a store round trip. Once the limit is
// reached the oldest order is dropped.
type RecentOrders struct {
	mu     sync.RWMutex
	limit  int
	orders []model.Order
}

func NewRecentOrders(limit int) *RecentOrders {
	if limit <= 0 {
		limit = DefaultRecentOrdersLimit
	}
	return &RecentOrders{limit: limit}
}

func (r *RecentOrders) Add(order model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, order)
	if len(r.orders) > r.limit {
		r.orders = append([]model.Order(nil), r.orders[len(r.orders)-r.limit:]...)
	}
}

func (r *RecentOrders) UpdateOrderStatus(orderID uuid.UUID, status model.OrderStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == orderID {
			r.orders[i].Status = status
		}
	}
}

// Active lists cached orders still pending.
func (r *RecentOrders) Active() []model.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []model.Order
	for _, order := range r.orders {
		if order.Status == model.Pending {
			active = append(active, order)
		}
	}
	return active
}
