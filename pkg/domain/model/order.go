package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatusTransition = errors.New("order status cannot be changed to the requested state")
)

type OrderStatus string

const (
	Pending    OrderStatus = "pending"
	Preparing  OrderStatus = "preparing"
	Delivering OrderStatus = "delivering"
	Delivered  OrderStatus = "delivered"
)

// nextStatus lists the only legal forward move for every non-terminal status.
var nextStatus = map[OrderStatus]OrderStatus{
	Pending:    Preparing,
	Preparing:  Delivering,
	Delivering: Delivered,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	switch status {
	case Pending, Preparing, Delivering, Delivered:
		return status, true
	}
	return "", false
}

func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := nextStatus[s]
	return next, ok
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := nextStatus[s]
	return ok && next == target
}

// Reached reports whether s is target or a status after it.
func (s OrderStatus) Reached(target OrderStatus) bool {
	for current := target; ; {
		if current == s {
			return true
		}
		next, ok := current.Next()
		if !ok {
			return false
		}
		current = next
	}
}

func (s OrderStatus) Terminal() bool {
	return s == Delivered
}

type Order struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	BusinessID      uuid.UUID       `db:"business_id" json:"business_id"`
	CustomerID      uuid.UUID       `db:"customer_id" json:"customer_id"`
	Status          OrderStatus     `db:"status" json:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"total_amount"`
	ShippingAddress string          `db:"shipping_address" json:"shipping_address"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderItem snapshots product name and unit price at purchase time.
type OrderItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	OrderID     uuid.UUID       `db:"order_id" json:"order_id"`
	ProductID   uuid.NullUUID   `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	ListAll(ctx context.Context) ([]Order, error)
	Find(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	FindByIDAndStatus(ctx context.Context, id uuid.UUID, status OrderStatus) ([]Order, error)
	Create(ctx context.Context, order *Order) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus, updatedAt time.Time) (*Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderItemRepository interface {
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	CreateItems(ctx context.Context, items []OrderItem) error
}

// OrderTransactor is implemented by stores able to persist an order header and
// its items atomically.
type OrderTransactor interface {
	CreateWithItems(ctx context.Context, order *Order, items []OrderItem) (*Order, error)
}
