package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

var orderColumns = []string{
	"id", "business_id", "customer_id", "status", "total_amount",
	"shipping_address", "created_at", "updated_at",
}

var orderItemColumns = []string{
	"id", "order_id", "product_id", "product_name", "quantity", "unit_price", "created_at",
}

// OrderRepository is the MySQL order store. Besides the plain row operations
// it persists an order together with its items in a single transaction.
type OrderRepository interface {
	model.OrderRepository
	model.OrderTransactor
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{
		orders: table[model.Order]{db: db, name: "orders", columns: orderColumns},
		items:  table[model.OrderItem]{db: db, name: "order_items", columns: orderItemColumns},
	}
}

type orderRepository struct {
	orders table[model.Order]
	items  table[model.OrderItem]
}

func (r *orderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.orders.listAll(ctx)
}

func (r *orderRepository) Find(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.orders.getByID(ctx, r.orders.db, id)
}

func (r *orderRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Order, error) {
	return r.orders.listWhere(ctx, "business_id = ?", businessID)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	return r.orders.listWhere(ctx, "customer_id = ?", customerID)
}

func (r *orderRepository) FindByIDAndStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) ([]model.Order, error) {
	return r.orders.listWhere(ctx, "id = ? AND status = ?", id, status)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	return r.orders.insert(ctx, r.orders.db, order.ID, order)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, updatedAt time.Time) (*model.Order, error) {
	return r.orders.update(ctx, id, map[string]interface{}{
		"status":     status,
		"updated_at": nonZeroTime(updatedAt),
	})
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.orders.delete(ctx, r.orders.db, id)
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.Order, error) {
	tx, err := r.orders.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, remoteError("begin order transaction", err)
	}

	created, err := r.orders.insert(ctx, tx, order.ID, order)
	if err == nil {
		err = r.items.insertMany(ctx, tx, items)
	}
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.WithError(rbErr).WithField("order_id", order.ID).Warn("failed to roll back order transaction")
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, remoteError("commit order transaction", errors.WithStack(err))
	}
	return created, nil
}

func NewOrderItemRepository(db *sqlx.DB) model.OrderItemRepository {
	return &orderItemRepository{items: table[model.OrderItem]{db: db, name: "order_items", columns: orderItemColumns}}
}

type orderItemRepository struct {
	items table[model.OrderItem]
}

func (r *orderItemRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	return r.items.listWhere(ctx, "order_id = ?", orderID)
}

func (r *orderItemRepository) CreateItems(ctx context.Context, items []model.OrderItem) error {
	return r.items.insertMany(ctx, r.items.db, items)
}
