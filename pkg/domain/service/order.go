package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jwar28/rappiclone/pkg/common/domain"
	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// OrderCache mirrors order changes into the local "recent orders" cache.
type OrderCache interface {
	Add(order model.Order)
	UpdateOrderStatus(orderID uuid.UUID, status model.OrderStatus)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, actor *model.Profile, cart model.Cart, shippingAddress string) (*model.Order, error)
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)
	TrackActive(ctx context.Context, orderID uuid.UUID) ([]model.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, []model.OrderItem, error)
	CustomerOrders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)
}

func NewOrderService(
	orders model.OrderRepository,
	items model.OrderItemRepository,
	cache OrderCache,
	dispatcher domain.EventDispatcher,
) OrderService {
	return &orderService{
		orders:     orders,
		items:      items,
		cache:      cache,
		dispatcher: dispatcher,
	}
}

type orderService struct {
	orders     model.OrderRepository
	items      model.OrderItemRepository
	cache      OrderCache
	dispatcher domain.EventDispatcher
}

func (s *orderService) PlaceOrder(ctx context.Context, actor *model.Profile, cart model.Cart, shippingAddress string) (*model.Order, error) {
	businessID, err := validateCheckout(actor, cart, shippingAddress)
	if err != nil {
		return nil, err
	}

	orderID, err := s.orders.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:              orderID,
		BusinessID:      businessID,
		CustomerID:      actor.ID,
		Status:          model.Pending,
		TotalAmount:     cart.Total(),
		ShippingAddress: strings.TrimSpace(shippingAddress),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		itemID, err := s.orders.NextID()
		if err != nil {
			return nil, err
		}
		items = append(items, model.OrderItem{
			ID:          itemID,
			OrderID:     orderID,
			ProductID:   uuid.NullUUID{UUID: line.ProductID, Valid: line.ProductID != uuid.Nil},
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price,
			CreatedAt:   now,
		})
	}

	created, err := s.persist(ctx, order, items)
	if err != nil {
		return nil, err
	}

	s.cache.Add(*created)
	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:     created.ID,
		BusinessID:  created.BusinessID,
		CustomerID:  created.CustomerID,
		TotalAmount: created.TotalAmount,
	})
	return created, nil
}

func (s *orderService) persist(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.Order, error) {
	if tx, ok := s.orders.(model.OrderTransactor); ok {
		return tx.CreateWithItems(ctx, order, items)
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.items.CreateItems(ctx, items); err != nil {
		// The header must not outlive a failed item insert.
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			log.WithError(delErr).WithField("order_id", order.ID).Warn("failed to delete order header after item insert failure")
		}
		return nil, err
	}
	return created, nil
}

func (s *orderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if _, ok := model.ParseOrderStatus(string(status)); !ok {
		return nil, model.NewValidationError("status", "unknown order status "+string(status))
	}

	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	oldStatus := order.Status
	if oldStatus == status {
		return order, nil
	}
	if !oldStatus.CanTransitionTo(status) {
		return nil, errors.Wrapf(model.ErrInvalidStatusTransition, "%s -> %s", oldStatus, status)
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, status, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.ErrOrderNotFound
	}

	s.cache.UpdateOrderStatus(orderID, status)
	_ = s.dispatcher.Dispatch(model.OrderStatusChanged{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: status,
	})
	return updated, nil
}

// TrackActive returns an empty slice once the order has left pending.
func (s *orderService) TrackActive(ctx context.Context, orderID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orders.FindByIDAndStatus(ctx, orderID, model.Pending)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, []model.OrderItem, error) {
	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, model.ErrOrderNotFound
	}

	items, err := s.items.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *orderService) CustomerOrders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

func validateCheckout(actor *model.Profile, cart model.Cart, shippingAddress string) (uuid.UUID, error) {
	if actor == nil {
		return uuid.Nil, model.NewValidationError("", model.ErrUnauthenticated.Error())
	}
	if cart.Empty() {
		return uuid.Nil, model.NewValidationError("cart", "cart is empty")
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return uuid.Nil, model.NewValidationError("shipping_address", "shipping address is required")
	}

	businessID := cart.Items[0].BusinessID
	for _, item := range cart.Items {
		if item.BusinessID != businessID {
			return uuid.Nil, model.NewValidationError("cart", "cart contains items from more than one business")
		}
		if item.Quantity <= 0 {
			return uuid.Nil, model.NewValidationError("quantity", "quantity must be positive for "+item.Name)
		}
		if item.Price.IsNegative() {
			return uuid.Nil, model.NewValidationError("price", "price cannot be negative for "+item.Name)
		}
	}
	return businessID, nil
}
