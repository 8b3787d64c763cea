package tests

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/common/domain"
	"github.com/jwar28/rappiclone/pkg/domain/model"
	"github.com/jwar28/rappiclone/pkg/domain/service"
)

var _ model.OrderRepository = &mockOrderRepository{}

type mockOrderRepository struct {
	store     map[uuid.UUID]*model.Order
	createErr error
	deleteErr error

	calls       int
	deleted     []uuid.UUID
	statusCalls int
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{store: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockOrderRepository) ListAll(context.Context) ([]model.Order, error) {
	m.calls++
	orders := make([]model.Order, 0, len(m.store))
	for _, order := range m.store {
		orders = append(orders, *order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID.String() < orders[j].ID.String() })
	return orders, nil
}

func (m *mockOrderRepository) Find(_ context.Context, id uuid.UUID) (*model.Order, error) {
	m.calls++
	if order, ok := m.store[id]; ok {
		clone := *order
		return &clone, nil
	}
	return nil, nil
}

func (m *mockOrderRepository) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]model.Order, error) {
	m.calls++
	var orders []model.Order
	for _, order := range m.store {
		if order.BusinessID == businessID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.Order, error) {
	m.calls++
	var orders []model.Order
	for _, order := range m.store {
		if order.CustomerID == customerID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) FindByIDAndStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) ([]model.Order, error) {
	m.calls++
	if order, ok := m.store[id]; ok && order.Status == status {
		return []model.Order{*order}, nil
	}
	return nil, nil
}

func (m *mockOrderRepository) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	m.calls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, exists := m.store[order.ID]; exists {
		return nil, model.NewRemoteError("insert orders", errors.New("duplicate entry"))
	}
	stored := *order
	m.store[order.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockOrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.OrderStatus, updatedAt time.Time) (*model.Order, error) {
	m.calls++
	m.statusCalls++
	order, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	clone := *order
	return &clone, nil
}

func (m *mockOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.calls++
	m.deleted = append(m.deleted, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.store, id)
	return nil
}

// mockTransactionalOrderRepository persists header and items together.
type mockTransactionalOrderRepository struct {
	*mockOrderRepository
	items *mockOrderItemRepository
}

func (m *mockTransactionalOrderRepository) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.Order, error) {
	if m.items.createErr != nil {
		return nil, m.items.createErr
	}
	created, err := m.mockOrderRepository.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := m.items.CreateItems(ctx, items); err != nil {
		return nil, err
	}
	return created, nil
}

var _ model.OrderItemRepository = &mockOrderItemRepository{}

type mockOrderItemRepository struct {
	items     []model.OrderItem
	createErr error
	calls     int
}

func (m *mockOrderItemRepository) ListByOrder(_ context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	m.calls++
	var items []model.OrderItem
	for _, item := range m.items {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *mockOrderItemRepository) CreateItems(_ context.Context, items []model.OrderItem) error {
	m.calls++
	if m.createErr != nil {
		return m.createErr
	}
	m.items = append(m.items, items...)
	return nil
}

var _ service.OrderCache = &mockOrderCache{}

type mockOrderCache struct {
	added   []model.Order
	updates map[uuid.UUID]model.OrderStatus
}

func (m *mockOrderCache) Add(order model.Order) {
	m.added = append(m.added, order)
}

func (m *mockOrderCache) UpdateOrderStatus(orderID uuid.UUID, status model.OrderStatus) {
	if m.updates == nil {
		m.updates = make(map[uuid.UUID]model.OrderStatus)
	}
	m.updates[orderID] = status
}

var _ model.BusinessRepository = &mockBusinessRepository{}

type mockBusinessRepository struct {
	store map[uuid.UUID]*model.Business
}

func newMockBusinessRepository() *mockBusinessRepository {
	return &mockBusinessRepository{store: make(map[uuid.UUID]*model.Business)}
}

func (m *mockBusinessRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockBusinessRepository) ListAll(context.Context) ([]model.Business, error) {
	businesses := make([]model.Business, 0, len(m.store))
	for _, business := range m.store {
		businesses = append(businesses, *business)
	}
	return businesses, nil
}

func (m *mockBusinessRepository) Find(_ context.Context, id uuid.UUID) (*model.Business, error) {
	if business, ok := m.store[id]; ok {
		clone := *business
		return &clone, nil
	}
	return nil, nil
}

func (m *mockBusinessRepository) FindByName(_ context.Context, name string) (*model.Business, error) {
	for _, business := range m.store {
		if business.Name == name {
			clone := *business
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockBusinessRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Business, error) {
	var businesses []model.Business
	for _, business := range m.store {
		if business.OwnerID == ownerID {
			businesses = append(businesses, *business)
		}
	}
	return businesses, nil
}

func (m *mockBusinessRepository) Create(_ context.Context, business *model.Business) (*model.Business, error) {
	stored := *business
	m.store[business.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockBusinessRepository) Update(_ context.Context, business *model.Business) (*model.Business, error) {
	if _, ok := m.store[business.ID]; !ok {
		return nil, nil
	}
	stored := *business
	m.store[business.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockBusinessRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

var _ model.ProductRepository = &mockProductRepository{}

type mockProductRepository struct {
	store map[uuid.UUID]*model.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockProductRepository) ListAll(context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(m.store))
	for _, product := range m.store {
		products = append(products, *product)
	}
	return products, nil
}

func (m *mockProductRepository) Find(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if product, ok := m.store[id]; ok {
		clone := *product
		return &clone, nil
	}
	return nil, nil
}

func (m *mockProductRepository) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	for _, product := range m.store {
		if product.BusinessID == businessID {
			products = append(products, *product)
		}
	}
	return products, nil
}

func (m *mockProductRepository) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	result := make(map[uuid.UUID]model.Product)
	for _, id := range ids {
		if product, ok := m.store[id]; ok {
			result[id] = *product
		}
	}
	return result, nil
}

func (m *mockProductRepository) Create(_ context.Context, product *model.Product) (*model.Product, error) {
	stored := *product
	m.store[product.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockProductRepository) Update(_ context.Context, product *model.Product) (*model.Product, error) {
	stored := *product
	m.store[product.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

var _ model.ProfileRepository = &mockProfileRepository{}

type mockProfileRepository struct {
	store        map[uuid.UUID]*model.Profile
	findByIDsErr error
	batches      [][]uuid.UUID
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{store: make(map[uuid.UUID]*model.Profile)}
}

func (m *mockProfileRepository) ListAll(context.Context) ([]model.Profile, error) {
	profiles := make([]model.Profile, 0, len(m.store))
	for _, profile := range m.store {
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

func (m *mockProfileRepository) Find(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	if profile, ok := m.store[id]; ok {
		clone := *profile
		return &clone, nil
	}
	return nil, nil
}

func (m *mockProfileRepository) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Profile, error) {
	m.batches = append(m.batches, ids)
	if m.findByIDsErr != nil {
		return nil, m.findByIDsErr
	}
	result := make(map[uuid.UUID]model.Profile)
	for _, id := range ids {
		if profile, ok := m.store[id]; ok {
			result[id] = *profile
		}
	}
	return result, nil
}

func (m *mockProfileRepository) Create(_ context.Context, profile *model.Profile) (*model.Profile, error) {
	stored := *profile
	m.store[profile.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockProfileRepository) Update(_ context.Context, profile *model.Profile) (*model.Profile, error) {
	stored := *profile
	m.store[profile.ID] = &stored
	clone := stored
	return &clone, nil
}

func (m *mockProfileRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

var _ domain.EventDispatcher = &mockEventDispatcher{}

type mockEventDispatcher struct {
	events []domain.Event
}

func (m *mockEventDispatcher) Dispatch(event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
