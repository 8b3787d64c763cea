package tests

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// the application services fan out, so every mock here is safe for
// concurrent use

var _ model.BusinessRepository = &mockBusinessRepository{}

type mockBusinessRepository struct {
	mu         sync.Mutex
	businesses []model.Business
	// byOwner overrides the owner lookup; each call takes the next variant
	byOwner [][]model.Business
	calls   int
	err     error
}

func (m *mockBusinessRepository) NextID() (uuid.UUID, error) { return uuid.NewRandom() }

func (m *mockBusinessRepository) ListAll(context.Context) ([]model.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]model.Business(nil), m.businesses...), nil
}

func (m *mockBusinessRepository) Find(_ context.Context, id uuid.UUID) (*model.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.businesses {
		if b.ID == id {
			clone := b
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockBusinessRepository) FindByName(context.Context, string) (*model.Business, error) {
	return nil, nil
}

func (m *mockBusinessRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if len(m.byOwner) > 0 {
		variant := m.byOwner[m.calls%len(m.byOwner)]
		m.calls++
		return append([]model.Business(nil), variant...), nil
	}
	var result []model.Business
	for _, b := range m.businesses {
		if b.OwnerID == ownerID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBusinessRepository) Create(context.Context, *model.Business) (*model.Business, error) {
	return nil, nil
}

func (m *mockBusinessRepository) Update(context.Context, *model.Business) (*model.Business, error) {
	return nil, nil
}

func (m *mockBusinessRepository) Delete(context.Context, uuid.UUID) error { return nil }

var _ model.ProductRepository = &mockProductRepository{}

type mockProductRepository struct {
	mu       sync.Mutex
	products []model.Product
	failFor  map[uuid.UUID]error
	delay    time.Duration
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) { return uuid.NewRandom() }

func (m *mockProductRepository) ListAll(context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Product(nil), m.products...), nil
}

func (m *mockProductRepository) Find(context.Context, uuid.UUID) (*model.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]model.Product, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failFor[businessID]; err != nil {
		return nil, err
	}
	var result []model.Product
	for _, p := range m.products {
		if p.BusinessID == businessID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) FindByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	return map[uuid.UUID]model.Product{}, nil
}

func (m *mockProductRepository) Create(context.Context, *model.Product) (*model.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) Update(context.Context, *model.Product) (*model.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) Delete(context.Context, uuid.UUID) error { return nil }

var _ model.OrderRepository = &mockOrderRepository{}

type mockOrderRepository struct {
	mu     sync.Mutex
	orders []model.Order
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) { return uuid.NewRandom() }

func (m *mockOrderRepository) ListAll(context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Order(nil), m.orders...), nil
}

func (m *mockOrderRepository) Find(context.Context, uuid.UUID) (*model.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Order
	for _, o := range m.orders {
		if o.BusinessID == businessID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *mockOrderRepository) ListByCustomer(context.Context, uuid.UUID) ([]model.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) FindByIDAndStatus(context.Context, uuid.UUID, model.OrderStatus) ([]model.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) Create(context.Context, *model.Order) (*model.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) UpdateStatus(context.Context, uuid.UUID, model.OrderStatus, time.Time) (*model.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) Delete(context.Context, uuid.UUID) error { return nil }

var _ model.ProfileRepository = &mockProfileRepository{}

type mockProfileRepository struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]model.Profile
	batches  [][]uuid.UUID
}

func (m *mockProfileRepository) ListAll(context.Context) ([]model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockProfileRepository) Find(context.Context, uuid.UUID) (*model.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepository) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, append([]uuid.UUID(nil), ids...))
	result := make(map[uuid.UUID]model.Profile)
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (m *mockProfileRepository) Create(context.Context, *model.Profile) (*model.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepository) Update(context.Context, *model.Profile) (*model.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepository) Delete(context.Context, uuid.UUID) error { return nil }
