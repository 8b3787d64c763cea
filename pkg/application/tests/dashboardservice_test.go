package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwar28/rappiclone/pkg/application/service"
	"github.com/jwar28/rappiclone/pkg/application/store"
	"github.com/jwar28/rappiclone/pkg/domain/model"
)

type dashboardFixture struct {
	service    service.DashboardService
	businesses *mockBusinessRepository
	products   *mockProductRepository
	orders     *mockOrderRepository
	profiles   *mockProfileRepository
	ownerID    uuid.UUID
}

func setup(t *testing.T) *dashboardFixture {
	t.Helper()
	f := &dashboardFixture{
		businesses: &mockBusinessRepository{},
		products:   &mockProductRepository{},
		orders:     &mockOrderRepository{},
		profiles:   &mockProfileRepository{profiles: make(map[uuid.UUID]model.Profile)},
		ownerID:    uuid.New(),
	}
	f.service = service.NewDashboardService(f.businesses, f.products, f.orders, f.profiles)
	return f
}

func (f *dashboardFixture) addBusiness(name string) model.Business {
	business := model.Business{ID: uuid.New(), OwnerID: f.ownerID, Name: name, Category: model.Restaurant, IsActive: true}
	f.businesses.businesses = append(f.businesses.businesses, business)
	return business
}

func (f *dashboardFixture) addOrder(businessID, customerID uuid.UUID) {
	f.orders.orders = append(f.orders.orders, model.Order{ID: uuid.New(), BusinessID: businessID, CustomerID: customerID, Status: model.Pending})
	if _, ok := f.profiles.profiles[customerID]; !ok {
		f.profiles.profiles[customerID] = model.Profile{ID: customerID, Role: model.Customer}
	}
}

func TestLoadBusinessOwnerData(t *testing.T) {
	ctx := context.Background()

	t.Run("Aggregates orders and distinct customers", func(t *testing.T) {
		f := setup(t)
		first := f.addBusiness("First")
		second := f.addBusiness("Second")
		f.products.products = []model.Product{
			{ID: uuid.New(), BusinessID: first.ID, Name: "A"},
			{ID: uuid.New(), BusinessID: second.ID, Name: "B"},
		}

		ana, luis, eva := uuid.New(), uuid.New(), uuid.New()
		f.addOrder(first.ID, ana)
		f.addOrder(first.ID, ana)
		f.addOrder(first.ID, luis)
		f.addOrder(second.ID, luis)
		f.addOrder(second.ID, eva)

		set := store.NewSet()
		published, err := f.service.LoadBusinessOwnerData(ctx, f.ownerID, set)
		require.NoError(t, err)

		snapshot := set.Snapshot()
		assert.Equal(t, published.Orders, snapshot.Orders)
		assert.ElementsMatch(t, published.Profiles, snapshot.Profiles)
		assert.Len(t, snapshot.Businesses, 2)
		assert.Len(t, snapshot.Products, 2)
		assert.Len(t, snapshot.Orders, 5)
		assert.Len(t, snapshot.Profiles, 3)
		assert.False(t, snapshot.Loading)
		assert.Empty(t, snapshot.Error)

		// orders keep business order
		for i, order := range snapshot.Orders {
			if i < 3 {
				assert.Equal(t, first.ID, order.BusinessID)
			} else {
				assert.Equal(t, second.ID, order.BusinessID)
			}
		}

		require.Len(t, f.profiles.batches, 1)
		assert.Equal(t, []uuid.UUID{ana, luis, eva}, f.profiles.batches[0])
	})

	t.Run("No orders skips the profile fetch", func(t *testing.T) {
		f := setup(t)
		f.addBusiness("Quiet")

		set := store.NewSet()
		_, err := f.service.LoadBusinessOwnerData(ctx, f.ownerID, set)
		require.NoError(t, err)

		snapshot := set.Snapshot()
		assert.Len(t, snapshot.Businesses, 1)
		assert.NotNil(t, snapshot.Orders)
		assert.Empty(t, snapshot.Orders)
		assert.Empty(t, snapshot.Profiles)
		assert.Empty(t, f.profiles.batches)
	})

	t.Run("Failure keeps completed steps and reports one message", func(t *testing.T) {
		f := setup(t)
		broken := f.addBusiness("Broken")
		f.products.failFor = map[uuid.UUID]error{broken.ID: model.NewRemoteError("list products", errors.New("permission denied"))}

		set := store.NewSet()
		set.Orders.Set([]model.Order{{ID: uuid.New()}})

		published, err := f.service.LoadBusinessOwnerData(ctx, f.ownerID, set)
		require.Error(t, err)
		assert.Equal(t, "permission denied", published.Error)

		snapshot := set.Snapshot()
		assert.Len(t, snapshot.Businesses, 1)
		assert.Nil(t, snapshot.Products)
		assert.Nil(t, snapshot.Orders)
		assert.False(t, snapshot.Loading)
		assert.Equal(t, "permission denied", snapshot.Error)
		assert.Equal(t, "permission denied", set.Products.Error())
		assert.Equal(t, "permission denied", set.Profiles.Error())
		assert.False(t, set.Orders.Loading())
	})

	t.Run("Owner lookup failure leaves everything empty", func(t *testing.T) {
		f := setup(t)
		f.businesses.err = model.NewRemoteError("list businesses", errors.New("timeout"))

		set := store.NewSet()
		_, err := f.service.LoadBusinessOwnerData(ctx, f.ownerID, set)
		require.Error(t, err)

		snapshot := set.Snapshot()
		assert.Nil(t, snapshot.Businesses)
		assert.Equal(t, "timeout", snapshot.Error)
		assert.False(t, snapshot.Loading)
	})

	t.Run("Concurrent loads never mix results", func(t *testing.T) {
		f := setup(t)
		f.products.delay = time.Millisecond

		variants := make([][]model.Business, 2)
		for v := range variants {
			for i := 0; i < 3; i++ {
				business := model.Business{ID: uuid.New(), OwnerID: f.ownerID}
				variants[v] = append(variants[v], business)
				f.products.products = append(f.products.products, model.Product{ID: uuid.New(), BusinessID: business.ID})
				f.addOrder(business.ID, uuid.New())
			}
		}
		f.businesses.byOwner = variants

		requireOneLoad := func(snapshot store.Snapshot) {
			require.Len(t, snapshot.Businesses, 3)
			owned := make(map[uuid.UUID]bool)
			for _, b := range snapshot.Businesses {
				owned[b.ID] = true
			}
			require.Len(t, snapshot.Products, 3)
			for _, p := range snapshot.Products {
				assert.True(t, owned[p.BusinessID])
			}
			require.Len(t, snapshot.Orders, 3)
			for _, o := range snapshot.Orders {
				assert.True(t, owned[o.BusinessID])
			}
			assert.Len(t, snapshot.Profiles, 3)
		}

		set := store.NewSet()
		for round := 0; round < 10; round++ {
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				published []store.Snapshot
			)
			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					snapshot, err := f.service.LoadBusinessOwnerData(ctx, f.ownerID, set)
					if err == nil {
						mu.Lock()
						published = append(published, snapshot)
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			require.Len(t, published, 4)
			for _, snapshot := range published {
				assert.False(t, snapshot.Loading)
				requireOneLoad(snapshot)
			}
			requireOneLoad(set.Snapshot())
		}
	})
}

func TestAdminDashboard(t *testing.T) {
	f := setup(t)
	f.addBusiness("One")
	f.profiles.profiles[uuid.New()] = model.Profile{Role: model.Admin}

	snapshot, err := f.service.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Businesses, 1)
	assert.Len(t, snapshot.Profiles, 1)

	f.businesses.err = errors.New("down")
	_, err = f.service.AdminDashboard(context.Background())
	assert.Error(t, err)
}
