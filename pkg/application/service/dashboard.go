package service

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jwar28/rappiclone/pkg/application/store"
	"github.com/jwar28/rappiclone/pkg/domain/model"
)

type AdminSnapshot struct {
	Profiles   []model.Profile  `json:"profiles"`
	Businesses []model.Business `json:"businesses"`
}

type DashboardService interface {
	// LoadBusinessOwnerData fills set with the owner's businesses, their
	// products and orders, and the customers behind those orders. It returns
	// the snapshot it published, which later loads on the same set may
	// already have replaced.
	LoadBusinessOwnerData(ctx context.Context, ownerID uuid.UUID, set *store.Set) (store.Snapshot, error)
	AdminDashboard(ctx context.Context) (*AdminSnapshot, error)
}

func NewDashboardService(
	businesses model.BusinessRepository,
	products model.ProductRepository,
	orders model.OrderRepository,
	profiles model.ProfileRepository,
) DashboardService {
	return &dashboardService{
		businesses: businesses,
		products:   products,
		orders:     orders,
		profiles:   profiles,
	}
}

type dashboardService struct {
	businesses model.BusinessRepository
	products   model.ProductRepository
	orders     model.OrderRepository
	profiles   model.ProfileRepository
}

func (s *dashboardService) LoadBusinessOwnerData(ctx context.Context, ownerID uuid.UUID, set *store.Set) (store.Snapshot, error) {
	set.Begin()
	defer set.Finish()

	var snapshot store.Snapshot
	if err := s.loadOwnerSnapshot(ctx, ownerID, &snapshot); err != nil {
		log.WithError(err).WithField("owner_id", ownerID).Error("failed to load business owner data")
		set.Fail(snapshot, err.Error())
		snapshot.Error = err.Error()
		return snapshot, err
	}

	set.Publish(snapshot)
	return snapshot, nil
}

// loadOwnerSnapshot fills snapshot step by step so a failure leaves the
// results of the completed steps in place.
func (s *dashboardService) loadOwnerSnapshot(ctx context.Context, ownerID uuid.UUID, snapshot *store.Snapshot) error {
	businesses, err := s.businesses.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	snapshot.Businesses = nonNil(businesses)

	productsByBusiness := make([][]model.Product, len(businesses))
	ordersByBusiness := make([][]model.Order, len(businesses))

	g, gctx := errgroup.WithContext(ctx)
	for i, business := range businesses {
		g.Go(func() error {
			var (
				products []model.Product
				orders   []model.Order
			)
			inner, ictx := errgroup.WithContext(gctx)
			inner.Go(func() error {
				var err error
				products, err = s.products.ListByBusiness(ictx, business.ID)
				return err
			})
			inner.Go(func() error {
				var err error
				orders, err = s.orders.ListByBusiness(ictx, business.ID)
				return err
			})
			if err := inner.Wait(); err != nil {
				return err
			}

			productsByBusiness[i] = products
			ordersByBusiness[i] = orders
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	snapshot.Products = flatten(productsByBusiness)
	snapshot.Orders = flatten(ordersByBusiness)

	customerIDs := distinctCustomers(snapshot.Orders)
	if len(customerIDs) == 0 {
		return nil
	}

	profiles, err := s.profiles.FindByIDs(ctx, customerIDs)
	if err != nil {
		return err
	}
	snapshot.Profiles = make([]model.Profile, 0, len(profiles))
	for _, id := range customerIDs {
		if profile, ok := profiles[id]; ok {
			snapshot.Profiles = append(snapshot.Profiles, profile)
		}
	}
	return nil
}

func (s *dashboardService) AdminDashboard(ctx context.Context) (*AdminSnapshot, error) {
	var result AdminSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profiles, err := s.profiles.ListAll(gctx)
		result.Profiles = nonNil(profiles)
		return err
	})
	g.Go(func() error {
		businesses, err := s.businesses.ListAll(gctx)
		result.Businesses = nonNil(businesses)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

func distinctCustomers(orders []model.Order) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(orders))
	var ids []uuid.UUID
	for _, order := range orders {
		if _, ok := seen[order.CustomerID]; ok {
			continue
		}
		seen[order.CustomerID] = struct{}{}
		ids = append(ids, order.CustomerID)
	}
	return ids
}

func flatten[T any](groups [][]T) []T {
	result := make([]T, 0)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
