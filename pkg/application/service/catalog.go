package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

type CatalogEntry struct {
	Business model.Business  `json:"business"`
	Products []model.Product `json:"products"`
}

// CatalogService backs the customer home page: active businesses with the
// products they currently have in stock.
type CatalogService interface {
	Browse(ctx context.Context, category *model.Category) ([]CatalogEntry, error)
}

func NewCatalogService(businesses model.BusinessRepository, products model.ProductRepository) CatalogService {
	return &catalogService{businesses: businesses, products: products}
}

type catalogService struct {
	businesses model.BusinessRepository
	products   model.ProductRepository
}

func (s *catalogService) Browse(ctx context.Context, category *model.Category) ([]CatalogEntry, error) {
	businesses, err := s.businesses.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var active []model.Business
	for _, b := range businesses {
		if !b.IsActive {
			continue
		}
		if category != nil && b.Category != *category {
			continue
		}
		active = append(active, b)
	}

	entries := make([]CatalogEntry, len(active))
	g, gctx := errgroup.WithContext(ctx)
	for i, business := range active {
		g.Go(func() error {
			products, err := s.products.ListByBusiness(gctx, business.ID)
			if err != nil {
				return err
			}

			inStock := make([]model.Product, 0, len(products))
			for _, p := range products {
				if p.InStock {
					inStock = append(inStock, p)
				}
			}
			entries[i] = CatalogEntry{Business: business, Products: inStock}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
