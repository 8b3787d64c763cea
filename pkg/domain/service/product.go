package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jwar28/rappiclone/pkg/common/domain"
	"github.com/jwar28/rappiclone/pkg/domain/model"
)

type ProductInput struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url"`
	InStock     *bool           `json:"in_stock"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, actor *model.Profile, businessID uuid.UUID, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, actor *model.Profile, productID uuid.UUID, input ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, actor *model.Profile, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ProductsByBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Product, error)
	ProductsByBusinessName(ctx context.Context, businessName string) ([]model.Product, error)
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error)
}

func NewProductService(repo model.ProductRepository, businesses model.BusinessRepository, dispatcher domain.EventDispatcher) ProductService {
	return &productService{repo: repo, businesses: businesses, dispatcher: dispatcher}
}

type productService struct {
	repo       model.ProductRepository
	businesses model.BusinessRepository
	dispatcher domain.EventDispatcher
}

func (s *productService) CreateProduct(ctx context.Context, actor *model.Profile, businessID uuid.UUID, input ProductInput) (*model.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	if err := s.authorizeBusiness(ctx, actor, businessID); err != nil {
		return nil, err
	}

	productID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          productID,
		BusinessID:  businessID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		InStock:     inStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: created.ID, BusinessID: businessID, Name: created.Name})
	return created, nil
}

func (s *productService) UpdateProduct(ctx context.Context, actor *model.Profile, productID uuid.UUID, input ProductInput) (*model.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeBusiness(ctx, actor, product.BusinessID); err != nil {
		return nil, err
	}

	oldPrice := product.Price
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Category = input.Category
	product.Price = input.Price
	product.ImageURL = input.ImageURL
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	if !oldPrice.Equal(updated.Price) {
		_ = s.dispatcher.Dispatch(model.ProductPriceChanged{
			ProductID: productID,
			OldPrice:  oldPrice,
			NewPrice:  updated.Price,
		})
	}
	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, actor *model.Profile, productID uuid.UUID) error {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.authorizeBusiness(ctx, actor, product.BusinessID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, productID)
}

func (s *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	product, err := s.repo.Find(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *productService) ProductsByBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Product, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}

func (s *productService) ProductsByBusinessName(ctx context.Context, businessName string) ([]model.Product, error) {
	business, err := s.businesses.FindByName(ctx, businessName)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, model.ErrBusinessNotFound
	}
	return s.repo.ListByBusiness(ctx, business.ID)
}

func (s *productService) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	return s.repo.FindByIDs(ctx, ids)
}

func (s *productService) authorizeBusiness(ctx context.Context, actor *model.Profile, businessID uuid.UUID) error {
	if err := Authorize(actor, model.Owner, model.Admin); err != nil {
		return err
	}

	business, err := s.businesses.Find(ctx, businessID)
	if err != nil {
		return err
	}
	if business == nil {
		return model.ErrBusinessNotFound
	}
	return AuthorizeOwnership(actor, business.OwnerID)
}

func validateProduct(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return model.NewValidationError("name", "product name is required")
	}
	if input.Price.IsNegative() {
		return model.NewValidationError("price", "price cannot be negative")
	}
	return nil
}
