package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

type Product struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	BusinessID  uuid.UUID       `db:"business_id" json:"business_id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description"`
	Category    *string         `db:"category" json:"category"`
	Price       decimal.Decimal `db:"price" json:"price"`
	ImageURL    *string         `db:"image_url" json:"image_url"`
	InStock     bool            `db:"in_stock" json:"in_stock"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	ListAll(ctx context.Context) ([]Product, error)
	Find(ctx context.Context, id uuid.UUID) (*Product, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
