package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

var productColumns = []string{
	"id", "business_id", "name", "description", "category", "price",
	"image_url", "in_stock", "created_at", "updated_at",
}

func NewProductRepository(db *sqlx.DB) model.ProductRepository {
	return &productRepository{table: table[model.Product]{db: db, name: "products", columns: productColumns}}
}

type productRepository struct {
	table table[model.Product]
}

func (r *productRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.table.listAll(ctx)
}

func (r *productRepository) Find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.table.getByID(ctx, r.table.db, id)
}

func (r *productRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Product, error) {
	return r.table.listWhere(ctx, "business_id = ?", businessID)
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	return r.table.batchByID(ctx, ids, func(p model.Product) uuid.UUID { return p.ID })
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	return r.table.insert(ctx, r.table.db, product.ID, product)
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	return r.table.update(ctx, product.ID, map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"price":       product.Price,
		"image_url":   product.ImageURL,
		"in_stock":    product.InStock,
		"updated_at":  nonZeroTime(product.UpdatedAt),
	})
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.table.delete(ctx, r.table.db, id)
}
