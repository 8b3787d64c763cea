package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

var businessColumns = []string{
	"id", "owner_id", "name", "category", "address", "description",
	"logo_url", "is_active", "created_at", "updated_at",
}

func NewBusinessRepository(db *sqlx.DB) model.BusinessRepository {
	return &businessRepository{table: table[model.Business]{db: db, name: "businesses", columns: businessColumns}}
}

type businessRepository struct {
	table table[model.Business]
}

func (r *businessRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *businessRepository) ListAll(ctx context.Context) ([]model.Business, error) {
	return r.table.listAll(ctx)
}

func (r *businessRepository) Find(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	return r.table.getByID(ctx, r.table.db, id)
}

func (r *businessRepository) FindByName(ctx context.Context, name string) (*model.Business, error) {
	return r.table.findWhere(ctx, "name = ?", name)
}

func (r *businessRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Business, error) {
	return r.table.listWhere(ctx, "owner_id = ?", ownerID)
}

func (r *businessRepository) Create(ctx context.Context, business *model.Business) (*model.Business, error) {
	return r.table.insert(ctx, r.table.db, business.ID, business)
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) (*model.Business, error) {
	return r.table.update(ctx, business.ID, map[string]interface{}{
		"name":        business.Name,
		"category":    business.Category,
		"address":     business.Address,
		"description": business.Description,
		"logo_url":    business.LogoURL,
		"is_active":   business.IsActive,
		"updated_at":  nonZeroTime(business.UpdatedAt),
	})
}

func (r *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.table.delete(ctx, r.table.db, id)
}

func nonZeroTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
