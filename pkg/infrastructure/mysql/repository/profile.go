package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

var profileColumns = []string{
	"id", "email", "full_name", "phone", "address", "role", "created_at", "updated_at",
}

func NewProfileRepository(db *sqlx.DB) model.ProfileRepository {
	return &profileRepository{table: table[model.Profile]{db: db, name: "profiles", columns: profileColumns}}
}

type profileRepository struct {
	table table[model.Profile]
}

func (r *profileRepository) ListAll(ctx context.Context) ([]model.Profile, error) {
	return r.table.listAll(ctx)
}

func (r *profileRepository) Find(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return r.table.getByID(ctx, r.table.db, id)
}

func (r *profileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Profile, error) {
	return r.table.batchByID(ctx, ids, func(p model.Profile) uuid.UUID { return p.ID })
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	return r.table.insert(ctx, r.table.db, profile.ID, profile)
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	return r.table.update(ctx, profile.ID, map[string]interface{}{
		"full_name":  profile.FullName,
		"phone":      profile.Phone,
		"address":    profile.Address,
		"role":       profile.Role,
		"updated_at": nonZeroTime(profile.UpdatedAt),
	})
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.table.delete(ctx, r.table.db, id)
}
