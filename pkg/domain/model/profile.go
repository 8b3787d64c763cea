package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type Role string

const (
	Customer Role = "customer"
	Owner    Role = "owner"
	Admin    Role = "admin"
)

// ParseRole accepts the legacy "business_owner" spelling as Owner.
func ParseRole(s string) (Role, bool) {
	switch s {
	case string(Customer):
		return Customer, true
	case string(Owner), "business_owner":
		return Owner, true
	case string(Admin):
		return Admin, true
	}
	return "", false
}

type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  *string   `db:"full_name" json:"full_name"`
	Phone     *string   `db:"phone" json:"phone"`
	Address   *string   `db:"address" json:"address"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// EffectiveRole normalizes stored role spellings.
func (p Profile) EffectiveRole() Role {
	if role, ok := ParseRole(string(p.Role)); ok {
		return role
	}
	return Customer
}

type ProfileRepository interface {
	ListAll(ctx context.Context) ([]Profile, error)
	Find(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Profile, error)
	Create(ctx context.Context, profile *Profile) (*Profile, error)
	Update(ctx context.Context, profile *Profile) (*Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
