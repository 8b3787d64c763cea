package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
)

type Category string

const (
	Restaurant  Category = "restaurant"
	Pharmacy    Category = "pharmacy"
	Supermarket Category = "supermarket"
)

func (c Category) Valid() bool {
	switch c {
	case Restaurant, Pharmacy, Supermarket:
		return true
	}
	return false
}

type Business struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	Category    Category  `db:"category" json:"category"`
	Address     string    `db:"address" json:"address"`
	Description *string   `db:"description" json:"description"`
	LogoURL     *string   `db:"logo_url" json:"logo_url"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type BusinessRepository interface {
	NextID() (uuid.UUID, error)
	ListAll(ctx context.Context) ([]Business, error)
	// Find returns nil without error when no business has the id.
	Find(ctx context.Context, id uuid.UUID) (*Business, error)
	FindByName(ctx context.Context, name string) (*Business, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Business, error)
	Create(ctx context.Context, business *Business) (*Business, error)
	Update(ctx context.Context, business *Business) (*Business, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
