package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderPlaced struct {
	OrderID     uuid.UUID
	BusinessID  uuid.UUID
	CustomerID  uuid.UUID
	TotalAmount decimal.Decimal
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type OrderStatusChanged struct {
	OrderID   uuid.UUID
	OldStatus OrderStatus
	NewStatus OrderStatus
}

func (e OrderStatusChanged) Type() string { return "OrderStatusChanged" }

type BusinessCreated struct {
	BusinessID uuid.UUID
	OwnerID    uuid.UUID
	Name       string
}

func (e BusinessCreated) Type() string { return "BusinessCreated" }

type BusinessDeleted struct {
	BusinessID uuid.UUID
	OwnerID    uuid.UUID
}

func (e BusinessDeleted) Type() string { return "BusinessDeleted" }

type ProductCreated struct {
	ProductID  uuid.UUID
	BusinessID uuid.UUID
	Name       string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductPriceChanged struct {
	ProductID uuid.UUID
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
}

func (e ProductPriceChanged) Type() string { return "ProductPriceChanged" }

type ProfileUpdated struct {
	ProfileID uuid.UUID
}

func (e ProfileUpdated) Type() string { return "ProfileUpdated" }

type ProfileDeleted struct {
	ProfileID uuid.UUID
}

func (e ProfileDeleted) Type() string { return "ProfileDeleted" }

type ProfileCreated struct {
	ProfileID uuid.UUID
	Email     string
}

func (e ProfileCreated) Type() string { return "ProfileCreated" }
