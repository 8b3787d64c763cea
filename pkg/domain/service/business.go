package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/common/domain"
	"github.com/jwar28/rappiclone/pkg/domain/model"
)

type BusinessInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Address     string  `json:"address"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	IsActive    *bool   `json:"is_active"`
}

type BusinessService interface {
	CreateBusiness(ctx context.Context, actor *model.Profile, input BusinessInput) (*model.Business, error)
	UpdateBusiness(ctx context.Context, actor *model.Profile, businessID uuid.UUID, input BusinessInput) (*model.Business, error)
	DeleteBusiness(ctx context.Context, actor *model.Profile, businessID uuid.UUID) error
	GetBusiness(ctx context.Context, businessID uuid.UUID) (*model.Business, error)
	ListBusinesses(ctx context.Context) ([]model.Business, error)
	BusinessesByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Business, error)
}

func NewBusinessService(repo model.BusinessRepository, dispatcher domain.EventDispatcher) BusinessService {
	return &businessService{repo: repo, dispatcher: dispatcher}
}

type businessService struct {
	repo       model.BusinessRepository
	dispatcher domain.EventDispatcher
}

func (s *businessService) CreateBusiness(ctx context.Context, actor *model.Profile, input BusinessInput) (*model.Business, error) {
	if err := Authorize(actor, model.Owner, model.Admin); err != nil {
		return nil, err
	}
	if err := validateBusiness(input); err != nil {
		return nil, err
	}

	businessID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now().UTC()
	business := &model.Business{
		ID:          businessID,
		OwnerID:     actor.ID,
		Name:        strings.TrimSpace(input.Name),
		Category:    model.Category(input.Category),
		Address:     strings.TrimSpace(input.Address),
		Description: input.Description,
		LogoURL:     input.LogoURL,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, business)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.BusinessCreated{BusinessID: created.ID, OwnerID: created.OwnerID, Name: created.Name})
	return created, nil
}

func (s *businessService) UpdateBusiness(ctx context.Context, actor *model.Profile, businessID uuid.UUID, input BusinessInput) (*model.Business, error) {
	if err := validateBusiness(input); err != nil {
		return nil, err
	}

	business, err := s.findOwned(ctx, actor, businessID)
	if err != nil {
		return nil, err
	}

	business.Name = strings.TrimSpace(input.Name)
	business.Category = model.Category(input.Category)
	business.Address = strings.TrimSpace(input.Address)
	business.Description = input.Description
	business.LogoURL = input.LogoURL
	if input.IsActive != nil {
		business.IsActive = *input.IsActive
	}
	business.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, business)
}

func (s *businessService) DeleteBusiness(ctx context.Context, actor *model.Profile, businessID uuid.UUID) error {
	business, err := s.findOwned(ctx, actor, businessID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, businessID); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.BusinessDeleted{BusinessID: businessID, OwnerID: business.OwnerID})
	return nil
}

func (s *businessService) GetBusiness(ctx context.Context, businessID uuid.UUID) (*model.Business, error) {
	business, err := s.repo.Find(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, model.ErrBusinessNotFound
	}
	return business, nil
}

func (s *businessService) ListBusinesses(ctx context.Context) ([]model.Business, error) {
	return s.repo.ListAll(ctx)
}

func (s *businessService) BusinessesByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Business, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *businessService) findOwned(ctx context.Context, actor *model.Profile, businessID uuid.UUID) (*model.Business, error) {
	if err := Authorize(actor, model.Owner, model.Admin); err != nil {
		return nil, err
	}

	business, err := s.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwnership(actor, business.OwnerID); err != nil {
		return nil, err
	}
	return business, nil
}

func validateBusiness(input BusinessInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return model.NewValidationError("name", "business name is required")
	}
	if !model.Category(input.Category).Valid() {
		return model.NewValidationError("category", "category must be one of restaurant, pharmacy, supermarket")
	}
	if strings.TrimSpace(input.Address) == "" {
		return model.NewValidationError("address", "address is required")
	}
	return nil
}
