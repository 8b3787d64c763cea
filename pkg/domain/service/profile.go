package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/common/domain"
	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// ProfileCache is the by-id profile cache filled by FetchProfilesByIDs.
type ProfileCache interface {
	Missing(ids []uuid.UUID) []uuid.UUID
	MergeProfiles(profiles map[uuid.UUID]model.Profile)
	SetLoading(loading bool)
	SetError(message string)
}

type ProfileInput struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Role     *string `json:"role"`
}

type ProfileService interface {
	CurrentProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*model.Profile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
	UpdateProfile(ctx context.Context, actor *model.Profile, profileID uuid.UUID, input ProfileInput) (*model.Profile, error)
	DeleteProfile(ctx context.Context, actor *model.Profile, profileID uuid.UUID) error
	FetchProfilesByIDs(ctx context.Context, ids []uuid.UUID, cache ProfileCache) error
}

func NewProfileService(repo model.ProfileRepository, dispatcher domain.EventDispatcher) ProfileService {
	return &profileService{repo: repo, dispatcher: dispatcher}
}

type profileService struct {
	repo       model.ProfileRepository
	dispatcher domain.EventDispatcher
}

func (s *profileService) CurrentProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	if userID == uuid.Nil {
		return nil, model.ErrUnauthenticated
	}

	profile, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, model.ErrUnauthenticated
	}
	return profile, nil
}

// EnsureProfile returns the profile of an authenticated user, creating a
// customer profile on first sign in.
func (s *profileService) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*model.Profile, error) {
	if userID == uuid.Nil {
		return nil, model.ErrUnauthenticated
	}

	profile, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	if strings.TrimSpace(email) == "" {
		return nil, model.NewValidationError("email", "email is required")
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &model.Profile{
		ID:        userID,
		Email:     email,
		Role:      model.Customer,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProfileCreated{ProfileID: userID, Email: email})
	return created, nil
}

func (s *profileService) GetProfile(ctx context.Context, profileID uuid.UUID) (*model.Profile, error) {
	profile, err := s.repo.Find(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, model.ErrProfileNotFound
	}
	return profile, nil
}

func (s *profileService) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	return s.repo.ListAll(ctx)
}

func (s *profileService) UpdateProfile(ctx context.Context, actor *model.Profile, profileID uuid.UUID, input ProfileInput) (*model.Profile, error) {
	if actor == nil {
		return nil, model.ErrUnauthenticated
	}
	isAdmin := actor.EffectiveRole() == model.Admin
	if !isAdmin && actor.ID != profileID {
		return nil, &AccessDeniedError{Role: actor.EffectiveRole(), Redirect: HomeFor(actor.EffectiveRole())}
	}

	profile, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		role, ok := model.ParseRole(*input.Role)
		if !ok {
			return nil, model.NewValidationError("role", "role must be one of customer, owner, admin")
		}
		if !isAdmin && role != profile.EffectiveRole() {
			return nil, &AccessDeniedError{Role: actor.EffectiveRole(), Redirect: HomeFor(actor.EffectiveRole())}
		}
		profile.Role = role
	}
	if input.FullName != nil {
		profile.FullName = input.FullName
	}
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	if input.Address != nil {
		profile.Address = input.Address
	}
	profile.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, profile)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProfileUpdated{ProfileID: profileID})
	return updated, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, actor *model.Profile, profileID uuid.UUID) error {
	if err := Authorize(actor, model.Admin); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, profileID); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProfileDeleted{ProfileID: profileID})
	return nil
}

// FetchProfilesByIDs loads only the profiles the cache does not hold yet and
// merges them in by id.
func (s *profileService) FetchProfilesByIDs(ctx context.Context, ids []uuid.UUID, cache ProfileCache) error {
	missing := cache.Missing(ids)
	if len(missing) == 0 {
		return nil
	}

	cache.SetLoading(true)
	defer cache.SetLoading(false)

	profiles, err := s.repo.FindByIDs(ctx, missing)
	if err != nil {
		cache.SetError(err.Error())
		return err
	}

	cache.SetError("")
	cache.MergeProfiles(profiles)
	return nil
}
