package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// AccessDeniedError tells the caller where a profile of the given role belongs.
type AccessDeniedError struct {
	Role     model.Role
	Redirect string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: role %q", model.ErrForbidden, e.Role)
}

func (e *AccessDeniedError) Unwrap() error {
	return model.ErrForbidden
}

func HomeFor(role model.Role) string {
	switch role {
	case model.Admin:
		return "/admin-dashboard"
	case model.Owner:
		return "/business-dashboard"
	default:
		return "/"
	}
}

func Authorize(profile *model.Profile, allowed ...model.Role) error {
	if profile == nil {
		return model.ErrUnauthenticated
	}

	role := profile.EffectiveRole()
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return &AccessDeniedError{Role: role, Redirect: HomeFor(role)}
}

// AuthorizeOwnership lets admins through and owners only for their own resources.
func AuthorizeOwnership(actor *model.Profile, ownerID uuid.UUID) error {
	if err := Authorize(actor, model.Owner, model.Admin); err != nil {
		return err
	}
	if actor.EffectiveRole() == model.Admin || actor.ID == ownerID {
		return nil
	}
	return &AccessDeniedError{Role: actor.EffectiveRole(), Redirect: HomeFor(actor.EffectiveRole())}
}
