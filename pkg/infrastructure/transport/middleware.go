package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/jwar28/rappiclone/pkg/domain/model"
	"github.com/jwar28/rappiclone/pkg/domain/service"
)

type profileKey struct{}

func withProfile(ctx context.Context, profile *model.Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, profile)
}

func profileFrom(ctx context.Context) *model.Profile {
	profile, _ := ctx.Value(profileKey{}).(*model.Profile)
	return profile
}

// authed resolves the bearer token to a profile and, when roles are given,
// rejects profiles of any other role.
func (h *Handler) authed(next http.HandlerFunc, roles ...model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, model.ErrUnauthenticated)
			return
		}

		identity, err := h.Tokens.Verify(token)
		if err != nil {
			writeError(w, err)
			return
		}

		profile, err := h.Profiles.EnsureProfile(r.Context(), identity.UserID, identity.Email)
		if err != nil {
			writeError(w, err)
			return
		}

		if len(roles) > 0 {
			if err := service.Authorize(profile, roles...); err != nil {
				writeError(w, err)
				return
			}
		}

		next(w, r.WithContext(withProfile(r.Context(), profile)))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
