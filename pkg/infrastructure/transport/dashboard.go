package transport

import (
	"net/http"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// ownerDashboard reloads the caller's dashboard set and answers with the
// snapshot that load published. Admins may look at any owner through
// ?owner_id=.
func (h *Handler) ownerDashboard(w http.ResponseWriter, r *http.Request) {
	actor := profileFrom(r.Context())
	ownerID := actor.ID

	requested, err := queryID(r, "owner_id")
	if err != nil {
		writeError(w, err)
		return
	}
	if requested != nil && actor.EffectiveRole() == model.Admin {
		ownerID = *requested
	}

	snapshot, err := h.Dashboard.LoadBusinessOwnerData(r.Context(), ownerID, h.Stores.ForOwner(ownerID))
	if err != nil {
		writeError(w, err)
		return
	}
	snapshot.Businesses = orEmpty(snapshot.Businesses)
	snapshot.Products = orEmpty(snapshot.Products)
	snapshot.Orders = orEmpty(snapshot.Orders)
	snapshot.Profiles = orEmpty(snapshot.Profiles)
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Dashboard.AdminDashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
