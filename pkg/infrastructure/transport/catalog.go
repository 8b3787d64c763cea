package transport

import (
	"net/http"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	var category *model.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		c := model.Category(raw)
		if !c.Valid() {
			writeError(w, model.NewValidationError("category", "category must be one of restaurant, pharmacy, supermarket"))
			return
		}
		category = &c
	}

	entries, err := h.Catalog.Browse(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileFrom(r.Context()))
}
