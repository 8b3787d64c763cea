package transport

import (
	"net/http"

	"github.com/jwar28/rappiclone/pkg/domain/model"
	"github.com/jwar28/rappiclone/pkg/domain/service"
)

func (h *Handler) listBusinesses(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryID(r, "owner_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var businesses []model.Business
	if ownerID != nil {
		businesses, err = h.Businesses.BusinessesByOwner(r.Context(), *ownerID)
	} else {
		businesses, err = h.Businesses.ListBusinesses(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, businesses)
}

func (h *Handler) createBusiness(w http.ResponseWriter, r *http.Request) {
	var input service.BusinessInput
	if err := decode(r, &input); err != nil {
		writeError(w, err)
		return
	}

	business, err := h.Businesses.CreateBusiness(r.Context(), profileFrom(r.Context()), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, business)
}

func (h *Handler) getBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	business, err := h.Businesses.GetBusiness(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, business)
}

func (h *Handler) updateBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.BusinessInput
	if err := decode(r, &input); err != nil {
		writeError(w, err)
		return
	}

	business, err := h.Businesses.UpdateBusiness(r.Context(), profileFrom(r.Context()), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, business)
}

func (h *Handler) deleteBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Businesses.DeleteBusiness(r.Context(), profileFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
