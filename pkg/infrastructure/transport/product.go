package transport

import (
	"net/http"

	"github.com/jwar28/rappiclone/pkg/domain/model"
	"github.com/jwar28/rappiclone/pkg/domain/service"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []model.Product
		err      error
	)
	if name := r.URL.Query().Get("business_name"); name != "" {
		products, err = h.Products.ProductsByBusinessName(r.Context(), name)
	} else {
		products, err = h.Products.ListProducts(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) listBusinessProducts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.Products.ProductsByBusiness(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.ProductInput
	if err := decode(r, &input); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.Products.CreateProduct(r.Context(), profileFrom(r.Context()), businessID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.Products.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var input service.ProductInput
	if err := decode(r, &input); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.Products.UpdateProduct(r.Context(), profileFrom(r.Context()), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Products.DeleteProduct(r.Context(), profileFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
