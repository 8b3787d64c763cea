package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

type cartView struct {
	Items     []model.CartItem `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	ItemCount int              `json:"item_count"`
}

func newCartView(cart model.Cart) cartView {
	return cartView{Items: orEmpty(cart.Items), Total: cart.Total(), ItemCount: cart.ItemCount()}
}

type addToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCartView(h.Carts.Get(profileFrom(r.Context()).ID)))
}

// addToCart adds one unit of a product, priced from the store.
func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.Products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !product.InStock {
		writeError(w, model.NewValidationError("product_id", product.Name+" is out of stock"))
		return
	}
	business, err := h.Businesses.GetBusiness(r.Context(), product.BusinessID)
	if err != nil {
		writeError(w, err)
		return
	}

	cart, _ := h.Carts.Update(profileFrom(r.Context()).ID, func(cart *model.Cart) error {
		cart.Add(model.CartItem{
			ProductID:    product.ID,
			BusinessID:   product.BusinessID,
			BusinessName: business.Name,
			Name:         product.Name,
			Price:        product.Price,
			ImageURL:     product.ImageURL,
		})
		return nil
	})
	writeJSON(w, http.StatusOK, newCartView(cart))
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	cart, _ := h.Carts.Update(profileFrom(r.Context()).ID, func(cart *model.Cart) error {
		cart.Remove(productID)
		return nil
	})
	writeJSON(w, http.StatusOK, newCartView(cart))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	_, _ = h.Carts.Update(profileFrom(r.Context()).ID, func(cart *model.Cart) error {
		cart.Clear()
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}

// checkout places the caller's cart as an order and empties the cart only
// when the order was stored.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := requireAddress(req.ShippingAddress); err != nil {
		writeError(w, err)
		return
	}

	actor := profileFrom(r.Context())
	var order *model.Order
	_, err := h.Carts.Update(actor.ID, func(cart *model.Cart) error {
		placed, err := h.Orders.PlaceOrder(r.Context(), actor, *cart, req.ShippingAddress)
		if err != nil {
			return err
		}
		order = placed
		cart.Clear()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}
