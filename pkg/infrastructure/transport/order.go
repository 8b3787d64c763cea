package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appservice "github.com/jwar28/rappiclone/pkg/application/service"
	"github.com/jwar28/rappiclone/pkg/domain/model"
	"github.com/jwar28/rappiclone/pkg/domain/service"
)

type orderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type placeOrderRequest struct {
	Items           []orderLine `json:"items"`
	ShippingAddress string      `json:"shipping_address"`
}

type orderResponse struct {
	Order    *model.Order    `json:"order"`
	Items    []orderItemView `json:"items"`
	Customer *model.Profile  `json:"customer,omitempty"`
}

type orderItemView struct {
	model.OrderItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

type advanceOrderRequest struct {
	Status string `json:"status"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := requireAddress(req.ShippingAddress); err != nil {
		writeError(w, err)
		return
	}

	cart, err := h.buildCart(r.Context(), req.Items)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.Orders.PlaceOrder(r.Context(), profileFrom(r.Context()), cart, req.ShippingAddress)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// buildCart prices the requested lines from the stored products so the
// snapshot taken at checkout never trusts client prices.
func (h *Handler) buildCart(ctx context.Context, lines []orderLine) (model.Cart, error) {
	var cart model.Cart
	if len(lines) == 0 {
		return cart, nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := h.Products.ProductsByIDs(ctx, ids)
	if err != nil {
		return cart, err
	}

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return cart, model.NewValidationError("product_id", "unknown product "+line.ProductID.String())
		}
		if !product.InStock {
			return cart, model.NewValidationError("product_id", product.Name+" is out of stock")
		}

		merged := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == product.ID {
				cart.Items[i].Quantity += line.Quantity
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		cart.Items = append(cart.Items, model.CartItem{
			ProductID:  product.ID,
			BusinessID: product.BusinessID,
			Name:       product.Name,
			Price:      product.Price,
			Quantity:   line.Quantity,
			ImageURL:   product.ImageURL,
		})
	}
	return cart, nil
}

// requireAddress rejects a checkout without shipping address before any product
// lookup is made.
func requireAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return model.NewValidationError("shipping_address", "shipping address is required")
	}
	return nil
}

func (h *Handler) customerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.CustomerOrders(r.Context(), profileFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, items, err := h.visibleOrder(r)
	if err != nil {
		writeError(w, err)
		return
	}

	response := orderResponse{Order: order, Items: make([]orderItemView, 0, len(items))}
	for _, item := range items {
		response.Items = append(response.Items, orderItemView{OrderItem: item, Subtotal: item.Subtotal()})
	}

	if order.CustomerID != uuid.Nil {
		if err := h.Profiles.FetchProfilesByIDs(r.Context(), []uuid.UUID{order.CustomerID}, h.Customers); err != nil {
			writeError(w, err)
			return
		}
		if customer, ok := h.Customers.Profile(order.CustomerID); ok {
			response.Customer = &customer
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// activeOrders lists the caller's pending orders placed through this instance.
// Admins see every pending order.
func (h *Handler) activeOrders(w http.ResponseWriter, r *http.Request) {
	actor := profileFrom(r.Context())

	active := []model.Order{}
	for _, order := range h.Recent.Active() {
		if actor.EffectiveRole() == model.Admin || order.CustomerID == actor.ID {
			active = append(active, order)
		}
	}
	writeJSON(w, http.StatusOK, active)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.managedOrder(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req advanceOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Orders.AdvanceStatus(r.Context(), order.ID, model.OrderStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) activeOrder(w http.ResponseWriter, r *http.Request) {
	order, _, err := h.visibleOrder(r)
	if err != nil {
		writeError(w, err)
		return
	}

	active, err := h.Orders.TrackActive(r.Context(), order.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (h *Handler) startTracking(w http.ResponseWriter, r *http.Request) {
	order, _, err := h.visibleOrder(r)
	if err != nil {
		writeError(w, err)
		return
	}

	progress, err := h.Tracker.Start(r.Context(), order.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, progress)
}

func (h *Handler) trackingProgress(w http.ResponseWriter, r *http.Request) {
	order, _, err := h.visibleOrder(r)
	if err != nil {
		writeError(w, err)
		return
	}

	progress, ok := h.Tracker.Progress(order.ID)
	if !ok && order.Status.Terminal() {
		progress = appservice.Progress{OrderID: order.ID, Status: order.Status, Percent: 100, Done: true}
		ok = true
	}
	if !ok {
		writeError(w, appservice.ErrOrderNotTracked)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// visibleOrder loads the order named in the path if the caller placed it, owns
// the business it was placed with, or is an admin.
func (h *Handler) visibleOrder(r *http.Request) (*model.Order, []model.OrderItem, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, nil, err
	}

	order, items, err := h.Orders.GetOrder(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}

	actor := profileFrom(r.Context())
	if actor.EffectiveRole() == model.Admin || order.CustomerID == actor.ID {
		return order, items, nil
	}

	if order.BusinessID != uuid.Nil {
		business, err := h.Businesses.GetBusiness(r.Context(), order.BusinessID)
		if err != nil && !errors.Is(err, model.ErrBusinessNotFound) {
			return nil, nil, err
		}
		if business != nil && service.AuthorizeOwnership(actor, business.OwnerID) == nil {
			return order, items, nil
		}
	}
	return nil, nil, &service.AccessDeniedError{Role: actor.EffectiveRole(), Redirect: service.HomeFor(actor.EffectiveRole())}
}

// managedOrder loads the order named in the path for staff changes: admins, or
// the owner of the business the order was placed with. Having placed the order
// is not enough.
func (h *Handler) managedOrder(r *http.Request) (*model.Order, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}

	order, _, err := h.Orders.GetOrder(r.Context(), id)
	if err != nil {
		return nil, err
	}

	actor := profileFrom(r.Context())
	if actor.EffectiveRole() == model.Admin {
		return order, nil
	}

	denied := &service.AccessDeniedError{Role: actor.EffectiveRole(), Redirect: service.HomeFor(actor.EffectiveRole())}
	if order.BusinessID == uuid.Nil {
		return nil, denied
	}
	business, err := h.Businesses.GetBusiness(r.Context(), order.BusinessID)
	if errors.Is(err, model.ErrBusinessNotFound) {
		return nil, denied
	}
	if err != nil {
		return nil, err
	}
	if err := service.AuthorizeOwnership(actor, business.OwnerID); err != nil {
		return nil, err
	}
	return order, nil
}
