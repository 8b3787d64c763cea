package transport

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	appservice "github.com/jwar28/rappiclone/pkg/application/service"
	"github.com/jwar28/rappiclone/pkg/application/store"
	"github.com/jwar28/rappiclone/pkg/domain/model"
	"github.com/jwar28/rappiclone/pkg/domain/service"
	"github.com/jwar28/rappiclone/pkg/infrastructure/auth"
)

// Services groups everything the HTTP API delegates to.
type Services struct {
	Profiles   service.ProfileService
	Businesses service.BusinessService
	Products   service.ProductService
	Orders     service.OrderService
	Dashboard  appservice.DashboardService
	Catalog    appservice.CatalogService
	Tracker    appservice.DeliveryTracker
	Stores     *store.Registry
	Recent     *store.RecentOrders
	Customers  *store.ProfileStore
	Carts      *store.Carts
	Tokens     auth.Tokens
}

type Handler struct {
	Services
}

func Router(services Services, allowedOrigins []string) http.Handler {
	h := &Handler{Services: services}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/catalog", h.catalog).Methods(http.MethodGet)
	s.HandleFunc("/me", h.authed(h.me)).Methods(http.MethodGet)

	s.HandleFunc("/businesses", h.listBusinesses).Methods(http.MethodGet)
	s.HandleFunc("/businesses", h.authed(h.createBusiness, model.Owner, model.Admin)).Methods(http.MethodPost)
	s.HandleFunc("/businesses/{id}", h.getBusiness).Methods(http.MethodGet)
	s.HandleFunc("/businesses/{id}", h.authed(h.updateBusiness, model.Owner, model.Admin)).Methods(http.MethodPut)
	s.HandleFunc("/businesses/{id}", h.authed(h.deleteBusiness, model.Owner, model.Admin)).Methods(http.MethodDelete)
	s.HandleFunc("/businesses/{id}/products", h.listBusinessProducts).Methods(http.MethodGet)
	s.HandleFunc("/businesses/{id}/products", h.authed(h.createProduct, model.Owner, model.Admin)).Methods(http.MethodPost)

	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	s.HandleFunc("/products/{id}", h.authed(h.updateProduct, model.Owner, model.Admin)).Methods(http.MethodPut)
	s.HandleFunc("/products/{id}", h.authed(h.deleteProduct, model.Owner, model.Admin)).Methods(http.MethodDelete)

	s.HandleFunc("/orders", h.authed(h.placeOrder)).Methods(http.MethodPost)
	s.HandleFunc("/orders", h.authed(h.customerOrders)).Methods(http.MethodGet)
	s.HandleFunc("/orders/active", h.authed(h.activeOrders)).Methods(http.MethodGet)
	s.HandleFunc("/orders/{id}", h.authed(h.getOrder)).Methods(http.MethodGet)
	s.HandleFunc("/orders/{id}/status", h.authed(h.advanceOrder, model.Owner, model.Admin)).Methods(http.MethodPatch)
	s.HandleFunc("/orders/{id}/active", h.authed(h.activeOrder)).Methods(http.MethodGet)
	s.HandleFunc("/orders/{id}/tracking", h.authed(h.startTracking)).Methods(http.MethodPost)
	s.HandleFunc("/orders/{id}/tracking", h.authed(h.trackingProgress)).Methods(http.MethodGet)

	s.HandleFunc("/cart", h.authed(h.getCart)).Methods(http.MethodGet)
	s.HandleFunc("/cart", h.authed(h.clearCart)).Methods(http.MethodDelete)
	s.HandleFunc("/cart/items", h.authed(h.addToCart)).Methods(http.MethodPost)
	s.HandleFunc("/cart/items/{id}", h.authed(h.removeFromCart)).Methods(http.MethodDelete)
	s.HandleFunc("/cart/checkout", h.authed(h.checkout)).Methods(http.MethodPost)

	s.HandleFunc("/owner/dashboard", h.authed(h.ownerDashboard, model.Owner, model.Admin)).Methods(http.MethodGet)
	s.HandleFunc("/admin/dashboard", h.authed(h.adminDashboard, model.Admin)).Methods(http.MethodGet)

	s.HandleFunc("/profiles", h.authed(h.listProfiles, model.Admin)).Methods(http.MethodGet)
	s.HandleFunc("/profiles/{id}", h.authed(h.updateProfile)).Methods(http.MethodPut)
	s.HandleFunc("/profiles/{id}", h.authed(h.deleteProfile, model.Admin)).Methods(http.MethodDelete)

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(log.StandardLogger()))

	return logMiddleware(recovery(cors(r)))
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
