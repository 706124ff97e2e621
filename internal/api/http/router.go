package http

import (
	"context"
	"net/http"
	"time"

	"roofbox-backend/internal/config"
	"roofbox-backend/internal/service"
	"roofbox-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the public site API, the admin API and stored images.
type Handler struct {
	notifications  service.NotificationService
	bookings       service.BookingService
	contacts       service.ContactService
	products       service.ProductService
	admin          service.AdminService
	auth           service.AuthService
	images         storage.ImageStore
	maxUploadBytes int64
	ping           func(ctx context.Context) error
}

type Deps struct {
	Notifications  service.NotificationService
	Bookings       service.BookingService
	Contacts       service.ContactService
	Products       service.ProductService
	Admin          service.AdminService
	Auth           service.AuthService
	Images         storage.ImageStore
	RateLimit      config.RateLimitConfig
	MaxUploadBytes int64
	Ping           func(ctx context.Context) error
}

// NewRouter builds the complete HTTP handler, CORS included.
func NewRouter(d Deps) http.Handler {
	h := &Handler{
		notifications:  d.Notifications,
		bookings:       d.Bookings,
		contacts:       d.Contacts,
		products:       d.Products,
		admin:          d.Admin,
		auth:           d.Auth,
		images:         d.Images,
		maxUploadBytes: d.MaxUploadBytes,
		ping:           d.Ping,
	}
	limiter := newClientLimiter(d.RateLimit)

	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/images/{key}", h.GetImage).Methods(http.MethodGet).Name("images.get")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(d.Auth))

	api.HandleFunc("/notifications", limiter.wrap(h.DispatchNotification)).Methods(http.MethodPost).Name("notifications.dispatch")

	api.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet).Name("products.list")
	api.HandleFunc("/products/{slug}", h.GetProduct).Methods(http.MethodGet).Name("products.get")

	api.HandleFunc("/rental-requests/quote", h.QuoteRental).Methods(http.MethodPost).Name("rentals.quote")
	api.HandleFunc("/rental-requests", limiter.wrap(h.SubmitRentalRequest)).Methods(http.MethodPost).Name("rentals.submit")
	api.HandleFunc("/contact-messages", limiter.wrap(h.SubmitContactMessage)).Methods(http.MethodPost).Name("contact.submit")

	api.HandleFunc("/auth/signup", limiter.wrap(h.SignUp)).Methods(http.MethodPost).Name("auth.signup")
	api.HandleFunc("/auth/signin", limiter.wrap(h.SignIn)).Methods(http.MethodPost).Name("auth.signin")
	api.HandleFunc("/auth/signout", h.SignOut).Methods(http.MethodPost).Name("auth.signout")
	api.HandleFunc("/auth/session", h.CurrentSession).Methods(http.MethodGet).Name("auth.session")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/products", h.AdminListProducts).Methods(http.MethodGet).Name("admin.products.list")
	admin.HandleFunc("/products/{id}/price", h.AdminUpdateProductPrice).Methods(http.MethodPut).Name("admin.products.price")
	admin.HandleFunc("/products/{id}/image", h.AdminUploadProductImage).Methods(http.MethodPut).Name("admin.products.image")
	admin.HandleFunc("/rental-requests", h.AdminListRentalRequests).Methods(http.MethodGet).Name("admin.rentals.list")
	admin.HandleFunc("/rental-requests/{id}", h.AdminUpdateRentalRequestStatus).Methods(http.MethodPatch).Name("admin.rentals.status")
	admin.HandleFunc("/contact-messages", h.AdminListContactMessages).Methods(http.MethodGet).Name("admin.contact.list")
	admin.HandleFunc("/contact-messages/{id}", h.AdminUpdateContactMessageStatus).Methods(http.MethodPatch).Name("admin.contact.status")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, MsgNotFound)
	})

	return corsMiddleware(r)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
