package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/shivam99392677/anwesha26-sub000/internal/admin"
	"github.com/shivam99392677/anwesha26-sub000/internal/auth"
	"github.com/shivam99392677/anwesha26-sub000/internal/checkin"
	"github.com/shivam99392677/anwesha26-sub000/internal/event"
	"github.com/shivam99392677/anwesha26-sub000/internal/payment"
	"github.com/shivam99392677/anwesha26-sub000/internal/store"
	"github.com/shivam99392677/anwesha26-sub000/internal/transport/middleware"
	"github.com/shivam99392677/anwesha26-sub000/internal/transport/swagger"
	"github.com/shivam99392677/anwesha26-sub000/internal/user"
)

// Handlers bundles every HTTP handler the router mounts. Nil handlers are
// skipped so partial wiring (tests, tooling) still produces a usable mux.
type Handlers struct {
	Auth    *auth.Handler
	User    *user.Handler
	Event   *event.Handler
	Store   *store.Handler
	Payment *payment.Handler
	Webhook *payment.WebhookHandler
	CheckIn *checkin.Handler
	Admin   *admin.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	roles := auth.NewRoleAuthorization(logger)

	// Apply global middleware
	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Gateway posts the encrypted callback here; no auth, no JSON.
		if h.Webhook != nil {
			r.Post("/payment/callback", h.Webhook.GatewayCallback)
		}

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		// Public registration and email verification
		if h.User != nil {
			r.Post("/users/register", h.User.Register)
			r.Get("/users/verify", h.User.VerifyEmail)
		}

		// Public catalogue routes
		if h.Event != nil {
			r.Get("/events", h.Event.ListEvents)
			r.Get("/events/{slug}", h.Event.GetEvent)
		}
		if h.Store != nil {
			r.Get("/store/products", h.Store.ListProducts)
			r.Get("/store/products/{id}", h.Store.GetProduct)
		}

		if h.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Put("/users/me/profile", h.User.CompleteProfile)
				pr.Get("/users/me/credential", h.User.GetCredential)
			}

			if h.Event != nil {
				pr.Post("/events/{id}/register", h.Event.RegisterForEvent)
				pr.Get("/users/me/registrations", h.Event.ListMyRegistrations)
			}

			if h.Store != nil {
				pr.Post("/store/orders", h.Store.Checkout)
				pr.Get("/store/orders", h.Store.ListMyOrders)
				pr.Get("/store/orders/{id}", h.Store.GetOrder)
			}

			if h.Payment != nil {
				pr.Route("/payments", func(pmr chi.Router) {
					pmr.Post("/razorpay/order", h.Payment.CreateRazorpayOrder)
					pmr.Post("/razorpay/verify", h.Payment.VerifyRazorpay)
					pmr.Post("/gateway/initiate", h.Payment.InitiateGateway)
					pmr.Post("/gateway/status", h.Payment.ReconcileGateway)
					pmr.Get("/", h.Payment.GetUserPayments)
				})
			}

			// Operator routes: the check-in scanner
			if h.CheckIn != nil {
				pr.Group(func(or chi.Router) {
					or.Use(roles.RequireOperator())
					or.Post("/checkin/scan", h.CheckIn.Scan)
					or.Get("/checkin/events/{id}", h.CheckIn.ListEventCheckIns)
				})
			}

			// Admin routes
			pr.Group(func(ar chi.Router) {
				ar.Use(roles.RequireAdmin())

				if h.Event != nil {
					ar.Get("/admin/events", h.Event.ListAllEvents)
					ar.Post("/admin/events", h.Event.CreateEvent)
					ar.Patch("/admin/events/{id}", h.Event.UpdateEvent)
					ar.Delete("/admin/events/{id}", h.Event.DeleteEvent)
				}

				if h.Store != nil {
					ar.Get("/admin/store/products", h.Store.ListAllProducts)
					ar.Post("/admin/store/products", h.Store.CreateProduct)
					ar.Patch("/admin/store/products/{id}", h.Store.UpdateProduct)
				}

				if h.Admin != nil {
					ar.Get("/admin/export/users.csv", h.Admin.ExportUsersCSV)
					ar.Get("/admin/export/payments.csv", h.Admin.ExportPaymentsCSV)
					ar.Get("/admin/export/users.pdf", h.Admin.ExportUsersPDF)
					ar.Post("/admin/broadcast", h.Admin.Broadcast)
				}
			})
		})
	})
}
