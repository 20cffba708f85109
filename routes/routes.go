package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"procurement/auth"
	"procurement/config"
	"procurement/handlers"
	"procurement/models"
)

type Handlers struct {
	Users   *handlers.UserHandler
	Vendors *handlers.VendorHandler
	Items   *handlers.ItemHandler
	Export  *handlers.ExportHandler
}

type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Tokens   *auth.TokenManager
	Denylist auth.Denylist
}

// CORS middleware
func withCORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			// Handle preflight request
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withSecureHeaders(cfg *config.Config, logger *slog.Logger) func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := secureMiddleware.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request", slog.Any("error", err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withRequestLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// NewRouter wires every endpoint of the vendor administration API.
func NewRouter(deps Deps, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		middleware.RequestID,
		withRequestLog(deps.Logger),
		handlers.RecoverWrapper(deps.Logger),
		withSecureHeaders(deps.Config, deps.Logger),
		withCORS(deps.Config.AllowedOrigin),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	loginLimit := deps.Config.LoginRateLimit
	if loginLimit <= 0 {
		loginLimit = 10
	}
	r.With(httprate.Limit(loginLimit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"message":"Too many login attempts"}`))
		}),
	)).Post("/login", h.Users.Login)

	r.Group(func(r chi.Router) {
		r.Use(handlers.RequireAuth(deps.Tokens, deps.Denylist, deps.Logger))

		r.Post("/logout", h.Users.Logout)
		r.Get("/items", h.Items.ListItems)
		r.Get("/items/{id}", h.Items.GetItem)

		r.Group(func(r chi.Router) {
			r.Use(handlers.RequireRole(models.RoleAdmin))

			r.Post("/signup", h.Users.Signup)
			r.Post("/auth/vendor-register", h.Users.RegisterVendor)

			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", h.Vendors.ListVendors)
				r.Get("/export", h.Export.ExportVendors)
				r.Get("/{id}", h.Vendors.GetVendor)
				r.Put("/{id}", h.Vendors.UpdateVendor)
				r.Delete("/{id}", h.Vendors.DeleteVendor)
			})

			r.Post("/items", h.Items.CreateItem)
			r.Put("/items/{id}", h.Items.UpdateItem)
			r.Delete("/items/{id}", h.Items.DeleteItem)
		})
	})

	return r
}
