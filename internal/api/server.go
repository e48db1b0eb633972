package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/reserve-se/reserve-se/internal/auth"
	"github.com/reserve-se/reserve-se/internal/booking"
	"github.com/reserve-se/reserve-se/internal/config"
	"github.com/reserve-se/reserve-se/internal/metrics"
	"github.com/reserve-se/reserve-se/internal/models"
	"github.com/reserve-se/reserve-se/internal/storage"
	"github.com/reserve-se/reserve-se/internal/validation"
)

// RESTServer represents the REST API server
type RESTServer struct {
	config    *config.Config
	store     storage.Store
	engine    *booking.Engine
	auth      *auth.JWTManager
	validator *validation.Validator
	router    chi.Router
	server    *http.Server
}

// NewRESTServer creates a new REST API server
func NewRESTServer(cfg *config.Config, store storage.Store, engine *booking.Engine) *RESTServer {
	s := &RESTServer{
		config:    cfg,
		store:     store,
		engine:    engine,
		auth:      auth.NewJWTManager(&cfg.JWT),
		validator: validation.NewValidator(),
		router:    chi.NewRouter(),
	}

	metrics.Register()
	s.setupRoutes()

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router exposes the HTTP handler, used by the test suite
func (s *RESTServer) Router() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *RESTServer) setupRoutes() {
	// Middleware
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Logger)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
	s.router.Use(s.metricsMiddleware)

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Handle("/metrics", promhttp.Handler())

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})
}

// ListenAndServe starts the server. When a web directory is available the
// booking SPA and widget assets are served on non-API paths.
func (s *RESTServer) ListenAndServe(addr string) error {
	s.server.Addr = addr

	webDir := "./web"
	if envWebDir := os.Getenv("WEB_DIR"); envWebDir != "" {
		webDir = envWebDir
	}

	if _, err := os.Stat(webDir); os.IsNotExist(err) {
		log.Warn().Str("dir", webDir).Msg("Web directory not found, booking UI will not be served")
	} else {
		log.Info().Str("dir", webDir).Msg("Serving booking UI from directory")

		fs := http.FileServer(http.Dir(webDir))
		s.server.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/metrics" {
				s.router.ServeHTTP(w, r)
				return
			}

			// SPA routes have no extension, hand them index.html
			if r.URL.Path == "/" || !strings.Contains(r.URL.Path, ".") {
				http.ServeFile(w, r, filepath.Join(webDir, "index.html"))
				return
			}

			fs.ServeHTTP(w, r)
		})
	}

	log.Info().Str("addr", addr).Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *RESTServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// metricsMiddleware records request latency per route pattern
func (s *RESTServer) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, route, strconv.Itoa(ww.Status()),
		).Observe(time.Since(start).Seconds())
	})
}

// authMiddleware is the authentication middleware
func (s *RESTServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Get token from header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		// Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.respondError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		// Validate token
		claims, err := s.auth.ValidateToken(parts[1])
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// requireRole restricts a route subtree to users with the given role
func (s *RESTServer) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != role {
				s.respondError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tenantMiddleware resolves the tenant slug of public routes. Inactive or
// unknown tenants are indistinguishable to callers. The embeddable widget
// sends an X-API-Key header instead of knowing its slug; a key that does not
// belong to the tenant in the path is rejected.
func (s *RESTServer) tenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tenant *models.Tenant

		if key := r.Header.Get("X-API-Key"); key != "" {
			apiKey, err := s.store.GetAPIKey(r.Context(), key)
			if err != nil || !apiKey.IsActive {
				s.respondError(w, http.StatusUnauthorized, "invalid API key")
				return
			}
			tenant, err = s.store.GetTenant(r.Context(), apiKey.TenantID)
			if err != nil {
				s.respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if slug := chi.URLParam(r, "slug"); slug != "" && slug != tenant.Slug {
				s.respondError(w, http.StatusUnauthorized, "invalid API key")
				return
			}
		} else {
			var err error
			tenant, err = s.store.GetTenantBySlug(r.Context(), chi.URLParam(r, "slug"))
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					s.respondError(w, http.StatusNotFound, "tenant not found")
					return
				}
				s.respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		if !tenant.IsActive {
			s.respondError(w, http.StatusNotFound, "tenant not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(withTenant(r.Context(), tenant)))
	})
}
