package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up API v1 routes
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Health check
	r.Get("/health", s.HandleHealth)
	r.Get("/", s.HandleRoot)

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.HandleLogin)
		r.Post("/refresh", s.HandleRefresh)
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/me", s.HandleGetCurrentUser)
		})
	})

	// Public booking routes, scoped by tenant slug
	r.Route("/tenants/{slug}", func(r chi.Router) {
		r.Use(s.tenantMiddleware)
		r.Get("/config", s.HandleTenantConfig)
		r.Get("/availability", s.HandleAvailability)
		r.Post("/bookings/confirm", s.HandleConfirmBooking)
		r.Get("/bookings/lookup", s.HandleLookupBooking)
	})

	// Admin routes, scoped by the tenant of the authenticated user
	r.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/tenant", s.HandleGetOwnTenant)
		r.Patch("/tenant", s.HandleUpdateOwnTenant)

		r.Route("/room-types", func(r chi.Router) {
			r.Get("/", s.HandleListRoomTypes)
			r.Post("/", s.HandleCreateRoomType)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetRoomType)
				r.Put("/", s.HandleUpdateRoomType)
				r.Delete("/", s.HandleDeleteRoomType)
			})
		})

		r.Route("/rate-plans", func(r chi.Router) {
			r.Get("/", s.HandleListRatePlans)
			r.Post("/", s.HandleCreateRatePlan)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetRatePlan)
				r.Put("/", s.HandleUpdateRatePlan)
				r.Delete("/", s.HandleDeleteRatePlan)
			})
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", s.HandleListInventory)
			r.Put("/", s.HandleBulkUpsertInventory)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", s.HandleListBookings)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetBooking)
				r.Patch("/cancel", s.HandleCancelBooking)
			})
		})

		r.Get("/occupancy", s.HandleOccupancy)

		r.Group(func(r chi.Router) {
			r.Use(s.requireRole("admin"))
			r.Route("/api-keys", func(r chi.Router) {
				r.Get("/", s.HandleListAPIKeys)
				r.Post("/", s.HandleCreateAPIKey)
				r.Delete("/{id}", s.HandleDeleteAPIKey)
			})
			r.Post("/seed/reset", s.HandleSeedReset)
		})
	})
}
