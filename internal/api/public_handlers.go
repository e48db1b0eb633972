package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/reserve-se/reserve-se/internal/booking"
	"github.com/reserve-se/reserve-se/internal/models"
	"github.com/reserve-se/reserve-se/internal/validation"
)

// ========== Public booking handlers ==========

// HandleTenantConfig returns the public branding of a tenant
func (s *RESTServer) HandleTenantConfig(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"slug":          tenant.Slug,
		"name":          tenant.Name,
		"brand_primary": tenant.BrandPrimary,
		"brand_logo":    tenant.BrandLogo,
		"currency":      tenant.Currency,
		"timezone":      tenant.Timezone,
	})
}

// HandleAvailability searches bookable room types for a stay
func (s *RESTServer) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	checkin, err := validation.ParseDate(r.URL.Query().Get("checkin"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	checkout, err := validation.ParseDate(r.URL.Query().Get("checkout"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	guests := 2
	if g := r.URL.Query().Get("guests"); g != "" {
		guests, err = strconv.Atoi(g)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid guests")
			return
		}
	}

	req := booking.StayRequest{Checkin: checkin, Checkout: checkout, Guests: guests}
	if msg := s.checkStayLimits(req); msg != "" {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := s.engine.Availability(r.Context(), tenant.ID, req)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"checkin":    result.Checkin.Format(models.DateOnly),
		"checkout":   result.Checkout.Format(models.DateOnly),
		"nights":     result.Nights,
		"currency":   result.Currency,
		"room_types": result.RoomTypes,
	})
}

// HandleConfirmBooking confirms a booking
func (s *RESTServer) HandleConfirmBooking(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	var req struct {
		RoomTypeID    string  `json:"room_type_id" validate:"required,uuid"`
		RatePlanID    string  `json:"rate_plan_id" validate:"required,uuid"`
		Checkin       string  `json:"checkin" validate:"required"`
		Checkout      string  `json:"checkout" validate:"required"`
		Guests        int     `json:"guests" validate:"required,min=1,max=10"`
		CustomerName  string  `json:"customer_name" validate:"required,min=2,max=200"`
		CustomerEmail string  `json:"customer_email" validate:"required,email"`
		CustomerPhone *string `json:"customer_phone"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	checkin, err := validation.ParseDate(req.Checkin)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	checkout, err := validation.ParseDate(req.Checkout)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	confirm := booking.ConfirmRequest{
		StayRequest: booking.StayRequest{
			Checkin:  checkin,
			Checkout: checkout,
			Guests:   req.Guests,
		},
		RoomTypeID:    uuid.MustParse(req.RoomTypeID),
		RatePlanID:    uuid.MustParse(req.RatePlanID),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	}
	if msg := s.checkStayLimits(confirm.StayRequest); msg != "" {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := s.engine.Confirm(r.Context(), tenant.ID, confirm)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, bookingResponse(result))
}

// HandleLookupBooking finds a booking by locator and customer email
func (s *RESTServer) HandleLookupBooking(w http.ResponseWriter, r *http.Request) {
	tenant, _ := TenantFromContext(r.Context())

	locator := r.URL.Query().Get("locator")
	email := r.URL.Query().Get("email")
	if locator == "" || email == "" {
		s.respondError(w, http.StatusBadRequest, "locator and email are required")
		return
	}

	result, err := s.engine.Lookup(r.Context(), tenant.ID, locator, email)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, bookingResponse(result))
}

// checkStayLimits enforces the configured stay length and search horizon.
// Returns an empty string when the stay is within bounds.
func (s *RESTServer) checkStayLimits(req booking.StayRequest) string {
	if req.Nights() > s.config.Booking.MaxStayNights {
		return "stay is too long"
	}
	horizon := models.Midnight(time.Now()).AddDate(0, 0, s.config.Booking.MaxHorizonDays)
	if req.Checkout.After(horizon) {
		return "stay is too far in the future"
	}
	return ""
}

// bookingResponse shapes a booking for API output, rendering stay dates
// as calendar days.
func bookingResponse(b *models.Booking) map[string]interface{} {
	resp := map[string]interface{}{
		"id":             b.ID,
		"locator":        b.Locator,
		"room_type_id":   b.RoomTypeID,
		"rate_plan_id":   b.RatePlanID,
		"checkin":        b.Checkin.Format(models.DateOnly),
		"checkout":       b.Checkout.Format(models.DateOnly),
		"nights":         b.Nights(),
		"guests":         b.Guests,
		"total_cents":    b.TotalCents,
		"currency":       b.Currency,
		"customer_name":  b.CustomerName,
		"customer_email": b.CustomerEmail,
		"status":         b.Status,
		"created_at":     b.CreatedAt,
	}
	if b.CustomerPhone != nil {
		resp["customer_phone"] = *b.CustomerPhone
	}
	if b.CancellationReason != nil {
		resp["cancellation_reason"] = *b.CancellationReason
	}
	if b.RoomTypeName != "" {
		resp["room_type_name"] = b.RoomTypeName
	}
	if b.RatePlanName != "" {
		resp["rate_plan_name"] = b.RatePlanName
	}
	return resp
}
