package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/reserve-se/reserve-se/internal/models"
	"github.com/reserve-se/reserve-se/internal/storage"
	"github.com/reserve-se/reserve-se/internal/validation"
	"github.com/reserve-se/reserve-se/pkg/crypto"
)

// ========== Tenant settings handlers ==========

// HandleGetOwnTenant returns the tenant of the authenticated user
func (s *RESTServer) HandleGetOwnTenant(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	tenant, err := s.store.GetTenant(r.Context(), claims.TenantID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "tenant not found")
		return
	}

	s.respondJSON(w, http.StatusOK, tenant)
}

// HandleUpdateOwnTenant partially updates tenant settings
func (s *RESTServer) HandleUpdateOwnTenant(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req struct {
		Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
		BrandPrimary *string `json:"brand_primary"`
		BrandLogo    *string `json:"brand_logo"`
		Currency     *string `json:"currency" validate:"omitempty,len=3"`
		Timezone     *string `json:"timezone"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := s.store.GetTenant(r.Context(), claims.TenantID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "tenant not found")
		return
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.BrandPrimary != nil {
		tenant.BrandPrimary = *req.BrandPrimary
	}
	if req.BrandLogo != nil {
		tenant.BrandLogo = *req.BrandLogo
	}
	if req.Currency != nil {
		tenant.Currency = *req.Currency
	}
	if req.Timezone != nil {
		tenant.Timezone = *req.Timezone
	}

	if err := s.store.UpdateTenant(r.Context(), tenant); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, tenant)
}

// ========== Room type handlers ==========

// HandleListRoomTypes lists room types
func (s *RESTServer) HandleListRoomTypes(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	limit, offset := parsePagination(r)

	roomTypes, total, err := s.store.ListRoomTypes(r.Context(), claims.TenantID, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"room_types": roomTypes,
		"total":      total,
	})
}

// HandleCreateRoomType creates a room type
func (s *RESTServer) HandleCreateRoomType(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req struct {
		Name        string `json:"name" validate:"required,min=2,max=100"`
		Description string `json:"description"`
		MaxGuests   int    `json:"max_guests" validate:"required,min=1,max=20"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	roomType := &models.RoomType{
		TenantModel: models.TenantModel{TenantID: claims.TenantID},
		Name:        req.Name,
		Description: req.Description,
		MaxGuests:   req.MaxGuests,
		IsActive:    true,
	}

	if err := s.store.CreateRoomType(r.Context(), roomType); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, roomType)
}

// HandleGetRoomType gets a room type
func (s *RESTServer) HandleGetRoomType(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid room type id")
		return
	}

	roomType, err := s.store.GetRoomType(r.Context(), claims.TenantID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "room type not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, roomType)
}

// HandleUpdateRoomType updates a room type
func (s *RESTServer) HandleUpdateRoomType(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid room type id")
		return
	}

	var req struct {
		Name        string `json:"name" validate:"required,min=2,max=100"`
		Description string `json:"description"`
		MaxGuests   int    `json:"max_guests" validate:"required,min=1,max=20"`
		IsActive    bool   `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	roomType, err := s.store.GetRoomType(r.Context(), claims.TenantID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "room type not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	roomType.Name = req.Name
	roomType.Description = req.Description
	roomType.MaxGuests = req.MaxGuests
	roomType.IsActive = req.IsActive

	if err := s.store.UpdateRoomType(r.Context(), roomType); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, roomType)
}

// HandleDeleteRoomType deletes a room type without bookings
func (s *RESTServer) HandleDeleteRoomType(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid room type id")
		return
	}

	count, err := s.store.CountBookingsForRoomType(r.Context(), claims.TenantID, id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if count > 0 {
		s.respondError(w, http.StatusConflict, "room type has bookings, deactivate it instead")
		return
	}

	if err := s.store.DeleteRoomType(r.Context(), claims.TenantID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "room type not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ========== Rate plan handlers ==========

// HandleListRatePlans lists rate plans
func (s *RESTServer) HandleListRatePlans(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	limit, offset := parsePagination(r)

	ratePlans, total, err := s.store.ListRatePlans(r.Context(), claims.TenantID, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"rate_plans": ratePlans,
		"total":      total,
	})
}

// HandleCreateRatePlan creates a rate plan
func (s *RESTServer) HandleCreateRatePlan(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req struct {
		Name            string `json:"name" validate:"required,min=2,max=100"`
		Description     string `json:"description"`
		IsRefundable    bool   `json:"is_refundable"`
		CancellationHrs int    `json:"cancellation_hours" validate:"min=0"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ratePlan := &models.RatePlan{
		TenantModel:     models.TenantModel{TenantID: claims.TenantID},
		Name:            req.Name,
		Description:     req.Description,
		IsRefundable:    req.IsRefundable,
		CancellationHrs: req.CancellationHrs,
		IsActive:        true,
	}

	if err := s.store.CreateRatePlan(r.Context(), ratePlan); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, ratePlan)
}

// HandleGetRatePlan gets a rate plan
func (s *RESTServer) HandleGetRatePlan(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid rate plan id")
		return
	}

	ratePlan, err := s.store.GetRatePlan(r.Context(), claims.TenantID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "rate plan not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, ratePlan)
}

// HandleUpdateRatePlan updates a rate plan
func (s *RESTServer) HandleUpdateRatePlan(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid rate plan id")
		return
	}

	var req struct {
		Name            string `json:"name" validate:"required,min=2,max=100"`
		Description     string `json:"description"`
		IsRefundable    bool   `json:"is_refundable"`
		CancellationHrs int    `json:"cancellation_hours" validate:"min=0"`
		IsActive        bool   `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ratePlan, err := s.store.GetRatePlan(r.Context(), claims.TenantID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "rate plan not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ratePlan.Name = req.Name
	ratePlan.Description = req.Description
	ratePlan.IsRefundable = req.IsRefundable
	ratePlan.CancellationHrs = req.CancellationHrs
	ratePlan.IsActive = req.IsActive

	if err := s.store.UpdateRatePlan(r.Context(), ratePlan); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, ratePlan)
}

// HandleDeleteRatePlan deletes a rate plan without bookings
func (s *RESTServer) HandleDeleteRatePlan(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid rate plan id")
		return
	}

	count, err := s.store.CountBookingsForRatePlan(r.Context(), claims.TenantID, id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if count > 0 {
		s.respondError(w, http.StatusConflict, "rate plan has bookings, deactivate it instead")
		return
	}

	if err := s.store.DeleteRatePlan(r.Context(), claims.TenantID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "rate plan not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ========== Inventory handlers ==========

// HandleListInventory lists inventory days
func (s *RESTServer) HandleListInventory(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	limit, offset := parsePagination(r)

	var filters storage.InventoryFilters
	if v := r.URL.Query().Get("room_type_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid room_type_id")
			return
		}
		filters.RoomTypeID = &id
	}
	if v := r.URL.Query().Get("rate_plan_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid rate_plan_id")
			return
		}
		filters.RatePlanID = &id
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := validation.ParseDate(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filters.DateFrom = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := validation.ParseDate(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filters.DateTo = &t
	}

	days, total, err := s.store.ListInventory(r.Context(), claims.TenantID, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"inventory": days,
		"total":     total,
	})
}

// HandleBulkUpsertInventory creates or updates inventory days in one
// transaction. Either every day lands or none does.
func (s *RESTServer) HandleBulkUpsertInventory(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req struct {
		Days []struct {
			RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
			RatePlanID string `json:"rate_plan_id" validate:"required,uuid"`
			Date       string `json:"date" validate:"required"`
			Allotment  int    `json:"allotment" validate:"min=0"`
			PriceCents int    `json:"price_cents" validate:"min=0"`
			MinStay    int    `json:"min_stay" validate:"min=0"`
			MaxStay    int    `json:"max_stay" validate:"min=0"`
			IsClosed   bool   `json:"is_closed"`
		} `json:"days" validate:"required,min=1,max=1000,dive"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.store.BeginTx(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	days := make([]*models.InventoryDay, 0, len(req.Days))
	for _, d := range req.Days {
		date, err := validation.ParseDate(d.Date)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		roomTypeID := uuid.MustParse(d.RoomTypeID)
		ratePlanID := uuid.MustParse(d.RatePlanID)

		if _, err := tx.GetRoomType(r.Context(), claims.TenantID, roomTypeID); err != nil {
			s.respondError(w, http.StatusBadRequest, "unknown room type "+d.RoomTypeID)
			return
		}
		if _, err := tx.GetRatePlan(r.Context(), claims.TenantID, ratePlanID); err != nil {
			s.respondError(w, http.StatusBadRequest, "unknown rate plan "+d.RatePlanID)
			return
		}

		day := &models.InventoryDay{
			TenantModel: models.TenantModel{TenantID: claims.TenantID},
			RoomTypeID:  roomTypeID,
			RatePlanID:  ratePlanID,
			Date:        date,
			Allotment:   d.Allotment,
			PriceCents:  d.PriceCents,
			MinStay:     d.MinStay,
			MaxStay:     d.MaxStay,
			IsClosed:    d.IsClosed,
		}
		if err := tx.UpsertInventoryDay(r.Context(), day); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		days = append(days, day)
	}

	if err := tx.Commit(); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"inventory": days,
		"total":     len(days),
	})
}

// ========== Booking handlers ==========

// HandleListBookings lists bookings
func (s *RESTServer) HandleListBookings(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	limit, offset := parsePagination(r)

	var filters storage.BookingFilters
	if v := r.URL.Query().Get("status"); v != "" {
		status := models.BookingStatus(v)
		if status != models.BookingConfirmed && status != models.BookingCancelled {
			s.respondError(w, http.StatusBadRequest, "invalid status")
			return
		}
		filters.Status = &status
	}
	if v := r.URL.Query().Get("checkin_from"); v != "" {
		t, err := validation.ParseDate(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filters.CheckinFrom = &t
	}
	if v := r.URL.Query().Get("checkin_to"); v != "" {
		t, err := validation.ParseDate(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filters.CheckinTo = &t
	}
	filters.CustomerEmail = r.URL.Query().Get("email")
	filters.CustomerName = r.URL.Query().Get("name")
	filters.Locator = r.URL.Query().Get("locator")

	bookings, total, err := s.store.ListBookings(r.Context(), claims.TenantID, filters, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"total":    total,
	})
}

// HandleGetBooking gets a booking
func (s *RESTServer) HandleGetBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	result, err := s.store.GetBooking(r.Context(), claims.TenantID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "booking not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, bookingResponse(result))
}

// HandleCancelBooking cancels a booking and restores its inventory
func (s *RESTServer) HandleCancelBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req struct {
		Reason *string `json:"reason" validate:"omitempty,max=500"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.validator.Validate(req); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := s.engine.Cancel(r.Context(), claims.TenantID, id, req.Reason)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, bookingResponse(result))
}

// ========== Occupancy handlers ==========

// HandleOccupancy reports in-house bookings and remaining open allotment
// for one calendar date, defaulting to today.
func (s *RESTServer) HandleOccupancy(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	date := models.Midnight(time.Now())
	if v := r.URL.Query().Get("date"); v != "" {
		t, err := validation.ParseDate(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		date = t
	}

	inHouse, err := s.store.CountInHouseBookings(r.Context(), claims.TenantID, date)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	open, err := s.store.SumOpenAllotment(r.Context(), claims.TenantID, date)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":           date.Format(models.DateOnly),
		"in_house":       inHouse,
		"open_allotment": open,
	})
}

// ========== API key handlers ==========

// HandleListAPIKeys lists API keys
func (s *RESTServer) HandleListAPIKeys(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	keys, err := s.store.ListAPIKeys(r.Context(), claims.TenantID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"api_keys": keys,
		"total":    len(keys),
	})
}

// HandleCreateAPIKey creates an API key
func (s *RESTServer) HandleCreateAPIKey(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req struct {
		Name string `json:"name" validate:"required,min=2,max=100"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	secret, err := crypto.GenerateRandomString(32)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to generate key")
		return
	}

	key := &models.APIKey{
		TenantID: claims.TenantID,
		Name:     req.Name,
		Key:      secret,
	}

	if err := s.store.CreateAPIKey(r.Context(), key); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, key)
}

// HandleDeleteAPIKey deletes an API key
func (s *RESTServer) HandleDeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid api key id")
		return
	}

	if err := s.store.DeleteAPIKey(r.Context(), claims.TenantID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "api key not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ========== Development handlers ==========

// HandleSeedReset wipes the tenant's booking data. Disabled in production.
func (s *RESTServer) HandleSeedReset(w http.ResponseWriter, r *http.Request) {
	if s.config.Server.IsProduction() {
		s.respondError(w, http.StatusForbidden, "not available in production")
		return
	}

	claims, _ := ClaimsFromContext(r.Context())

	if err := s.store.DeleteTenantData(r.Context(), claims.TenantID); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().Str("tenant_id", claims.TenantID.String()).Msg("Tenant data reset")
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
