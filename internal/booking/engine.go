package booking

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/reserve-se/reserve-se/internal/metrics"
	"github.com/reserve-se/reserve-se/internal/models"
	"github.com/reserve-se/reserve-se/internal/storage"
)

// Attempts to allocate a unique locator before giving up
const maxLocatorAttempts = 5

// EventPublisher receives booking lifecycle notifications. Implementations
// must not block; publishing happens after the transaction commits.
type EventPublisher interface {
	BookingConfirmed(tenantSlug string, booking *models.Booking)
	BookingCancelled(tenantSlug string, booking *models.Booking)
}

// Engine implements the booking operations: availability search, confirm
// and cancel. All mutations run inside a single storage transaction so a
// failure at any point leaves inventory untouched.
type Engine struct {
	store  storage.Store
	events EventPublisher
}

// NewEngine creates a booking engine. events may be nil.
func NewEngine(store storage.Store, events EventPublisher) *Engine {
	return &Engine{
		store:  store,
		events: events,
	}
}

// StayRequest identifies a stay window and party size.
type StayRequest struct {
	Checkin  time.Time
	Checkout time.Time
	Guests   int
}

// Nights returns the number of nights between checkin and checkout.
func (r StayRequest) Nights() int {
	return int(math.Ceil(r.Checkout.Sub(r.Checkin).Hours() / 24))
}

// maxGuestsPerStay caps the party size a single booking can carry.
const maxGuestsPerStay = 10

// validate enforces the date rules shared by search and confirm: checkin
// must not be in the past, checkout must be strictly after checkin, and
// the party must have between 1 and 10 guests. Dates are compared at
// midnight, so a checkin of today is accepted all day long.
func (r StayRequest) validate(now time.Time) error {
	if r.Guests < 1 {
		return newError(KindValidation, "guests must be at least 1")
	}
	if r.Guests > maxGuestsPerStay {
		return newError(KindValidation, "guests cannot exceed 10")
	}
	checkin := models.Midnight(r.Checkin)
	checkout := models.Midnight(r.Checkout)
	today := models.Midnight(now)
	if checkin.Before(today) {
		return newError(KindValidation, "checkin cannot be in the past")
	}
	if !checkout.After(checkin) {
		return newError(KindValidation, "checkout must be after checkin")
	}
	return nil
}

// RatePlanOffer is one bookable rate for a room type over the requested
// stay. Available is the minimum allotment across the nights.
type RatePlanOffer struct {
	RatePlanID         uuid.UUID `json:"rate_plan_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	IsRefundable       bool      `json:"is_refundable"`
	CancellationHrs    int       `json:"cancellation_hours"`
	Available          int       `json:"available"`
	TotalCents         int       `json:"total_cents"`
	PricePerNightCents int       `json:"price_per_night_cents"`
}

// RoomTypeAvailability groups the offers of one room type.
type RoomTypeAvailability struct {
	RoomTypeID  uuid.UUID       `json:"room_type_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	MaxGuests   int             `json:"max_guests"`
	RatePlans   []RatePlanOffer `json:"rate_plans"`
}

// AvailabilityResult is the outcome of an availability search.
type AvailabilityResult struct {
	Checkin   time.Time              `json:"-"`
	Checkout  time.Time              `json:"-"`
	Nights    int                    `json:"nights"`
	Currency  string                 `json:"currency"`
	RoomTypes []RoomTypeAvailability `json:"room_types"`
}

// Availability computes the bookable (room type, rate plan) combinations
// for a stay. A combination is offered only when every night of the stay
// has an open inventory row, and its capacity is the minimum allotment
// across those nights.
func (e *Engine) Availability(ctx context.Context, tenantID uuid.UUID, req StayRequest) (*AvailabilityResult, error) {
	if err := req.validate(time.Now()); err != nil {
		return nil, err
	}

	tenant, err := e.store.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindNotFound, "tenant not found")
		}
		return nil, err
	}

	checkin := models.Midnight(req.Checkin)
	checkout := models.Midnight(req.Checkout)
	nights := req.Nights()

	rows, err := e.store.ListAvailability(ctx, tenantID, req.Guests, checkin, checkout)
	if err != nil {
		return nil, err
	}

	metrics.AvailabilitySearches.Inc()

	// Group rows per (room type, rate plan), preserving query order
	type pairKey struct {
		roomType uuid.UUID
		ratePlan uuid.UUID
	}
	groups := make(map[pairKey][]*storage.AvailabilityRow)
	var order []pairKey
	for _, row := range rows {
		key := pairKey{row.RoomTypeID, row.RatePlanID}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	result := &AvailabilityResult{
		Checkin:  checkin,
		Checkout: checkout,
		Nights:   nights,
		Currency: tenant.Currency,
	}
	byRoomType := make(map[uuid.UUID]int)

	for _, key := range order {
		group := groups[key]
		// Every night of the stay must have an open row
		if len(group) != nights {
			continue
		}

		available := group[0].Allotment
		total := 0
		for _, row := range group {
			if row.Allotment < available {
				available = row.Allotment
			}
			total += row.PriceCents
		}
		if available <= 0 {
			continue
		}

		offer := RatePlanOffer{
			RatePlanID:         key.ratePlan,
			Name:               group[0].RatePlanName,
			Description:        group[0].RatePlanDesc,
			IsRefundable:       group[0].IsRefundable,
			CancellationHrs:    group[0].CancellationHrs,
			Available:          available,
			TotalCents:         total,
			PricePerNightCents: int(math.Round(float64(total) / float64(nights))),
		}

		idx, ok := byRoomType[key.roomType]
		if !ok {
			result.RoomTypes = append(result.RoomTypes, RoomTypeAvailability{
				RoomTypeID:  key.roomType,
				Name:        group[0].RoomTypeName,
				Description: group[0].RoomTypeDesc,
				MaxGuests:   group[0].MaxGuests,
			})
			idx = len(result.RoomTypes) - 1
			byRoomType[key.roomType] = idx
		}
		result.RoomTypes[idx].RatePlans = append(result.RoomTypes[idx].RatePlans, offer)
	}

	return result, nil
}

// ConfirmRequest carries everything needed to confirm a booking.
type ConfirmRequest struct {
	StayRequest

	RoomTypeID uuid.UUID
	RatePlanID uuid.UUID

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
}

// Confirm validates the stay, checks capacity and creates the booking,
// decrementing one allotment unit per night. The capacity check and the
// decrement run in one transaction with a conditional update, so two
// concurrent confirms for the last unit cannot both succeed. On a locator
// collision the whole transaction is retried with a fresh locator.
func (e *Engine) Confirm(ctx context.Context, tenantID uuid.UUID, req ConfirmRequest) (*models.Booking, error) {
	if err := req.validate(time.Now()); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxLocatorAttempts; attempt++ {
		booking, slug, err := e.confirmOnce(ctx, tenantID, req)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				log.Warn().
					Str("tenant_id", tenantID.String()).
					Int("attempt", attempt+1).
					Msg("Booking locator collision, retrying")
				continue
			}
			return nil, err
		}

		metrics.BookingsConfirmed.Inc()
		log.Info().
			Str("tenant_id", tenantID.String()).
			Str("booking_id", booking.ID.String()).
			Str("locator", booking.Locator).
			Int("nights", booking.Nights()).
			Msg("Booking confirmed")

		if e.events != nil {
			e.events.BookingConfirmed(slug, booking)
		}
		return booking, nil
	}

	return nil, newError(KindConflict, "could not allocate a booking reference")
}

func (e *Engine) confirmOnce(ctx context.Context, tenantID uuid.UUID, req ConfirmRequest) (*models.Booking, string, error) {
	checkin := models.Midnight(req.Checkin)
	checkout := models.Midnight(req.Checkout)
	nights := req.Nights()

	tx, err := e.store.BeginTx(ctx)
	if err != nil {
		return nil, "", err
	}
	defer tx.Rollback()

	tenant, err := tx.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", newError(KindNotFound, "tenant not found")
		}
		return nil, "", err
	}

	roomType, err := tx.GetRoomType(ctx, tenantID, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", newError(KindNotFound, "room type not found")
		}
		return nil, "", err
	}
	if !roomType.IsActive {
		return nil, "", newError(KindNotFound, "room type not found")
	}
	if roomType.MaxGuests < req.Guests {
		return nil, "", newError(KindValidation, "room type does not fit the party size")
	}

	ratePlan, err := tx.GetRatePlan(ctx, tenantID, req.RatePlanID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", newError(KindNotFound, "rate plan not found")
		}
		return nil, "", err
	}
	if !ratePlan.IsActive {
		return nil, "", newError(KindNotFound, "rate plan not found")
	}

	days, err := tx.ListStayInventory(ctx, tenantID, req.RoomTypeID, req.RatePlanID, checkin, checkout)
	if err != nil {
		return nil, "", err
	}
	if len(days) != nights {
		return nil, "", newError(KindAvailability, "not available for the selected dates")
	}
	total := 0
	for _, day := range days {
		if day.Allotment < 1 {
			return nil, "", newError(KindAvailability, "not available for the selected dates")
		}
		total += day.PriceCents
	}

	// Conditional decrement: only rows that still have allotment > 0 are
	// touched, so a shortfall means someone else took the last unit.
	affected, err := tx.DecrementAllotment(ctx, tenantID, req.RoomTypeID, req.RatePlanID, checkin, checkout)
	if err != nil {
		return nil, "", err
	}
	if affected != int64(nights) {
		metrics.BookingConflicts.Inc()
		return nil, "", newError(KindConflict, "no longer available for the selected dates")
	}

	locator, err := NewLocator()
	if err != nil {
		return nil, "", err
	}

	booking := &models.Booking{
		TenantModel:   models.TenantModel{TenantID: tenantID},
		RoomTypeID:    req.RoomTypeID,
		RatePlanID:    req.RatePlanID,
		Locator:       locator,
		Checkin:       checkin,
		Checkout:      checkout,
		Guests:        req.Guests,
		TotalCents:    total,
		Currency:      tenant.Currency,
		CustomerName:  req.CustomerName,
		CustomerEmail: strings.ToLower(req.CustomerEmail),
		CustomerPhone: req.CustomerPhone,
		Status:        models.BookingConfirmed,
	}
	if err := tx.CreateBooking(ctx, booking); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(); err != nil {
		return nil, "", err
	}

	booking.RoomTypeName = roomType.Name
	booking.RatePlanName = ratePlan.Name
	return booking, tenant.Slug, nil
}

// Cancel transitions a confirmed booking to cancelled and restores one
// allotment unit per surviving inventory night. Cancelling an already
// cancelled booking is rejected, also under concurrent cancels: the status
// transition is a conditional update and only one caller wins.
func (e *Engine) Cancel(ctx context.Context, tenantID, bookingID uuid.UUID, reason *string) (*models.Booking, error) {
	tx, err := e.store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	booking, err := tx.GetBooking(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindNotFound, "booking not found")
		}
		return nil, err
	}
	if booking.Status == models.BookingCancelled {
		return nil, newError(KindConflict, "booking is already cancelled")
	}

	affected, err := tx.TransitionBookingStatus(ctx, tenantID, bookingID,
		models.BookingConfirmed, models.BookingCancelled, reason)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		metrics.BookingConflicts.Inc()
		return nil, newError(KindConflict, "booking is already cancelled")
	}

	// Rows deleted since the booking was made simply stay gone; restore
	// whatever still exists.
	restored, err := tx.IncrementAllotment(ctx, tenantID, booking.RoomTypeID, booking.RatePlanID,
		booking.Checkin, booking.Checkout)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	booking.Status = models.BookingCancelled
	if reason != nil {
		booking.CancellationReason = reason
	}

	metrics.BookingsCancelled.Inc()
	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("booking_id", booking.ID.String()).
		Str("locator", booking.Locator).
		Int64("nights_restored", restored).
		Msg("Booking cancelled")

	if e.events != nil {
		if tenant, terr := e.store.GetTenant(ctx, tenantID); terr == nil {
			e.events.BookingCancelled(tenant.Slug, booking)
		}
	}
	return booking, nil
}

// Lookup finds a booking by its locator and customer email. Both must
// match; the locator is case-insensitive.
func (e *Engine) Lookup(ctx context.Context, tenantID uuid.UUID, locator, email string) (*models.Booking, error) {
	booking, err := e.store.GetBookingByLocator(ctx, tenantID, locator, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(KindNotFound, "booking not found")
		}
		return nil, err
	}
	return booking, nil
}
