package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking. The only legal
// transition is confirmed to cancelled.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed or cancelled reservation. Checkout is
// exclusive: the stay consumes the nights [checkin, checkout).
type Booking struct {
	TenantModel

	RoomTypeID uuid.UUID `json:"room_type_id" db:"room_type_id"`
	RatePlanID uuid.UUID `json:"rate_plan_id" db:"rate_plan_id"`

	// Human-readable reference shown to guests, XXXX-XXXX
	Locator string `json:"locator" db:"locator"`

	Checkin  time.Time `json:"checkin" db:"checkin"`
	Checkout time.Time `json:"checkout" db:"checkout"`
	Guests   int       `json:"guests" db:"guests"`

	TotalCents int    `json:"total_cents" db:"total_cents"`
	Currency   string `json:"currency" db:"currency"`

	CustomerName  string  `json:"customer_name" db:"customer_name"`
	CustomerEmail string  `json:"customer_email" db:"customer_email"`
	CustomerPhone *string `json:"customer_phone,omitempty" db:"customer_phone"`

	Status             BookingStatus `json:"status" db:"status"`
	CancellationReason *string       `json:"cancellation_reason,omitempty" db:"cancellation_reason"`

	// Joined names, populated by list queries
	RoomTypeName string `json:"room_type_name,omitempty" db:"-"`
	RatePlanName string `json:"rate_plan_name,omitempty" db:"-"`
}

// Nights returns the number of nights the booking spans.
func (b *Booking) Nights() int {
	return int(b.Checkout.Sub(b.Checkin).Hours() / 24)
}
