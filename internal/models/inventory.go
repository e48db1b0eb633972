package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryDay holds capacity and price for one (room type, rate plan,
// calendar date) tuple. At most one row exists per tuple and tenant; it is
// the unit of capacity control. Allotment never goes negative.
type InventoryDay struct {
	TenantModel

	RoomTypeID uuid.UUID `json:"room_type_id" db:"room_type_id"`
	RatePlanID uuid.UUID `json:"rate_plan_id" db:"rate_plan_id"`

	Date time.Time `json:"date" db:"date"`

	Allotment  int `json:"allotment" db:"allotment"`
	PriceCents int `json:"price_cents" db:"price_cents"`

	MinStay int `json:"min_stay" db:"min_stay"`
	MaxStay int `json:"max_stay" db:"max_stay"`

	IsClosed bool `json:"is_closed" db:"is_closed"`

	// Joined names, populated by list queries for the admin calendar
	RoomTypeName string `json:"room_type_name,omitempty" db:"-"`
	RatePlanName string `json:"rate_plan_name,omitempty" db:"-"`
}
