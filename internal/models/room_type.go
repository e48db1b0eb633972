package models

// RoomType represents a bookable room category
type RoomType struct {
	TenantModel

	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`

	MaxGuests int  `json:"max_guests" db:"max_guests"`
	IsActive  bool `json:"isActive" db:"is_active"`
}

// RatePlan represents a pricing and cancellation policy applied to a
// room type through inventory rows.
type RatePlan struct {
	TenantModel

	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`

	IsRefundable    bool `json:"is_refundable" db:"is_refundable"`
	CancellationHrs int  `json:"cancellation_hours" db:"cancellation_hrs"`

	IsActive bool `json:"isActive" db:"is_active"`
}
