package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reserve-se/reserve-se/internal/models"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Store defines the storage interface. Every method that touches
// tenant-owned rows takes the tenant ID explicitly; there is no ambient
// tenant context.
type Store interface {
	// Transaction support
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	// Tenant methods
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *models.Tenant) error

	// User methods
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// API key methods
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	GetAPIKey(ctx context.Context, key string) (*models.APIKey, error)
	ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error)
	DeleteAPIKey(ctx context.Context, tenantID, id uuid.UUID) error

	// Room type methods
	CreateRoomType(ctx context.Context, rt *models.RoomType) error
	GetRoomType(ctx context.Context, tenantID, id uuid.UUID) (*models.RoomType, error)
	UpdateRoomType(ctx context.Context, rt *models.RoomType) error
	DeleteRoomType(ctx context.Context, tenantID, id uuid.UUID) error
	ListRoomTypes(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RoomType, int64, error)

	// Rate plan methods
	CreateRatePlan(ctx context.Context, rp *models.RatePlan) error
	GetRatePlan(ctx context.Context, tenantID, id uuid.UUID) (*models.RatePlan, error)
	UpdateRatePlan(ctx context.Context, rp *models.RatePlan) error
	DeleteRatePlan(ctx context.Context, tenantID, id uuid.UUID) error
	ListRatePlans(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RatePlan, int64, error)

	// Inventory methods
	UpsertInventoryDay(ctx context.Context, day *models.InventoryDay) error
	ListInventory(ctx context.Context, tenantID uuid.UUID, filters InventoryFilters, limit, offset int) ([]*models.InventoryDay, int64, error)

	// ListAvailability returns open inventory rows joined with their active
	// room type and rate plan, for room types that fit at least guests,
	// over the nights [from, to). Ordering is deterministic: room type,
	// rate plan, date.
	ListAvailability(ctx context.Context, tenantID uuid.UUID, guests int, from, to time.Time) ([]*AvailabilityRow, error)

	// ListStayInventory returns the open inventory rows for one
	// (room type, rate plan) pair over [from, to), ordered by date.
	ListStayInventory(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) ([]*models.InventoryDay, error)

	// DecrementAllotment conditionally decrements allotment by 1 for every
	// open row of the pair in [from, to) that still has allotment > 0, and
	// reports how many rows were updated. Callers compare the count with
	// the expected number of nights and roll back on a shortfall.
	DecrementAllotment(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) (int64, error)

	// IncrementAllotment restores allotment by 1 for every surviving row of
	// the pair in [from, to) and reports how many rows were updated.
	IncrementAllotment(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) (int64, error)

	// Booking methods
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error)
	GetBookingByLocator(ctx context.Context, tenantID uuid.UUID, locator, email string) (*models.Booking, error)
	ListBookings(ctx context.Context, tenantID uuid.UUID, filters BookingFilters, limit, offset int) ([]*models.Booking, int64, error)

	// TransitionBookingStatus updates the booking status only when the
	// current status matches from, and reports how many rows changed. A
	// zero count under a matching booking means a concurrent transition won.
	TransitionBookingStatus(ctx context.Context, tenantID, id uuid.UUID, from, to models.BookingStatus, reason *string) (int64, error)

	CountBookingsForRoomType(ctx context.Context, tenantID, roomTypeID uuid.UUID) (int64, error)
	CountBookingsForRatePlan(ctx context.Context, tenantID, ratePlanID uuid.UUID) (int64, error)

	// Occupancy aggregates for one calendar date
	CountInHouseBookings(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error)
	SumOpenAllotment(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error)

	// DeleteTenantData wipes bookings, inventory, rate plans and room types
	// of one tenant. Used by the development seed reset only.
	DeleteTenantData(ctx context.Context, tenantID uuid.UUID) error

	// Close the store
	Close() error
}

// InventoryFilters represents optional filters for inventory listings
type InventoryFilters struct {
	RoomTypeID *uuid.UUID
	RatePlanID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

// BookingFilters represents optional filters for booking listings
type BookingFilters struct {
	Status        *models.BookingStatus
	CheckinFrom   *time.Time
	CheckinTo     *time.Time
	CustomerEmail string
	CustomerName  string
	Locator       string
}

// AvailabilityRow is one open inventory row joined with its room type and
// rate plan, as consumed by the availability calculator.
type AvailabilityRow struct {
	RoomTypeID   uuid.UUID
	RoomTypeName string
	RoomTypeDesc string
	MaxGuests    int

	RatePlanID      uuid.UUID
	RatePlanName    string
	RatePlanDesc    string
	IsRefundable    bool
	CancellationHrs int

	Date       time.Time
	Allotment  int
	PriceCents int
}
