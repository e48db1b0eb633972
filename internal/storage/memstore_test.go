package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserve-se/reserve-se/internal/models"
)

func seedInventory(t *testing.T, store *MemoryStore) (*models.Tenant, *models.RoomType, *models.RatePlan, time.Time) {
	t.Helper()
	ctx := context.Background()

	tenant := &models.Tenant{Slug: "test-hotel", Name: "Test Hotel", Currency: "EUR"}
	require.NoError(t, store.CreateTenant(ctx, tenant))

	rt := &models.RoomType{
		TenantModel: models.TenantModel{TenantID: tenant.ID},
		Name:        "Standard",
		MaxGuests:   2,
		IsActive:    true,
	}
	require.NoError(t, store.CreateRoomType(ctx, rt))

	rp := &models.RatePlan{
		TenantModel: models.TenantModel{TenantID: tenant.ID},
		Name:        "Base",
		IsActive:    true,
	}
	require.NoError(t, store.CreateRatePlan(ctx, rp))

	base := models.Midnight(time.Now()).AddDate(0, 0, 1)
	for i := 0; i < 3; i++ {
		day := &models.InventoryDay{
			TenantModel: models.TenantModel{TenantID: tenant.ID},
			RoomTypeID:  rt.ID,
			RatePlanID:  rp.ID,
			Date:        base.AddDate(0, 0, i),
			Allotment:   2,
			PriceCents:  8000,
		}
		require.NoError(t, store.UpsertInventoryDay(ctx, day))
	}
	return tenant, rt, rp, base
}

func TestTransactionRollbackDiscardsChanges(t *testing.T) {
	store := NewMemoryStore()
	tenant, rt, rp, base := seedInventory(t, store)
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	affected, err := tx.DecrementAllotment(ctx, tenant.ID, rt.ID, rp.ID, base, base.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	require.NoError(t, tx.Rollback())

	days, err := store.ListStayInventory(ctx, tenant.ID, rt.ID, rp.ID, base, base.AddDate(0, 0, 3))
	require.NoError(t, err)
	for _, day := range days {
		assert.Equal(t, 2, day.Allotment)
	}
}

func TestTransactionCommitPublishesChanges(t *testing.T) {
	store := NewMemoryStore()
	tenant, rt, rp, base := seedInventory(t, store)
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = tx.DecrementAllotment(ctx, tenant.ID, rt.ID, rp.ID, base, base.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	days, err := store.ListStayInventory(ctx, tenant.ID, rt.ID, rp.ID, base, base.AddDate(0, 0, 3))
	require.NoError(t, err)
	for _, day := range days {
		assert.Equal(t, 1, day.Allotment)
	}
}

func TestDecrementSkipsExhaustedAndClosedRows(t *testing.T) {
	store := NewMemoryStore()
	tenant, rt, rp, base := seedInventory(t, store)
	ctx := context.Background()

	// Exhaust the middle night
	drained := &models.InventoryDay{
		TenantModel: models.TenantModel{TenantID: tenant.ID},
		RoomTypeID:  rt.ID,
		RatePlanID:  rp.ID,
		Date:        base.AddDate(0, 0, 1),
		Allotment:   0,
		PriceCents:  8000,
	}
	require.NoError(t, store.UpsertInventoryDay(ctx, drained))

	affected, err := store.DecrementAllotment(ctx, tenant.ID, rt.ID, rp.ID, base, base.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}

func TestCreateBookingRejectsDuplicateLocator(t *testing.T) {
	store := NewMemoryStore()
	tenant, rt, rp, base := seedInventory(t, store)
	ctx := context.Background()

	mk := func() *models.Booking {
		return &models.Booking{
			TenantModel:   models.TenantModel{TenantID: tenant.ID},
			RoomTypeID:    rt.ID,
			RatePlanID:    rp.ID,
			Locator:       "AAAA-1111",
			Checkin:       base,
			Checkout:      base.AddDate(0, 0, 1),
			Guests:        2,
			TotalCents:    8000,
			Currency:      "EUR",
			CustomerName:  "Grace Hopper",
			CustomerEmail: "grace@example.com",
			Status:        models.BookingConfirmed,
		}
	}

	require.NoError(t, store.CreateBooking(ctx, mk()))
	assert.ErrorIs(t, store.CreateBooking(ctx, mk()), ErrDuplicateKey)
}

func TestTransitionBookingStatusIsConditional(t *testing.T) {
	store := NewMemoryStore()
	tenant, rt, rp, base := seedInventory(t, store)
	ctx := context.Background()

	booking := &models.Booking{
		TenantModel:   models.TenantModel{TenantID: tenant.ID},
		RoomTypeID:    rt.ID,
		RatePlanID:    rp.ID,
		Locator:       "BBBB-2222",
		Checkin:       base,
		Checkout:      base.AddDate(0, 0, 1),
		Guests:        1,
		TotalCents:    8000,
		Currency:      "EUR",
		CustomerName:  "Grace Hopper",
		CustomerEmail: "grace@example.com",
		Status:        models.BookingConfirmed,
	}
	require.NoError(t, store.CreateBooking(ctx, booking))

	reason := "test"
	affected, err := store.TransitionBookingStatus(ctx, tenant.ID, booking.ID,
		models.BookingConfirmed, models.BookingCancelled, &reason)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Already cancelled, the second transition matches nothing
	affected, err = store.TransitionBookingStatus(ctx, tenant.ID, booking.ID,
		models.BookingConfirmed, models.BookingCancelled, &reason)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
