package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserve-se/reserve-se/internal/models"
	"github.com/reserve-se/reserve-se/internal/storage"
)

type fixture struct {
	store  *storage.MemoryStore
	engine *Engine
	events *fakePublisher

	tenant  *models.Tenant
	double  *models.RoomType
	suite   *models.RoomType
	flex    *models.RatePlan
	nonRef  *models.RatePlan
	baseDay time.Time
}

type fakePublisher struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
}

func (p *fakePublisher) BookingConfirmed(slug string, b *models.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmed = append(p.confirmed, slug+"/"+b.Locator)
}

func (p *fakePublisher) BookingCancelled(slug string, b *models.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, slug+"/"+b.Locator)
}

// newFixture seeds a hotel with two room types, two rate plans and 30
// days of inventory starting tomorrow, 5 units per night.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	events := &fakePublisher{}

	f := &fixture{
		store:   store,
		events:  events,
		engine:  NewEngine(store, events),
		baseDay: models.Midnight(time.Now()).AddDate(0, 0, 1),
	}

	f.tenant = &models.Tenant{
		Slug:     "hotel-luna",
		Name:     "Hotel Luna",
		Currency: "EUR",
		Timezone: "Europe/Madrid",
	}
	require.NoError(t, store.CreateTenant(ctx, f.tenant))

	f.double = &models.RoomType{
		TenantModel: models.TenantModel{TenantID: f.tenant.ID},
		Name:        "Double Room",
		MaxGuests:   2,
		IsActive:    true,
	}
	require.NoError(t, store.CreateRoomType(ctx, f.double))

	f.suite = &models.RoomType{
		TenantModel: models.TenantModel{TenantID: f.tenant.ID},
		Name:        "Family Suite",
		MaxGuests:   4,
		IsActive:    true,
	}
	require.NoError(t, store.CreateRoomType(ctx, f.suite))

	f.flex = &models.RatePlan{
		TenantModel:     models.TenantModel{TenantID: f.tenant.ID},
		Name:            "Flexible",
		IsRefundable:    true,
		CancellationHrs: 24,
		IsActive:        true,
	}
	require.NoError(t, store.CreateRatePlan(ctx, f.flex))

	f.nonRef = &models.RatePlan{
		TenantModel: models.TenantModel{TenantID: f.tenant.ID},
		Name:        "Non-refundable",
		IsActive:    true,
	}
	require.NoError(t, store.CreateRatePlan(ctx, f.nonRef))

	prices := map[uuid.UUID]map[uuid.UUID]int{
		f.double.ID: {f.flex.ID: 12000, f.nonRef.ID: 9900},
		f.suite.ID:  {f.flex.ID: 21000, f.nonRef.ID: 17500},
	}
	for _, rt := range []*models.RoomType{f.double, f.suite} {
		for _, rp := range []*models.RatePlan{f.flex, f.nonRef} {
			for i := 0; i < 30; i++ {
				day := &models.InventoryDay{
					TenantModel: models.TenantModel{TenantID: f.tenant.ID},
					RoomTypeID:  rt.ID,
					RatePlanID:  rp.ID,
					Date:        f.baseDay.AddDate(0, 0, i),
					Allotment:   5,
					PriceCents:  prices[rt.ID][rp.ID],
				}
				require.NoError(t, store.UpsertInventoryDay(ctx, day))
			}
		}
	}
	return f
}

func (f *fixture) setDay(t *testing.T, rt *models.RoomType, rp *models.RatePlan, offset, allotment int, closed bool) {
	t.Helper()
	day := &models.InventoryDay{
		TenantModel: models.TenantModel{TenantID: f.tenant.ID},
		RoomTypeID:  rt.ID,
		RatePlanID:  rp.ID,
		Date:        f.baseDay.AddDate(0, 0, offset),
		Allotment:   allotment,
		PriceCents:  10000,
		IsClosed:    closed,
	}
	require.NoError(t, f.store.UpsertInventoryDay(context.Background(), day))
}

func (f *fixture) stay(nights, guests int) StayRequest {
	return StayRequest{
		Checkin:  f.baseDay,
		Checkout: f.baseDay.AddDate(0, 0, nights),
		Guests:   guests,
	}
}

func (f *fixture) confirmReq(rt *models.RoomType, rp *models.RatePlan, nights, guests int) ConfirmRequest {
	return ConfirmRequest{
		StayRequest:   f.stay(nights, guests),
		RoomTypeID:    rt.ID,
		RatePlanID:    rp.ID,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
	}
}

func TestAvailabilityGroupsRatePlansByRoomType(t *testing.T) {
	f := newFixture(t)

	result, err := f.engine.Availability(context.Background(), f.tenant.ID, f.stay(2, 2))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Nights)
	assert.Equal(t, "EUR", result.Currency)
	require.Len(t, result.RoomTypes, 2)

	double := result.RoomTypes[0]
	assert.Equal(t, "Double Room", double.Name)
	require.Len(t, double.RatePlans, 2)

	flex := double.RatePlans[0]
	assert.Equal(t, "Flexible", flex.Name)
	assert.Equal(t, 5, flex.Available)
	assert.Equal(t, 24000, flex.TotalCents)
	assert.Equal(t, 12000, flex.PricePerNightCents)
	assert.True(t, flex.IsRefundable)

	nonRef := double.RatePlans[1]
	assert.Equal(t, 19800, nonRef.TotalCents)
	assert.False(t, nonRef.IsRefundable)
}

func TestAvailabilityFiltersByGuests(t *testing.T) {
	f := newFixture(t)

	result, err := f.engine.Availability(context.Background(), f.tenant.ID, f.stay(1, 3))
	require.NoError(t, err)

	require.Len(t, result.RoomTypes, 1)
	assert.Equal(t, "Family Suite", result.RoomTypes[0].Name)
}

func TestAvailabilityDropsCombinationMissingANight(t *testing.T) {
	f := newFixture(t)

	// Close the second night of double/flexible only
	f.setDay(t, f.double, f.flex, 1, 5, true)

	result, err := f.engine.Availability(context.Background(), f.tenant.ID, f.stay(2, 2))
	require.NoError(t, err)

	require.Len(t, result.RoomTypes, 2)
	double := result.RoomTypes[0]
	require.Len(t, double.RatePlans, 1)
	assert.Equal(t, "Non-refundable", double.RatePlans[0].Name)
}

func TestAvailabilityDropsSoldOutCombination(t *testing.T) {
	f := newFixture(t)

	f.setDay(t, f.double, f.flex, 0, 0, false)
	f.setDay(t, f.double, f.nonRef, 0, 0, false)

	result, err := f.engine.Availability(context.Background(), f.tenant.ID, f.stay(1, 2))
	require.NoError(t, err)

	// The double room disappears entirely, the suite remains
	require.Len(t, result.RoomTypes, 1)
	assert.Equal(t, "Family Suite", result.RoomTypes[0].Name)
}

func TestAvailabilityUsesMinimumAllotmentAcrossNights(t *testing.T) {
	f := newFixture(t)

	f.setDay(t, f.double, f.flex, 1, 2, false)

	result, err := f.engine.Availability(context.Background(), f.tenant.ID, f.stay(3, 2))
	require.NoError(t, err)

	double := result.RoomTypes[0]
	assert.Equal(t, 2, double.RatePlans[0].Available)
}

func TestStayDateRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := models.Midnight(time.Now())

	// Checkin today is fine all day long
	_, err := f.engine.Availability(ctx, f.tenant.ID, StayRequest{
		Checkin: today, Checkout: today.AddDate(0, 0, 1), Guests: 2,
	})
	require.NoError(t, err)

	// Checkin in the past
	_, err = f.engine.Availability(ctx, f.tenant.ID, StayRequest{
		Checkin: today.AddDate(0, 0, -1), Checkout: today.AddDate(0, 0, 1), Guests: 2,
	})
	assert.Equal(t, KindValidation, KindOf(err))

	// Checkout equal to checkin
	_, err = f.engine.Availability(ctx, f.tenant.ID, StayRequest{
		Checkin: today, Checkout: today, Guests: 2,
	})
	assert.Equal(t, KindValidation, KindOf(err))

	// Checkout before checkin
	_, err = f.engine.Availability(ctx, f.tenant.ID, StayRequest{
		Checkin: today.AddDate(0, 0, 2), Checkout: today.AddDate(0, 0, 1), Guests: 2,
	})
	assert.Equal(t, KindValidation, KindOf(err))

	// Zero guests
	_, err = f.engine.Availability(ctx, f.tenant.ID, StayRequest{
		Checkin: today, Checkout: today.AddDate(0, 0, 1), Guests: 0,
	})
	assert.Equal(t, KindValidation, KindOf(err))

	// Party larger than any booking can carry
	_, err = f.engine.Availability(ctx, f.tenant.ID, StayRequest{
		Checkin: today, Checkout: today.AddDate(0, 0, 1), Guests: 11,
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestConfirmRejectsPartyAboveGuestCap(t *testing.T) {
	f := newFixture(t)

	req := f.confirmReq(f.double, f.flex, 1, 50)
	_, err := f.engine.Confirm(context.Background(), f.tenant.ID, req)
	assert.Equal(t, KindValidation, KindOf(err))
}

// faultyStore injects a storage failure into room type lookups.
type faultyStore struct {
	storage.Store
	roomTypeErr error
}

func (s *faultyStore) BeginTx(ctx context.Context) (storage.Store, error) {
	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &faultyStore{Store: tx, roomTypeErr: s.roomTypeErr}, nil
}

func (s *faultyStore) GetRoomType(ctx context.Context, tenantID, id uuid.UUID) (*models.RoomType, error) {
	return nil, s.roomTypeErr
}

func TestConfirmPropagatesStorageFailures(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")
	engine := NewEngine(&faultyStore{Store: f.store, roomTypeErr: boom}, f.events)

	_, err := engine.Confirm(context.Background(), f.tenant.ID, f.confirmReq(f.double, f.flex, 1, 2))
	require.Error(t, err)
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.ErrorIs(t, err, boom)
}

func TestNightsCount(t *testing.T) {
	base := models.Midnight(time.Now()).AddDate(0, 0, 1)

	req := StayRequest{Checkin: base, Checkout: base.AddDate(0, 0, 1)}
	assert.Equal(t, 1, req.Nights())

	req.Checkout = base.AddDate(0, 0, 7)
	assert.Equal(t, 7, req.Nights())
}

func TestConfirmCreatesBookingAndDecrements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.engine.Confirm(ctx, f.tenant.ID, f.confirmReq(f.double, f.flex, 2, 2))
	require.NoError(t, err)

	assert.Regexp(t, `^[A-Z0-9]{4}-[A-Z0-9]{4}$`, b.Locator)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, 24000, b.TotalCents)
	assert.Equal(t, "EUR", b.Currency)
	assert.Equal(t, 2, b.Nights())
	assert.Equal(t, "ada@example.com", b.CustomerEmail)

	days, err := f.store.ListStayInventory(ctx, f.tenant.ID, f.double.ID, f.flex.ID,
		f.baseDay, f.baseDay.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, days, 2)
	for _, day := range days {
		assert.Equal(t, 4, day.Allotment)
	}

	// Other combinations untouched
	days, err = f.store.ListStayInventory(ctx, f.tenant.ID, f.double.ID, f.nonRef.ID,
		f.baseDay, f.baseDay.AddDate(0, 0, 2))
	require.NoError(t, err)
	for _, day := range days {
		assert.Equal(t, 5, day.Allotment)
	}

	assert.Equal(t, []string{"hotel-luna/" + b.Locator}, f.events.confirmed)
}

func TestConfirmRejectsStayWithoutInventory(t *testing.T) {
	f := newFixture(t)

	// Inventory covers 30 days, ask for a night past the horizon
	req := f.confirmReq(f.double, f.flex, 1, 2)
	req.Checkin = f.baseDay.AddDate(0, 0, 40)
	req.Checkout = f.baseDay.AddDate(0, 0, 41)

	_, err := f.engine.Confirm(context.Background(), f.tenant.ID, req)
	assert.Equal(t, KindAvailability, KindOf(err))
}

func TestConfirmRejectsSoldOutNight(t *testing.T) {
	f := newFixture(t)
	f.setDay(t, f.double, f.flex, 1, 0, false)

	_, err := f.engine.Confirm(context.Background(), f.tenant.ID, f.confirmReq(f.double, f.flex, 2, 2))
	assert.Equal(t, KindAvailability, KindOf(err))

	// The first night must not have been decremented
	days, err2 := f.store.ListStayInventory(context.Background(), f.tenant.ID,
		f.double.ID, f.flex.ID, f.baseDay, f.baseDay.AddDate(0, 0, 1))
	require.NoError(t, err2)
	require.Len(t, days, 1)
	assert.Equal(t, 5, days[0].Allotment)
}

func TestConfirmRejectsOversizedParty(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Confirm(context.Background(), f.tenant.ID, f.confirmReq(f.double, f.flex, 1, 3))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestConfirmRejectsUnknownRoomType(t *testing.T) {
	f := newFixture(t)

	req := f.confirmReq(f.double, f.flex, 1, 2)
	req.RoomTypeID = uuid.New()

	_, err := f.engine.Confirm(context.Background(), f.tenant.ID, req)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestConfirmRejectsInactiveRatePlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.nonRef.IsActive = false
	require.NoError(t, f.store.UpdateRatePlan(ctx, f.nonRef))

	_, err := f.engine.Confirm(ctx, f.tenant.ID, f.confirmReq(f.double, f.nonRef, 1, 2))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestConcurrentConfirmsNeverOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A single unit left for a two night stay
	f.setDay(t, f.double, f.flex, 0, 1, false)
	f.setDay(t, f.double, f.flex, 1, 1, false)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.Confirm(ctx, f.tenant.ID, f.confirmReq(f.double, f.flex, 2, 2))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		kind := KindOf(err)
		assert.Contains(t, []Kind{KindAvailability, KindConflict}, kind)
	}
	assert.Equal(t, 1, succeeded)

	days, err := f.store.ListStayInventory(ctx, f.tenant.ID, f.double.ID, f.flex.ID,
		f.baseDay, f.baseDay.AddDate(0, 0, 2))
	require.NoError(t, err)
	for _, day := range days {
		assert.Equal(t, 0, day.Allotment)
	}
}

func TestCancelRestoresInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.engine.Confirm(ctx, f.tenant.ID, f.confirmReq(f.double, f.flex, 2, 2))
	require.NoError(t, err)

	reason := "guest request"
	cancelled, err := f.engine.Cancel(ctx, f.tenant.ID, b.ID, &reason)
	require.NoError(t, err)

	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "guest request", *cancelled.CancellationReason)

	days, err := f.store.ListStayInventory(ctx, f.tenant.ID, f.double.ID, f.flex.ID,
		f.baseDay, f.baseDay.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, days, 2)
	for _, day := range days {
		assert.Equal(t, 5, day.Allotment)
	}

	assert.Equal(t, []string{"hotel-luna/" + b.Locator}, f.events.cancelled)
}

func TestCancelIsNotIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.engine.Confirm(ctx, f.tenant.ID, f.confirmReq(f.double, f.flex, 2, 2))
	require.NoError(t, err)

	_, err = f.engine.Cancel(ctx, f.tenant.ID, b.ID, nil)
	require.NoError(t, err)

	// The second cancel is rejected and must not restore again
	_, err = f.engine.Cancel(ctx, f.tenant.ID, b.ID, nil)
	assert.Equal(t, KindConflict, KindOf(err))

	days, err := f.store.ListStayInventory(ctx, f.tenant.ID, f.double.ID, f.flex.ID,
		f.baseDay, f.baseDay.AddDate(0, 0, 2))
	require.NoError(t, err)
	for _, day := range days {
		assert.Equal(t, 5, day.Allotment)
	}
}

func TestConcurrentCancelsOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.engine.Confirm(ctx, f.tenant.ID, f.confirmReq(f.double, f.flex, 1, 2))
	require.NoError(t, err)

	const attempts = 4
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.Cancel(ctx, f.tenant.ID, b.ID, nil)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, KindConflict, KindOf(err))
		}
	}
	assert.Equal(t, 1, succeeded)

	days, err := f.store.ListStayInventory(ctx, f.tenant.ID, f.double.ID, f.flex.ID,
		f.baseDay, f.baseDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 5, days[0].Allotment)
}

func TestCancelUnknownBooking(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Cancel(context.Background(), f.tenant.ID, uuid.New(), nil)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCancelIsTenantScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.engine.Confirm(ctx, f.tenant.ID, f.confirmReq(f.double, f.flex, 1, 2))
	require.NoError(t, err)

	other := &models.Tenant{Slug: "other-hotel", Name: "Other", Currency: "EUR"}
	require.NoError(t, f.store.CreateTenant(ctx, other))

	_, err = f.engine.Cancel(ctx, other.ID, b.ID, nil)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestLookupMatchesLocatorAndEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.engine.Confirm(ctx, f.tenant.ID, f.confirmReq(f.double, f.flex, 1, 2))
	require.NoError(t, err)

	// Locator and email are matched case-insensitively
	found, err := f.engine.Lookup(ctx, f.tenant.ID, strings.ToLower(b.Locator), "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)

	_, err = f.engine.Lookup(ctx, f.tenant.ID, b.Locator, "someone-else@example.com")
	assert.Equal(t, KindNotFound, KindOf(err))
}
