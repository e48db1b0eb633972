package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reserve-se/reserve-se/internal/models"
)

// MemoryStore implements Store in memory. It backs the test suite and the
// development mode of the server (no DATABASE_URL configured).
//
// Transactions take a snapshot of the whole data set under a single mutex
// held until Commit or Rollback, which serializes transactional work the way
// row locks do in PostgreSQL. Commit publishes the snapshot; Rollback simply
// discards it, so a failed confirm leaves no partial mutation behind.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memData

	parent *MemoryStore
	inTx   bool
	done   bool
}

type memData struct {
	tenants   map[uuid.UUID]*models.Tenant
	users     map[uuid.UUID]*models.User
	apiKeys   map[uuid.UUID]*models.APIKey
	roomTypes map[uuid.UUID]*models.RoomType
	ratePlans map[uuid.UUID]*models.RatePlan
	inventory map[uuid.UUID]*models.InventoryDay
	bookings  map[uuid.UUID]*models.Booking
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu: &sync.Mutex{},
		data: &memData{
			tenants:   make(map[uuid.UUID]*models.Tenant),
			users:     make(map[uuid.UUID]*models.User),
			apiKeys:   make(map[uuid.UUID]*models.APIKey),
			roomTypes: make(map[uuid.UUID]*models.RoomType),
			ratePlans: make(map[uuid.UUID]*models.RatePlan),
			inventory: make(map[uuid.UUID]*models.InventoryDay),
			bookings:  make(map[uuid.UUID]*models.Booking),
		},
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		tenants:   make(map[uuid.UUID]*models.Tenant, len(d.tenants)),
		users:     make(map[uuid.UUID]*models.User, len(d.users)),
		apiKeys:   make(map[uuid.UUID]*models.APIKey, len(d.apiKeys)),
		roomTypes: make(map[uuid.UUID]*models.RoomType, len(d.roomTypes)),
		ratePlans: make(map[uuid.UUID]*models.RatePlan, len(d.ratePlans)),
		inventory: make(map[uuid.UUID]*models.InventoryDay, len(d.inventory)),
		bookings:  make(map[uuid.UUID]*models.Booking, len(d.bookings)),
	}
	for id, v := range d.tenants {
		c.tenants[id] = ptrCopy(v)
	}
	for id, v := range d.users {
		c.users[id] = ptrCopy(v)
	}
	for id, v := range d.apiKeys {
		c.apiKeys[id] = ptrCopy(v)
	}
	for id, v := range d.roomTypes {
		c.roomTypes[id] = ptrCopy(v)
	}
	for id, v := range d.ratePlans {
		c.ratePlans[id] = ptrCopy(v)
	}
	for id, v := range d.inventory {
		c.inventory[id] = ptrCopy(v)
	}
	for id, v := range d.bookings {
		c.bookings[id] = ptrCopy(v)
	}
	return c
}

func ptrCopy[T any](v *T) *T {
	c := *v
	return &c
}

// lock acquires the store mutex unless this handle is transaction-bound and
// already owns it.
func (s *MemoryStore) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *MemoryStore) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

// BeginTx starts a new transaction
func (s *MemoryStore) BeginTx(ctx context.Context) (Store, error) {
	s.mu.Lock()
	return &MemoryStore{
		mu:     s.mu,
		data:   s.data.clone(),
		parent: s,
		inTx:   true,
	}, nil
}

// Commit publishes the transaction snapshot
func (s *MemoryStore) Commit() error {
	if !s.inTx || s.done {
		return nil
	}
	s.done = true
	s.parent.data = s.data
	s.mu.Unlock()
	return nil
}

// Rollback discards the transaction snapshot
func (s *MemoryStore) Rollback() error {
	if !s.inTx || s.done {
		return nil
	}
	s.done = true
	s.mu.Unlock()
	return nil
}

// Close closes the store
func (s *MemoryStore) Close() error {
	return nil
}

// ========== Tenant Methods ==========

func (s *MemoryStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	s.lock()
	defer s.unlock()

	for _, t := range s.data.tenants {
		if t.Slug == tenant.Slug {
			return ErrDuplicateKey
		}
	}

	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	now := time.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	tenant.IsActive = true

	s.data.tenants[tenant.ID] = ptrCopy(tenant)
	return nil
}

func (s *MemoryStore) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	s.lock()
	defer s.unlock()

	tenant, ok := s.data.tenants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ptrCopy(tenant), nil
}

func (s *MemoryStore) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	s.lock()
	defer s.unlock()

	for _, tenant := range s.data.tenants {
		if tenant.Slug == slug {
			return ptrCopy(tenant), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	s.lock()
	defer s.unlock()

	if _, ok := s.data.tenants[tenant.ID]; !ok {
		return ErrNotFound
	}
	tenant.UpdatedAt = time.Now()
	s.data.tenants[tenant.ID] = ptrCopy(tenant)
	return nil
}

// ========== User Methods ==========

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.lock()
	defer s.unlock()

	for _, u := range s.data.users {
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.data.users[user.ID] = ptrCopy(user)
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.lock()
	defer s.unlock()

	user, ok := s.data.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ptrCopy(user), nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.lock()
	defer s.unlock()

	for _, user := range s.data.users {
		if user.Email == email {
			return ptrCopy(user), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.lock()
	defer s.unlock()

	if _, ok := s.data.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	s.data.users[user.ID] = ptrCopy(user)
	return nil
}

// ========== API Key Methods ==========

func (s *MemoryStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	s.lock()
	defer s.unlock()

	for _, k := range s.data.apiKeys {
		if k.Key == key.Key {
			return ErrDuplicateKey
		}
	}

	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	key.CreatedAt = time.Now()
	key.IsActive = true

	s.data.apiKeys[key.ID] = ptrCopy(key)
	return nil
}

func (s *MemoryStore) GetAPIKey(ctx context.Context, key string) (*models.APIKey, error) {
	s.lock()
	defer s.unlock()

	for _, k := range s.data.apiKeys {
		if k.Key == key && k.IsActive {
			return ptrCopy(k), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error) {
	s.lock()
	defer s.unlock()

	var keys []*models.APIKey
	for _, k := range s.data.apiKeys {
		if k.TenantID == tenantID {
			keys = append(keys, ptrCopy(k))
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].CreatedAt.After(keys[j].CreatedAt)
	})
	return keys, nil
}

func (s *MemoryStore) DeleteAPIKey(ctx context.Context, tenantID, id uuid.UUID) error {
	s.lock()
	defer s.unlock()

	key, ok := s.data.apiKeys[id]
	if !ok || key.TenantID != tenantID {
		return ErrNotFound
	}
	delete(s.data.apiKeys, id)
	return nil
}

// ========== Room Type Methods ==========

func (s *MemoryStore) CreateRoomType(ctx context.Context, rt *models.RoomType) error {
	s.lock()
	defer s.unlock()

	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	now := time.Now()
	rt.CreatedAt = now
	rt.UpdatedAt = now

	s.data.roomTypes[rt.ID] = ptrCopy(rt)
	return nil
}

func (s *MemoryStore) GetRoomType(ctx context.Context, tenantID, id uuid.UUID) (*models.RoomType, error) {
	s.lock()
	defer s.unlock()

	rt, ok := s.data.roomTypes[id]
	if !ok || rt.TenantID != tenantID {
		return nil, ErrNotFound
	}
	return ptrCopy(rt), nil
}

func (s *MemoryStore) UpdateRoomType(ctx context.Context, rt *models.RoomType) error {
	s.lock()
	defer s.unlock()

	existing, ok := s.data.roomTypes[rt.ID]
	if !ok || existing.TenantID != rt.TenantID {
		return ErrNotFound
	}
	rt.UpdatedAt = time.Now()
	s.data.roomTypes[rt.ID] = ptrCopy(rt)
	return nil
}

func (s *MemoryStore) DeleteRoomType(ctx context.Context, tenantID, id uuid.UUID) error {
	s.lock()
	defer s.unlock()

	rt, ok := s.data.roomTypes[id]
	if !ok || rt.TenantID != tenantID {
		return ErrNotFound
	}
	delete(s.data.roomTypes, id)
	return nil
}

func (s *MemoryStore) ListRoomTypes(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RoomType, int64, error) {
	s.lock()
	defer s.unlock()

	var all []*models.RoomType
	for _, rt := range s.data.roomTypes {
		if rt.TenantID == tenantID {
			all = append(all, ptrCopy(rt))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (s *MemoryStore) CountBookingsForRoomType(ctx context.Context, tenantID, roomTypeID uuid.UUID) (int64, error) {
	s.lock()
	defer s.unlock()

	var count int64
	for _, b := range s.data.bookings {
		if b.TenantID == tenantID && b.RoomTypeID == roomTypeID {
			count++
		}
	}
	return count, nil
}

// ========== Rate Plan Methods ==========

func (s *MemoryStore) CreateRatePlan(ctx context.Context, rp *models.RatePlan) error {
	s.lock()
	defer s.unlock()

	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}
	now := time.Now()
	rp.CreatedAt = now
	rp.UpdatedAt = now

	s.data.ratePlans[rp.ID] = ptrCopy(rp)
	return nil
}

func (s *MemoryStore) GetRatePlan(ctx context.Context, tenantID, id uuid.UUID) (*models.RatePlan, error) {
	s.lock()
	defer s.unlock()

	rp, ok := s.data.ratePlans[id]
	if !ok || rp.TenantID != tenantID {
		return nil, ErrNotFound
	}
	return ptrCopy(rp), nil
}

func (s *MemoryStore) UpdateRatePlan(ctx context.Context, rp *models.RatePlan) error {
	s.lock()
	defer s.unlock()

	existing, ok := s.data.ratePlans[rp.ID]
	if !ok || existing.TenantID != rp.TenantID {
		return ErrNotFound
	}
	rp.UpdatedAt = time.Now()
	s.data.ratePlans[rp.ID] = ptrCopy(rp)
	return nil
}

func (s *MemoryStore) DeleteRatePlan(ctx context.Context, tenantID, id uuid.UUID) error {
	s.lock()
	defer s.unlock()

	rp, ok := s.data.ratePlans[id]
	if !ok || rp.TenantID != tenantID {
		return ErrNotFound
	}
	delete(s.data.ratePlans, id)
	return nil
}

func (s *MemoryStore) ListRatePlans(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RatePlan, int64, error) {
	s.lock()
	defer s.unlock()

	var all []*models.RatePlan
	for _, rp := range s.data.ratePlans {
		if rp.TenantID == tenantID {
			all = append(all, ptrCopy(rp))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (s *MemoryStore) CountBookingsForRatePlan(ctx context.Context, tenantID, ratePlanID uuid.UUID) (int64, error) {
	s.lock()
	defer s.unlock()

	var count int64
	for _, b := range s.data.bookings {
		if b.TenantID == tenantID && b.RatePlanID == ratePlanID {
			count++
		}
	}
	return count, nil
}

// ========== Inventory Methods ==========

func (s *MemoryStore) UpsertInventoryDay(ctx context.Context, day *models.InventoryDay) error {
	s.lock()
	defer s.unlock()

	day.Date = models.Midnight(day.Date)
	now := time.Now()

	for _, existing := range s.data.inventory {
		if existing.TenantID == day.TenantID &&
			existing.RoomTypeID == day.RoomTypeID &&
			existing.RatePlanID == day.RatePlanID &&
			existing.Date.Equal(day.Date) {
			existing.Allotment = day.Allotment
			existing.PriceCents = day.PriceCents
			existing.MinStay = day.MinStay
			existing.MaxStay = day.MaxStay
			existing.IsClosed = day.IsClosed
			existing.UpdatedAt = now
			*day = *existing
			return nil
		}
	}

	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}
	day.CreatedAt = now
	day.UpdatedAt = now
	s.data.inventory[day.ID] = ptrCopy(day)
	return nil
}

func (s *MemoryStore) ListInventory(ctx context.Context, tenantID uuid.UUID, filters InventoryFilters, limit, offset int) ([]*models.InventoryDay, int64, error) {
	s.lock()
	defer s.unlock()

	var all []*models.InventoryDay
	for _, day := range s.data.inventory {
		if day.TenantID != tenantID {
			continue
		}
		if filters.RoomTypeID != nil && day.RoomTypeID != *filters.RoomTypeID {
			continue
		}
		if filters.RatePlanID != nil && day.RatePlanID != *filters.RatePlanID {
			continue
		}
		if filters.DateFrom != nil && day.Date.Before(models.Midnight(*filters.DateFrom)) {
			continue
		}
		if filters.DateTo != nil && day.Date.After(models.Midnight(*filters.DateTo)) {
			continue
		}
		c := ptrCopy(day)
		if rt, ok := s.data.roomTypes[day.RoomTypeID]; ok {
			c.RoomTypeName = rt.Name
		}
		if rp, ok := s.data.ratePlans[day.RatePlanID]; ok {
			c.RatePlanName = rp.Name
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (s *MemoryStore) ListAvailability(ctx context.Context, tenantID uuid.UUID, guests int, from, to time.Time) ([]*AvailabilityRow, error) {
	s.lock()
	defer s.unlock()

	from = models.Midnight(from)
	to = models.Midnight(to)

	var result []*AvailabilityRow
	for _, day := range s.data.inventory {
		if day.TenantID != tenantID || day.IsClosed {
			continue
		}
		if day.Date.Before(from) || !day.Date.Before(to) {
			continue
		}
		rt, ok := s.data.roomTypes[day.RoomTypeID]
		if !ok || !rt.IsActive || rt.MaxGuests < guests {
			continue
		}
		rp, ok := s.data.ratePlans[day.RatePlanID]
		if !ok || !rp.IsActive {
			continue
		}
		result = append(result, &AvailabilityRow{
			RoomTypeID:      rt.ID,
			RoomTypeName:    rt.Name,
			RoomTypeDesc:    rt.Description,
			MaxGuests:       rt.MaxGuests,
			RatePlanID:      rp.ID,
			RatePlanName:    rp.Name,
			RatePlanDesc:    rp.Description,
			IsRefundable:    rp.IsRefundable,
			CancellationHrs: rp.CancellationHrs,
			Date:            day.Date,
			Allotment:       day.Allotment,
			PriceCents:      day.PriceCents,
		})
	}

	// Same ordering as the SQL query: room type, rate plan, date
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.RoomTypeID != b.RoomTypeID {
			rta, rtb := s.data.roomTypes[a.RoomTypeID], s.data.roomTypes[b.RoomTypeID]
			if !rta.CreatedAt.Equal(rtb.CreatedAt) {
				return rta.CreatedAt.Before(rtb.CreatedAt)
			}
			return a.RoomTypeID.String() < b.RoomTypeID.String()
		}
		if a.RatePlanID != b.RatePlanID {
			rpa, rpb := s.data.ratePlans[a.RatePlanID], s.data.ratePlans[b.RatePlanID]
			if !rpa.CreatedAt.Equal(rpb.CreatedAt) {
				return rpa.CreatedAt.Before(rpb.CreatedAt)
			}
			return a.RatePlanID.String() < b.RatePlanID.String()
		}
		return a.Date.Before(b.Date)
	})

	return result, nil
}

func (s *MemoryStore) ListStayInventory(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) ([]*models.InventoryDay, error) {
	s.lock()
	defer s.unlock()

	from = models.Midnight(from)
	to = models.Midnight(to)

	var days []*models.InventoryDay
	for _, day := range s.data.inventory {
		if day.TenantID != tenantID || day.RoomTypeID != roomTypeID ||
			day.RatePlanID != ratePlanID || day.IsClosed {
			continue
		}
		if day.Date.Before(from) || !day.Date.Before(to) {
			continue
		}
		days = append(days, ptrCopy(day))
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days, nil
}

func (s *MemoryStore) DecrementAllotment(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) (int64, error) {
	s.lock()
	defer s.unlock()

	from = models.Midnight(from)
	to = models.Midnight(to)

	var affected int64
	for _, day := range s.data.inventory {
		if day.TenantID != tenantID || day.RoomTypeID != roomTypeID ||
			day.RatePlanID != ratePlanID || day.IsClosed {
			continue
		}
		if day.Date.Before(from) || !day.Date.Before(to) {
			continue
		}
		if day.Allotment <= 0 {
			continue
		}
		day.Allotment--
		day.UpdatedAt = time.Now()
		affected++
	}
	return affected, nil
}

func (s *MemoryStore) IncrementAllotment(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) (int64, error) {
	s.lock()
	defer s.unlock()

	from = models.Midnight(from)
	to = models.Midnight(to)

	var affected int64
	for _, day := range s.data.inventory {
		if day.TenantID != tenantID || day.RoomTypeID != roomTypeID ||
			day.RatePlanID != ratePlanID {
			continue
		}
		if day.Date.Before(from) || !day.Date.Before(to) {
			continue
		}
		day.Allotment++
		day.UpdatedAt = time.Now()
		affected++
	}
	return affected, nil
}

func (s *MemoryStore) SumOpenAllotment(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error) {
	s.lock()
	defer s.unlock()

	date = models.Midnight(date)
	var sum int64
	for _, day := range s.data.inventory {
		if day.TenantID == tenantID && day.Date.Equal(date) && !day.IsClosed {
			sum += int64(day.Allotment)
		}
	}
	return sum, nil
}

// ========== Booking Methods ==========

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.lock()
	defer s.unlock()

	for _, b := range s.data.bookings {
		if b.TenantID == booking.TenantID && b.Locator == booking.Locator {
			return ErrDuplicateKey
		}
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	s.data.bookings[booking.ID] = ptrCopy(booking)
	return nil
}

func (s *MemoryStore) joinBooking(b *models.Booking) *models.Booking {
	c := ptrCopy(b)
	if rt, ok := s.data.roomTypes[b.RoomTypeID]; ok {
		c.RoomTypeName = rt.Name
	}
	if rp, ok := s.data.ratePlans[b.RatePlanID]; ok {
		c.RatePlanName = rp.Name
	}
	return c
}

func (s *MemoryStore) GetBooking(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error) {
	s.lock()
	defer s.unlock()

	b, ok := s.data.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, ErrNotFound
	}
	return s.joinBooking(b), nil
}

func (s *MemoryStore) GetBookingByLocator(ctx context.Context, tenantID uuid.UUID, locator, email string) (*models.Booking, error) {
	s.lock()
	defer s.unlock()

	locator = strings.ToUpper(locator)
	for _, b := range s.data.bookings {
		if b.TenantID == tenantID && b.Locator == locator &&
			strings.EqualFold(b.CustomerEmail, email) {
			return s.joinBooking(b), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListBookings(ctx context.Context, tenantID uuid.UUID, filters BookingFilters, limit, offset int) ([]*models.Booking, int64, error) {
	s.lock()
	defer s.unlock()

	var all []*models.Booking
	for _, b := range s.data.bookings {
		if b.TenantID != tenantID {
			continue
		}
		if filters.Status != nil && b.Status != *filters.Status {
			continue
		}
		if filters.CheckinFrom != nil && b.Checkin.Before(models.Midnight(*filters.CheckinFrom)) {
			continue
		}
		if filters.CheckinTo != nil && b.Checkin.After(models.Midnight(*filters.CheckinTo)) {
			continue
		}
		if filters.CustomerEmail != "" &&
			!strings.Contains(strings.ToLower(b.CustomerEmail), strings.ToLower(filters.CustomerEmail)) {
			continue
		}
		if filters.CustomerName != "" &&
			!strings.Contains(strings.ToLower(b.CustomerName), strings.ToLower(filters.CustomerName)) {
			continue
		}
		if filters.Locator != "" &&
			!strings.Contains(b.Locator, strings.ToUpper(filters.Locator)) {
			continue
		}
		all = append(all, s.joinBooking(b))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (s *MemoryStore) TransitionBookingStatus(ctx context.Context, tenantID, id uuid.UUID, from, to models.BookingStatus, reason *string) (int64, error) {
	s.lock()
	defer s.unlock()

	b, ok := s.data.bookings[id]
	if !ok || b.TenantID != tenantID || b.Status != from {
		return 0, nil
	}
	b.Status = to
	if reason != nil {
		b.CancellationReason = reason
	}
	b.UpdatedAt = time.Now()
	return 1, nil
}

func (s *MemoryStore) CountInHouseBookings(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error) {
	s.lock()
	defer s.unlock()

	date = models.Midnight(date)
	var count int64
	for _, b := range s.data.bookings {
		if b.TenantID == tenantID && b.Status == models.BookingConfirmed &&
			!b.Checkin.After(date) && b.Checkout.After(date) {
			count++
		}
	}
	return count, nil
}

// DeleteTenantData wipes a tenant's bookings, inventory, rate plans and
// room types.
func (s *MemoryStore) DeleteTenantData(ctx context.Context, tenantID uuid.UUID) error {
	s.lock()
	defer s.unlock()

	for id, b := range s.data.bookings {
		if b.TenantID == tenantID {
			delete(s.data.bookings, id)
		}
	}
	for id, day := range s.data.inventory {
		if day.TenantID == tenantID {
			delete(s.data.inventory, id)
		}
	}
	for id, rp := range s.data.ratePlans {
		if rp.TenantID == tenantID {
			delete(s.data.ratePlans, id)
		}
	}
	for id, rt := range s.data.roomTypes {
		if rt.TenantID == tenantID {
			delete(s.data.roomTypes, id)
		}
	}
	return nil
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
