package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reserve-se/reserve-se/internal/models"
)

// ========== Inventory Methods ==========

// UpsertInventoryDay inserts or updates the inventory row for one
// (room type, rate plan, date) tuple.
func (s *PostgresStore) UpsertInventoryDay(ctx context.Context, day *models.InventoryDay) error {
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}

	now := time.Now()
	day.CreatedAt = now
	day.UpdatedAt = now
	day.Date = models.Midnight(day.Date)

	query := `
        INSERT INTO inventory_days (
            id, created_at, updated_at, tenant_id, room_type_id, rate_plan_id,
            date, allotment, price_cents, min_stay, max_stay, is_closed
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
        )
        ON CONFLICT (tenant_id, room_type_id, rate_plan_id, date) DO UPDATE SET
            updated_at = EXCLUDED.updated_at,
            allotment = EXCLUDED.allotment,
            price_cents = EXCLUDED.price_cents,
            min_stay = EXCLUDED.min_stay,
            max_stay = EXCLUDED.max_stay,
            is_closed = EXCLUDED.is_closed`

	_, err := s.getDB().ExecContext(ctx, query,
		day.ID, day.CreatedAt, day.UpdatedAt, day.TenantID, day.RoomTypeID,
		day.RatePlanID, day.Date, day.Allotment, day.PriceCents,
		day.MinStay, day.MaxStay, day.IsClosed,
	)

	return err
}

// ListInventory lists inventory rows with optional filters
func (s *PostgresStore) ListInventory(ctx context.Context, tenantID uuid.UUID, filters InventoryFilters, limit, offset int) ([]*models.InventoryDay, int64, error) {
	where := "WHERE i.tenant_id = $1"
	args := []interface{}{tenantID}

	if filters.RoomTypeID != nil {
		args = append(args, *filters.RoomTypeID)
		where += fmt.Sprintf(" AND i.room_type_id = $%d", len(args))
	}
	if filters.RatePlanID != nil {
		args = append(args, *filters.RatePlanID)
		where += fmt.Sprintf(" AND i.rate_plan_id = $%d", len(args))
	}
	if filters.DateFrom != nil {
		args = append(args, models.Midnight(*filters.DateFrom))
		where += fmt.Sprintf(" AND i.date >= $%d", len(args))
	}
	if filters.DateTo != nil {
		args = append(args, models.Midnight(*filters.DateTo))
		where += fmt.Sprintf(" AND i.date <= $%d", len(args))
	}

	var count int64
	countQuery := "SELECT COUNT(*) FROM inventory_days i " + where
	if err := s.getDB().QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `
        SELECT i.id, i.created_at, i.updated_at, i.tenant_id, i.room_type_id,
               i.rate_plan_id, i.date, i.allotment, i.price_cents, i.min_stay,
               i.max_stay, i.is_closed, rt.name, rp.name
        FROM inventory_days i
        JOIN room_types rt ON rt.id = i.room_type_id
        JOIN rate_plans rp ON rp.id = i.rate_plan_id
        ` + where + fmt.Sprintf(`
        ORDER BY i.date ASC
        LIMIT %d OFFSET %d`, limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var days []*models.InventoryDay
	for rows.Next() {
		day := &models.InventoryDay{}
		err := rows.Scan(
			&day.ID, &day.CreatedAt, &day.UpdatedAt, &day.TenantID,
			&day.RoomTypeID, &day.RatePlanID, &day.Date, &day.Allotment,
			&day.PriceCents, &day.MinStay, &day.MaxStay, &day.IsClosed,
			&day.RoomTypeName, &day.RatePlanName,
		)
		if err != nil {
			return nil, 0, err
		}
		days = append(days, day)
	}

	return days, count, rows.Err()
}

// ListAvailability returns open inventory rows joined with their active room
// type and rate plan for the requested stay. Ordering is by room type, rate
// plan, then date so the calculator sees groups in a stable source order.
func (s *PostgresStore) ListAvailability(ctx context.Context, tenantID uuid.UUID, guests int, from, to time.Time) ([]*AvailabilityRow, error) {
	query := `
        SELECT rt.id, rt.name, rt.description, rt.max_guests,
               rp.id, rp.name, rp.description, rp.is_refundable, rp.cancellation_hrs,
               i.date, i.allotment, i.price_cents
        FROM inventory_days i
        JOIN room_types rt ON rt.id = i.room_type_id AND rt.is_active = true
        JOIN rate_plans rp ON rp.id = i.rate_plan_id AND rp.is_active = true
        WHERE i.tenant_id = $1
          AND rt.max_guests >= $2
          AND i.date >= $3 AND i.date < $4
          AND i.is_closed = false
        ORDER BY rt.created_at ASC, rt.id, rp.created_at ASC, rp.id, i.date ASC`

	rows, err := s.getDB().QueryContext(ctx, query,
		tenantID, guests, models.Midnight(from), models.Midnight(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*AvailabilityRow
	for rows.Next() {
		row := &AvailabilityRow{}
		err := rows.Scan(
			&row.RoomTypeID, &row.RoomTypeName, &row.RoomTypeDesc, &row.MaxGuests,
			&row.RatePlanID, &row.RatePlanName, &row.RatePlanDesc,
			&row.IsRefundable, &row.CancellationHrs,
			&row.Date, &row.Allotment, &row.PriceCents,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// ListStayInventory returns the open inventory rows for one
// (room type, rate plan) pair over [from, to), ordered by date.
func (s *PostgresStore) ListStayInventory(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) ([]*models.InventoryDay, error) {
	query := `
        SELECT id, created_at, updated_at, tenant_id, room_type_id,
               rate_plan_id, date, allotment, price_cents, min_stay, max_stay,
               is_closed
        FROM inventory_days
        WHERE tenant_id = $1 AND room_type_id = $2 AND rate_plan_id = $3
          AND date >= $4 AND date < $5
          AND is_closed = false
        ORDER BY date ASC`

	rows, err := s.getDB().QueryContext(ctx, query,
		tenantID, roomTypeID, ratePlanID, models.Midnight(from), models.Midnight(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*models.InventoryDay
	for rows.Next() {
		day := &models.InventoryDay{}
		err := rows.Scan(
			&day.ID, &day.CreatedAt, &day.UpdatedAt, &day.TenantID,
			&day.RoomTypeID, &day.RatePlanID, &day.Date, &day.Allotment,
			&day.PriceCents, &day.MinStay, &day.MaxStay, &day.IsClosed,
		)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

// DecrementAllotment conditionally consumes one room-night from every open
// row of the pair in [from, to). The allotment > 0 guard makes the update a
// compare-and-swap: two racing confirmations cannot both consume the last
// room, and the CHECK constraint on the column backs this up.
func (s *PostgresStore) DecrementAllotment(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) (int64, error) {
	query := `
        UPDATE inventory_days
        SET allotment = allotment - 1, updated_at = $6
        WHERE tenant_id = $1 AND room_type_id = $2 AND rate_plan_id = $3
          AND date >= $4 AND date < $5
          AND is_closed = false
          AND allotment > 0`

	result, err := s.getDB().ExecContext(ctx, query,
		tenantID, roomTypeID, ratePlanID,
		models.Midnight(from), models.Midnight(to), time.Now())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// IncrementAllotment restores one room-night to every surviving row of the
// pair in [from, to). Rows deleted since the booking was made are simply
// absent from the update.
func (s *PostgresStore) IncrementAllotment(ctx context.Context, tenantID, roomTypeID, ratePlanID uuid.UUID, from, to time.Time) (int64, error) {
	query := `
        UPDATE inventory_days
        SET allotment = allotment + 1, updated_at = $6
        WHERE tenant_id = $1 AND room_type_id = $2 AND rate_plan_id = $3
          AND date >= $4 AND date < $5`

	result, err := s.getDB().ExecContext(ctx, query,
		tenantID, roomTypeID, ratePlanID,
		models.Midnight(from), models.Midnight(to), time.Now())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// SumOpenAllotment sums the open allotment across a tenant's inventory for
// one calendar date.
func (s *PostgresStore) SumOpenAllotment(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error) {
	var sum int64
	err := s.getDB().QueryRowContext(ctx, `
        SELECT COALESCE(SUM(allotment), 0)
        FROM inventory_days
        WHERE tenant_id = $1 AND date = $2 AND is_closed = false`,
		tenantID, models.Midnight(date),
	).Scan(&sum)
	return sum, err
}
