package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reserve-se/reserve-se/internal/models"
)

// ========== Booking Methods ==========

// CreateBooking creates a new booking. A duplicate locator within the
// tenant surfaces as ErrDuplicateKey so the caller can regenerate.
func (s *PostgresStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query := `
        INSERT INTO bookings (
            id, created_at, updated_at, tenant_id, room_type_id, rate_plan_id,
            locator, checkin, checkout, guests, total_cents, currency,
            customer_name, customer_email, customer_phone, status,
            cancellation_reason
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
            $16, $17
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		booking.ID, booking.CreatedAt, booking.UpdatedAt, booking.TenantID,
		booking.RoomTypeID, booking.RatePlanID, booking.Locator,
		booking.Checkin, booking.Checkout, booking.Guests, booking.TotalCents,
		booking.Currency, booking.CustomerName, booking.CustomerEmail,
		booking.CustomerPhone, booking.Status, booking.CancellationReason,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

const bookingColumns = `b.id, b.created_at, b.updated_at, b.tenant_id,
       b.room_type_id, b.rate_plan_id, b.locator, b.checkin, b.checkout,
       b.guests, b.total_cents, b.currency, b.customer_name, b.customer_email,
       b.customer_phone, b.status, b.cancellation_reason, rt.name, rp.name`

const bookingJoins = `
        FROM bookings b
        JOIN room_types rt ON rt.id = b.room_type_id
        JOIN rate_plans rp ON rp.id = b.rate_plan_id`

func scanBooking(row *sql.Row) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.TenantID, &b.RoomTypeID,
		&b.RatePlanID, &b.Locator, &b.Checkin, &b.Checkout, &b.Guests,
		&b.TotalCents, &b.Currency, &b.CustomerName, &b.CustomerEmail,
		&b.CustomerPhone, &b.Status, &b.CancellationReason,
		&b.RoomTypeName, &b.RatePlanName,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return b, err
}

// GetBooking gets a booking by ID, scoped to the tenant
func (s *PostgresStore) GetBooking(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + `
        WHERE b.id = $1 AND b.tenant_id = $2`
	return scanBooking(s.getDB().QueryRowContext(ctx, query, id, tenantID))
}

// GetBookingByLocator gets a booking by locator and customer email. Both
// must match; the pair is what a guest presents at lookup.
func (s *PostgresStore) GetBookingByLocator(ctx context.Context, tenantID uuid.UUID, locator, email string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + `
        WHERE b.tenant_id = $1 AND b.locator = $2 AND lower(b.customer_email) = lower($3)`
	return scanBooking(s.getDB().QueryRowContext(ctx, query, tenantID, strings.ToUpper(locator), email))
}

// ListBookings lists a tenant's bookings with optional filters
func (s *PostgresStore) ListBookings(ctx context.Context, tenantID uuid.UUID, filters BookingFilters, limit, offset int) ([]*models.Booking, int64, error) {
	where := "WHERE b.tenant_id = $1"
	args := []interface{}{tenantID}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		where += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	if filters.CheckinFrom != nil {
		args = append(args, models.Midnight(*filters.CheckinFrom))
		where += fmt.Sprintf(" AND b.checkin >= $%d", len(args))
	}
	if filters.CheckinTo != nil {
		args = append(args, models.Midnight(*filters.CheckinTo))
		where += fmt.Sprintf(" AND b.checkin <= $%d", len(args))
	}
	if filters.CustomerEmail != "" {
		args = append(args, "%"+filters.CustomerEmail+"%")
		where += fmt.Sprintf(" AND b.customer_email ILIKE $%d", len(args))
	}
	if filters.CustomerName != "" {
		args = append(args, "%"+filters.CustomerName+"%")
		where += fmt.Sprintf(" AND b.customer_name ILIKE $%d", len(args))
	}
	if filters.Locator != "" {
		args = append(args, "%"+strings.ToUpper(filters.Locator)+"%")
		where += fmt.Sprintf(" AND b.locator LIKE $%d", len(args))
	}

	var count int64
	countQuery := "SELECT COUNT(*) FROM bookings b " + where
	if err := s.getDB().QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + bookingJoins + `
        ` + where + fmt.Sprintf(`
        ORDER BY b.created_at DESC
        LIMIT %d OFFSET %d`, limit, offset)

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(
			&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.TenantID, &b.RoomTypeID,
			&b.RatePlanID, &b.Locator, &b.Checkin, &b.Checkout, &b.Guests,
			&b.TotalCents, &b.Currency, &b.CustomerName, &b.CustomerEmail,
			&b.CustomerPhone, &b.Status, &b.CancellationReason,
			&b.RoomTypeName, &b.RatePlanName,
		)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}

	return bookings, count, rows.Err()
}

// TransitionBookingStatus moves a booking from one status to another. The
// WHERE clause on the current status makes the transition a compare-and-swap:
// a concurrent transition that already won leaves zero rows to update.
func (s *PostgresStore) TransitionBookingStatus(ctx context.Context, tenantID, id uuid.UUID, from, to models.BookingStatus, reason *string) (int64, error) {
	query := `
        UPDATE bookings
        SET status = $4, cancellation_reason = COALESCE($5, cancellation_reason),
            updated_at = $6
        WHERE id = $1 AND tenant_id = $2 AND status = $3`

	result, err := s.getDB().ExecContext(ctx, query,
		id, tenantID, from, to, reason, time.Now())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// CountInHouseBookings counts confirmed bookings whose stay covers the
// given date.
func (s *PostgresStore) CountInHouseBookings(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	err := s.getDB().QueryRowContext(ctx, `
        SELECT COUNT(*)
        FROM bookings
        WHERE tenant_id = $1 AND status = $2
          AND checkin <= $3 AND checkout > $3`,
		tenantID, models.BookingConfirmed, models.Midnight(date),
	).Scan(&count)
	return count, err
}
