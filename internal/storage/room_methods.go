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

// ========== Room Type Methods ==========

// CreateRoomType creates a new room type
func (s *PostgresStore) CreateRoomType(ctx context.Context, rt *models.RoomType) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}

	now := time.Now()
	rt.CreatedAt = now
	rt.UpdatedAt = now

	query := `
        INSERT INTO room_types (
            id, created_at, updated_at, tenant_id, name, description,
            max_guests, is_active
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		rt.ID, rt.CreatedAt, rt.UpdatedAt, rt.TenantID, rt.Name,
		rt.Description, rt.MaxGuests, rt.IsActive,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetRoomType gets a room type by ID, scoped to the tenant
func (s *PostgresStore) GetRoomType(ctx context.Context, tenantID, id uuid.UUID) (*models.RoomType, error) {
	query := `
        SELECT id, created_at, updated_at, tenant_id, name, description,
               max_guests, is_active
        FROM room_types
        WHERE id = $1 AND tenant_id = $2`

	rt := &models.RoomType{}
	err := s.getDB().QueryRowContext(ctx, query, id, tenantID).Scan(
		&rt.ID, &rt.CreatedAt, &rt.UpdatedAt, &rt.TenantID, &rt.Name,
		&rt.Description, &rt.MaxGuests, &rt.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return rt, err
}

// UpdateRoomType updates a room type
func (s *PostgresStore) UpdateRoomType(ctx context.Context, rt *models.RoomType) error {
	rt.UpdatedAt = time.Now()

	query := `
        UPDATE room_types SET
            updated_at = $3, name = $4, description = $5, max_guests = $6,
            is_active = $7
        WHERE id = $1 AND tenant_id = $2`

	result, err := s.getDB().ExecContext(ctx, query,
		rt.ID, rt.TenantID, rt.UpdatedAt, rt.Name, rt.Description,
		rt.MaxGuests, rt.IsActive,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteRoomType deletes a room type
func (s *PostgresStore) DeleteRoomType(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx,
		"DELETE FROM room_types WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListRoomTypes lists a tenant's room types
func (s *PostgresStore) ListRoomTypes(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RoomType, int64, error) {
	var count int64
	err := s.getDB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM room_types WHERE tenant_id = $1", tenantID,
	).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
        SELECT id, created_at, updated_at, tenant_id, name, description,
               max_guests, is_active
        FROM room_types
        WHERE tenant_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := s.getDB().QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var roomTypes []*models.RoomType
	for rows.Next() {
		rt := &models.RoomType{}
		err := rows.Scan(
			&rt.ID, &rt.CreatedAt, &rt.UpdatedAt, &rt.TenantID, &rt.Name,
			&rt.Description, &rt.MaxGuests, &rt.IsActive,
		)
		if err != nil {
			return nil, 0, err
		}
		roomTypes = append(roomTypes, rt)
	}

	return roomTypes, count, rows.Err()
}

// CountBookingsForRoomType counts bookings referencing a room type
func (s *PostgresStore) CountBookingsForRoomType(ctx context.Context, tenantID, roomTypeID uuid.UUID) (int64, error) {
	var count int64
	err := s.getDB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE tenant_id = $1 AND room_type_id = $2",
		tenantID, roomTypeID,
	).Scan(&count)
	return count, err
}

// ========== Rate Plan Methods ==========

// CreateRatePlan creates a new rate plan
func (s *PostgresStore) CreateRatePlan(ctx context.Context, rp *models.RatePlan) error {
	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}

	now := time.Now()
	rp.CreatedAt = now
	rp.UpdatedAt = now

	query := `
        INSERT INTO rate_plans (
            id, created_at, updated_at, tenant_id, name, description,
            is_refundable, cancellation_hrs, is_active
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		rp.ID, rp.CreatedAt, rp.UpdatedAt, rp.TenantID, rp.Name,
		rp.Description, rp.IsRefundable, rp.CancellationHrs, rp.IsActive,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetRatePlan gets a rate plan by ID, scoped to the tenant
func (s *PostgresStore) GetRatePlan(ctx context.Context, tenantID, id uuid.UUID) (*models.RatePlan, error) {
	query := `
        SELECT id, created_at, updated_at, tenant_id, name, description,
               is_refundable, cancellation_hrs, is_active
        FROM rate_plans
        WHERE id = $1 AND tenant_id = $2`

	rp := &models.RatePlan{}
	err := s.getDB().QueryRowContext(ctx, query, id, tenantID).Scan(
		&rp.ID, &rp.CreatedAt, &rp.UpdatedAt, &rp.TenantID, &rp.Name,
		&rp.Description, &rp.IsRefundable, &rp.CancellationHrs, &rp.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return rp, err
}

// UpdateRatePlan updates a rate plan
func (s *PostgresStore) UpdateRatePlan(ctx context.Context, rp *models.RatePlan) error {
	rp.UpdatedAt = time.Now()

	query := `
        UPDATE rate_plans SET
            updated_at = $3, name = $4, description = $5, is_refundable = $6,
            cancellation_hrs = $7, is_active = $8
        WHERE id = $1 AND tenant_id = $2`

	result, err := s.getDB().ExecContext(ctx, query,
		rp.ID, rp.TenantID, rp.UpdatedAt, rp.Name, rp.Description,
		rp.IsRefundable, rp.CancellationHrs, rp.IsActive,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteRatePlan deletes a rate plan
func (s *PostgresStore) DeleteRatePlan(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx,
		"DELETE FROM rate_plans WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListRatePlans lists a tenant's rate plans
func (s *PostgresStore) ListRatePlans(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.RatePlan, int64, error) {
	var count int64
	err := s.getDB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rate_plans WHERE tenant_id = $1", tenantID,
	).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `
        SELECT id, created_at, updated_at, tenant_id, name, description,
               is_refundable, cancellation_hrs, is_active
        FROM rate_plans
        WHERE tenant_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := s.getDB().QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ratePlans []*models.RatePlan
	for rows.Next() {
		rp := &models.RatePlan{}
		err := rows.Scan(
			&rp.ID, &rp.CreatedAt, &rp.UpdatedAt, &rp.TenantID, &rp.Name,
			&rp.Description, &rp.IsRefundable, &rp.CancellationHrs, &rp.IsActive,
		)
		if err != nil {
			return nil, 0, err
		}
		ratePlans = append(ratePlans, rp)
	}

	return ratePlans, count, rows.Err()
}

// CountBookingsForRatePlan counts bookings referencing a rate plan
func (s *PostgresStore) CountBookingsForRatePlan(ctx context.Context, tenantID, ratePlanID uuid.UUID) (int64, error) {
	var count int64
	err := s.getDB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE tenant_id = $1 AND rate_plan_id = $2",
		tenantID, ratePlanID,
	).Scan(&count)
	return count, err
}

// DeleteTenantData wipes a tenant's bookings, inventory, rate plans and
// room types, in reverse dependency order.
func (s *PostgresStore) DeleteTenantData(ctx context.Context, tenantID uuid.UUID) error {
	for _, table := range []string{"bookings", "inventory_days", "rate_plans", "room_types"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE tenant_id = $1", table)
		if _, err := s.getDB().ExecContext(ctx, query, tenantID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}
