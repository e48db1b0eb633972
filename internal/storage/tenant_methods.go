package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reserve-se/reserve-se/internal/models"
)

// ========== Tenant Methods ==========

// CreateTenant creates a new tenant
func (s *PostgresStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}

	now := time.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	tenant.IsActive = true

	query := `
        INSERT INTO tenants (
            id, created_at, updated_at, slug, name, brand_primary, brand_logo,
            currency, timezone, is_active
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		tenant.ID, tenant.CreatedAt, tenant.UpdatedAt, tenant.Slug, tenant.Name,
		tenant.BrandPrimary, tenant.BrandLogo, tenant.Currency, tenant.Timezone,
		tenant.IsActive,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

const tenantColumns = `id, created_at, updated_at, slug, name, brand_primary,
       brand_logo, currency, timezone, is_active`

func scanTenant(row *sql.Row) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(
		&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt, &tenant.Slug,
		&tenant.Name, &tenant.BrandPrimary, &tenant.BrandLogo,
		&tenant.Currency, &tenant.Timezone, &tenant.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return tenant, err
}

// GetTenant gets a tenant by ID
func (s *PostgresStore) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(s.getDB().QueryRowContext(ctx, query, id))
}

// GetTenantBySlug gets a tenant by its URL slug
func (s *PostgresStore) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`
	return scanTenant(s.getDB().QueryRowContext(ctx, query, slug))
}

// UpdateTenant updates a tenant
func (s *PostgresStore) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	tenant.UpdatedAt = time.Now()

	query := `
        UPDATE tenants SET
            updated_at = $2, name = $3, brand_primary = $4, brand_logo = $5,
            currency = $6, timezone = $7, is_active = $8
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		tenant.ID, tenant.UpdatedAt, tenant.Name, tenant.BrandPrimary,
		tenant.BrandLogo, tenant.Currency, tenant.Timezone, tenant.IsActive,
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

// ========== User Methods ==========

// CreateUser creates a new user
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
        INSERT INTO users (
            id, created_at, updated_at, email, name, password_hash,
            role, is_active, tenant_id
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9
        )`

	_, err := s.getDB().ExecContext(ctx, query,
		user.ID, user.CreatedAt, user.UpdatedAt, user.Email, user.Name,
		user.PasswordHash, user.Role, user.IsActive, user.TenantID,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

const userColumns = `id, created_at, updated_at, email, name, password_hash,
       role, is_active, last_login_at, tenant_id`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Email, &user.Name,
		&user.PasswordHash, &user.Role, &user.IsActive, &user.LastLoginAt,
		&user.TenantID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return user, err
}

// GetUser gets a user by ID
func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.getDB().QueryRowContext(ctx, query, id))
}

// GetUserByEmail gets a user by email
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.getDB().QueryRowContext(ctx, query, email))
}

// UpdateUser updates a user
func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
        UPDATE users SET
            updated_at = $2, email = $3, name = $4, password_hash = $5,
            role = $6, is_active = $7, last_login_at = $8
        WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		user.ID, user.UpdatedAt, user.Email, user.Name, user.PasswordHash,
		user.Role, user.IsActive, user.LastLoginAt,
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

// ========== API Key Methods ==========

// CreateAPIKey creates a new API key
func (s *PostgresStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	key.CreatedAt = time.Now()
	key.IsActive = true

	query := `
        INSERT INTO api_keys (id, created_at, tenant_id, name, key, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.getDB().ExecContext(ctx, query,
		key.ID, key.CreatedAt, key.TenantID, key.Name, key.Key, key.IsActive,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateKey
		}
		return err
	}

	return nil
}

// GetAPIKey gets an active API key by its key string
func (s *PostgresStore) GetAPIKey(ctx context.Context, key string) (*models.APIKey, error) {
	query := `
        SELECT id, created_at, tenant_id, name, key, is_active, last_used_at
        FROM api_keys
        WHERE key = $1 AND is_active = true`

	apiKey := &models.APIKey{}
	err := s.getDB().QueryRowContext(ctx, query, key).Scan(
		&apiKey.ID, &apiKey.CreatedAt, &apiKey.TenantID, &apiKey.Name,
		&apiKey.Key, &apiKey.IsActive, &apiKey.LastUsedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return apiKey, err
}

// ListAPIKeys lists a tenant's API keys
func (s *PostgresStore) ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error) {
	query := `
        SELECT id, created_at, tenant_id, name, key, is_active, last_used_at
        FROM api_keys
        WHERE tenant_id = $1
        ORDER BY created_at DESC`

	rows, err := s.getDB().QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		key := &models.APIKey{}
		err := rows.Scan(
			&key.ID, &key.CreatedAt, &key.TenantID, &key.Name,
			&key.Key, &key.IsActive, &key.LastUsedAt,
		)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// DeleteAPIKey deletes a tenant's API key
func (s *PostgresStore) DeleteAPIKey(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx,
		"DELETE FROM api_keys WHERE id = $1 AND tenant_id = $2", id, tenantID)
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
