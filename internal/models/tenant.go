package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated hotel account. Every other entity is
// partitioned by tenant ID; no query crosses tenants.
type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Slug string `json:"slug" db:"slug"`
	Name string `json:"name" db:"name"`

	// Presentation settings consumed by the public SPA and widget
	BrandPrimary string `json:"brand_primary" db:"brand_primary"`
	BrandLogo    string `json:"brand_logo,omitempty" db:"brand_logo"`

	Currency string `json:"currency" db:"currency"`
	Timezone string `json:"timezone" db:"timezone"`

	IsActive bool `json:"isActive" db:"is_active"`
}

// APIKey is a tenant-scoped key used by the embeddable widget to resolve
// its tenant without a slug in the URL.
type APIKey struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	TenantID uuid.UUID `json:"tenantId" db:"tenant_id"`

	Name string `json:"name" db:"name"`
	Key  string `json:"key" db:"key"`

	IsActive   bool       `json:"isActive" db:"is_active"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty" db:"last_used_at"`
}
