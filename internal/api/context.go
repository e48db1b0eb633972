package api

import (
	"context"

	"github.com/reserve-se/reserve-se/internal/auth"
	"github.com/reserve-se/reserve-se/internal/models"
)

type contextKey string

const (
	claimsContextKey contextKey = "claims"
	tenantContextKey contextKey = "tenant"
)

// withClaims stores validated JWT claims in the request context
func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the JWT claims of the authenticated user
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

// withTenant stores the resolved tenant in the request context
func withTenant(ctx context.Context, tenant *models.Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenant)
}

// TenantFromContext returns the tenant resolved from the URL slug
func TenantFromContext(ctx context.Context) (*models.Tenant, bool) {
	tenant, ok := ctx.Value(tenantContextKey).(*models.Tenant)
	return tenant, ok
}
