package entitlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub-api/internal/domain/plans"
)

func TestResolveCurrentPlan(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanPopular, "owner@example.com")

	sub, err := resolver.ResolveCurrentPlan(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, string(plans.PlanPopular), sub.PlanName)
	assert.Equal(t, 5, sub.MaxSellers)
	assert.Equal(t, 49.90, sub.PricePerMonth)
}

func TestResolveCurrentPlanNotProvisioned(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)

	// Absence is "still loading", not a free-tier default.
	sub, err := resolver.ResolveCurrentPlan(context.Background(), 9999)
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, ErrNotProvisioned)
}
