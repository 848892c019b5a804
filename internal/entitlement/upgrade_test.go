package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sellerhub-api/internal/domain/plans"
)

func newCoordinator(db *gorm.DB, provider BillingProvider) *Coordinator {
	return NewCoordinator(db, NewResolver(db), provider, zerolog.Nop())
}

func TestUpgradeFreeToPopular(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{}
	coord := newCoordinator(db, provider)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanFree, "owner@example.com")

	sub, err := coord.Upgrade(ctx, ownerID, plans.PlanPopular)
	require.NoError(t, err)

	// Seat limit and price follow the target tier; status is untouched.
	assert.Equal(t, string(plans.PlanPopular), sub.PlanName)
	assert.Equal(t, 5, sub.MaxSellers)
	assert.Equal(t, 49.90, sub.PricePerMonth)
	assert.Equal(t, string(plans.StatusTrial), sub.Status)

	// Upgrades away from free never touch the provider.
	assert.Zero(t, provider.cancelCalls)
}

func TestUpgradeRoundTripThroughResolver(t *testing.T) {
	db := newTestDB(t)
	coord := newCoordinator(db, &fakeProvider{})
	resolver := NewResolver(db)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanFree, "owner@example.com")

	_, err := coord.Upgrade(ctx, ownerID, plans.PlanCrescimento)
	require.NoError(t, err)

	sub, err := resolver.ResolveCurrentPlan(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, string(plans.PlanCrescimento), sub.PlanName)
	assert.Equal(t, 15, sub.MaxSellers)
}

func TestDowngradeToFreeCancelsRemote(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{}
	coord := newCoordinator(db, provider)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanPopular, "owner@example.com")

	sub, err := coord.Upgrade(ctx, ownerID, plans.PlanFree)
	require.NoError(t, err)
	assert.Equal(t, string(plans.PlanFree), sub.PlanName)
	assert.Equal(t, 1, sub.MaxSellers)
	assert.Equal(t, 1, provider.cancelCalls)
}

func TestDowngradeSucceedsWhenRemoteCancelFails(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{cancelErr: errors.New("provider down")}
	coord := newCoordinator(db, provider)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanCrescimento, "owner@example.com")

	// A stale remote subscription must never block the local downgrade.
	sub, err := coord.Upgrade(ctx, ownerID, plans.PlanFree)
	require.NoError(t, err)
	assert.Equal(t, string(plans.PlanFree), sub.PlanName)
	assert.Equal(t, 1, provider.cancelCalls)
}

func TestUpgradeRejectsUnknownPlan(t *testing.T) {
	db := newTestDB(t)
	coord := newCoordinator(db, &fakeProvider{})

	ownerID := seedOwner(t, db, plans.PlanFree, "owner@example.com")

	_, err := coord.Upgrade(context.Background(), ownerID, plans.PlanName("enterprise"))
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpgradeNotProvisioned(t *testing.T) {
	db := newTestDB(t)
	coord := newCoordinator(db, &fakeProvider{})

	_, err := coord.Upgrade(context.Background(), 4242, plans.PlanPopular)
	assert.ErrorIs(t, err, ErrNotProvisioned)
}
