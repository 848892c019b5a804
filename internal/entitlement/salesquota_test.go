package entitlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/sellers"
)

func seedEntitlement(t *testing.T, db *gorm.DB, email string, mutate func(*sellers.Entitlement)) uint {
	t.Helper()
	sellerID := seedAccount(t, db, accounts.RoleSeller, email)
	ent := sellers.Entitlement{
		SellerID:           sellerID,
		SubscriptionStatus: string(sellers.SellerFree),
		PlanType:           "free",
		SalesLimit:         10,
		CanRegister:        true,
	}
	if mutate != nil {
		mutate(&ent)
	}
	require.NoError(t, db.Create(&ent).Error)
	return sellerID
}

func TestEligibilityFreeSellerNearLimit(t *testing.T) {
	db := newTestDB(t)
	guard := NewSalesQuotaGuard(db)

	sellerID := seedEntitlement(t, db, "s@example.com", func(e *sellers.Entitlement) {
		e.SalesUsed = 8
	})

	report, err := guard.CheckRegistrationEligibility(context.Background(), sellerID)
	require.NoError(t, err)
	assert.True(t, report.CanRegister)
	assert.True(t, report.IsNearLimit)
	assert.False(t, report.IsAtLimit)
	assert.False(t, report.Unlimited)
	assert.Equal(t, 8, report.SalesUsed)
	assert.Equal(t, 10, report.SalesLimit)
}

func TestEligibilityFreeSellerAtLimit(t *testing.T) {
	db := newTestDB(t)
	guard := NewSalesQuotaGuard(db)

	sellerID := seedEntitlement(t, db, "s@example.com", func(e *sellers.Entitlement) {
		e.SalesUsed = 10
		e.CanRegister = false
	})

	report, err := guard.CheckRegistrationEligibility(context.Background(), sellerID)
	require.NoError(t, err)
	assert.True(t, report.IsAtLimit)
	assert.False(t, report.CanRegister)
}

func TestEligibilityTeamMemberUnlimited(t *testing.T) {
	db := newTestDB(t)
	guard := NewSalesQuotaGuard(db)

	// At the numeric limit and the record even says no, but team
	// membership always wins.
	sellerID := seedEntitlement(t, db, "s@example.com", func(e *sellers.Entitlement) {
		e.SalesUsed = 10
		e.CanRegister = false
		e.IsTeamMember = true
	})

	report, err := guard.CheckRegistrationEligibility(context.Background(), sellerID)
	require.NoError(t, err)
	assert.True(t, report.CanRegister)
	assert.True(t, report.Unlimited)
	assert.True(t, report.IsTeamMember)
}

func TestEligibilityPaidSellerUnlimited(t *testing.T) {
	db := newTestDB(t)
	guard := NewSalesQuotaGuard(db)

	sellerID := seedEntitlement(t, db, "s@example.com", func(e *sellers.Entitlement) {
		e.SalesUsed = 999
		e.CanRegister = false
		e.SubscriptionStatus = string(sellers.SellerPaid)
	})

	report, err := guard.CheckRegistrationEligibility(context.Background(), sellerID)
	require.NoError(t, err)
	assert.True(t, report.CanRegister)
	assert.True(t, report.Unlimited)
}

func TestEligibilityHardGateIsTheRecord(t *testing.T) {
	db := newTestDB(t)
	guard := NewSalesQuotaGuard(db)

	// Below the numeric limit but the record says no: the record wins.
	sellerID := seedEntitlement(t, db, "s@example.com", func(e *sellers.Entitlement) {
		e.SalesUsed = 3
		e.CanRegister = false
	})

	report, err := guard.CheckRegistrationEligibility(context.Background(), sellerID)
	require.NoError(t, err)
	assert.False(t, report.CanRegister)
	assert.False(t, report.IsAtLimit)
}

func TestEligibilityMissingRecord(t *testing.T) {
	db := newTestDB(t)
	guard := NewSalesQuotaGuard(db)

	_, err := guard.CheckRegistrationEligibility(context.Background(), 777)
	assert.ErrorIs(t, err, ErrNotProvisioned)
}
