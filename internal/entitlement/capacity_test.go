package entitlement

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/domain/team"
)

func newCapacityGuard(db *gorm.DB) *CapacityGuard {
	return NewCapacityGuard(db, NewResolver(db))
}

func TestCheckCapacityCountsBothSources(t *testing.T) {
	db := newTestDB(t)
	guard := newCapacityGuard(db)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanPopular, "owner@example.com")
	for i := 0; i < 2; i++ {
		sellerID := seedAccount(t, db, accounts.RoleSeller, fmt.Sprintf("s%d@example.com", i))
		seedMembership(t, db, sellerID, ownerID)
	}
	seedVirtualSeller(t, db, ownerID, "balcao")

	report, err := guard.CheckCapacity(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.RealSellers)
	assert.Equal(t, 1, report.VirtualSellers)
	assert.Equal(t, report.RealSellers+report.VirtualSellers, report.TotalSellers)
	assert.Equal(t, 5, report.MaxSellers)
	assert.True(t, report.CanAddMore)
}

func TestCheckCapacityAtLimit(t *testing.T) {
	db := newTestDB(t)
	guard := newCapacityGuard(db)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanFree, "owner@example.com")
	seedVirtualSeller(t, db, ownerID, "only-seat")

	report, err := guard.CheckCapacity(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalSellers)
	assert.Equal(t, 1, report.MaxSellers)
	assert.False(t, report.CanAddMore)
}

func TestCheckCapacityUnlimitedPlan(t *testing.T) {
	db := newTestDB(t)
	guard := newCapacityGuard(db)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanProfissional, "owner@example.com")
	for i := 0; i < 40; i++ {
		seedVirtualSeller(t, db, ownerID, fmt.Sprintf("v%d", i))
	}

	report, err := guard.CheckCapacity(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, plans.UnlimitedSellers, report.MaxSellers)
	assert.Equal(t, 40, report.TotalSellers)
	assert.True(t, report.CanAddMore)
}

func TestCheckCapacityNotProvisionedFailsClosed(t *testing.T) {
	db := newTestDB(t)
	guard := newCapacityGuard(db)

	report, err := guard.CheckCapacity(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotProvisioned)
	assert.False(t, report.CanAddMore)
}

func TestReserveSeatEnforcesLimit(t *testing.T) {
	db := newTestDB(t)
	guard := newCapacityGuard(db)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanFree, "owner@example.com")

	insert := func(name string) error {
		return guard.ReserveSeat(ctx, ownerID, func(tx *gorm.DB) error {
			return tx.Create(&team.VirtualSeller{OwnerID: ownerID, Name: name, DeleteToken: name}).Error
		})
	}

	require.NoError(t, insert("first"))

	err := insert("second")
	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 1, capErr.Used)
	assert.Equal(t, 1, capErr.Limit)

	// The rejected insert must not have landed.
	var count int64
	require.NoError(t, db.Model(&team.VirtualSeller{}).Where("owner_id = ?", ownerID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReserveSeatNotProvisioned(t *testing.T) {
	db := newTestDB(t)
	guard := newCapacityGuard(db)

	called := false
	err := guard.ReserveSeat(context.Background(), 999, func(tx *gorm.DB) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNotProvisioned)
	assert.False(t, called)
}

// Two reservations racing for the last seat must queue on the plan row, so
// the query that loads it has to carry a row lock on the production store.
func TestReserveSeatLocksPlanRow(t *testing.T) {
	pg, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=app dbname=app",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	var sub plans.Subscription
	stmt := lockPlanRow(pg).Where("account_id = ?", 1).Find(&sub).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")

	// sqlite rejects the clause; its writer lock serializes on its own.
	sqliteStmt := lockPlanRow(newTestDB(t).Session(&gorm.Session{DryRun: true})).
		Where("account_id = ?", 1).Find(&sub).Statement
	assert.NotContains(t, sqliteStmt.SQL.String(), "FOR UPDATE")
}

func TestReserveSeatUnlimited(t *testing.T) {
	db := newTestDB(t)
	guard := newCapacityGuard(db)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanProfissional, "owner@example.com")
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("v%d", i)
		err := guard.ReserveSeat(ctx, ownerID, func(tx *gorm.DB) error {
			return tx.Create(&team.VirtualSeller{OwnerID: ownerID, Name: name, DeleteToken: name}).Error
		})
		require.NoError(t, err)
	}
}

func TestReserveSeatRollsBackFailedInsert(t *testing.T) {
	db := newTestDB(t)
	guard := newCapacityGuard(db)
	ctx := context.Background()

	ownerID := seedOwner(t, db, plans.PlanPopular, "owner@example.com")

	wantErr := fmt.Errorf("insert blew up")
	err := guard.ReserveSeat(ctx, ownerID, func(tx *gorm.DB) error {
		if err := tx.Create(&team.VirtualSeller{OwnerID: ownerID, Name: "x", DeleteToken: "x"}).Error; err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	var count int64
	require.NoError(t, db.Model(&team.VirtualSeller{}).Where("owner_id = ?", ownerID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
