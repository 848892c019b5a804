package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/domain/sellers"
	"sellerhub-api/internal/domain/team"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&accounts.Account{},
		&plans.Subscription{},
		&sellers.Entitlement{},
		&team.Membership{},
		&team.Request{},
		&team.VirtualSeller{},
	))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, role accounts.Role, email string) uint {
	t.Helper()
	acct := accounts.Account{Name: "Test", Email: email, Role: string(role)}
	require.NoError(t, db.Create(&acct).Error)
	return acct.ID
}

func seedOwner(t *testing.T, db *gorm.DB, plan plans.PlanName, email string) uint {
	t.Helper()
	ownerID := seedAccount(t, db, accounts.RoleOwner, email)

	spec := plans.SpecFor(plan)
	trialEnd := time.Now().AddDate(0, 0, 14)
	sub := plans.Subscription{
		AccountID:     ownerID,
		PlanName:      string(plan),
		MaxSellers:    spec.MaxSellers,
		PricePerMonth: spec.PricePerMonth,
		Status:        string(plans.StatusTrial),
		TrialEndAt:    &trialEnd,
	}
	require.NoError(t, db.Create(&sub).Error)
	return ownerID
}

func seedMembership(t *testing.T, db *gorm.DB, sellerID, ownerID uint) {
	t.Helper()
	require.NoError(t, db.Create(&team.Membership{SellerID: sellerID, OwnerID: ownerID}).Error)
}

func seedVirtualSeller(t *testing.T, db *gorm.DB, ownerID uint, name string) {
	t.Helper()
	require.NoError(t, db.Create(&team.VirtualSeller{
		OwnerID:     ownerID,
		Name:        name,
		DeleteToken: "tok-" + name,
	}).Error)
}
