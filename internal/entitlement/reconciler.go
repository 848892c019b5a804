package entitlement

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/sellers"
	"sellerhub-api/internal/domain/team"
	"sellerhub-api/internal/pkg/metrics"
)

// SweepReport says what a reconciliation pass actually changed. A second
// pass over the same account reports all zeroes.
type SweepReport struct {
	RoleRepaired       bool `json:"role_repaired"`
	RequestsDeleted    int  `json:"requests_deleted"`
	MembershipsDeleted int  `json:"memberships_deleted"`
	EntitlementCreated bool `json:"entitlement_created"`
}

func (r SweepReport) Changed() bool {
	return r.RoleRepaired || r.RequestsDeleted > 0 || r.MembershipsDeleted > 0 || r.EntitlementCreated
}

// Reconciler repairs entitlement-related drift for one account at a time,
// typically at session start. Every step is idempotent and order-independent;
// existence checks before inserts and strictly-by-recency deletes make
// concurrent sweeps converge without double-deleting.
type Reconciler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewReconciler(db *gorm.DB, log zerolog.Logger) *Reconciler {
	return &Reconciler{db: db, log: log}
}

// Sweep runs all four repair steps for the account.
func (r *Reconciler) Sweep(ctx context.Context, accountID uint) (SweepReport, error) {
	var report SweepReport
	db := r.db.WithContext(ctx)

	var acct accounts.Account
	if err := db.First(&acct, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return report, nil
		}
		return report, storeErr("reconcile: load account", err)
	}

	repaired, err := r.repairRole(db, &acct)
	if err != nil {
		return report, err
	}
	report.RoleRepaired = repaired

	report.RequestsDeleted, err = r.collapsePendingRequests(db, acct.ID)
	if err != nil {
		return report, err
	}

	report.MembershipsDeleted, err = r.collapseMemberships(db, acct.ID)
	if err != nil {
		return report, err
	}

	report.EntitlementCreated, err = r.ensureEntitlement(db, &acct)
	if err != nil {
		return report, err
	}

	if report.Changed() {
		r.log.Info().Uint("account_id", acct.ID).
			Bool("role_repaired", report.RoleRepaired).
			Int("requests_deleted", report.RequestsDeleted).
			Int("memberships_deleted", report.MembershipsDeleted).
			Bool("entitlement_created", report.EntitlementCreated).
			Msg("integrity sweep repaired account")
	}
	return report, nil
}

// repairRole assigns the seller role to accounts with no role at all.
func (r *Reconciler) repairRole(db *gorm.DB, acct *accounts.Account) (bool, error) {
	if acct.Role != "" {
		return false, nil
	}
	err := db.Model(&accounts.Account{}).
		Where("id = ? AND (role IS NULL OR role = '')", acct.ID).
		Update("role", string(accounts.RoleSeller)).Error
	if err != nil {
		return false, storeErr("reconcile: repair role", err)
	}
	acct.Role = string(accounts.RoleSeller)
	metrics.ReconcilerRepairs.WithLabelValues("role").Inc()
	return true, nil
}

// collapsePendingRequests keeps only the most recent pending team request
// from this seller and deletes the rest.
func (r *Reconciler) collapsePendingRequests(db *gorm.DB, sellerID uint) (int, error) {
	var requests []team.Request
	err := db.Where("seller_id = ? AND status = ?", sellerID, team.RequestPending).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return 0, storeErr("reconcile: list pending requests", err)
	}
	if len(requests) <= 1 {
		return 0, nil
	}

	stale := make([]uint, 0, len(requests)-1)
	for _, req := range requests[1:] {
		stale = append(stale, req.ID)
	}
	res := db.Where("id IN ?", stale).Delete(&team.Request{})
	if res.Error != nil {
		return 0, storeErr("reconcile: collapse pending requests", res.Error)
	}
	metrics.ReconcilerRepairs.WithLabelValues("pending_requests").Add(float64(res.RowsAffected))
	return int(res.RowsAffected), nil
}

// collapseMemberships applies the same keep-newest rule to membership rows.
func (r *Reconciler) collapseMemberships(db *gorm.DB, sellerID uint) (int, error) {
	var memberships []team.Membership
	err := db.Where("seller_id = ?", sellerID).
		Order("created_at DESC, id DESC").
		Find(&memberships).Error
	if err != nil {
		return 0, storeErr("reconcile: list memberships", err)
	}
	if len(memberships) <= 1 {
		return 0, nil
	}

	stale := make([]uint, 0, len(memberships)-1)
	for _, m := range memberships[1:] {
		stale = append(stale, m.ID)
	}
	res := db.Where("id IN ?", stale).Delete(&team.Membership{})
	if res.Error != nil {
		return 0, storeErr("reconcile: collapse memberships", res.Error)
	}
	metrics.ReconcilerRepairs.WithLabelValues("memberships").Add(float64(res.RowsAffected))
	return int(res.RowsAffected), nil
}

// ensureEntitlement lazily provisions the quota record for seller accounts.
func (r *Reconciler) ensureEntitlement(db *gorm.DB, acct *accounts.Account) (bool, error) {
	if acct.Role != string(accounts.RoleSeller) {
		return false, nil
	}

	var count int64
	err := db.Model(&sellers.Entitlement{}).
		Where("seller_id = ?", acct.ID).
		Count(&count).Error
	if err != nil {
		return false, storeErr("reconcile: entitlement lookup", err)
	}
	if count > 0 {
		return false, nil
	}

	ent := sellers.Entitlement{
		SellerID:           acct.ID,
		SubscriptionStatus: string(sellers.SellerFree),
		PlanType:           "free",
		SalesLimit:         sellers.DefaultSalesLimit,
		CanRegister:        true,
	}
	if err := db.Create(&ent).Error; err != nil {
		return false, storeErr("reconcile: provision entitlement", err)
	}
	metrics.ReconcilerRepairs.WithLabelValues("entitlement").Inc()
	return true, nil
}
