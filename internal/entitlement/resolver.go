package entitlement

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sellerhub-api/internal/domain/plans"
)

// Resolver answers "what plan does this owner hold right now" from the
// local store. The local row is authoritative for capacity decisions;
// the remote billing view (see Syncer) never overrides it.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// ResolveCurrentPlan returns the owner's subscription row, ErrNotProvisioned
// when no row exists yet, or StoreUnavailableError when the store fails.
func (r *Resolver) ResolveCurrentPlan(ctx context.Context, ownerID uint) (*plans.Subscription, error) {
	var sub plans.Subscription
	err := r.db.WithContext(ctx).
		Where("account_id = ?", ownerID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotProvisioned
		}
		return nil, storeErr("resolve current plan", err)
	}
	return &sub, nil
}
