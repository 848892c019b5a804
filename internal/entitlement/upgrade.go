package entitlement

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"sellerhub-api/internal/domain/plans"
)

// Coordinator orchestrates a plan change. The local store is the sole
// source of truth; no two-phase commit is attempted with the provider, and
// no remote state repair happens here.
type Coordinator struct {
	db       *gorm.DB
	resolver *Resolver
	provider BillingProvider
	log      zerolog.Logger
}

func NewCoordinator(db *gorm.DB, resolver *Resolver, provider BillingProvider, log zerolog.Logger) *Coordinator {
	return &Coordinator{db: db, resolver: resolver, provider: provider, log: log}
}

// Upgrade moves the owner to newPlan and returns the fresh subscription row.
//
// Downgrades to free first attempt a best-effort cancellation at the
// provider; that failure is logged and swallowed, because a stale remote
// subscription must never block a successful local downgrade. The local
// mutation is the authoritative step and its failure is surfaced unchanged.
func (c *Coordinator) Upgrade(ctx context.Context, ownerID uint, newPlan plans.PlanName) (*plans.Subscription, error) {
	if _, err := plans.ParsePlanName(string(newPlan)); err != nil {
		return nil, &ValidationError{Field: "plan", Reason: err.Error()}
	}

	if newPlan == plans.PlanFree {
		if err := c.provider.CancelSubscription(ctx, ownerID); err != nil {
			c.log.Warn().Err(err).Uint("owner_id", ownerID).
				Msg("remote cancellation failed, continuing with local downgrade")
		}
	}

	spec := plans.SpecFor(newPlan)
	res := c.db.WithContext(ctx).
		Model(&plans.Subscription{}).
		Where("account_id = ?", ownerID).
		Updates(map[string]interface{}{
			"plan_name":       string(newPlan),
			"max_sellers":     spec.MaxSellers,
			"price_per_month": spec.PricePerMonth,
		})
	if res.Error != nil {
		return nil, storeErr("plan upgrade", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotProvisioned
	}

	c.log.Info().Uint("owner_id", ownerID).Str("plan", string(newPlan)).
		Msg("plan changed")

	return c.resolver.ResolveCurrentPlan(ctx, ownerID)
}
