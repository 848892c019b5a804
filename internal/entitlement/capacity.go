package entitlement

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/domain/team"
	"sellerhub-api/internal/pkg/metrics"
)

// CapacityReport is the seat usage snapshot for an owner.
type CapacityReport struct {
	TotalSellers   int  `json:"total_sellers"`
	MaxSellers     int  `json:"max_sellers"`
	CanAddMore     bool `json:"can_add_more"`
	RealSellers    int  `json:"real_sellers"`
	VirtualSellers int  `json:"virtual_sellers"`
}

// CapacityGuard computes consumed seats against the resolved seat limit.
// Real memberships and virtual sellers are counted separately and summed.
type CapacityGuard struct {
	db       *gorm.DB
	resolver *Resolver
}

func NewCapacityGuard(db *gorm.DB, resolver *Resolver) *CapacityGuard {
	return &CapacityGuard{db: db, resolver: resolver}
}

// CheckCapacity is the optimistic pre-check used for UX. It fails closed:
// any count error yields CanAddMore=false alongside the error. The
// enforcement point for mutations is ReserveSeat, not this.
func (g *CapacityGuard) CheckCapacity(ctx context.Context, ownerID uint) (CapacityReport, error) {
	report := CapacityReport{CanAddMore: false}

	sub, err := g.resolver.ResolveCurrentPlan(ctx, ownerID)
	if err != nil {
		return report, err
	}
	report.MaxSellers = sub.MaxSellers

	real, virtual, err := countSeats(g.db.WithContext(ctx), ownerID)
	if err != nil {
		return report, storeErr("capacity check", err)
	}

	report.RealSellers = real
	report.VirtualSellers = virtual
	report.TotalSellers = real + virtual
	report.CanAddMore = sub.Unlimited() || report.TotalSellers < sub.MaxSellers
	return report, nil
}

// ReserveSeat performs a seller-creating mutation under a re-validated
// count inside a single transaction. The owner's plan row is locked for
// the duration, so concurrent reservations for the same owner queue on it
// and the second one recounts after the first commits. This closes the
// read-then-write race the pre-check leaves open.
func (g *CapacityGuard) ReserveSeat(ctx context.Context, ownerID uint, insert func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub plans.Subscription
		if err := lockPlanRow(tx).Where("account_id = ?", ownerID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotProvisioned
			}
			return storeErr("reserve seat: resolve plan", err)
		}

		real, virtual, err := countSeats(tx, ownerID)
		if err != nil {
			return storeErr("reserve seat: recount", err)
		}

		total := real + virtual
		if !sub.Unlimited() && total >= sub.MaxSellers {
			metrics.SeatReservationsRejected.Inc()
			return &CapacityExceededError{Used: total, Limit: sub.MaxSellers}
		}

		return insert(tx)
	})
}

// lockPlanRow loads the subscription row FOR UPDATE. sqlite has no row
// locks and rejects the clause; its single-writer transactions already
// serialize reservations.
func lockPlanRow(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func countSeats(db *gorm.DB, ownerID uint) (real, virtual int, err error) {
	var memberships int64
	if err := db.Model(&team.Membership{}).
		Where("owner_id = ?", ownerID).
		Count(&memberships).Error; err != nil {
		return 0, 0, err
	}

	var virtuals int64
	if err := db.Model(&team.VirtualSeller{}).
		Where("owner_id = ?", ownerID).
		Count(&virtuals).Error; err != nil {
		return 0, 0, err
	}

	return int(memberships), int(virtuals), nil
}
