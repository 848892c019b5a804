package entitlement

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sellerhub-api/internal/domain/sellers"
)

// EligibilityReport is a seller's sales-quota snapshot. IsNearLimit and
// IsAtLimit are display derivations; CanRegister is the hard gate.
type EligibilityReport struct {
	CanRegister  bool `json:"can_register"`
	SalesUsed    int  `json:"sales_used"`
	SalesLimit   int  `json:"sales_limit"`
	IsTeamMember bool `json:"is_team_member"`
	Unlimited    bool `json:"unlimited"`
	IsNearLimit  bool `json:"is_near_limit"`
	IsAtLimit    bool `json:"is_at_limit"`
}

// SalesQuotaGuard decides registration eligibility from the seller-scoped
// entitlement record.
type SalesQuotaGuard struct {
	db *gorm.DB
}

func NewSalesQuotaGuard(db *gorm.DB) *SalesQuotaGuard {
	return &SalesQuotaGuard{db: db}
}

// CheckRegistrationEligibility reports whether the seller may register a
// sale. Team members and paid sellers are unlimited regardless of the
// numeric limit; free individual sellers are gated by the record's own
// CanRegister flag (single source of truth, not recomputed here).
func (g *SalesQuotaGuard) CheckRegistrationEligibility(ctx context.Context, sellerID uint) (EligibilityReport, error) {
	var ent sellers.Entitlement
	err := g.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		First(&ent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EligibilityReport{}, ErrNotProvisioned
		}
		return EligibilityReport{}, storeErr("seller entitlement lookup", err)
	}

	report := EligibilityReport{
		SalesUsed:    ent.SalesUsed,
		SalesLimit:   ent.SalesLimit,
		IsTeamMember: ent.IsTeamMember,
		IsNearLimit:  sellers.IsNearLimit(ent.SalesUsed, ent.SalesLimit),
		IsAtLimit:    sellers.IsAtLimit(ent.SalesUsed, ent.SalesLimit),
	}

	if ent.IsTeamMember || ent.Paid() {
		report.CanRegister = true
		report.Unlimited = true
		return report, nil
	}

	report.CanRegister = ent.CanRegister
	return report, nil
}

// Entitlement returns the raw record for a seller.
func (g *SalesQuotaGuard) Entitlement(ctx context.Context, sellerID uint) (*sellers.Entitlement, error) {
	var ent sellers.Entitlement
	err := g.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		First(&ent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotProvisioned
		}
		return nil, storeErr("seller entitlement lookup", err)
	}
	return &ent, nil
}
