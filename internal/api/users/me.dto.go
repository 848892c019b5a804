package users

import (
	"time"

	"sellerhub-api/internal/entitlement"
)

type MeResponse struct {
	Account AccountDTO  `json:"account"`
	Billing *BillingDTO `json:"billing,omitempty"`
	Seller  *SellerDTO  `json:"seller,omitempty"`
}

/* ---------- ACCOUNT ---------- */

type AccountDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

/* ---------- OWNER BILLING ---------- */

// BillingDTO carries two independent views on purpose: Plan is the local,
// authoritative row (capacity decisions); Remote is the provider snapshot
// (display only). They are never merged.
type BillingDTO struct {
	Provisioned bool                           `json:"provisioned"`
	Plan        *PlanDTO                       `json:"plan"`
	Trial       *TrialDTO                      `json:"trial"`
	Capacity    *entitlement.CapacityReport    `json:"capacity"`
	Remote      *entitlement.RemoteBillingView `json:"remote"`
}

type PlanDTO struct {
	Name          string  `json:"name"`
	MaxSellers    int     `json:"max_sellers"`
	PricePerMonth float64 `json:"price_per_month"`
	Status        string  `json:"status"`
}

type TrialDTO struct {
	EndsAt   *time.Time `json:"ends_at"`
	DaysLeft int        `json:"days_left"`
	Expired  bool       `json:"expired"`
}

/* ---------- SELLER ---------- */

type SellerDTO struct {
	Eligibility entitlement.EligibilityReport `json:"eligibility"`
}
