package sellers

import (
	"fmt"
	"time"
)

// SubscriptionStatus for a seller's own quota record.
type SubscriptionStatus string

const (
	SellerFree SubscriptionStatus = "free"
	SellerPaid SubscriptionStatus = "paid"
)

func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	switch SubscriptionStatus(s) {
	case SellerFree, SellerPaid:
		return SubscriptionStatus(s), nil
	}
	return "", fmt.Errorf("unknown seller subscription status %q", s)
}

// DefaultSalesLimit is the free-tier quota provisioned for new sellers.
const DefaultSalesLimit = 10

// Entitlement is the authoritative quota record for a seller account.
// Exactly one per seller; provisioned lazily by the integrity sweep.
// Rows are soft-retired with the account, never deleted, so historical
// sales counts survive team removal.
type Entitlement struct {
	ID       uint `gorm:"primaryKey"`
	SellerID uint `gorm:"not null;uniqueIndex:idx_seller_entitlements_seller_id"`

	IsTeamMember       bool
	SubscriptionStatus string `gorm:"type:varchar(10);not null;default:'free'"`
	PlanType           string `gorm:"type:varchar(20);not null;default:'free'"`
	SalesUsed          int    `gorm:"not null;default:0"`
	SalesLimit         int    `gorm:"not null;default:10"`
	CanRegister        bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Entitlement) TableName() string { return "seller_entitlements" }

// Paid reports whether the seller pays for unlimited registrations.
func (e *Entitlement) Paid() bool {
	return e.SubscriptionStatus == string(SellerPaid)
}
