package plans

import (
	"fmt"
	"time"
)

// SubscriptionStatus is the closed set of local billing states.
type SubscriptionStatus string

const (
	StatusTrial    SubscriptionStatus = "trial"
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusPastDue  SubscriptionStatus = "past_due"
)

func ParseStatus(s string) (SubscriptionStatus, error) {
	switch SubscriptionStatus(s) {
	case StatusTrial, StatusActive, StatusCanceled, StatusPastDue:
		return SubscriptionStatus(s), nil
	}
	return "", fmt.Errorf("unknown subscription status %q", s)
}

// Subscription is the local, authoritative plan row for an owner account.
// Exactly one per owner; created at signup, mutated only by the upgrade
// coordinator, never deleted (terminal states are canceled/past_due).
type Subscription struct {
	ID        uint `gorm:"primaryKey"`
	AccountID uint `gorm:"not null;uniqueIndex:idx_subscriptions_account_id"`

	PlanName      string  `gorm:"type:varchar(20);not null;default:'free'"`
	MaxSellers    int     `gorm:"not null;default:1"` // -1 = unlimited
	PricePerMonth float64
	Status        string  `gorm:"type:varchar(20);not null;default:'trial'"`

	TrialEndAt        *time.Time `gorm:"column:trial_end_at"`
	SubscriptionEndAt *time.Time `gorm:"column:subscription_end_at"`

	StripeCustomerID     *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_subscriptions_stripe_customer_id"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Plan returns the parsed plan name. The column only ever holds catalog
// values; a bad row is reported, not defaulted.
func (s *Subscription) Plan() (PlanName, error) {
	return ParsePlanName(s.PlanName)
}

func (s *Subscription) StatusValue() (SubscriptionStatus, error) {
	return ParseStatus(s.Status)
}

// Unlimited reports whether the seat cap is disabled for this row.
func (s *Subscription) Unlimited() bool {
	return s.MaxSellers == UnlimitedSellers
}
