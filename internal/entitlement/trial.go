package entitlement

import (
	"time"

	"sellerhub-api/internal/domain/plans"
)

// TrialDaysLeft returns whole days remaining until trialEnd, rounding any
// partial day up. Never negative.
func TrialDaysLeft(trialEnd, now time.Time) int {
	remaining := trialEnd.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// TrialExpired reports whether a trial subscription has run out. Only the
// trial status can expire; a nil end date means an open-ended trial.
func TrialExpired(status plans.SubscriptionStatus, trialEnd *time.Time, now time.Time) bool {
	if status != plans.StatusTrial || trialEnd == nil {
		return false
	}
	return trialEnd.Before(now)
}
