package stripe

import "strings"

// NormalizeStatus maps a raw Stripe subscription status onto the local
// vocabulary (trial, active, past_due, canceled). Used ONLY for the
// display-side remote view; the local row keeps its own status.
func NormalizeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "active":
		return "active"
	case "trialing":
		return "trial"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	case "":
		return "none"
	default:
		return strings.TrimSpace(s)
	}
}

// SubscribedStatus reports whether a normalized status counts as an active
// paid relationship for display purposes.
func SubscribedStatus(normalized string) bool {
	return normalized == "active" || normalized == "trial"
}
