package sellers

// Quota derivations used for display. These are reporting helpers only;
// the hard registration gate is the CanRegister flag on the record itself.

// IsNearLimit reports whether usage reached 80% of the limit.
func IsNearLimit(used, limit int) bool {
	if limit <= 0 {
		return false
	}
	return float64(used) >= 0.8*float64(limit)
}

// IsAtLimit reports whether usage reached or passed the limit.
func IsAtLimit(used, limit int) bool {
	if limit <= 0 {
		return false
	}
	return used >= limit
}
