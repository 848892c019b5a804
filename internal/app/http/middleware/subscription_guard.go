package middleware

import (
	"errors"
	"net/http"
	"time"

	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/entitlement"

	"github.com/gin-gonic/gin"
)

// RequireActivePlan blocks owner actions once the trial has lapsed without a
// paid subscription. Resolution failures block too: the local store is
// authoritative, so guessing open on error is not an option.
func RequireActivePlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint("account_id")
		if ownerID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		sub, err := services.Resolver.ResolveCurrentPlan(c.Request.Context(), ownerID)
		if err != nil {
			if errors.Is(err, entitlement.ErrNotProvisioned) {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Subscription still provisioning"})
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Plan store unavailable"})
			return
		}

		status, err := sub.StatusValue()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Corrupt subscription status"})
			return
		}

		if entitlement.TrialExpired(status, sub.TrialEndAt, time.Now()) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": "Your trial has expired"})
			return
		}

		c.Next()
	}
}
