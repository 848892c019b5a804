package billing

import (
	"errors"
	"net/http"
	"time"

	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/entitlement"
	"sellerhub-api/internal/notify"

	"github.com/gin-gonic/gin"
)

// ChangePlan applies a plan change through the upgrade coordinator. The
// local write is authoritative; remote cancellation on a downgrade to free
// is best-effort and already handled inside the coordinator.
func ChangePlan(c *gin.Context) {
	var body struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan"})
		return
	}

	plan, err := plans.ParsePlanName(body.Plan)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	}

	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	sub, err := services.Upgrades.Upgrade(c.Request.Context(), ownerID, plan)
	if err != nil {
		var vErr *entitlement.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		case errors.Is(err, entitlement.ErrNotProvisioned):
			c.JSON(http.StatusConflict, gin.H{"error": "No subscription to change yet"})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Plan change failed", "details": err.Error()})
		}
		return
	}

	services.Notifier.Notify(ownerID, "Plan changed",
		"Your plan is now "+sub.PlanName, notify.KindBilling)

	c.JSON(http.StatusOK, buildPlanResponse(sub, time.Now()))
}
