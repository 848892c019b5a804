package billing

import (
	"errors"
	"net/http"
	"time"

	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/entitlement"

	"github.com/gin-gonic/gin"
)

type PlanResponse struct {
	Provisioned   bool       `json:"provisioned"`
	PlanName      string     `json:"plan_name,omitempty"`
	MaxSellers    int        `json:"max_sellers,omitempty"`
	PricePerMonth float64    `json:"price_per_month,omitempty"`
	Status        string     `json:"status,omitempty"`
	TrialEndAt    *time.Time `json:"trial_end_at,omitempty"`
	TrialDaysLeft int        `json:"trial_days_left"`
	TrialExpired  bool       `json:"trial_expired"`
}

// GetCurrentPlan returns the authoritative local plan row. A missing row
// means provisioning has not completed yet; clients must render "loading",
// not a free-tier default.
func GetCurrentPlan(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	sub, err := services.Resolver.ResolveCurrentPlan(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, entitlement.ErrNotProvisioned) {
			c.JSON(http.StatusOK, PlanResponse{Provisioned: false})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Plan store unavailable"})
		return
	}

	c.JSON(http.StatusOK, buildPlanResponse(sub, time.Now()))
}

func buildPlanResponse(sub *plans.Subscription, now time.Time) PlanResponse {
	resp := PlanResponse{
		Provisioned:   true,
		PlanName:      sub.PlanName,
		MaxSellers:    sub.MaxSellers,
		PricePerMonth: sub.PricePerMonth,
		Status:        sub.Status,
		TrialEndAt:    sub.TrialEndAt,
	}

	status, err := sub.StatusValue()
	if err == nil {
		resp.TrialExpired = entitlement.TrialExpired(status, sub.TrialEndAt, now)
	}
	if sub.TrialEndAt != nil {
		resp.TrialDaysLeft = entitlement.TrialDaysLeft(*sub.TrialEndAt, now)
	}
	return resp
}
