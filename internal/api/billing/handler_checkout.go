package billing

import (
	"errors"
	"net/http"

	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/entitlement"

	"github.com/gin-gonic/gin"
)

// CreateCheckoutSession starts a provider-hosted checkout. Explicit user
// action: provider failures surface loudly, no fallback.
func CreateCheckoutSession(c *gin.Context) {
	var body struct {
		Plan     string `json:"plan" binding:"required"`
		IsAnnual bool   `json:"is_annual"`
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
	if plan == plans.PlanFree {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Free plan has no checkout"})
		return
	}

	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	url, err := services.Billing.StartCheckout(c.Request.Context(), ownerID, plan, body.IsAnnual)
	if err != nil {
		var provErr *entitlement.ProviderUnavailableError
		if errors.As(err, &provErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Billing provider unavailable", "details": provErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreateBillingPortal opens the provider's management portal. Loud failure,
// same as checkout.
func CreateBillingPortal(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	url, err := services.Billing.OpenManagementPortal(c.Request.Context(), ownerID)
	if err != nil {
		var provErr *entitlement.ProviderUnavailableError
		if errors.As(err, &provErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Billing provider unavailable", "details": provErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
