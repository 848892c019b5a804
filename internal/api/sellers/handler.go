package sellers

import (
	"errors"
	"net/http"

	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/entitlement"

	"github.com/gin-gonic/gin"
)

// GetRegistrationEligibility reports whether the seller may register a sale
// and the numbers behind it.
func GetRegistrationEligibility(c *gin.Context) {
	sellerID := c.GetUint("account_id")
	if sellerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	report, err := services.SalesQuota.CheckRegistrationEligibility(c.Request.Context(), sellerID)
	if err != nil {
		if errors.Is(err, entitlement.ErrNotProvisioned) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No entitlement record yet"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Entitlement store unavailable"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetEntitlement returns the raw quota record for the seller.
func GetEntitlement(c *gin.Context) {
	sellerID := c.GetUint("account_id")
	if sellerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	ent, err := services.SalesQuota.Entitlement(c.Request.Context(), sellerID)
	if err != nil {
		if errors.Is(err, entitlement.ErrNotProvisioned) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No entitlement record yet"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Entitlement store unavailable"})
		return
	}

	c.JSON(http.StatusOK, ent)
}
