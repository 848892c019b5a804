package users

import (
	"net/http"
	"time"

	"sellerhub-api/database"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/accounts"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser is the aggregate read behind the account page. Owners get
// the billing block, sellers the quota block; the integrity sweep has
// already run at login so the records it reads exist.
func GetCurrentUser(c *gin.Context) {
	accountID := c.GetUint("account_id")
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var acct accounts.Account
	if err := database.DB.First(&acct, accountID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	resp := MeResponse{Account: BuildAccountDTO(acct)}

	now := time.Now()
	switch acct.Role {
	case string(accounts.RoleOwner):
		billing, err := BuildBillingDTO(c.Request.Context(), now, acct.ID)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Plan store unavailable"})
			return
		}
		resp.Billing = billing

	case string(accounts.RoleSeller):
		resp.Seller = BuildSellerDTO(c.Request.Context(), acct.ID)

	default:
		services.Log.Debug().Uint("account_id", acct.ID).Str("role", acct.Role).
			Msg("no entitlement block for role")
	}

	c.JSON(http.StatusOK, resp)
}
