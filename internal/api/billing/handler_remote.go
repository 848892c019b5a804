package billing

import (
	"net/http"

	"sellerhub-api/internal/app/services"

	"github.com/gin-gonic/gin"
)

// GetRemoteView returns the display-only billing snapshot from the remote
// provider. This endpoint never fails: on provider outage the syncer serves
// the free-tier default, and the local capacity gate is untouched.
func GetRemoteView(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	view := services.Billing.FetchRemoteView(c.Request.Context(), ownerID)
	c.JSON(http.StatusOK, view)
}
