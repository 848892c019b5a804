package team

import (
	"errors"
	"net/http"
	"strconv"

	"sellerhub-api/database"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/sellers"
	"sellerhub-api/internal/domain/team"
	"sellerhub-api/internal/entitlement"
	"sellerhub-api/internal/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateRequest lets a seller ask to join an owner's team. Duplicate
// pending requests are tolerated here; the integrity sweep collapses them.
func CreateRequest(c *gin.Context) {
	sellerID := c.GetUint("account_id")
	if sellerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		OwnerID uint `json:"owner_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid owner_id"})
		return
	}

	req := team.Request{
		SellerID: sellerID,
		OwnerID:  body.OwnerID,
		Status:   team.RequestPending,
	}
	if err := database.DB.Create(&req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	services.Notifier.Notify(body.OwnerID, "New team request",
		"A seller asked to join your team", notify.KindInfo)

	c.JSON(http.StatusOK, gin.H{"request_id": req.ID, "status": req.Status})
}

// ApproveRequest accepts a pending join request. The membership insert goes
// through the seat reservation so the seat count is re-validated inside the
// same transaction; the earlier capacity pre-check is UX only.
func ApproveRequest(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var req team.Request
	if err := database.DB.First(&req, uint(requestID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}
	if req.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your request"})
		return
	}
	if req.Status != team.RequestPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Request is not pending"})
		return
	}

	err = services.Capacity.ReserveSeat(c.Request.Context(), ownerID, func(tx *gorm.DB) error {
		if err := tx.Create(&team.Membership{SellerID: req.SellerID, OwnerID: ownerID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&team.Request{}).
			Where("id = ?", req.ID).
			Update("status", team.RequestApproved).Error; err != nil {
			return err
		}
		return tx.Model(&sellers.Entitlement{}).
			Where("seller_id = ?", req.SellerID).
			Update("is_team_member", true).Error
	})
	if err != nil {
		var capErr *entitlement.CapacityExceededError
		switch {
		case errors.As(err, &capErr):
			c.JSON(http.StatusConflict, gin.H{
				"error":       "Seat limit reached",
				"total_used":  capErr.Used,
				"max_sellers": capErr.Limit,
			})
		case errors.Is(err, entitlement.ErrNotProvisioned):
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription still provisioning"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve request"})
		}
		return
	}

	services.Notifier.Notify(req.SellerID, "Request approved",
		"You joined the team", notify.KindInfo)

	c.JSON(http.StatusOK, gin.H{"message": "Request approved"})
}
