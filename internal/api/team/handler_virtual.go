package team

import (
	"errors"
	"net/http"
	"strconv"

	"sellerhub-api/database"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/team"
	"sellerhub-api/internal/entitlement"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateVirtualSeller adds a placeholder seller. It consumes a seat, so the
// insert goes through the same transactional reservation as a real member.
func CreateVirtualSeller(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		Name  string  `json:"name" binding:"required"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid name"})
		return
	}

	vs := team.VirtualSeller{
		OwnerID:     ownerID,
		Name:        body.Name,
		Email:       body.Email,
		DeleteToken: uuid.NewString(),
	}

	err := services.Capacity.ReserveSeat(c.Request.Context(), ownerID, func(tx *gorm.DB) error {
		return tx.Create(&vs).Error
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
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create virtual seller"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           vs.ID,
		"name":         vs.Name,
		"delete_token": vs.DeleteToken,
	})
}

// DeleteVirtualSeller removes a placeholder seller. Destructive, so the
// caller must echo the row's delete token; a mismatch is rejected before
// any mutation.
func DeleteVirtualSeller(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid virtual seller id"})
		return
	}

	var body struct {
		ConfirmationID string `json:"confirmation_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing confirmation_id"})
		return
	}

	var vs team.VirtualSeller
	if err := database.DB.
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&vs).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Virtual seller not found"})
		return
	}

	if vs.DeleteToken != body.ConfirmationID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation id does not match"})
		return
	}

	if err := database.DB.Delete(&team.VirtualSeller{}, vs.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete virtual seller"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Virtual seller removed"})
}
