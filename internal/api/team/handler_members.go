package team

import (
	"net/http"
	"strconv"

	"sellerhub-api/database"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/sellers"
	"sellerhub-api/internal/domain/team"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AssignableSellerDTO is one row of the owner's seller roster, real or
// virtual.
type AssignableSellerDTO struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Type      string  `json:"type"`
	IsVirtual bool    `json:"is_virtual"`
}

// ListAssignableSellers returns the owner's full roster: team members from
// memberships plus virtual sellers, queried separately because the two
// entities live and die on different lifecycles.
func ListAssignableSellers(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var real []AssignableSellerDTO
	err := database.DB.
		Table("team_memberships").
		Select("accounts.id, accounts.name, accounts.email").
		Joins("JOIN accounts ON accounts.id = team_memberships.seller_id").
		Where("team_memberships.owner_id = ?", ownerID).
		Scan(&real).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load team members"})
		return
	}
	for i := range real {
		real[i].Type = string(accounts.RoleSeller)
		real[i].IsVirtual = false
	}

	var virtuals []team.VirtualSeller
	if err := database.DB.Where("owner_id = ?", ownerID).Find(&virtuals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load virtual sellers"})
		return
	}

	list := real
	for _, v := range virtuals {
		list = append(list, AssignableSellerDTO{
			ID:        v.ID,
			Name:      v.Name,
			Email:     v.Email,
			Type:      string(accounts.RoleVirtualSeller),
			IsVirtual: true,
		})
	}

	c.JSON(http.StatusOK, list)
}

// GetCapacity is the optimistic pre-check for the UI. Enforcement happens
// at insert time inside ReserveSeat.
func GetCapacity(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	report, err := services.Capacity.CheckCapacity(c.Request.Context(), ownerID)
	if err != nil {
		// Fail closed: the report already says CanAddMore=false.
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RemoveMember soft-retires a seller: the membership goes away and the
// account flips to inactive, but the entitlement row and its sales history
// are kept forever.
func RemoveMember(c *gin.Context) {
	ownerID := c.GetUint("account_id")
	if ownerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	sellerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller id"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("seller_id = ? AND owner_id = ?", sellerID, ownerID).
			Delete(&team.Membership{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&accounts.Account{}).
			Where("id = ?", sellerID).
			Update("role", string(accounts.RoleInactive)).Error; err != nil {
			return err
		}

		return tx.Model(&sellers.Entitlement{}).
			Where("seller_id = ?", sellerID).
			Update("is_team_member", false).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
