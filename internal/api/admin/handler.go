package admin

import (
	"net/http"
	"strconv"
	"time"

	"sellerhub-api/database"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type AdminAccount struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	PlanName   *string    `json:"plan_name,omitempty"`
	Status     *string    `json:"status,omitempty"`
	TrialEndAt *time.Time `json:"trial_end_at,omitempty"`
}

type AdminStats struct {
	TotalAccounts int            `json:"total_accounts"`
	OwnersPerPlan map[string]int `json:"owners_per_plan"`
}

func AdminDashboard(c *gin.Context) {
	var total int64
	if err := database.DB.Model(&accounts.Account{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	perPlan := map[string]int{}
	var subs []plans.Subscription
	if err := database.DB.Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}
	for _, s := range subs {
		perPlan[s.PlanName]++
	}

	c.JSON(http.StatusOK, AdminStats{
		TotalAccounts: int(total),
		OwnersPerPlan: perPlan,
	})
}

func ListAllAccounts(c *gin.Context) {
	var accts []accounts.Account
	if err := database.DB.Find(&accts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load accounts"})
		return
	}

	var subs []plans.Subscription
	if err := database.DB.Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}
	byAccount := make(map[uint]*plans.Subscription, len(subs))
	for i := range subs {
		byAccount[subs[i].AccountID] = &subs[i]
	}

	list := make([]AdminAccount, 0, len(accts))
	for _, a := range accts {
		row := AdminAccount{
			ID:    a.ID,
			Name:  a.Name,
			Email: a.Email,
			Role:  a.Role,
		}
		if sub, ok := byAccount[a.ID]; ok {
			row.PlanName = &sub.PlanName
			row.Status = &sub.Status
			row.TrialEndAt = sub.TrialEndAt
		}
		list = append(list, row)
	}

	c.JSON(http.StatusOK, list)
}

// RunSweep lets an operator force the integrity sweep for one account and
// see what it repaired.
func RunSweep(c *gin.Context) {
	accountID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return
	}

	report, err := services.Reconciler.Sweep(c.Request.Context(), uint(accountID))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sweep failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
