package auth

import (
	"net/http"
	"time"

	"sellerhub-api/config"
	"sellerhub-api/database"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const trialDays = 14

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := accounts.ParseRole(input.Role)
	if err != nil || (role != accounts.RoleOwner && role != accounts.RoleSeller) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be owner or seller"})
		return
	}

	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	acct := accounts.Account{
		Name:         input.Name,
		Email:        input.Email,
		Password:     &hashed,
		AuthProvider: "local",
		Role:         string(role),
	}

	if err := database.DB.Create(&acct).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	if role == accounts.RoleOwner {
		if err := provisionSubscription(acct.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision subscription"})
			return
		}
	} else {
		// Entitlement record is created by the same sweep that repairs
		// drift at login time.
		if _, err := services.Reconciler.Sweep(c.Request.Context(), acct.ID); err != nil {
			services.Log.Error().Err(err).Uint("account_id", acct.ID).Msg("post-signup sweep failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account created"})
}

// provisionSubscription creates the owner's local plan row: free plan on a
// time-boxed trial. This is the only place a Subscription is born.
func provisionSubscription(accountID uint) error {
	spec := plans.SpecFor(plans.PlanFree)
	trialEnd := time.Now().AddDate(0, 0, trialDays)

	sub := plans.Subscription{
		AccountID:     accountID,
		PlanName:      string(plans.PlanFree),
		MaxSellers:    spec.MaxSellers,
		PricePerMonth: spec.PricePerMonth,
		Status:        string(plans.StatusTrial),
		TrialEndAt:    &trialEnd,
	}
	return database.DB.Create(&sub).Error
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var acct accounts.Account
	err := database.DB.Where("email = ?", input.Email).First(&acct).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if acct.Password == nil || *acct.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*acct.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Opportunistic integrity sweep; a repair failure never blocks login.
	report, err := services.Reconciler.Sweep(c.Request.Context(), acct.ID)
	if err != nil {
		services.Log.Error().Err(err).Uint("account_id", acct.ID).Msg("login sweep failed")
	} else if report.RoleRepaired {
		// The token must carry the repaired role, not the stale one.
		if err := database.DB.First(&acct, acct.ID).Error; err != nil {
			acct.Role = string(accounts.RoleSeller)
		}
	}

	tokenString, err := issueAppJWT(acct)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

func issueAppJWT(acct accounts.Account) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": acct.ID,
		"email":      acct.Email,
		"role":       acct.Role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}
