package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"sellerhub-api/config"
	"sellerhub-api/database"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/accounts"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func GoogleStart(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetCookie("oauth_state", state, 300, "/", "", false, true)

	url := googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	acct, err := findOrCreateGoogleAccount(claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	// Google signups land without a role; this sweep assigns the default
	// and provisions the entitlement record in the same pass.
	report, err := services.Reconciler.Sweep(c.Request.Context(), acct.ID)
	if err != nil {
		services.Log.Error().Err(err).Uint("account_id", acct.ID).Msg("google login sweep failed")
	} else if report.RoleRepaired {
		if err := database.DB.First(&acct, acct.ID).Error; err != nil {
			acct.Role = string(accounts.RoleSeller)
		}
	}

	tokenString, err := issueAppJWT(acct)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

/* ---------------- helpers ---------------- */

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: config.GOOGLE_CLIENT_ID})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}

	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}

	return &claims, nil
}

func findOrCreateGoogleAccount(gc *googleIDClaims) (accounts.Account, error) {
	var acct accounts.Account

	if gc.Sub != "" {
		if err := database.DB.Where("google_sub = ?", gc.Sub).First(&acct).Error; err == nil {
			return acct, nil
		}
	}

	if err := database.DB.Where("email = ?", gc.Email).First(&acct).Error; err == nil {
		if acct.GoogleSub == nil {
			sub := gc.Sub
			acct.GoogleSub = &sub
			acct.AuthProvider = "google"
			if err := database.DB.Save(&acct).Error; err != nil {
				return accounts.Account{}, err
			}
		}
		return acct, nil
	}

	sub := gc.Sub
	acct = accounts.Account{
		Name:         firstNonEmpty(gc.GivenName, gc.Name),
		Email:        gc.Email,
		Password:     nil,
		AuthProvider: "google",
		GoogleSub:    &sub,
		// Role left empty on purpose; the integrity sweep applies the
		// documented default.
	}

	if err := database.DB.Create(&acct).Error; err != nil {
		return accounts.Account{}, err
	}
	return acct, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
