package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sellerhub-api/config"
	"sellerhub-api/database"
	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/domain/sellers"
	"sellerhub-api/internal/domain/team"
)

func setupAuthTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&accounts.Account{},
		&plans.Subscription{},
		&sellers.Entitlement{},
		&team.Membership{},
		&team.Request{},
		&team.VirtualSeller{},
	))

	database.DB = db
	config.JWT_SECRET = "test-secret"
	services.Init(db, zerolog.Nop())
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

// A legacy account with no role gets repaired at login, and the issued
// token must carry the repaired role rather than the stale in-memory one.
func TestLoginRepairsRoleBeforeIssuingToken(t *testing.T) {
	setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2abc"), bcrypt.MinCost)
	require.NoError(t, err)
	pw := string(hash)
	acct := accounts.Account{
		Name:         "Legacy",
		Email:        "legacy@example.com",
		Password:     &pw,
		AuthProvider: "local",
	}
	require.NoError(t, database.DB.Create(&acct).Error)

	w := postJSON(t, Login, "/login", gin.H{
		"email":    "legacy@example.com",
		"password": "hunter2abc",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(config.JWT_SECRET), nil
	})
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, string(accounts.RoleSeller), claims["role"])

	// The sweep also provisioned the quota record in the same pass.
	var count int64
	require.NoError(t, database.DB.Model(&sellers.Entitlement{}).
		Where("seller_id = ?", acct.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2abc"), bcrypt.MinCost)
	require.NoError(t, err)
	pw := string(hash)
	require.NoError(t, database.DB.Create(&accounts.Account{
		Name:         "Someone",
		Email:        "someone@example.com",
		Password:     &pw,
		AuthProvider: "local",
		Role:         string(accounts.RoleSeller),
	}).Error)

	w := postJSON(t, Login, "/login", gin.H{
		"email":    "someone@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
