package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

func authRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	ac := &AuthController{DB: db}
	r.POST("/api/auth/register", ac.Register)
	r.POST("/api/auth/login", ac.Login)
	r.GET("/api/auth/me", utils.AuthMiddleware(), ac.Me)
	return r
}

func findCookie(w http.Header, name string) string {
	res := http.Response{Header: w}
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func TestRegisterCreatesUserAndSetsCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := authRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "amina",
		"email":    "amina@example.com",
		"password": "password123",
		"phoneNum": "+213555000111",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, findCookie(w.Header(), utils.AuthCookieName))

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "amina@example.com").Error)
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, utils.CheckPasswordHash("password123", user.Password))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	seedUser(t, db, "amina@example.com")
	r := authRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "amina",
		"email":    "amina@example.com",
		"password": "password123",
		"phoneNum": "+213555000111",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsBadPhone(t *testing.T) {
	db := newTestDB(t)
	r := authRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "amina",
		"email":    "amina@example.com",
		"password": "password123",
		"phoneNum": "not-a-phone",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	user := seedUser(t, db, "amina@example.com")
	r := authRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "amina@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, findCookie(w.Header(), utils.AuthCookieName))

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.NotNil(t, got.LastLogin)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	seedUser(t, db, "amina@example.com")
	r := authRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "amina@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	user := seedUser(t, db, "amina@example.com")
	r := authRouter(db)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access denied", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil,
		&http.Cookie{Name: utils.AuthCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid token", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, authCookie(t, user.ID))
	assert.Equal(t, http.StatusOK, w.Code)
}
