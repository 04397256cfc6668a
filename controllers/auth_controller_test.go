package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DBN92/our-journey-together/config"
	"github.com/DBN92/our-journey-together/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func authRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	config.DB = db

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", Register)
	r.POST("/auth/login", Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := authRouter(t)
	body := `{"email":"ana@example.com","password":"segredo123","full_name":"Ana"}`

	w := postJSON(r, "/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"email já cadastrado"}`, w.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := authRouter(t)

	w := postJSON(r, "/auth/register", `{"email":"bia@example.com","password":"segredo123","full_name":"Bia"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/auth/login", `{"email":"bia@example.com","password":"segredo123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	w = postJSON(r, "/auth/login", `{"email":"bia@example.com","password":"errada"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
