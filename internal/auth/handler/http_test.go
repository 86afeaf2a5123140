package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/safinirasol/WellMind-IBM/internal/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func post(auth Authenticator, body string) *httptest.ResponseRecorder {
	r := gin.New()
	NewHandler(auth, nil).Register(r.Group("/api"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/hr", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func newAuth(t *testing.T) (*security.HRAuthenticator, *security.TokenProvider) {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	require.NoError(t, err)
	auth, err := security.NewHRAuthenticator("wellness", security.NewHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)
	return auth, tokens
}

func TestLogin(t *testing.T) {
	auth, tokens := newAuth(t)

	w := post(auth, `{"password":"wellness"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success   bool   `json:"success"`
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.ExpiresAt)
	sub, err := tokens.ValidateAccess(body.Token)
	require.NoError(t, err)
	assert.Equal(t, security.HRSubject, sub)
}

func TestLogin_Rejections(t *testing.T) {
	auth, _ := newAuth(t)

	assert.Equal(t, http.StatusBadRequest, post(auth, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(auth, `not json`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(auth, `{"password":"guess"}`).Code)
	assert.Equal(t, http.StatusNotFound, post(nil, `{"password":"wellness"}`).Code)
}
