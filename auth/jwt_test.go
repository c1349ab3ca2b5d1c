package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/programme-lv/contest/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-key")

func TestGenerateAndValidate(t *testing.T) {
	user := uuid.New()
	token, err := auth.GenerateJWT("alice", user, time.Hour, key)
	require.NoError(t, err)

	claims, err := auth.ValidateJWT(token, key)
	require.NoError(t, err)
	got, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateRejects(t *testing.T) {
	user := uuid.New()

	expired, err := auth.GenerateJWT("alice", user, -time.Minute, key)
	require.NoError(t, err)
	_, err = auth.ValidateJWT(expired, key)
	assert.Error(t, err)

	foreign, err := auth.GenerateJWT("alice", user, time.Hour, []byte("other-key"))
	require.NoError(t, err)
	_, err = auth.ValidateJWT(foreign, key)
	assert.Error(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)
	_, err = auth.ValidateJWT(noUser, key)
	assert.Error(t, err)
}

func TestSubjectFallback(t *testing.T) {
	user := uuid.New()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	claims, err := auth.ValidateJWT(token, key)
	require.NoError(t, err)
	got, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestMiddleware(t *testing.T) {
	var seen uuid.UUID
	var anonymous bool
	h := auth.Middleware(key)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := auth.RequireUser(r.Context())
		anonymous = err != nil
		seen = u
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, anonymous)

	user := uuid.New()
	token, err := auth.GenerateJWT("bob", user, time.Hour, key)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, anonymous)
	assert.Equal(t, user, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
}
