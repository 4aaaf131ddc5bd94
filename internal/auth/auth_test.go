package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ := Subject(r.Context())
		w.Write([]byte(subject))
	})
}

func TestIssueAndValidate(t *testing.T) {
	env := &Authenv{JWTkey: []byte("secret")}

	token, err := env.IssueToken("plant-7", time.Hour)
	require.NoError(t, err)

	subject, err := env.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "plant-7", subject)

	other := &Authenv{JWTkey: []byte("other")}
	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	env := &Authenv{JWTkey: []byte("secret")}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "plant-7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	signed, err := token.SignedString(env.JWTkey)
	require.NoError(t, err)

	_, err = env.Validate(signed)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestIssueToken_NoKey(t *testing.T) {
	_, err := (&Authenv{}).IssueToken("x", time.Hour)
	assert.Equal(t, ErrNoKey, err)
}

func TestAuthMiddleware(t *testing.T) {
	env := &Authenv{JWTkey: []byte("secret")}
	token, err := env.IssueToken("plant-7", time.Hour)
	require.NoError(t, err)
	h := env.AuthMiddleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/premium/pump/batch", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "plant-7", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/premium/pump/batch", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/premium/pump/batch", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/premium/pump/batch", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0, 2)
	h := limiter.LimitMiddleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/tools/pump/calc", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/api/tools/pump/calc", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
