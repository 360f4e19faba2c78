package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestVerifier_Verify(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	claims, err := v.Verify(sign(t, testSecret, "42", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: sign(t, "other", "42", time.Hour)},
		{name: "expired", token: sign(t, testSecret, "42", -time.Hour)},
		{name: "no subject", token: sign(t, testSecret, "", time.Hour)},
		{name: "garbage", token: "not.a.jwt"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Verify(tc.token)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier("")
	assert.Error(t, err)
}

func TestSubjectUnverified(t *testing.T) {
	sub, err := SubjectUnverified(sign(t, "whatever", "99", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "99", sub)

	_, err = SubjectUnverified("opaque-token")
	assert.Error(t, err)
}

func TestExtractBearer(t *testing.T) {
	token, err := ExtractBearer("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = ExtractBearer("")
	assert.Equal(t, ErrMissingToken, err)
	_, err = ExtractBearer("Basic abc")
	assert.Equal(t, ErrBadScheme, err)
	_, err = ExtractBearer("Bearer")
	assert.Equal(t, ErrBadScheme, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/users/me", Middleware(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "email": Email(c), "has_token": Token(c) != ""})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, testSecret, "42", time.Hour))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"42","email":"ada@example.com","has_token":true}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"authorization header is empty"}`, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, "other", "42", time.Hour))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"token is not valid"}`, w.Body.String())
}
