package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propflow/backend/internal/infrastructure/auth"
	"github.com/propflow/backend/internal/infrastructure/config"
)

const testAuthSecret = "test-secret-key-that-is-long-enough"

func testValidator() *auth.TokenValidator {
	return auth.NewTokenValidator(config.JWTConfig{
		Secret: testAuthSecret,
		Issuer: "propflow-idp",
	})
}

func signTestToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "propflow-idp",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testAuthSecret))
	require.NoError(t, err)
	return signed
}

func setupAuthRouter(cfg AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), CallerAuth(cfg))
	engine.GET("/protected", func(c *gin.Context) {
		callerID, ok := GetCallerID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no caller"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"caller_id": callerID.String()})
	})
	return engine
}

func TestCallerAuth_ValidBearerToken(t *testing.T) {
	engine := setupAuthRouter(AuthConfig{Validator: testValidator()})
	caller := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, caller.String()))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), caller.String())
}

func TestCallerAuth_MissingHeader(t *testing.T) {
	engine := setupAuthRouter(AuthConfig{Validator: testValidator()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
}

func TestCallerAuth_MalformedHeader(t *testing.T) {
	engine := setupAuthRouter(AuthConfig{Validator: testValidator()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, "Token abc")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCallerAuth_InvalidToken(t *testing.T) {
	engine := setupAuthRouter(AuthConfig{Validator: testValidator()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-token")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCallerAuth_HeaderFallback(t *testing.T) {
	caller := uuid.New()

	t.Run("enabled", func(t *testing.T) {
		engine := setupAuthRouter(AuthConfig{Validator: testValidator(), AllowHeaderFallback: true})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(CallerHeaderKey, caller.String())
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), caller.String())
	})

	t.Run("disabled", func(t *testing.T) {
		engine := setupAuthRouter(AuthConfig{Validator: testValidator()})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(CallerHeaderKey, caller.String())
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects non-uuid header", func(t *testing.T) {
		engine := setupAuthRouter(AuthConfig{Validator: testValidator(), AllowHeaderFallback: true})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(CallerHeaderKey, "somebody")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCallerAuth_BearerTakesPrecedenceOverHeader(t *testing.T) {
	engine := setupAuthRouter(AuthConfig{Validator: testValidator(), AllowHeaderFallback: true})
	tokenCaller := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, tokenCaller.String()))
	req.Header.Set(CallerHeaderKey, uuid.New().String())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tokenCaller.String())
}
