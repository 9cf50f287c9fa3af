package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupGinTest() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(logger))
	return router, logs
}

func TestGinMiddleware_LogsRequest(t *testing.T) {
	router, logs := setupGinTest()
	router.GET("/api/v1/permits", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/permits?status=APPLIED", nil)
	router.ServeHTTP(w, req)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/permits", fields["path"])
	assert.Equal(t, "status=APPLIED", fields["query"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestGinMiddleware_WarnOnClientError(t *testing.T) {
	router, logs := setupGinTest()
	router.PATCH("/api/v1/permits/:id", func(c *gin.Context) {
		c.Status(http.StatusForbidden)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/permits/1", nil)
	router.ServeHTTP(w, req)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestGinMiddleware_ErrorOnServerError(t *testing.T) {
	router, logs := setupGinTest()
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestGinMiddleware_IncludesCallerID(t *testing.T) {
	router, logs := setupGinTest()
	router.GET("/ok", func(c *gin.Context) {
		c.Set("caller_id", "11111111-1111-1111-1111-111111111111")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	router.ServeHTTP(w, req)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", fields["caller_id"])
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(Recovery(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "Panic recovered", entries[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// Without a logger set, a no-op logger comes back
	assert.NotNil(t, GetGinLogger(c))

	logger := zap.NewNop()
	c.Set("logger", logger)
	assert.Equal(t, logger, GetGinLogger(c))
}
