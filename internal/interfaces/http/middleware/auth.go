package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propflow/backend/internal/infrastructure/auth"
	"github.com/propflow/backend/internal/infrastructure/logger"
	"github.com/propflow/backend/internal/interfaces/http/dto"
)

// Caller identity context keys and header names
const (
	CallerIDKey     = "caller_id"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
	CallerHeaderKey = "X-Caller-ID"
)

// AuthConfig holds configuration for the caller authentication middleware
type AuthConfig struct {
	// Validator checks bearer tokens. Required unless AllowHeaderFallback is set.
	Validator *auth.TokenValidator
	// AllowHeaderFallback accepts a raw X-Caller-ID header when no bearer
	// token is present. Development only.
	AllowHeaderFallback bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// CallerAuth authenticates the request and stores the caller identity in the
// gin context. Identity decides nothing by itself; role resolution and
// authorization happen in the application layer.
func CallerAuth(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		callerID, err := resolveCaller(c, cfg)
		if err != nil {
			log.Warn("request authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, err.Error(), c.GetString(RequestIDKey)))
			return
		}

		c.Set(CallerIDKey, callerID.String())
		if ctxLogger, ok := c.Get("logger"); ok {
			if zl, ok := ctxLogger.(*zap.Logger); ok {
				c.Set("logger", zl.With(zap.String("caller_id", callerID.String())))
			}
		}
		ctx, _ := logger.WithCallerID(c.Request.Context(), log, callerID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func resolveCaller(c *gin.Context, cfg AuthConfig) (uuid.UUID, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			return uuid.Nil, errors.New("invalid authorization header format")
		}
		if cfg.Validator == nil {
			return uuid.Nil, errors.New("token validation is not configured")
		}
		return cfg.Validator.Validate(strings.TrimPrefix(authHeader, BearerPrefix))
	}

	if cfg.AllowHeaderFallback {
		if raw := c.GetHeader(CallerHeaderKey); raw != "" {
			callerID, err := uuid.Parse(raw)
			if err != nil {
				return uuid.Nil, errors.New("caller id header is not a valid UUID")
			}
			return callerID, nil
		}
	}

	return uuid.Nil, errors.New("missing authorization header")
}

// GetCallerID returns the authenticated caller id from the gin context
func GetCallerID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(CallerIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	callerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return callerID, true
}
