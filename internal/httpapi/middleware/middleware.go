package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gopherchat/assistant-gateway/internal/chat"
	"github.com/gopherchat/assistant-gateway/internal/common"
)

// UserKey is the gin context key holding the authenticated *chat.User.
const UserKey = "auth_user"

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// TokenVerifier checks a bearer token and resolves the local identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, bearerToken string) (*chat.User, error)
}

// AuthRequired rejects requests without a valid bearer token and puts
// the resolved identity on the context. Authentication failures always
// propagate as 401; they are never silently defaulted.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			common.Fail(c, http.StatusUnauthorized, 40101, "missing bearer token")
			c.Abort()
			return
		}

		user, err := verifier.VerifyToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			common.Fail(c, http.StatusUnauthorized, 40102, "invalid authentication credentials")
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// UserFromContext returns the identity placed by AuthRequired.
func UserFromContext(c *gin.Context) (*chat.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*chat.User)
	return user, ok
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				common.Fail(c, http.StatusInternalServerError, 50000, "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
