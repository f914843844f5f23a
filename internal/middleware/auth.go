package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clients-api/internal/auth"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/metrics"
)

const (
	ContextUserID    = "userID"
	ContextUserName  = "userName"
	ContextExpiresIn = "expiresIn"
)

const (
	MsgMissingToken    = "missing token"
	MsgInvalidAuthType = "invalid authorization type"
	MsgInvalidToken    = "invalid token"
)

// Identity is what the auth gate learned about the caller.
type Identity struct {
	UserID    uint
	Name      string
	ExpiresIn time.Time
}

func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(c, http.StatusUnauthorized, "missing_token", MsgMissingToken)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			reject(c, http.StatusUnauthorized, "invalid_type", MsgInvalidAuthType)
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if errors.Is(err, auth.ErrSecretNotConfigured) {
			reject(c, http.StatusInternalServerError, "no_secret", httperr.MsgInternal)
			return
		}
		if err != nil {
			reject(c, http.StatusUnauthorized, "invalid_token", MsgInvalidToken)
			return
		}

		c.Set(ContextUserID, claims.UID)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextExpiresIn, claims.ExpiresIn)

		c.Next()
	}
}

func reject(c *gin.Context, status int, reason, message string) {
	metrics.RecordAuthFailure(reason)
	httperr.Abort(c, status, message)
}

// CurrentIdentity returns the caller set by AuthMiddleware, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		UserID:    id.(uint),
		Name:      c.GetString(ContextUserName),
		ExpiresIn: c.GetTime(ContextExpiresIn),
	}, true
}
