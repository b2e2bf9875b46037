// internal/middleware/auth_middleware.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/jwt"
	"decora-admin/internal/pkg/response"
	"decora-admin/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const operatorEmailKey = "operator_email"

// AuthMiddleware verifies the bearer tokens the external auth provider
// issues and gates mutations behind the operator allow-list. Tokens are
// never issued here; a valid signature alone is not enough, the e-mail
// inside must also be on the list.
type AuthMiddleware struct {
	verifier *jwt.Verifier
	allowed  map[string]bool
	sessions *session.Manager
	logger   *zap.Logger
}

func NewAuthMiddleware(verifier *jwt.Verifier, operatorEmails []string, sessions *session.Manager, logger *zap.Logger) *AuthMiddleware {
	allowed := make(map[string]bool, len(operatorEmails))
	for _, email := range operatorEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowed[email] = true
		}
	}
	return &AuthMiddleware{
		verifier: verifier,
		allowed:  allowed,
		sessions: sessions,
		logger:   logger,
	}
}

// Auth validates the token and stores the operator e-mail in context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", xerrors.ErrUnauthorized)
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token",
				fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err))
			return
		}

		email := claims.OperatorEmail()
		if !m.allowed[email] {
			m.logger.Warn("token from non-operator", zap.String("email", email))
			response.Error(c, http.StatusForbidden, "not an operator", xerrors.ErrForbidden)
			return
		}

		c.Set(operatorEmailKey, email)

		// Session registry is best effort; auth never depends on Redis.
		if m.sessions != nil && claims.ID != "" {
			if err := m.sessions.Touch(c.Request.Context(), claims.ID, email); err != nil {
				m.logger.Warn("failed to touch session", zap.Error(err))
			}
		}

		c.Next()
	}
}

// extractToken pulls the bearer token from the Authorization header,
// falling back to the token query param for websocket upgrades where
// browsers cannot set headers.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}

// OperatorEmail returns the authenticated operator from context.
func OperatorEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(operatorEmailKey)
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}
