// internal/middleware/intake_middleware.go
package middleware

import (
	"net/http"

	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// IntakeToken gates the public booking endpoints. The marketing site
// embeds a shared token in its forms; only its bcrypt hash is stored
// server-side, so a leaked config file does not leak the token.
func IntakeToken(tokenHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenHash == "" {
			logger.Error("intake token hash not configured, rejecting submission")
			response.Error(c, http.StatusServiceUnavailable, "intake is not configured", nil)
			return
		}

		token := c.GetHeader("X-Form-Token")
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing form token", xerrors.ErrUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
			logger.Warn("public submission with bad form token", zap.String("ip", c.ClientIP()))
			response.Error(c, http.StatusUnauthorized, "invalid form token", xerrors.ErrUnauthorized)
			return
		}

		c.Next()
	}
}
