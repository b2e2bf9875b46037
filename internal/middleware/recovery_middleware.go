// internal/middleware/recovery_middleware.go
package middleware

import (
	"net/http"
	"runtime/debug"

	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery converts panics into 500 envelopes instead of dropped
// connections.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				response.Error(c, http.StatusInternalServerError, "internal server error", xerrors.ErrInternal)
			}
		}()
		c.Next()
	}
}
