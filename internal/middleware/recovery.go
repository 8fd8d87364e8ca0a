package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamspace/internal/envelope"
	apperrors "teamspace/internal/errors"
	"teamspace/internal/logger"
)

// Recovery converts a panic in a handler into a store-error envelope so
// clients always receive the uniform result shape. The panic value is logged,
// never returned.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Get().Errorw("panic recovered",
					"panic", fmt.Sprint(r),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				c.AbortWithStatusJSON(http.StatusOK, envelope.Failed(apperrors.Wrap(apperrors.ErrStore, fmt.Errorf("panic: %v", r))))
			}
		}()
		c.Next()
	}
}
