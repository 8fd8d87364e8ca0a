package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teamspace/internal/envelope"
	apperrors "teamspace/internal/errors"
	"teamspace/internal/session"
)

// SessionParser verifies a bearer token.
type SessionParser interface {
	Parse(token string) (session.Session, error)
}

// Session attaches the bearer token's session to the request context. A
// request without an Authorization header proceeds with the zero session; a
// malformed or expired token is rejected with a 401 envelope.
func Session(parser SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusOK, envelope.Failed(apperrors.ErrInvalidToken))
			return
		}

		sess, err := parser.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, envelope.Failed(apperrors.Wrap(apperrors.ErrInvalidToken, err)))
			return
		}

		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
		c.Next()
	}
}
