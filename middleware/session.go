package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"techstore/models"
	apperrors "techstore/pkg/errors"
	"techstore/session"
)

const sessionKey = "session"

// SessionMiddleware resolves the bearer token to a live session and slides
// its expiry. Browsers' EventSource cannot set headers, so a token query
// parameter is accepted too.
func SessionMiddleware(store *session.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		id, err := session.ParseToken(secret, raw, nowFunc())
		if err != nil {
			abortUnauthorized(c, &apperrors.ErrUnauthorized{Message: "Invalid or expired session token"})
			return
		}

		sess, ok := store.Touch(id)
		if !ok {
			abortUnauthorized(c, &apperrors.ErrUnauthorized{Message: "Session has ended"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionMiddleware.
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", &apperrors.ErrUnauthorized{Message: "Authorization header required"}
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", &apperrors.ErrUnauthorized{Message: "Invalid authorization header format"}
	}
	return tokenParts[1], nil
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Message: err.Error(),
	})
}
