package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techstore/models"
	"techstore/utils"
)

// AdminMiddleware checks X-Admin-Key against an argon2 encoded hash. With no
// hash configured every request is refused.
func AdminMiddleware(keyHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "Admin access is disabled",
			})
			return
		}

		key := c.GetHeader("X-Admin-Key")
		ok, err := utils.VerifyAdminKey(keyHash, key)
		if err != nil {
			logger.Error("Admin key verification failed", zap.Error(err))
		}
		if key == "" || !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "Access denied. Admin key required",
			})
			return
		}

		c.Next()
	}
}
