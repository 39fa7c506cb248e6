package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prasetyadi/delivery-app/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user ID in token"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)

		c.Next()
	}
}
