package Controllers_test

import (
	"github.com/gin-gonic/gin"
)

// asUser stands in for the auth middleware: routes under test get a
// fixed identity without minting real tokens.
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}
