package controllers

import (
	"github.com/gin-gonic/gin"
)

// ErrNoPermission is returned when a role check fails.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
