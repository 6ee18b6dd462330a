package middleware

import (
	apierrors "github.com/cvassist/task-api/internal/errors"
	"github.com/cvassist/task-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireRoles restricts a route to the given roles. Must run after
// RequireAuth so the profile row is already in context.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	allowedSet := make(map[models.Role]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthenticated(c, "")
			c.Abort()
			return
		}

		if !allowedSet[user.Role] {
			apierrors.PermissionDenied(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
