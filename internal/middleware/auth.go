package middleware

import (
	"github.com/cvassist/task-api/internal/constants"
	"github.com/cvassist/task-api/internal/database"
	apierrors "github.com/cvassist/task-api/internal/errors"
	"github.com/cvassist/task-api/internal/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth checks the session and resolves the caller's profile row.
// The role used downstream always comes from this fresh read, never from
// anything cached in the session, so a role change is effective on the
// target's next request.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		rawUserID := session.Get(constants.ContextKeyUserID)

		if rawUserID == nil {
			apierrors.Unauthenticated(c, "")
			c.Abort()
			return
		}

		userID, ok := toUint64(rawUserID)
		if !ok {
			apierrors.Unauthenticated(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthenticated(c, "Unknown user")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// GetCurrentUser retrieves the resolved user profile from context
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	raw, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := raw.(models.User)
	return user, ok
}

func toUint64(v interface{}) (uint64, bool) {
	switch value := v.(type) {
	case uint64:
		return value, true
	case uint:
		return uint64(value), true
	case int:
		if value < 0 {
			return 0, false
		}
		return uint64(value), true
	case int64:
		if value < 0 {
			return 0, false
		}
		return uint64(value), true
	default:
		return 0, false
	}
}
