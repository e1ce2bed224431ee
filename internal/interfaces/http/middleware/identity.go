package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apporder "github.com/prexcol/backend/internal/application/order"
	"github.com/prexcol/backend/internal/domain/identity"
	"github.com/prexcol/backend/internal/interfaces/http/dto"
)

// Gin context keys populated by Identity.
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

// Identity resolves the calling user from the X-User-ID and X-User-Role
// headers. Authentication itself happens upstream at the API gateway; this
// middleware only validates the forwarded identity and makes it available
// to handlers.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		userIDStr := c.GetHeader("X-User-ID")
		if userIDStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "X-User-ID header is required", requestID))
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "X-User-ID must be a valid UUID", requestID))
			return
		}

		role, err := identity.ParseRole(c.GetHeader("X-User-Role"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "X-User-Role header is missing or not a known role", requestID))
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, role)
		c.Next()
	}
}

// GetActor returns the actor resolved by Identity. The second return is
// false when the middleware did not run or rejected the request.
func GetActor(c *gin.Context) (apporder.Actor, bool) {
	userID, ok := c.Get(UserIDKey)
	if !ok {
		return apporder.Actor{}, false
	}
	role, ok := c.Get(UserRoleKey)
	if !ok {
		return apporder.Actor{}, false
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		return apporder.Actor{}, false
	}
	r, ok := role.(identity.Role)
	if !ok {
		return apporder.Actor{}, false
	}

	return apporder.Actor{UserID: id, Role: r}, true
}
