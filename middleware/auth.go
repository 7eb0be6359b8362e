package middleware

import (
	"net/http"
	"strings"

	"field-service-api/auth"
	"field-service-api/models"
	"field-service-api/repository"

	"github.com/gin-gonic/gin"
)

const userKey = "currentUser"

// Guard resolves bearer tokens to authenticated users and enforces role
// requirements. Authentication and authorization are two separate stages:
// AuthRequired answers who the caller is, AdminRequired whether they may.
type Guard struct {
	secret []byte
	users  repository.UserRepository
}

// NewGuard builds a Guard over the signing secret and the user directory.
func NewGuard(secret []byte, users repository.UserRepository) *Guard {
	return &Guard{secret: secret, users: users}
}

// AuthRequired validates the bearer token and loads the referenced user into
// the request context. A valid token whose user no longer exists is rejected.
func (g *Guard) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr, g.secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		user, err := g.users.GetByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// AdminRequired rejects any authenticated caller whose role is not ADMIN.
// Must run after AuthRequired.
func (g *Guard) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
