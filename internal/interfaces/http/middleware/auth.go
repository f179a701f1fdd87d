package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "wanderlite.backend/internal/domain/errors"
	"wanderlite.backend/pkg/jwt"
	"wanderlite.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// ClaimsKey is the context key for the full token claims
	ClaimsKey = "userClaims"
)

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"code":    domainerrors.CodeForbidden,
		"message": message,
	})
}

// AuthMiddleware requires a valid bearer token. Missing, malformed,
// expired and invalid credentials all answer 403 so a probing client
// learns nothing about which case it hit.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromRequest(c, jwtService)
		if !ok {
			abortForbidden(c, "access denied")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

// OptionalAuthMiddleware populates identity when a valid token is present
// and stays silent otherwise. List endpoints use it so anonymous callers
// get an empty collection rather than a refusal.
func OptionalAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromRequest(c, jwtService); ok {
			c.Set(UserIDKey, claims.UserID)
			c.Set(UserEmailKey, claims.Email)
			c.Set(UserRoleKey, claims.Role)
			c.Set(ClaimsKey, claims)
		}
		c.Next()
	}
}

func claimsFromRequest(c *gin.Context, jwtService *jwt.JWTService) (*jwt.Claims, bool) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	claims, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		logger.Debug(c.Request.Context(), "token rejected",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		return nil, false
	}
	return claims, true
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}

// RequireClaim gates a route on a token claim value. The admin surface
// uses it with the configured claim name and value. A claim the token
// does not carry never matches.
func RequireClaim(claimName, claimValue string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ClaimsKey)
		claims, _ := v.(*jwt.Claims)
		if !exists || claims == nil {
			abortForbidden(c, "insufficient permissions")
			return
		}

		actual, ok := claims.Claim(claimName)
		if !ok || actual != claimValue {
			abortForbidden(c, "insufficient permissions")
			return
		}
		c.Next()
	}
}
