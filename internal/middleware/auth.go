package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/auth"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/contextkeys"
)

// AuthMiddleware verifies the bearer token and stores the resolved actor
// in both the gin context and the request context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}
		setActor(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the actor when a valid token is present
// but lets unauthenticated requests through. Routes that serve public
// objects decide per object whether anonymous access is allowed.
func OptionalAuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, tokens); ok {
			setActor(c, claims)
		}
		c.Next()
	}
}

// RequireRoles restricts a route to the listed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}
		role, ok := roleVal.(models.UserRole)
		if !ok {
			if roleStr, isString := roleVal.(string); isString {
				role = models.UserRole(roleStr)
			} else {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
				return
			}
		}
		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role"})
			return
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, tokens *auth.TokenManager) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setActor(c *gin.Context, claims *auth.Claims) {
	c.Set("userID", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("institutionID", claims.InstitutionID)

	ctx := context.WithValue(c.Request.Context(), contextkeys.ActorContextKey, &contextkeys.ActorClaims{
		UserID:        claims.UserID,
		Role:          string(claims.Role),
		InstitutionID: claims.InstitutionID,
	})
	c.Request = c.Request.WithContext(ctx)
}

// GetUserID extracts the authenticated user id from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}
