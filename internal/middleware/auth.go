package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/observability"
	"github.com/sportall/app-recruit/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware
const (
	CtxUserID    = "user_id"
	CtxUserRole  = "user_role"
	CtxCoachType = "coach_type"
)

// Auth validates the bearer token and loads the caller's identity into
// the context. Tokens issued before a password change are rejected.
func Auth(users services.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &models.JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(config.AppConfig.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			return
		}

		if user.PasswordChangedAt != nil && claims.IssuedAt != nil &&
			claims.IssuedAt.Time.Before(*user.PasswordChangedAt) {
			observability.Logger().Info("rejected token issued before password change",
				zap.String("user_id", userID.Hex()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUserRole, user.Role)
		c.Set(CtxCoachType, claims.CoachType)
		c.Next()
	}
}

// UserID returns the authenticated caller's id
func UserID(c *gin.Context) primitive.ObjectID {
	id, _ := c.Get(CtxUserID)
	oid, _ := id.(primitive.ObjectID)
	return oid
}

// Role returns the authenticated caller's role
func Role(c *gin.Context) string {
	return c.GetString(CtxUserRole)
}

// RequireRoles aborts unless the caller holds one of the given roles
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		if !allowed[Role(c)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts unless the caller is an admin
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// RequireRecruiter aborts unless the caller is an NCAA coach or an admin.
// JUCO coaches endorse their own roster, they do not browse recruits.
func RequireRecruiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		if role == models.RoleCoach && c.GetString(CtxCoachType) == models.CoachTypeNCAA {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// RequireJucoCoach aborts unless the caller is a JUCO coach or an admin
func RequireJucoCoach() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		if role == models.RoleCoach && c.GetString(CtxCoachType) == models.CoachTypeJuco {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
