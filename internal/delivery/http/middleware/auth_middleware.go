package middleware

import (
	"net/http"
	"strings"

	"devhire-backend/internal/delivery/http/response"
	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"
	"devhire-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the HS256 bearer token and resolves the caller's
// identity. The role always comes from the user row, never from the token.
func AuthMiddleware(secret string, authUC domain.AuthUsecase) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenString == "" || tokenString == authHeader {
			response.Error(c, http.StatusUnauthorized, "No token, authorization denied", nil)
			c.Abort()
			return
		}

		if secret == "" {
			logger.Log.Error().Msg("JWT_SECRET is not configured; rejecting token")
			response.Error(c, http.StatusUnauthorized, "Token is not valid", nil)
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			logger.Log.Debug().Err(err).Msg("Token validation failed")
			response.Error(c, http.StatusUnauthorized, "Token is not valid", nil)
			c.Abort()
			return
		}

		userID := subjectFromClaims(claims)
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, "Token is not valid", nil)
			c.Abort()
			return
		}

		identity, err := authUC.ResolveIdentity(c.Request.Context(), userID)
		if err != nil {
			appErr := apperror.From(err)
			if appErr.IsInternal() {
				logger.Log.Error().Err(err).Str("user_id", userID).Msg("Failed to resolve identity")
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), identity.UserID)
		c.Set(string(domain.KeyUserRole), identity.Role)
		if email, ok := claims["email"].(string); ok {
			c.Set(string(domain.KeyUserEmail), email)
		}

		c.Next()
	}
}

// subjectFromClaims reads the user id from "id", falling back to "sub".
func subjectFromClaims(claims jwt.MapClaims) string {
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	sub, _ := claims.GetSubject()
	return sub
}

// RequireRole rejects callers whose role is not in roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Access denied for role "+role, nil)
		c.Abort()
	}
}

// Identity returns the caller resolved by AuthMiddleware. It is the zero
// Identity on public routes.
func Identity(c *gin.Context) domain.Identity {
	return domain.Identity{
		UserID: c.GetString(string(domain.KeyUserID)),
		Role:   c.GetString(string(domain.KeyUserRole)),
	}
}
