package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/githubzohaib/Forest-MGT/internal/models"
	apperrors "github.com/githubzohaib/Forest-MGT/pkg/errors"
)

const userContextKey = "currentUser"

// AuthRequired verifies the Bearer token, loads the user it names and
// attaches it to the request context. Token issuance lives in the auth
// service; this side only verifies. The role always comes from the user
// record, not from a claim a client could have minted long ago.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrAuthRequired.Error()})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return h.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate."})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate."})
			return
		}
		userID, _ := claims["id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate."})
			return
		}

		user, err := h.Store.FindUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate."})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthRequired.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
