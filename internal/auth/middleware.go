package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	userIDKey = "auth.user_id"
	emailKey  = "auth.email"
	tokenKey  = "auth.token"
)

// Middleware rejects requests without a valid bearer token. Bodies use the
// {"message": ...} layout the storefront client reads.
func Middleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		claims, err := v.Verify(raw)
		if err != nil {
			logrus.WithError(err).Debug("rejected access token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrInvalidToken.Error()})
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(emailKey, claims.Email)
		c.Set(tokenKey, raw)
		c.Next()
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func Email(c *gin.Context) string {
	return c.GetString(emailKey)
}

func Token(c *gin.Context) string {
	return c.GetString(tokenKey)
}
