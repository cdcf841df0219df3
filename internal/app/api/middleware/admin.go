package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lovelyapp/backend/pkg/response"
)

const HeaderAdminKey = "X-Admin-Key"

// RequireAdminKey compares the X-Admin-Key header with key in constant time.
func RequireAdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderAdminKey)
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail("Acesso negado", ""))
			return
		}
		c.Next()
	}
}
