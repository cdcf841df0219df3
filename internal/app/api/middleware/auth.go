package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/lovelyapp/backend/pkg/response"
)

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireAuth rejects requests without a valid bearer token: missing is 401,
// invalid or expired is 403. On success the user id and email are stored on
// gin.Context and the user id on the request context.
func RequireAuth(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authSvc.Authenticate(BearerToken(c))
		if err != nil {
			msg := apperror.Message(err, auth.MsgTokenInvalid)
			c.AbortWithStatusJSON(apperror.StatusCode(err), response.Fail(msg, ""))
			return
		}
		c.Set(logctx.GinUserIDKey, claims.UserID)
		c.Set(logctx.GinEmailKey, claims.Email)
		c.Request = c.Request.WithContext(logctx.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// UserID returns the id stored by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(logctx.GinUserIDKey)
}
