package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	mw "github.com/lovelyapp/backend/internal/app/api/middleware"
	"github.com/lovelyapp/backend/internal/app/service/handoff"
)

// @Summary      Auth entry point
// @Description  Redirects to the dashboard with token and user params for a valid token, otherwise to the sales site login page. Never answers with JSON.
// @Tags         Auth
// @Param        token query string false "Session token; a bearer header is also accepted"
// @Success      302
// @Router       /auth [get]
func AuthRedirect(r *handoff.Redirector) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = mw.BearerToken(c)
		}
		c.Redirect(http.StatusFound, r.Resolve(c.Request.Context(), token))
	}
}

func RegisterRedirectRoutes(r gin.IRouter, redirector *handoff.Redirector) {
	r.GET("/auth", AuthRedirect(redirector))
}
