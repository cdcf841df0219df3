package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	mw "github.com/lovelyapp/backend/internal/app/api/middleware"
	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/response"
	"github.com/lovelyapp/backend/pkg/types"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ValidateResponse struct {
	User *types.UserSnapshot `json:"user"`
}

// @Summary      Login
// @Description  Verifies credentials and returns a session token plus the dashboard handoff URL.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handlers.LoginRequest true "Credentials"
// @Success      200  {object}  handlers.RespLogin
// @Failure      400  {object}  handlers.RespError
// @Failure      401  {object}  handlers.RespError
// @Router       /api/auth/login [post]
func ApiLogin(svc *auth.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, apperror.Validation("body", auth.MsgMissingCredentials))
			return
		}
		res, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(res))
	}
}

// @Summary      Validate session
// @Description  Re-derives the user snapshot for the bearer token.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespValidate
// @Failure      401  {object}  handlers.RespError
// @Failure      403  {object}  handlers.RespError
// @Failure      404  {object}  handlers.RespError
// @Router       /api/auth/validate [get]
func ApiValidate(svc *auth.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.Validate(c.Request.Context(), mw.UserID(c))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(ValidateResponse{User: snap}))
	}
}

// @Summary      Logout
// @Description  Best-effort server notification. The token stays valid until it expires.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespOK
// @Router       /api/auth/logout [post]
func ApiLogout(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Logout(c.Request.Context(), mw.UserID(c))
		c.JSON(http.StatusOK, response.OKMessage[any]("Logout realizado", nil))
	}
}

func RegisterAuthRoutes(r gin.IRouter, svc *auth.Service, log *zap.SugaredLogger) {
	r.POST("/login", ApiLogin(svc, log))
	authed := r.Group("", mw.RequireAuth(svc))
	authed.GET("/validate", ApiValidate(svc, log))
	authed.POST("/logout", ApiLogout(svc))
}
