package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	mw "github.com/lovelyapp/backend/internal/app/api/middleware"
	"github.com/lovelyapp/backend/internal/app/service/profile"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/response"
	"go.uber.org/zap"
)

const msgInvalidProfile = "Dados de perfil inválidos"

// @Summary      Get profile
// @Description  Returns the caller's profile, creating a default one on first access.
// @Tags         Profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespProfile
// @Router       /api/profile [get]
func ApiGetProfile(svc *profile.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), mw.UserID(c))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(p))
	}
}

// @Summary      Update profile
// @Description  Updates partnerName, moodToday and darinessLevel. Omitted fields are left unchanged.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body profile.UpdateRequest true "Fields to update"
// @Success      200  {object}  handlers.RespProfile
// @Failure      400  {object}  handlers.RespError
// @Router       /api/profile [put]
func ApiUpdateProfile(svc *profile.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profile.UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, apperror.Validation("body", msgInvalidProfile))
			return
		}
		p, err := svc.Update(c.Request.Context(), mw.UserID(c), &req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OKMessage("Perfil atualizado com sucesso", p))
	}
}

func RegisterProfileRoutes(r gin.IRouter, svc *profile.Service, log *zap.SugaredLogger) {
	r.GET("", ApiGetProfile(svc, log))
	r.PUT("", ApiUpdateProfile(svc, log))
}
