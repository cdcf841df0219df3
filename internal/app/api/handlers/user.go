package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	mw "github.com/lovelyapp/backend/internal/app/api/middleware"
	"github.com/lovelyapp/backend/internal/app/service/statistics"
	"github.com/lovelyapp/backend/pkg/response"
	"go.uber.org/zap"
)

// @Summary      User statistics
// @Description  Usage figures for the dashboard home.
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespUserStats
// @Router       /api/user/stats [get]
func ApiUserStats(svc *statistics.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.UserStats(c.Request.Context(), mw.UserID(c))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(stats))
	}
}

// @Summary      User activities
// @Description  The five most recent activities, newest first.
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespUserActivities
// @Router       /api/user/activities [get]
func ApiUserActivities(svc *statistics.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		acts, err := svc.Activities(c.Request.Context(), mw.UserID(c))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(acts))
	}
}

func RegisterUserRoutes(r gin.IRouter, svc *statistics.Service, log *zap.SugaredLogger) {
	r.GET("/stats", ApiUserStats(svc, log))
	r.GET("/activities", ApiUserActivities(svc, log))
}
