package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	mw "github.com/lovelyapp/backend/internal/app/api/middleware"
	"github.com/lovelyapp/backend/internal/app/service/subscription"
	"github.com/lovelyapp/backend/pkg/response"
	"go.uber.org/zap"
)

// @Summary      Get subscription
// @Description  Returns the caller's current subscription.
// @Tags         Subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespSubscription
// @Failure      404  {object}  handlers.RespError
// @Router       /api/subscription [get]
func ApiGetSubscription(svc *subscription.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := svc.Get(c.Request.Context(), mw.UserID(c))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(sub))
	}
}

// @Summary      Subscription history
// @Description  Lists the recorded changes of the caller's subscription, newest first.
// @Tags         Subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespSubscriptionHistory
// @Router       /api/subscription/history [get]
func ApiSubscriptionHistory(svc *subscription.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := svc.History(c.Request.Context(), mw.UserID(c))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(history))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc *subscription.Service, log *zap.SugaredLogger) {
	r.GET("", ApiGetSubscription(svc, log))
	r.GET("/history", ApiSubscriptionHistory(svc, log))
}
