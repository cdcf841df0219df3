package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lovelyapp/backend/internal/app/service/subscription"
	"github.com/lovelyapp/backend/internal/app/service/webhook_log"
	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/response"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type ListWebhookLogsRequest struct {
	Processed *bool  `form:"processed"`
	Failed    bool   `form:"failed"`
	SaleCode  string `form:"sale_code"`
	Limit     int    `form:"limit"`
}

// @Summary      List webhook logs (Admin)
// @Description  Lists received webhook calls, newest first.
// @Tags         Admin
// @Produce      json
// @Param        X-Admin-Key header string true "Operator key"
// @Param        processed query bool false "Filter by processed flag"
// @Param        failed query bool false "Only calls with a recorded error"
// @Param        sale_code query string false "Filter by sale code"
// @Param        limit query int false "Page size (default 100)"
// @Success      200  {object}  handlers.RespWebhookLogs
// @Router       /api/admin/webhook-logs [get]
func ApiListWebhookLogs(svc *webhook_log.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListWebhookLogsRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeError(c, log, apperror.Validation("query", err.Error()))
			return
		}
		logs, err := svc.List(c.Request.Context(), store.WebhookLogFilter{
			Processed:  req.Processed,
			FailedOnly: req.Failed,
			SaleCode:   req.SaleCode,
			Limit:      req.Limit,
		})
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(lo.Ternary(logs == nil, []*models.WebhookLog{}, logs)))
	}
}

// @Summary      User subscription history (Admin)
// @Tags         Admin
// @Produce      json
// @Param        X-Admin-Key header string true "Operator key"
// @Param        id path string true "User ID"
// @Success      200  {object}  handlers.RespSubscriptionHistory
// @Router       /api/admin/users/{id}/subscription-history [get]
func ApiAdminSubscriptionHistory(svc *subscription.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := svc.History(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, response.OK(history))
	}
}

func RegisterAdminRoutes(r gin.IRouter, logs *webhook_log.Service, subs *subscription.Service, log *zap.SugaredLogger) {
	r.GET("/webhook-logs", ApiListWebhookLogs(logs, log))
	r.GET("/users/:id/subscription-history", ApiAdminSubscriptionHistory(subs, log))
}
