package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lovelyapp/backend/internal/app/service/webhook"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/lovelyapp/backend/pkg/response"
	"go.uber.org/zap"
)

// @Summary      Perfect Pay webhook
// @Description  Receives a Perfect Pay sale notification. Approved sales provision the buyer's account and subscription; other statuses are logged and acknowledged.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body webhook.Payload true "Perfect Pay sale notification"
// @Success      200  {object}  handlers.RespWebhook
// @Failure      400  {object}  handlers.RespError
// @Failure      500  {object}  handlers.RespError
// @Router       /api/webhook/perfect-pay [post]
func ApiPerfectPayWebhook(h *webhook.Handler, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		lg := logctx.FromGin(c, log)
		body, err := c.GetRawData()
		if err != nil {
			lg.Warnw("webhook_body_read_failed", "err", err)
			c.JSON(http.StatusBadRequest, response.Fail(webhook.MsgFailed, webhook.MsgInvalidPayload))
			return
		}
		lg.Infow("webhook_perfect_pay_received", "bytes", len(body))

		res, err := h.Handle(c.Request.Context(), body)
		if err != nil {
			c.JSON(apperror.StatusCode(err), response.Fail(webhook.MsgFailed, apperror.Message(err, MsgInternalError)))
			return
		}
		c.JSON(http.StatusOK, response.OKMessage(webhook.MsgProcessed, res))
	}
}

func RegisterWebhookRoutes(r gin.IRouter, h *webhook.Handler, log *zap.SugaredLogger) {
	r.POST("/perfect-pay", ApiPerfectPayWebhook(h, log))
}
