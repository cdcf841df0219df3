package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/lovelyapp/backend/pkg/response"
	"go.uber.org/zap"
)

const MsgInternalError = "Erro interno do servidor"

// writeError answers with the status of err's kind. Client errors carry the
// caller-facing message; server errors are logged in full and answered
// generically unless a business rule supplied a message.
func writeError(c *gin.Context, log *zap.SugaredLogger, err error) {
	status := apperror.StatusCode(err)
	lg := logctx.FromGin(c, log)
	if status >= http.StatusInternalServerError {
		lg.Errorw("request_failed", "path", c.FullPath(), "err", err)
		c.JSON(status, response.Fail(MsgInternalError, apperror.Message(err, "")))
		return
	}
	lg.Infow("request_rejected", "path", c.FullPath(), "status", status, "err", err)
	c.JSON(status, response.Fail(apperror.Message(err, http.StatusText(status)), ""))
}
