package logctx

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromCtx_EnrichesBase(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core).Sugar()

	ctx := WithUserID(WithTraceID(context.Background(), "trace-1"), "user-1")
	FromCtx(ctx, base).Info("hello")

	entry := logs.All()[0]
	require.Equal(t, "trace-1", entry.ContextMap()["trace_id"])
	require.Equal(t, "user-1", entry.ContextMap()["user_id"])
}

func TestFromCtx_PrefersStoredLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	stored := zap.New(core).Sugar().With("scope", "request")

	ctx := WithLogger(context.Background(), stored)
	FromCtx(ctx, zap.NewNop().Sugar()).Info("hello")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "request", logs.All()[0].ContextMap()["scope"])
}

func TestFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base := zap.NewNop().Sugar()
	require.Same(t, base, FromGin(nil, base))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	require.Same(t, base, FromGin(c, base))

	reqLogger := base.With("k", "v")
	c.Set(GinLoggerKey, reqLogger)
	require.Same(t, reqLogger, FromGin(c, base))
}
