package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	mw "github.com/lovelyapp/backend/internal/app/api/middleware"
	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/internal/app/service/handoff"
	"github.com/lovelyapp/backend/internal/app/service/profile"
	"github.com/lovelyapp/backend/internal/app/service/statistics"
	"github.com/lovelyapp/backend/internal/app/service/subscription"
	"github.com/lovelyapp/backend/internal/app/service/webhook"
	"github.com/lovelyapp/backend/internal/app/service/webhook_log"
	"github.com/lovelyapp/backend/internal/platform/lock"
	"github.com/lovelyapp/backend/internal/store/memstore"
	"github.com/lovelyapp/backend/pkg/config"
	handoffurl "github.com/lovelyapp/backend/pkg/handoff"
	"github.com/lovelyapp/backend/pkg/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	router *gin.Engine
	auth   *auth.Service
	store  *memstore.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		URLs:       config.URLConfig{Dashboard: "http://dash.local", Sales: "http://sales.local"},
		Plans:      types.DefaultPlans(),
		PerfectPay: config.PerfectPayConfig{Timezone: "America/Sao_Paulo", Currency: "BRL"},
		Admin:      config.AdminConfig{APIKey: "admin-key"},
	}
	log := zap.NewNop().Sugar()
	st := memstore.New()
	tokens, err := auth.NewTokenService("test-secret-0123456789", time.Hour)
	require.NoError(t, err)
	passwords := auth.NewPasswordService(bcrypt.MinCost)
	authSvc := auth.NewService(st, tokens, passwords, cfg, log)
	logs := webhook_log.New(st, log)
	subs := subscription.NewService(st, log)
	hook := webhook.NewHandler(cfg, st, logs, subs, passwords, lock.NewLocalLocker(), log)

	r := gin.New()
	RegisterHealthRoutes(r)
	RegisterRedirectRoutes(r, handoff.NewRedirector(authSvc, cfg, log))
	api := r.Group("/api")
	RegisterWebhookRoutes(api.Group("/webhook"), hook, log)
	RegisterAuthRoutes(api.Group("/auth"), authSvc, log)
	authed := api.Group("", mw.RequireAuth(authSvc))
	RegisterProfileRoutes(authed.Group("/profile"), profile.NewService(st, log), log)
	RegisterSubscriptionRoutes(authed.Group("/subscription"), subs, log)
	RegisterUserRoutes(authed.Group("/user"), statistics.NewService(st, log), log)
	RegisterAdminRoutes(api.Group("/admin", mw.RequireAdminKey(cfg.Admin.APIKey)), logs, subs, log)

	return &testAPI{router: r, auth: authSvc, store: st}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

const approvedSale = `{"token":"tok","code":"SALE1","sale_status_enum":2,"sale_amount":47.90,
	"customer":{"email":"a@b.com","full_name":"A B"},"plan":{"code":"PPU38CPQ6NQ"}}`

func TestHealth(t *testing.T) {
	a := newTestAPI(t)
	w, body := a.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", body["status"])
	require.Equal(t, "LovelyApp", body["app"])
}

func TestWebhook_Responses(t *testing.T) {
	a := newTestAPI(t)

	w, body := a.do(t, http.MethodPost, "/api/webhook/perfect-pay", "", approvedSale)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["success"])
	require.Equal(t, webhook.MsgProcessed, body["message"])
	data := body["data"].(map[string]any)
	require.Equal(t, true, data["success"])
	require.Equal(t, "basico", data["user"].(map[string]any)["plan"])

	w, body = a.do(t, http.MethodPost, "/api/webhook/perfect-pay", "", strings.Replace(approvedSale, `"sale_status_enum":2`, `"sale_status_enum":1`, 1))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, body["data"].(map[string]any)["success"])

	w, body = a.do(t, http.MethodPost, "/api/webhook/perfect-pay", "", strings.Replace(approvedSale, "PPU38CPQ6NQ", "UNKNOWN", 1))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, body["success"])
	require.Equal(t, webhook.MsgFailed, body["error"])
	require.Contains(t, body["message"], "não reconhecido")

	w, _ = a.do(t, http.MethodPost, "/api/webhook/perfect-pay", "", "{not json")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, body = a.do(t, http.MethodGet, "/api/admin/webhook-logs?failed=true", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, false, body["success"])
}

func TestAdminWebhookLogs(t *testing.T) {
	a := newTestAPI(t)
	a.do(t, http.MethodPost, "/api/webhook/perfect-pay", "", approvedSale)
	a.do(t, http.MethodPost, "/api/webhook/perfect-pay", "", strings.Replace(approvedSale, "PPU38CPQ6NQ", "UNKNOWN", 1))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/webhook-logs?failed=true", nil)
	req.Header.Set(mw.HeaderAdminKey, "admin-key")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, false, body.Data[0]["processed"])
}

func TestLoginValidateFlow(t *testing.T) {
	a := newTestAPI(t)
	ctx := t.Context()
	_, _, err := a.auth.CreateOrResetUser(ctx, "ana@example.com", "Ana", "segredo")
	require.NoError(t, err)

	w, body := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, auth.MsgMissingCredentials, body["error"])

	w, body = a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "password": "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, auth.MsgInvalidCredentials, body["error"])

	w, body = a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "password": "segredo"})
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]any)
	token := data["token"].(string)
	require.True(t, strings.HasPrefix(data["redirectUrl"].(string), "http://dash.local/?token="))

	w, body = a.do(t, http.MethodGet, "/api/auth/validate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	require.Equal(t, "ana@example.com", user["email"])
	require.Equal(t, data["user"].(map[string]any)["id"], user["id"])

	w, _ = a.do(t, http.MethodGet, "/api/auth/validate", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = a.do(t, http.MethodGet, "/api/auth/validate", "forged", nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestValidate_UserGone(t *testing.T) {
	a := newTestAPI(t)
	tokens, err := auth.NewTokenService("test-secret-0123456789", time.Hour)
	require.NoError(t, err)
	token, err := tokens.Issue("ghost", "ghost@example.com")
	require.NoError(t, err)

	w, body := a.do(t, http.MethodGet, "/api/auth/validate", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, auth.MsgUserNotFound, body["error"])
}

func TestProfileSubscriptionAndStats(t *testing.T) {
	a := newTestAPI(t)
	ctx := t.Context()
	u, _, err := a.auth.CreateOrResetUser(ctx, "a@b.com", "A", "segredo")
	require.NoError(t, err)
	login, err := a.auth.Login(ctx, "a@b.com", "segredo")
	require.NoError(t, err)

	w, _ := a.do(t, http.MethodGet, "/api/subscription", login.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, body := a.do(t, http.MethodGet, "/api/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, u.ID, body["data"].(map[string]any)["userId"])

	w, body = a.do(t, http.MethodPut, "/api/profile", login.Token, map[string]any{"partnerName": "Bia", "darinessLevel": 8})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Bia", body["data"].(map[string]any)["partnerName"])
	require.EqualValues(t, 8, body["data"].(map[string]any)["darinessLevel"])

	w, _ = a.do(t, http.MethodPut, "/api/profile", login.Token, map[string]any{"darinessLevel": 42})
	require.Equal(t, http.StatusBadRequest, w.Code)

	a.do(t, http.MethodPost, "/api/webhook/perfect-pay", "", approvedSale)
	w, body = a.do(t, http.MethodGet, "/api/subscription", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "basico", body["data"].(map[string]any)["planType"])
	require.Equal(t, "ACTIVE", body["data"].(map[string]any)["status"])

	w, _ = a.do(t, http.MethodGet, "/api/user/stats", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, body = a.do(t, http.MethodGet, "/api/user/activities", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, body["data"])

	w, _ = a.do(t, http.MethodGet, "/api/user/stats", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRedirect(t *testing.T) {
	a := newTestAPI(t)
	ctx := t.Context()
	_, _, err := a.auth.CreateOrResetUser(ctx, "ana@example.com", "Ana", "segredo")
	require.NoError(t, err)
	login, err := a.auth.Login(ctx, "ana@example.com", "segredo")
	require.NoError(t, err)

	w, _ := a.do(t, http.MethodGet, "/auth", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "http://sales.local/auth", w.Header().Get("Location"))

	w, _ = a.do(t, http.MethodGet, "/auth?token=bad", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "http://sales.local/auth", w.Header().Get("Location"))

	w, _ = a.do(t, http.MethodGet, "/auth?token="+login.Token, "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	cb, err := handoffurl.ParseURL(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, login.Token, cb.Token)
	require.Equal(t, "Ana", cb.User.Name)

	// bearer header is accepted too
	w, _ = a.do(t, http.MethodGet, "/auth", login.Token, nil)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "http://dash.local/?token="))
}
