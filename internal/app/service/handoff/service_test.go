package handoff

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/internal/store/memstore"
	"github.com/lovelyapp/backend/pkg/config"
	handoffurl "github.com/lovelyapp/backend/pkg/handoff"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-0123456789"

func newTestRedirector(t *testing.T) (*Redirector, *auth.Service, *auth.TokenService) {
	t.Helper()
	cfg := &config.Config{URLs: config.URLConfig{Dashboard: "http://dash.local", Sales: "http://sales.local"}}
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	log := zap.NewNop().Sugar()
	authSvc := auth.NewService(memstore.New(), tokens, auth.NewPasswordService(bcrypt.MinCost), cfg, log)
	return NewRedirector(authSvc, cfg, log), authSvc, tokens
}

func TestResolve_NoOrBadToken(t *testing.T) {
	r, _, tokens := newTestRedirector(t)
	ctx := context.Background()

	require.Equal(t, "http://sales.local/auth", r.Resolve(ctx, ""))
	require.Equal(t, "http://sales.local/auth", r.Resolve(ctx, "garbage"))

	// valid signature, user gone
	orphan, err := tokens.Issue("missing-user", "x@y.z")
	require.NoError(t, err)
	require.Equal(t, "http://sales.local/auth", r.Resolve(ctx, orphan))
}

func TestResolve_ValidToken(t *testing.T) {
	r, authSvc, _ := newTestRedirector(t)
	ctx := context.Background()

	u, _, err := authSvc.CreateOrResetUser(ctx, "ana@example.com", "Ana", "segredo")
	require.NoError(t, err)
	login, err := authSvc.Login(ctx, "ana@example.com", "segredo")
	require.NoError(t, err)

	target := r.Resolve(ctx, login.Token)
	require.True(t, strings.HasPrefix(target, "http://dash.local/?token="), target)

	cb, err := handoffurl.ParseURL(target)
	require.NoError(t, err)
	require.Equal(t, login.Token, cb.Token)
	require.Equal(t, u.ID, cb.User.ID)
	require.Equal(t, "Ana", cb.User.Name)
}
