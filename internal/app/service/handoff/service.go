// Package handoff resolves the generic /auth entry point into a redirect
// target: the dashboard with a fresh snapshot for a valid token, the sales
// site login page otherwise.
package handoff

import (
	"context"

	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/pkg/config"
	handoffurl "github.com/lovelyapp/backend/pkg/handoff"
	"github.com/lovelyapp/backend/pkg/logctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const loginPath = "/auth"

type Redirector struct {
	auth *auth.Service
	cfg  *config.Config
	log  *zap.SugaredLogger
}

func NewRedirector(authSvc *auth.Service, cfg *config.Config, log *zap.SugaredLogger) *Redirector {
	return &Redirector{auth: authSvc, cfg: cfg, log: log}
}

// LoginURL is the sales site page hosting the login form.
func (r *Redirector) LoginURL() string {
	return r.cfg.URLs.Sales + loginPath
}

// Resolve never fails: every problem with token sends the caller to LoginURL.
func (r *Redirector) Resolve(ctx context.Context, token string) string {
	log := logctx.FromCtx(ctx, r.log)
	if token == "" {
		return r.LoginURL()
	}
	claims, err := r.auth.Authenticate(token)
	if err != nil {
		log.Infow("handoff_rejected", "reason", "invalid_token", "err", err)
		return r.LoginURL()
	}
	snap, err := r.auth.Validate(ctx, claims.UserID)
	if err != nil {
		log.Warnw("handoff_rejected", "reason", "user_lookup", "user_id", claims.UserID, "err", err)
		return r.LoginURL()
	}
	target, err := handoffurl.BuildURL(r.cfg.URLs.Dashboard, token, snap)
	if err != nil {
		log.Errorw("handoff_build_url_failed", "user_id", claims.UserID, "err", err)
		return r.LoginURL()
	}
	log.Infow("handoff_redirect", "user_id", claims.UserID)
	return target
}

var Module = fx.Options(
	fx.Provide(NewRedirector),
)
