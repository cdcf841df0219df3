package auth

import (
	"github.com/lovelyapp/backend/pkg/config"
	"go.uber.org/fx"
)

func newTokenService(cfg *config.Config) (*TokenService, error) {
	return NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func newPasswordService(cfg *config.Config) *PasswordService {
	return NewPasswordService(cfg.Auth.BcryptCost)
}

// Module exposes the credential issuer via Fx.
var Module = fx.Options(
	fx.Provide(newTokenService, newPasswordService, NewService),
)
