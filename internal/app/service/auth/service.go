package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/config"
	"github.com/lovelyapp/backend/pkg/handoff"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/lovelyapp/backend/pkg/metrics"
	"github.com/lovelyapp/backend/pkg/types"
	"go.uber.org/zap"
)

// Caller-facing messages. Unknown email and wrong password share one message.
const (
	MsgMissingCredentials = "Email e senha são obrigatórios"
	MsgInvalidCredentials = "Credenciais inválidas"
	MsgTokenRequired      = "Token necessário"
	MsgTokenInvalid       = "Token inválido"
	MsgUserNotFound       = "Usuário não encontrado"
)

type LoginResult struct {
	User        *types.UserSnapshot `json:"user"`
	Token       string              `json:"token"`
	RedirectURL string              `json:"redirectUrl"`
}

type Service struct {
	store     store.Store
	tokens    *TokenService
	passwords *PasswordService
	cfg       *config.Config
	log       *zap.SugaredLogger
}

func NewService(st store.Store, tokens *TokenService, passwords *PasswordService, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{store: st, tokens: tokens, passwords: passwords, cfg: cfg, log: log}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies credentials and issues a session token together with the
// dashboard handoff URL.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logctx.FromCtx(ctx, s.log)
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Validation("email", MsgMissingCredentials)
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Infow("login_failed", "email", email, "reason", "unknown_email")
			metrics.ObserveLogin(false)
			return nil, apperror.Unauthorized(MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			log.Infow("login_failed", "email", email, "reason", "wrong_password")
			metrics.ObserveLogin(false)
			return nil, apperror.Unauthorized(MsgInvalidCredentials)
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx, user)
	if err != nil {
		return nil, err
	}
	redirectURL, err := handoff.BuildURL(s.cfg.URLs.Dashboard, token, snap)
	if err != nil {
		return nil, err
	}
	metrics.ObserveLogin(true)
	log.Infow("login_succeeded", "user_id", user.ID)
	return &LoginResult{User: snap, Token: token, RedirectURL: redirectURL}, nil
}

// Authenticate verifies a bearer token.
func (s *Service) Authenticate(token string) (*Claims, error) {
	if token == "" {
		return nil, apperror.Unauthorized(MsgTokenRequired)
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, &apperror.AppError{Err: errors.Join(apperror.ErrForbidden, err), Message: MsgTokenInvalid}
	}
	return claims, nil
}

// Validate re-derives the session snapshot for an authenticated user.
func (s *Service) Validate(ctx context.Context, userID string) (*types.UserSnapshot, error) {
	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Snapshot(ctx, user)
}

func (s *Service) FindUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logctx.FromCtx(ctx, s.log).Warnw("user_not_found", "user_id", userID)
			return nil, apperror.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Logout is a server-side notification only; tokens stay valid until expiry.
func (s *Service) Logout(ctx context.Context, userID string) {
	logctx.FromCtx(ctx, s.log).Infow("logout", "user_id", userID)
}

// Snapshot builds the user view from profile and subscription, with
// defaults for whichever is missing.
func (s *Service) Snapshot(ctx context.Context, user *models.User) (*types.UserSnapshot, error) {
	snap := &types.UserSnapshot{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Plan:          types.PlanTypeFree,
		DarinessLevel: types.DefaultDaringLevel,
		PartnerName:   types.DefaultPartnerName,
	}
	sub, err := s.store.FindSubscription(ctx, user.ID)
	switch {
	case err == nil:
		snap.Plan = sub.PlanType
		snap.HasActiveSubscription = sub.Active()
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	profile, err := s.store.FindProfile(ctx, user.ID)
	switch {
	case err == nil:
		if profile.DarinessLevel > 0 {
			snap.DarinessLevel = profile.DarinessLevel
		}
		if profile.PartnerName != "" {
			snap.PartnerName = profile.PartnerName
		}
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return snap, nil
}

// CreateOrResetUser registers an account, or resets the password of an
// existing one. Used by operator tooling.
func (s *Service) CreateOrResetUser(ctx context.Context, email, name, password string) (*models.User, bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, apperror.Validation("email", MsgMissingCredentials)
	}
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, false, apperror.Validation("password", err.Error())
	}

	var user *models.User
	created := false
	err = s.store.InTx(ctx, func(tx store.Store) error {
		existing, err := tx.FindUserByEmail(ctx, email)
		switch {
		case err == nil:
			existing.PasswordHash = hash
			if name != "" {
				existing.Name = name
			}
			user = existing
			return tx.SaveUser(ctx, existing)
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		if name == "" {
			name = DefaultName(email)
		}
		user = &models.User{Email: email, Name: name, PasswordHash: hash}
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		created = true
		return tx.CreateProfile(ctx, &models.Profile{
			UserID:        user.ID,
			PartnerName:   types.DefaultPartnerName,
			DarinessLevel: types.DefaultDaringLevel,
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return user, created, nil
}

// DefaultName derives a display name from the local part of an email.
func DefaultName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return local
}
