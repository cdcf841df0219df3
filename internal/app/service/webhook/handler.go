// Package webhook ingests Perfect Pay sale notifications and provisions the
// buyer's account and subscription.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/internal/app/service/subscription"
	"github.com/lovelyapp/backend/internal/app/service/webhook_log"
	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/platform/lock"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/config"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/lovelyapp/backend/pkg/metrics"
	"github.com/lovelyapp/backend/pkg/tool"
	"github.com/lovelyapp/backend/pkg/types"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	Provider = "perfect_pay"
	Event    = "payment_notification"

	MsgProcessed   = "Webhook processado com sucesso"
	MsgNotApproved = "Venda não aprovada"
	MsgFailed      = "Erro ao processar webhook"
	msgUnknownPlan = "Plano não reconhecido: %s"

	randomPasswordBytes = 8
)

type ResultUser struct {
	ID    string         `json:"id"`
	Email string         `json:"email"`
	Plan  types.PlanType `json:"plan"`
}

type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *ResultUser `json:"user,omitempty"`
}

type Handler struct {
	cfg       *config.Config
	store     store.Store
	logs      *webhook_log.Service
	subs      *subscription.Service
	passwords *auth.PasswordService
	locker    lock.Locker
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewHandler(
	cfg *config.Config,
	st store.Store,
	logs *webhook_log.Service,
	subs *subscription.Service,
	passwords *auth.PasswordService,
	locker lock.Locker,
	log *zap.SugaredLogger,
) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     st,
		logs:      logs,
		subs:      subs,
		passwords: passwords,
		locker:    locker,
		log:       log,
		now:       time.Now,
	}
}

// Handle processes one delivery. The webhook log row is written before
// anything else; a returned error has already been recorded on it.
func (h *Handler) Handle(ctx context.Context, body []byte) (res *Result, resErr error) {
	start := time.Now()
	log := logctx.FromCtx(ctx, h.log)

	payload, parseErr := ParsePayload(body)
	entry := &models.WebhookLog{
		Provider: Provider,
		TraceID:  logctx.TraceID(ctx),
		Event:    Event,
		Payload:  datatypes.JSON(rawJSON(body)),
	}
	if payload != nil {
		entry.Token = payload.Token
		entry.SaleCode = payload.Code
		entry.Status = int(payload.Status())
	}
	if err := h.logs.Received(ctx, entry); err != nil {
		metrics.ObserveWebhook(metrics.WebhookResultFailed, start)
		log.Errorw("webhook_log_create_failed", "err", err)
		return nil, err
	}

	// The row must be settled even when the caller hangs up mid-delivery.
	recordCtx := context.WithoutCancel(ctx)
	outcome := metrics.WebhookResultFailed
	defer func() {
		if resErr != nil {
			h.logs.MarkFailed(recordCtx, entry, resErr)
			log.Errorw("webhook_failed", "webhook_log_id", entry.ID, "sale_code", entry.SaleCode, "err", resErr)
		}
		metrics.ObserveWebhook(outcome, start)
	}()

	if parseErr != nil {
		return nil, parseErr
	}
	log = log.With("webhook_log_id", entry.ID, "sale_code", payload.Code)

	if !payload.Status().Approved() {
		outcome = metrics.WebhookResultNotApproved
		log.Infow("webhook_not_approved", "status", entry.Status)
		return &Result{Success: false, Message: MsgNotApproved}, nil
	}
	if err := payload.ValidateApproved(); err != nil {
		return nil, err
	}
	plan, ok := h.cfg.GetPlanByCode(payload.Plan.Code)
	if !ok {
		return nil, apperror.BusinessRule(msgUnknownPlan, payload.Plan.Code)
	}

	email := auth.NormalizeEmail(payload.Customer.Email)
	unlock, err := h.locker.Acquire(ctx, "webhook:"+email)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", email, err)
	}
	defer unlock()

	var user *models.User
	err = h.store.InTx(ctx, func(tx store.Store) error {
		u, err := h.findOrCreateUser(ctx, tx, email, payload.Customer.FullName, plan)
		if err != nil {
			return err
		}
		user = u
		_, err = h.subs.Upsert(ctx, tx, &models.Subscription{
			UserID:    u.ID,
			PlanCode:  plan.Code,
			PlanType:  plan.Type,
			SaleCode:  payload.Code,
			Status:    types.SubscriptionStatusActive,
			Amount:    float64(payload.SaleAmount),
			Currency:  payload.Currency(h.cfg.PerfectPay.Currency),
			StartDate: payload.ApprovedAt(h.cfg.Location(), h.now()),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := h.logs.MarkProcessed(recordCtx, entry); err != nil {
		return nil, err
	}
	outcome = metrics.WebhookResultProcessed
	log.Infow("webhook_processed", "user_id", user.ID, "plan_type", plan.Type)
	return &Result{
		Success: true,
		Message: MsgProcessed,
		User:    &ResultUser{ID: user.ID, Email: user.Email, Plan: plan.Type},
	}, nil
}

// findOrCreateUser leaves an existing user and profile untouched. A new user
// gets an unguessable password that is never returned or logged.
func (h *Handler) findOrCreateUser(ctx context.Context, tx store.Store, email, fullName string, plan *types.Plan) (*models.User, error) {
	existing, err := tx.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	password, err := tool.RandomHex(randomPasswordBytes)
	if err != nil {
		return nil, err
	}
	hash, err := h.passwords.Hash(password)
	if err != nil {
		return nil, err
	}
	name := fullName
	if name == "" {
		name = auth.DefaultName(email)
	}
	user := &models.User{Email: email, Name: name, PasswordHash: hash}
	if err := tx.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := tx.CreateProfile(ctx, &models.Profile{
		UserID:        user.ID,
		PartnerName:   types.DefaultPartnerName,
		DarinessLevel: plan.InitialDaringLevel(),
	}); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	logctx.FromCtx(ctx, h.log).Infow("user_provisioned", "user_id", user.ID, "plan_type", plan.Type)
	return user, nil
}
