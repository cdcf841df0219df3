package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/lovelyapp/backend/pkg/types"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const MsgSubscriptionNotFound = "Assinatura não encontrada"

type Service struct {
	store store.Store
	log   *zap.SugaredLogger
}

func NewService(st store.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: st, log: log}
}

// Get returns the user's subscription; a missing one is apperror.ErrNotFound.
func (s *Service) Get(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.store.FindSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound(MsgSubscriptionNotFound)
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return sub, nil
}

// History lists the recorded changes of a user's subscription, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]*models.SubscriptionLog, error) {
	return s.store.ListSubscriptionLogs(ctx, userID)
}

// Upsert makes m the user's subscription within tx. The existing row keeps
// its identity; every write is recorded in the subscription log.
func (s *Service) Upsert(ctx context.Context, tx store.Store, m *models.Subscription) (types.SubscriptionChangeReason, error) {
	original, err := tx.FindSubscription(ctx, m.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("failed to get original subscription: %w", err)
	}
	if original != nil {
		m.ID = original.ID
		m.CreatedAt = original.CreatedAt
	}
	reason := changeReason(original, m)

	if err := tx.SaveSubscription(ctx, m); err != nil {
		return "", fmt.Errorf("failed to upsert subscription: %w", err)
	}

	after := *m
	if err := tx.CreateSubscriptionLog(ctx, &models.SubscriptionLog{
		UserID:   m.UserID,
		SaleCode: m.SaleCode,
		Reason:   reason,
		Before:   datatypes.NewJSONType(original),
		After:    datatypes.NewJSONType(&after),
	}); err != nil {
		return "", fmt.Errorf("failed to save subscription log: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription_upserted",
		"user_id", m.UserID,
		"plan_type", m.PlanType,
		"sale_code", m.SaleCode,
		"reason", reason,
	)
	return reason, nil
}

func changeReason(before, after *models.Subscription) types.SubscriptionChangeReason {
	switch {
	case before == nil:
		return types.SubscriptionChangeReasonPurchase
	case before.PlanType != after.PlanType:
		return types.SubscriptionChangeReasonPlanChange
	default:
		return types.SubscriptionChangeReasonRenewal
	}
}
