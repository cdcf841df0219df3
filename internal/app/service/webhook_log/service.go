package webhook_log

import (
	"context"
	"fmt"

	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	store store.WebhookLogStore
	log   *zap.SugaredLogger
}

func New(st store.Store, log *zap.SugaredLogger) *Service { return &Service{store: st, log: log} }

// Received persists the inbound call synchronously. Nothing else may happen
// for the call until this succeeds.
func (s *Service) Received(ctx context.Context, l *models.WebhookLog) error {
	l.Processed = false
	if err := s.store.CreateWebhookLog(ctx, l); err != nil {
		return fmt.Errorf("create webhook log: %w", err)
	}
	return nil
}

func (s *Service) MarkProcessed(ctx context.Context, l *models.WebhookLog) error {
	l.Processed = true
	l.Error = nil
	if err := s.store.UpdateWebhookLog(ctx, l); err != nil {
		return fmt.Errorf("mark webhook log processed: %w", err)
	}
	return nil
}

// MarkFailed records cause on the log row. A failed update is only logged:
// the caller is already returning cause.
func (s *Service) MarkFailed(ctx context.Context, l *models.WebhookLog, cause error) {
	l.Processed = false
	l.Error = lo.ToPtr(cause.Error())
	if err := s.store.UpdateWebhookLog(ctx, l); err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("webhook_log_update_failed", "webhook_log_id", l.ID, "err", err)
	}
}

func (s *Service) List(ctx context.Context, f store.WebhookLogFilter) ([]*models.WebhookLog, error) {
	return s.store.ListWebhookLogs(ctx, f)
}

var Module = fx.Options(
	fx.Provide(New),
)
