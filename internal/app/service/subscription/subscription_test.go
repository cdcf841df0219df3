package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/internal/store/memstore"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func upsert(t *testing.T, svc *Service, st store.Store, m *models.Subscription) types.SubscriptionChangeReason {
	t.Helper()
	var reason types.SubscriptionChangeReason
	err := st.InTx(context.Background(), func(tx store.Store) error {
		var err error
		reason, err = svc.Upsert(context.Background(), tx, m)
		return err
	})
	require.NoError(t, err)
	return reason
}

func TestUpsert_ReasonsAndIdentity(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := NewService(st, zap.NewNop().Sugar())
	start := time.Date(2024, 12, 7, 18, 25, 2, 0, time.UTC)

	reason := upsert(t, svc, st, &models.Subscription{UserID: "u1", PlanCode: "PPU38CPQ742", PlanType: types.PlanTypePremium, SaleCode: "S1", Status: types.SubscriptionStatusActive, StartDate: start})
	require.Equal(t, types.SubscriptionChangeReasonPurchase, reason)
	first, err := svc.Get(ctx, "u1")
	require.NoError(t, err)

	// downgrade overwrites
	reason = upsert(t, svc, st, &models.Subscription{UserID: "u1", PlanCode: "PPU38CPQ6NQ", PlanType: types.PlanTypeBasico, SaleCode: "S2", Status: types.SubscriptionStatusActive, StartDate: start})
	require.Equal(t, types.SubscriptionChangeReasonPlanChange, reason)

	reason = upsert(t, svc, st, &models.Subscription{UserID: "u1", PlanCode: "PPU38CPQ6NQ", PlanType: types.PlanTypeBasico, SaleCode: "S3", Status: types.SubscriptionStatusActive, StartDate: start})
	require.Equal(t, types.SubscriptionChangeReasonRenewal, reason)

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, types.PlanTypeBasico, got.PlanType)
	require.Equal(t, "S3", got.SaleCode)

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, "S3", history[0].SaleCode)
	require.Nil(t, history[2].Before.Data())
	require.Equal(t, types.PlanTypePremium, history[1].Before.Data().PlanType)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(memstore.New(), zap.NewNop().Sugar())
	_, err := svc.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, apperror.ErrNotFound)
	require.Equal(t, MsgSubscriptionNotFound, err.Error())
}
