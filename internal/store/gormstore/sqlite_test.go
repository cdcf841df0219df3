package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newSQLiteStore opens a private in-memory database with the production schema.
func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Subscription{},
		&models.SubscriptionLog{},
		&models.WebhookLog{},
	))
	return New(gdb)
}

func createUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "A", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestSQLite_DuplicateEmailIsErrDuplicate(t *testing.T) {
	s := newSQLiteStore(t)
	createUser(t, s, "a@b.com")

	err := s.CreateUser(context.Background(), &models.User{Email: "a@b.com", Name: "B", PasswordHash: "y"})
	require.ErrorIs(t, err, store.ErrDuplicate)

	_, err = s.FindUserByEmail(context.Background(), "missing@b.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_SaveSubscriptionKeepsOneRowPerUser(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	u := createUser(t, s, "a@b.com")

	sub := &models.Subscription{
		UserID:    u.ID,
		PlanCode:  "PPU38CPQ6NQ",
		PlanType:  types.PlanTypeBasico,
		SaleCode:  "SALE1",
		Status:    types.SubscriptionStatusActive,
		Amount:    47.90,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveSubscription(ctx, sub))
	firstID := sub.ID

	// replayed sale: the caller carries the existing id over
	replay := *sub
	replay.PlanType = types.PlanTypePremium
	replay.PlanCode = "PPU38CPQ742"
	require.NoError(t, s.SaveSubscription(ctx, &replay))

	got, err := s.FindSubscription(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, firstID, got.ID)
	require.Equal(t, types.PlanTypePremium, got.PlanType)

	var count int64
	require.NoError(t, s.db.Model(&models.Subscription{}).Where("user_id = ?", u.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// a second row for the same user is rejected by the unique index
	err = s.SaveSubscription(ctx, &models.Subscription{UserID: u.ID, PlanCode: "X", PlanType: types.PlanTypeMedio, Status: types.SubscriptionStatusActive})
	require.ErrorIs(t, err, store.ErrDuplicate)
}

func TestSQLite_UpdateWebhookLogAndFailedFilter(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	ok := &models.WebhookLog{Provider: "perfect_pay", SaleCode: "S1", Payload: datatypes.JSON(`{"code":"S1"}`)}
	bad := &models.WebhookLog{Provider: "perfect_pay", SaleCode: "S2", Payload: datatypes.JSON(`{"code":"S2"}`)}
	pending := &models.WebhookLog{Provider: "perfect_pay", SaleCode: "S3", Payload: datatypes.JSON(`{"code":"S3"}`)}
	for _, l := range []*models.WebhookLog{ok, bad, pending} {
		require.NoError(t, s.CreateWebhookLog(ctx, l))
	}

	ok.Processed = true
	require.NoError(t, s.UpdateWebhookLog(ctx, ok))
	bad.Error = lo.ToPtr("Plano não reconhecido: UNKNOWN")
	require.NoError(t, s.UpdateWebhookLog(ctx, bad))

	failed, err := s.ListWebhookLogs(ctx, store.WebhookLogFilter{FailedOnly: true})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.Equal(t, "S2", failed[0].SaleCode)
	require.False(t, failed[0].Processed)
	require.Equal(t, "Plano não reconhecido: UNKNOWN", *failed[0].Error)
	require.JSONEq(t, `{"code":"S2"}`, string(failed[0].Payload))

	processed, err := s.ListWebhookLogs(ctx, store.WebhookLogFilter{Processed: lo.ToPtr(true)})
	require.NoError(t, err)
	require.Len(t, processed, 1)
	require.Equal(t, "S1", processed[0].SaleCode)
	require.Nil(t, processed[0].Error)

	bySale, err := s.ListWebhookLogs(ctx, store.WebhookLogFilter{SaleCode: "S3"})
	require.NoError(t, err)
	require.Len(t, bySale, 1)
	require.False(t, bySale[0].Processed)
	require.Nil(t, bySale[0].Error)

	err = s.UpdateWebhookLog(ctx, &models.WebhookLog{ID: "missing"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_InTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	err := s.InTx(ctx, func(tx store.Store) error {
		require.NoError(t, tx.CreateUser(ctx, &models.User{Email: "tx@b.com", Name: "T", PasswordHash: "x"}))
		return tx.CreateUser(ctx, &models.User{Email: "tx@b.com", Name: "T", PasswordHash: "x"})
	})
	require.ErrorIs(t, err, store.ErrDuplicate)

	_, err = s.FindUserByEmail(ctx, "tx@b.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
