package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store/memstore"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// zeroRandom always returns 0 so the figures are deterministic.
type zeroRandom struct{}

func (zeroRandom) IntN(int) int { return 0 }

func setup(t *testing.T, age time.Duration, level int) (*Service, string, time.Time) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	st := memstore.New().WithClock(func() time.Time { return now.Add(-age) })

	u := &models.User{Email: "ana@example.com", Name: "Ana"}
	require.NoError(t, st.CreateUser(ctx, u))
	if level > 0 {
		require.NoError(t, st.CreateProfile(ctx, &models.Profile{UserID: u.ID, DarinessLevel: level}))
	}
	svc := NewService(st, zap.NewNop().Sugar()).WithRandom(zeroRandom{}, func() time.Time { return now })
	return svc, u.ID, now
}

func TestUserStats_Deterministic(t *testing.T) {
	svc, userID, now := setup(t, 10*day, 5)

	stats, err := svc.UserStats(context.Background(), userID)
	require.NoError(t, err)
	// base = 10/2 + 5
	require.Equal(t, 10, stats.GamesPlayed)
	require.Equal(t, 6, stats.FavoriteGames)
	require.Equal(t, 250, stats.TotalPlayTime)
	require.Equal(t, 6, stats.CurrentLevel)
	require.Equal(t, 8, stats.Achievements)
	require.Equal(t, 30, stats.WeeklyPlayTime)
	require.Equal(t, 3, stats.MonthlyGames)
	require.Equal(t, 1, stats.ConsecutiveDays)
	require.Equal(t, now, stats.LastActivity)
}

func TestUserStats_NoProfileUsesLevelOne(t *testing.T) {
	svc, userID, _ := setup(t, 0, 0)

	stats, err := svc.UserStats(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 1, stats.GamesPlayed)
	require.Equal(t, 1, stats.CurrentLevel)
	require.Equal(t, 0, stats.ConsecutiveDays)
}

func TestActivities_ByLevelAndAge(t *testing.T) {
	svc, userID, _ := setup(t, 10*day, 7)

	acts, err := svc.Activities(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, acts, 5)
	require.Equal(t, ActivityLogin, acts[0].Type)
	require.Equal(t, "Agora mesmo", acts[0].Time)
	for i := 1; i < len(acts); i++ {
		require.False(t, acts[i].CreatedAt.After(acts[i-1].CreatedAt))
	}
	types := map[ActivityType]bool{}
	for _, a := range acts {
		types[a.Type] = true
	}
	require.True(t, types[ActivityStreak])
	require.True(t, types[ActivityLevel])
}

func TestActivities_NewLowLevelUser(t *testing.T) {
	svc, userID, _ := setup(t, time.Hour, 2)

	acts, err := svc.Activities(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	require.Equal(t, ActivityLogin, acts[0].Type)
}

func TestUnknownUser(t *testing.T) {
	svc, _, _ := setup(t, 0, 0)
	_, err := svc.UserStats(context.Background(), "ghost")
	require.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.Activities(context.Background(), "ghost")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
