// Package statistics derives the dashboard usage numbers and activity feed.
// The figures are synthetic: they are computed from account age and profile
// daring level with a random spread, since no usage events are recorded yet.
package statistics

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/logctx"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	msgUserNotFound = "Usuário não encontrado"
	maxActivities   = 5
	day             = 24 * time.Hour
)

type Stats struct {
	GamesPlayed     int       `json:"gamesPlayed"`
	FavoriteGames   int       `json:"favoriteGames"`
	TotalPlayTime   int       `json:"totalPlayTime"`
	CurrentLevel    int       `json:"currentLevel"`
	Achievements    int       `json:"achievements"`
	WeeklyPlayTime  int       `json:"weeklyPlayTime"`
	MonthlyGames    int       `json:"monthlyGames"`
	ConsecutiveDays int       `json:"consecutiveDays"`
	LastActivity    time.Time `json:"lastActivity"`
}

type ActivityType string

const (
	ActivityLogin       ActivityType = "login"
	ActivityGame        ActivityType = "game"
	ActivityAchievement ActivityType = "achievement"
	ActivityLevel       ActivityType = "level"
	ActivityStreak      ActivityType = "streak"
)

type Activity struct {
	ID        string       `json:"id"`
	Action    string       `json:"action"`
	Time      string       `json:"time"`
	Type      ActivityType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Random is the spread source; IntN returns a value in [0, n).
type Random interface {
	IntN(n int) int
}

type Service struct {
	store store.Store
	log   *zap.SugaredLogger
	now   func() time.Time

	mu  sync.Mutex
	rnd Random
}

func NewService(st store.Store, log *zap.SugaredLogger) *Service {
	return &Service{
		store: st,
		log:   log,
		now:   time.Now,
		rnd:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6c6f76656c79)),
	}
}

// WithRandom replaces the spread source and clock. Intended for tests.
func (s *Service) WithRandom(r Random, now func() time.Time) *Service {
	s.rnd = r
	s.now = now
	return s
}

func (s *Service) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

type userFacts struct {
	accountAgeDays int
	darinessLevel  int
}

func (s *Service) facts(ctx context.Context, userID string) (*userFacts, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	level := 1
	profile, err := s.store.FindProfile(ctx, userID)
	switch {
	case err == nil && profile.DarinessLevel > 0:
		level = profile.DarinessLevel
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &userFacts{accountAgeDays: accountAge(user, s.now()), darinessLevel: level}, nil
}

func accountAge(u *models.User, now time.Time) int {
	if u.CreatedAt.IsZero() || now.Before(u.CreatedAt) {
		return 0
	}
	return int(now.Sub(u.CreatedAt) / day)
}

// UserStats computes the usage figures for the dashboard home.
func (s *Service) UserStats(ctx context.Context, userID string) (*Stats, error) {
	f, err := s.facts(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	base := max(1, f.accountAgeDays/2+f.darinessLevel)
	stats := &Stats{
		GamesPlayed:     base + s.intN(5),
		FavoriteGames:   max(1, base*6/10+s.intN(3)),
		TotalPlayTime:   base*25 + s.intN(200),
		CurrentLevel:    min(10, f.darinessLevel+f.accountAgeDays/7),
		Achievements:    max(1, base*8/10+s.intN(8)),
		WeeklyPlayTime:  s.intN(180) + 30,
		MonthlyGames:    max(1, base*3/10+s.intN(4)),
		ConsecutiveDays: min(f.accountAgeDays, s.intN(14)+1),
		LastActivity:    now.Add(-time.Duration(s.intN(int(day/time.Millisecond))) * time.Millisecond),
	}
	logctx.FromCtx(ctx, s.log).Debugw("user_stats", "user_id", userID, "games_played", stats.GamesPlayed)
	return stats, nil
}

// Activities returns at most five recent activities, newest first.
func (s *Service) Activities(ctx context.Context, userID string) ([]*Activity, error) {
	f, err := s.facts(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	seq := 0
	add := func(typ ActivityType, action string, withinHours int) *Activity {
		seq++
		a := &Activity{
			ID:     fmt.Sprintf("activity_%d_%d", now.UnixMilli(), seq),
			Action: action,
			Type:   typ,
		}
		if withinHours == 0 {
			a.Time = "Agora mesmo"
			a.CreatedAt = now
			return a
		}
		a.Time = fmt.Sprintf("%dh atrás", s.intN(withinHours)+1)
		a.CreatedAt = now.Add(-time.Duration(s.intN(withinHours*int(time.Hour/time.Millisecond))) * time.Millisecond)
		return a
	}

	activities := []*Activity{add(ActivityLogin, "Fez login no aplicativo", 0)}
	if f.darinessLevel >= 3 {
		activities = append(activities, add(ActivityGame, "Completou um jogo romântico", 6))
	}
	if f.darinessLevel >= 5 {
		activities = append(activities, add(ActivityAchievement, "Desbloqueou uma nova conquista", 24))
	}
	if f.darinessLevel >= 7 {
		activities = append(activities, add(ActivityLevel, "Alcançou um novo nível", 48))
	}
	if f.accountAgeDays >= 3 {
		action := fmt.Sprintf("Manteve sequência de %d dias", min(f.accountAgeDays, 7))
		activities = append(activities, add(ActivityStreak, action, 12))
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	return lo.Subset(activities, 0, maxActivities), nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
