// Package store is the data-access boundary. Services depend on Store and
// never on a concrete database.
package store

import (
	"context"
	"errors"

	"github.com/lovelyapp/backend/internal/models"
)

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type UserStore interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// FindUserByEmail expects an already normalized (lowercased) email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	SaveUser(ctx context.Context, u *models.User) error
	ListUsers(ctx context.Context, limit int) ([]*models.User, error)
}

type ProfileStore interface {
	FindProfile(ctx context.Context, userID string) (*models.Profile, error)
	CreateProfile(ctx context.Context, p *models.Profile) error
	SaveProfile(ctx context.Context, p *models.Profile) error
}

type SubscriptionStore interface {
	FindSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	// SaveSubscription inserts or fully replaces the row with s.ID.
	SaveSubscription(ctx context.Context, s *models.Subscription) error
	CreateSubscriptionLog(ctx context.Context, l *models.SubscriptionLog) error
	ListSubscriptionLogs(ctx context.Context, userID string) ([]*models.SubscriptionLog, error)
}

type WebhookLogFilter struct {
	Processed *bool
	// FailedOnly keeps rows with a recorded error.
	FailedOnly bool
	SaleCode   string
	Limit      int
}

type WebhookLogStore interface {
	CreateWebhookLog(ctx context.Context, l *models.WebhookLog) error
	UpdateWebhookLog(ctx context.Context, l *models.WebhookLog) error
	ListWebhookLogs(ctx context.Context, f WebhookLogFilter) ([]*models.WebhookLog, error)
}

type Store interface {
	UserStore
	ProfileStore
	SubscriptionStore
	WebhookLogStore

	// InTx runs fn atomically. fn must only use the Store it receives.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

const DefaultListLimit = 100

// Limit clamps a caller supplied page size.
func Limit(n int) int {
	if n <= 0 || n > 1000 {
		return DefaultListLimit
	}
	return n
}
