// Package gormstore implements store.Store on GORM (postgres or mysql).
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/tool"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// New expects db to be opened with TranslateError enabled so unique
// violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// TranslateError maps GORM errors onto the store sentinels.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	default:
		return err
	}
}

func (s *Store) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = tool.GenerateUUIDV7()
	}
	return TranslateError(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return TranslateError(s.db.WithContext(ctx).Save(u).Error)
}

func (s *Store) ListUsers(ctx context.Context, limit int) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).Order("created_at desc").Limit(store.Limit(limit)).Find(&users).Error
	return users, TranslateError(err)
}

func (s *Store) FindProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		p.ID = tool.GenerateUUIDV7()
	}
	return TranslateError(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Store) SaveProfile(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		p.ID = tool.GenerateUUIDV7()
	}
	return TranslateError(s.db.WithContext(ctx).Save(p).Error)
}

func (s *Store) FindSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &sub, nil
}

func (s *Store) SaveSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = tool.GenerateUUIDV7()
	}
	return TranslateError(s.db.WithContext(ctx).Save(sub).Error)
}

func (s *Store) CreateSubscriptionLog(ctx context.Context, l *models.SubscriptionLog) error {
	if l.ID == "" {
		l.ID = tool.GenerateUUIDV7()
	}
	return TranslateError(s.db.WithContext(ctx).Create(l).Error)
}

func (s *Store) ListSubscriptionLogs(ctx context.Context, userID string) ([]*models.SubscriptionLog, error) {
	var logs []*models.SubscriptionLog
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&logs).Error
	return logs, TranslateError(err)
}

func (s *Store) CreateWebhookLog(ctx context.Context, l *models.WebhookLog) error {
	if l.ID == "" {
		l.ID = tool.GenerateUUIDV7()
	}
	return TranslateError(s.db.WithContext(ctx).Create(l).Error)
}

func (s *Store) UpdateWebhookLog(ctx context.Context, l *models.WebhookLog) error {
	res := s.db.WithContext(ctx).Model(&models.WebhookLog{}).Where("id = ?", l.ID).
		Select("processed", "error", "sale_code", "status", "event", "token", "updated_at").
		Updates(l)
	if res.Error != nil {
		return TranslateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListWebhookLogs(ctx context.Context, f store.WebhookLogFilter) ([]*models.WebhookLog, error) {
	q := s.db.WithContext(ctx).Model(&models.WebhookLog{})
	if f.Processed != nil {
		q = q.Where("processed = ?", *f.Processed)
	}
	if f.FailedOnly {
		q = q.Where("error IS NOT NULL")
	}
	if f.SaleCode != "" {
		q = q.Where("sale_code = ?", f.SaleCode)
	}
	var logs []*models.WebhookLog
	err := q.Order("created_at desc").Limit(store.Limit(f.Limit)).Find(&logs).Error
	return logs, TranslateError(err)
}
