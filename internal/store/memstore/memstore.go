// Package memstore is an in-process store.Store used by tests, the CLI and
// the "memory" database driver.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lovelyapp/backend/internal/models"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/tool"
	"github.com/samber/lo"
)

type dataset struct {
	users            map[string]models.User
	usersByEmail     map[string]string
	profiles         map[string]models.Profile      // by user id
	subscriptions    map[string]models.Subscription // by user id
	subscriptionLogs []models.SubscriptionLog
	webhookLogs      []models.WebhookLog
}

func newDataset() *dataset {
	return &dataset{
		users:         map[string]models.User{},
		usersByEmail:  map[string]string{},
		profiles:      map[string]models.Profile{},
		subscriptions: map[string]models.Subscription{},
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		users:            lo.Assign(d.users),
		usersByEmail:     lo.Assign(d.usersByEmail),
		profiles:         lo.Assign(d.profiles),
		subscriptions:    lo.Assign(d.subscriptions),
		subscriptionLogs: append([]models.SubscriptionLog(nil), d.subscriptionLogs...),
		webhookLogs:      append([]models.WebhookLog(nil), d.webhookLogs...),
	}
}

type Store struct {
	mu   *sync.Mutex
	root **dataset
	data *dataset
	tx   bool
	now  func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	data := newDataset()
	return &Store{mu: &sync.Mutex{}, root: &data, data: data, now: time.Now}
}

// WithClock replaces the timestamp source. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// lock serializes access outside of transactions. A transaction already
// holds the lock for its whole duration.
func (s *Store) lock() func() {
	if s.tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) current() *dataset {
	if s.tx {
		return s.data
	}
	return *s.root
}

func (s *Store) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := (*s.root).clone()
	tx := &Store{mu: s.mu, root: s.root, data: staged, tx: true, now: s.now}
	if err := fn(tx); err != nil {
		return err
	}
	*s.root = staged
	return nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.User, error) {
	defer s.lock()()
	u, ok := s.current().users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	defer s.lock()()
	d := s.current()
	id, ok := d.usersByEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := d.users[id]
	return &u, nil
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	defer s.lock()()
	d := s.current()
	if u.ID == "" {
		u.ID = tool.GenerateUUIDV7()
	}
	if _, ok := d.users[u.ID]; ok {
		return store.ErrDuplicate
	}
	if _, ok := d.usersByEmail[u.Email]; ok {
		return store.ErrDuplicate
	}
	now := s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	d.users[u.ID] = *u
	d.usersByEmail[u.Email] = u.ID
	return nil
}

func (s *Store) SaveUser(_ context.Context, u *models.User) error {
	defer s.lock()()
	d := s.current()
	prev, exists := d.users[u.ID]
	if owner, ok := d.usersByEmail[u.Email]; ok && owner != u.ID {
		return store.ErrDuplicate
	}
	if exists {
		delete(d.usersByEmail, prev.Email)
		u.CreatedAt = prev.CreatedAt
	} else {
		u.CreatedAt = s.now()
	}
	u.UpdatedAt = s.now()
	d.users[u.ID] = *u
	d.usersByEmail[u.Email] = u.ID
	return nil
}

func (s *Store) ListUsers(_ context.Context, limit int) ([]*models.User, error) {
	defer s.lock()()
	users := lo.MapToSlice(s.current().users, func(_ string, u models.User) *models.User { return &u })
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return lo.Slice(users, 0, store.Limit(limit)), nil
}

func (s *Store) FindProfile(_ context.Context, userID string) (*models.Profile, error) {
	defer s.lock()()
	p, ok := s.current().profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProfile(_ context.Context, p *models.Profile) error {
	defer s.lock()()
	d := s.current()
	if _, ok := d.profiles[p.UserID]; ok {
		return store.ErrDuplicate
	}
	if p.ID == "" {
		p.ID = tool.GenerateUUIDV7()
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	d.profiles[p.UserID] = *p
	return nil
}

func (s *Store) SaveProfile(_ context.Context, p *models.Profile) error {
	defer s.lock()()
	d := s.current()
	if p.ID == "" {
		p.ID = tool.GenerateUUIDV7()
	}
	if prev, ok := d.profiles[p.UserID]; ok {
		if prev.ID != p.ID {
			return store.ErrDuplicate
		}
		p.CreatedAt = prev.CreatedAt
	} else {
		p.CreatedAt = s.now()
	}
	p.UpdatedAt = s.now()
	d.profiles[p.UserID] = *p
	return nil
}

func (s *Store) FindSubscription(_ context.Context, userID string) (*models.Subscription, error) {
	defer s.lock()()
	sub, ok := s.current().subscriptions[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sub, nil
}

func (s *Store) SaveSubscription(_ context.Context, sub *models.Subscription) error {
	defer s.lock()()
	d := s.current()
	if sub.ID == "" {
		sub.ID = tool.GenerateUUIDV7()
	}
	if prev, ok := d.subscriptions[sub.UserID]; ok {
		if prev.ID != sub.ID {
			return store.ErrDuplicate
		}
		sub.CreatedAt = prev.CreatedAt
	} else {
		sub.CreatedAt = s.now()
	}
	sub.UpdatedAt = s.now()
	d.subscriptions[sub.UserID] = *sub
	return nil
}

func (s *Store) CreateSubscriptionLog(_ context.Context, l *models.SubscriptionLog) error {
	defer s.lock()()
	d := s.current()
	if l.ID == "" {
		l.ID = tool.GenerateUUIDV7()
	}
	l.CreatedAt = s.now()
	d.subscriptionLogs = append(d.subscriptionLogs, *l)
	return nil
}

func (s *Store) ListSubscriptionLogs(_ context.Context, userID string) ([]*models.SubscriptionLog, error) {
	defer s.lock()()
	var out []*models.SubscriptionLog
	logs := s.current().subscriptionLogs
	for i := len(logs) - 1; i >= 0; i-- {
		if logs[i].UserID == userID {
			l := logs[i]
			out = append(out, &l)
		}
	}
	return out, nil
}

func (s *Store) CreateWebhookLog(_ context.Context, l *models.WebhookLog) error {
	defer s.lock()()
	d := s.current()
	if l.ID == "" {
		l.ID = tool.GenerateUUIDV7()
	}
	now := s.now()
	l.CreatedAt, l.UpdatedAt = now, now
	d.webhookLogs = append(d.webhookLogs, *l)
	return nil
}

func (s *Store) UpdateWebhookLog(_ context.Context, l *models.WebhookLog) error {
	defer s.lock()()
	d := s.current()
	_, idx, ok := lo.FindIndexOf(d.webhookLogs, func(w models.WebhookLog) bool { return w.ID == l.ID })
	if !ok {
		return store.ErrNotFound
	}
	row := d.webhookLogs[idx]
	row.Processed = l.Processed
	row.Error = l.Error
	row.SaleCode = l.SaleCode
	row.Status = l.Status
	row.Event = l.Event
	row.Token = l.Token
	row.UpdatedAt = s.now()
	d.webhookLogs[idx] = row
	l.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) ListWebhookLogs(_ context.Context, f store.WebhookLogFilter) ([]*models.WebhookLog, error) {
	defer s.lock()()
	limit := store.Limit(f.Limit)
	var out []*models.WebhookLog
	logs := s.current().webhookLogs
	for i := len(logs) - 1; i >= 0 && len(out) < limit; i-- {
		l := logs[i]
		if f.Processed != nil && l.Processed != *f.Processed {
			continue
		}
		if f.FailedOnly && l.Error == nil {
			continue
		}
		if f.SaleCode != "" && l.SaleCode != f.SaleCode {
			continue
		}
		out = append(out, &l)
	}
	return out, nil
}
