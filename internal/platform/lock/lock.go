// Package lock provides short-lived named locks used to serialize work on a
// single key across requests and, with redis, across instances.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lovelyapp/backend/pkg/config"
	"github.com/lovelyapp/backend/pkg/tool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrNotAcquired = errors.New("lock: not acquired")

// Unlock releases a held lock. It is safe to call more than once.
type Unlock func()

type Locker interface {
	// Acquire blocks until key is held, ctx is done or the wait times out.
	Acquire(ctx context.Context, key string) (Unlock, error)
}

const (
	retryInterval  = 50 * time.Millisecond
	defaultWait    = 10 * time.Second
	defaultLockTTL = 30 * time.Second
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	wait   time.Duration
	log    *zap.SugaredLogger
}

func NewRedisLocker(client redis.UniversalClient, ttl time.Duration, log *zap.SugaredLogger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{client: client, prefix: "lovelyapp:lock:", ttl: ttl, wait: defaultWait, log: log}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (Unlock, error) {
	token, err := tool.RandomHex(16)
	if err != nil {
		return nil, fmt.Errorf("lock: token: %w", err)
	}
	fullKey := l.prefix + key
	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("lock: setnx %s: %w", fullKey, err)
		}
		if ok {
			var once sync.Once
			return func() {
				once.Do(func() {
					// release with a fresh context: the caller's may already be done
					rctx, rcancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer rcancel()
					if err := releaseScript.Run(rctx, l.client, []string{fullKey}, token).Err(); err != nil {
						l.log.Warnw("lock_release_failed", "key", fullKey, "err", err)
					}
				})
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

// LocalLocker is an in-process Locker for single instance deployments.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: map[string]*localEntry{}}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &localEntry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e, false)
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
	}

	var once sync.Once
	return func() { once.Do(func() { l.release(key, e, true) }) }, nil
}

func (l *LocalLocker) release(key string, e *localEntry, held bool) {
	if held {
		<-e.ch
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// NewRedisClient builds a client from redis.url (redis://...) or redis.addr.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), nil
}

// New picks the redis locker when redis is configured and reachable at
// startup, and the in-process locker otherwise.
func New(lc fx.Lifecycle, cfg *config.Config, log *zap.SugaredLogger) (Locker, error) {
	if !cfg.Redis.Enabled() {
		log.Infow("redis not configured, using in-process locks")
		return NewLocalLocker(), nil
	}
	client, err := NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping: %w", err)
			}
			log.Infow("connected to redis", "addr", client.Options().Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewRedisLocker(client, cfg.Redis.LockTTL, log), nil
}

var Module = fx.Options(
	fx.Provide(New),
)
