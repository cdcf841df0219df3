// Package session is the dashboard side of the login handoff: it turns a
// landing URL or a stored token into an authenticated session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lovelyapp/backend/pkg/handoff"
	"github.com/lovelyapp/backend/pkg/types"
)

type State int

const (
	StateUnknown State = iota
	StateProcessing
	StateValidating
	StateAuthenticated
	StateUnauthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateProcessing:
		return "processing"
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is an authenticated client session.
type Session struct {
	Token        string
	User         *types.UserSnapshot
	Profile      *Profile
	Subscription *Subscription
}

// HasAccess reports whether the session's plan covers required. An empty
// requirement only needs an active subscription.
func (s *Session) HasAccess(required types.PlanType) bool {
	if s == nil || s.User == nil {
		return false
	}
	return s.User.HasAccess(required)
}

// Validator re-derives a snapshot from a stored token.
type Validator interface {
	Validate(ctx context.Context, token string) (*types.UserSnapshot, error)
}

type Bootstrapper struct {
	storage  Storage
	location Location
	api      Validator
	loginURL string

	once    Once
	mu      sync.Mutex
	state   State
	session *Session
}

// NewBootstrapper redirects failures to loginURL, the backend's /auth entry point.
func NewBootstrapper(storage Storage, location Location, api Validator, loginURL string) *Bootstrapper {
	return &Bootstrapper{storage: storage, location: location, api: api, loginURL: loginURL}
}

func (b *Bootstrapper) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Session is nil unless State is StateAuthenticated.
func (b *Bootstrapper) Session() *Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

func (b *Bootstrapper) LoginURL() string {
	return b.loginURL
}

func (b *Bootstrapper) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

func (b *Bootstrapper) authenticate(sess *Session) {
	b.mu.Lock()
	b.state = StateAuthenticated
	b.session = sess
	b.mu.Unlock()
}

// Run bootstraps the session once per Bootstrapper; repeated calls return
// the first run's outcome.
func (b *Bootstrapper) Run(ctx context.Context) (State, error) {
	err := b.once.Do(func() error {
		href := b.location.Href()
		if handoff.HasCallbackParams(href) {
			return b.processCallback(href)
		}
		return b.restore(ctx)
	})
	return b.State(), err
}

// processCallback consumes ?token=&user= from href. Local state is wiped
// first so a failure never leaves a partial session behind.
func (b *Bootstrapper) processCallback(href string) error {
	b.setState(StateProcessing)
	b.storage.Clear()

	cb, err := handoff.ParseURL(href)
	if err != nil {
		return b.fail(err)
	}
	b.storage.Set(TokenKey, cb.Token)
	b.authenticate(&Session{Token: cb.Token, User: cb.User})
	b.location.Replace(handoff.StripQuery(href))
	return nil
}

func (b *Bootstrapper) restore(ctx context.Context) error {
	token, ok := b.storage.Get(TokenKey)
	if !ok || token == "" {
		b.setState(StateUnauthenticated)
		return nil
	}
	b.setState(StateValidating)
	user, err := b.api.Validate(ctx, token)
	if err != nil {
		return b.fail(fmt.Errorf("validate stored token: %w", err))
	}
	b.authenticate(&Session{Token: token, User: user})
	return nil
}

func (b *Bootstrapper) fail(err error) error {
	b.storage.Clear()
	b.setState(StateFailed)
	b.location.Assign(b.loginURL)
	return err
}

// Refresher loads the data shown next to the snapshot.
type Refresher interface {
	Profile(ctx context.Context, token string) (*Profile, error)
	Subscription(ctx context.Context, token string) (*Subscription, error)
}

// Refresh fills Profile and Subscription of an authenticated session.
func (b *Bootstrapper) Refresh(ctx context.Context, api Refresher) error {
	sess := b.Session()
	if sess == nil {
		return errors.New("session: not authenticated")
	}
	profile, err := api.Profile(ctx, sess.Token)
	if err != nil {
		return err
	}
	sub, err := api.Subscription(ctx, sess.Token)
	if err != nil {
		return err
	}
	refreshed := *sess
	refreshed.Profile = profile
	refreshed.Subscription = sub
	b.authenticate(&refreshed)
	return nil
}
