package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lovelyapp/backend/pkg/types"
)

var (
	// ErrUnauthorized covers missing, invalid and expired tokens.
	ErrUnauthorized = errors.New("session: unauthorized")
	ErrNotFound     = errors.New("session: not found")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("session: backend answered %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

type Profile struct {
	PartnerName   string `json:"partnerName"`
	MoodToday     string `json:"moodToday"`
	DarinessLevel int    `json:"darinessLevel"`
}

type Subscription struct {
	PlanCode  string         `json:"planCode"`
	PlanType  types.PlanType `json:"planType"`
	Status    string         `json:"status"`
	Amount    float64        `json:"amount"`
	StartDate time.Time      `json:"startDate"`
}

type LoginResult struct {
	User        *types.UserSnapshot `json:"user"`
	Token       string              `json:"token"`
	RedirectURL string              `json:"redirectUrl"`
}

// APIClient talks to the backend JSON API.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string, hc *http.Client) *APIClient {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &APIClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// LoginURL is the backend's generic /auth entry point.
func (c *APIClient) LoginURL() string {
	return c.baseURL + "/auth"
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func do[T any](ctx context.Context, c *APIClient, method, path, token string, body any) (T, error) {
	var zero T
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return zero, err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("session: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return zero, &APIError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return zero, fmt.Errorf("session: decode %s: %w", path, decodeErr)
	}
	return env.Data, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	return do[*LoginResult](ctx, c, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": password})
}

// Validate re-derives the snapshot for token.
func (c *APIClient) Validate(ctx context.Context, token string) (*types.UserSnapshot, error) {
	data, err := do[struct {
		User *types.UserSnapshot `json:"user"`
	}](ctx, c, http.MethodGet, "/api/auth/validate", token, nil)
	if err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, errors.New("session: validate returned no user")
	}
	return data.User, nil
}

func (c *APIClient) Logout(ctx context.Context, token string) error {
	_, err := do[any](ctx, c, http.MethodPost, "/api/auth/logout", token, nil)
	return err
}

func (c *APIClient) Profile(ctx context.Context, token string) (*Profile, error) {
	return do[*Profile](ctx, c, http.MethodGet, "/api/profile", token, nil)
}

// Subscription returns nil without error when the user has none.
func (c *APIClient) Subscription(ctx context.Context, token string) (*Subscription, error) {
	sub, err := do[*Subscription](ctx, c, http.MethodGet, "/api/subscription", token, nil)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return sub, err
}
