// Package handoff encodes and decodes the cross-origin login callback
// <dashboard>/?token=<jwt>&user=<url-encoded JSON snapshot>.
package handoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lovelyapp/backend/pkg/types"
)

var (
	// ErrNoCallback means the URL does not carry both token and user.
	ErrNoCallback         = errors.New("handoff: token and user params not present")
	ErrInvalidSnapshot    = errors.New("handoff: user param is not valid JSON")
	ErrIncompleteUserData = errors.New("handoff: user snapshot is missing id, email or name")
)

const (
	ParamToken = "token"
	ParamUser  = "user"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// encodeURIComponent leaves these unescaped where url.QueryEscape does not.
var uriComponentFix = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers' encodeURIComponent does.
func EncodeURIComponent(s string) string {
	return uriComponentFix.Replace(url.QueryEscape(s))
}

// BuildURL returns <base>/?token=...&user=... for the dashboard callback.
func BuildURL(base, token string, snap *types.UserSnapshot) (string, error) {
	if snap == nil {
		return "", errors.New("handoff: nil snapshot")
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("handoff: marshal snapshot: %w", err)
	}
	return strings.TrimRight(base, "/") + "/?" + ParamToken + "=" + EncodeURIComponent(token) +
		"&" + ParamUser + "=" + EncodeURIComponent(string(b)), nil
}

// Callback is a decoded landing URL.
type Callback struct {
	Token string
	User  *types.UserSnapshot
}

// HasCallbackParams reports whether raw carries both callback parameters.
func HasCallbackParams(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	q := u.Query()
	return q.Get(ParamToken) != "" && q.Get(ParamUser) != ""
}

// ParseURL extracts and validates the callback parameters of raw.
func ParseURL(raw string) (*Callback, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("handoff: parse url: %w", err)
	}
	q := u.Query()
	token, userParam := q.Get(ParamToken), q.Get(ParamUser)
	if token == "" || userParam == "" {
		return nil, ErrNoCallback
	}
	snap, err := DecodeSnapshot(userParam)
	if err != nil {
		return nil, err
	}
	return &Callback{Token: token, User: snap}, nil
}

// DecodeSnapshot parses a query-decoded user param. Values that were
// percent-encoded one extra time are accepted too.
func DecodeSnapshot(param string) (*types.UserSnapshot, error) {
	var snap types.UserSnapshot
	if err := json.Unmarshal([]byte(param), &snap); err != nil {
		unescaped, uerr := url.PathUnescape(param)
		if uerr != nil || unescaped == param {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		if err := json.Unmarshal([]byte(unescaped), &snap); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	if err := validate.Struct(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompleteUserData, err)
	}
	return &snap, nil
}

// StripQuery returns raw without its query string and fragment.
func StripQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
