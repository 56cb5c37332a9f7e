package identity

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

	"golang.org/x/time/rate"

	"staybook/internal/adapters/observability"
	"staybook/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrSessionExpired     = errors.New("identity: session expired")
	ErrEmailTaken         = errors.New("identity: email already registered")
)

// Client talks to the external identity provider. Credentials pass through;
// nothing is stored locally except the users profile document written on
// registration.
type Client struct {
	base  string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
	users domain.UserStore
}

func New(base, key string, rps int, users domain.UserStore) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("identity base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		hc:    &http.Client{Timeout: 15 * time.Second},
		key:   key,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
		users: users,
	}, nil
}

type sessionPayload struct {
	Token       string `json:"token"`
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func (p sessionPayload) session() domain.Session {
	return domain.Session{UID: p.UID, Email: p.Email, DisplayName: p.DisplayName}
}

// Register creates the account at the provider, then mirrors the profile
// into the users collection, matching what the original registration flow
// stored alongside the identity record.
func (c *Client) Register(ctx context.Context, email, password, displayName string) (domain.Session, string, error) {
	var out sessionPayload
	err := c.post(ctx, "/v1/accounts", map[string]string{
		"email":        email,
		"password":     password,
		"display_name": displayName,
	}, &out)
	if err != nil {
		return domain.Session{}, "", err
	}
	if c.users != nil {
		u := domain.User{UID: out.UID, Email: email, DisplayName: displayName}
		if uerr := c.users.Upsert(ctx, u); uerr != nil {
			// Account exists at the provider either way; profile writes are
			// retried lazily on next login.
			return out.session(), out.Token, fmt.Errorf("%w: upsert user: %w", domain.ErrPersistence, uerr)
		}
	}
	return out.session(), out.Token, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, string, error) {
	var out sessionPayload
	err := c.post(ctx, "/v1/sessions", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return domain.Session{}, "", err
	}
	if c.users != nil {
		u := domain.User{UID: out.UID, Email: out.Email, DisplayName: out.DisplayName}
		_ = c.users.Upsert(ctx, u)
	}
	return out.session(), out.Token, nil
}

// LoginWithProvider exchanges an external provider grant (e.g. a Google ID
// token) for a session. First-time provider logins get a users document; the
// upsert keeps the original created_at on repeat logins.
func (c *Client) LoginWithProvider(ctx context.Context, provider, idToken string) (domain.Session, string, error) {
	var out sessionPayload
	err := c.post(ctx, "/v1/sessions/provider", map[string]string{
		"provider": provider,
		"id_token": idToken,
	}, &out)
	if err != nil {
		return domain.Session{}, "", err
	}
	if c.users != nil {
		u := domain.User{UID: out.UID, Email: out.Email, DisplayName: out.DisplayName}
		_ = c.users.Upsert(ctx, u)
	}
	return out.session(), out.Token, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/v1/sessions/current", token, nil, nil)
}

// Verify resolves a bearer token to its session. Expired or unknown tokens
// map to ErrSessionExpired.
func (c *Client) Verify(ctx context.Context, token string) (domain.Session, error) {
	var out sessionPayload
	if err := c.do(ctx, http.MethodGet, "/v1/sessions/current", token, nil, &out); err != nil {
		return domain.Session{}, err
	}
	return out.session(), nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, "", body, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveIdentity(path, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveIdentity(path, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return ErrSessionExpired
	case http.StatusForbidden, http.StatusBadRequest:
		return ErrInvalidCredentials
	case http.StatusConflict:
		return ErrEmailTaken
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("identity: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
