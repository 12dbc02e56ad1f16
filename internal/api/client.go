// Package api is the client for the Dinar Bank REST API. All operations it
// exposes are plain request/response calls; the pipeline logic that consumes
// them lives in internal/statement.
package api

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

	"github.com/shopspring/decimal"

	"github.com/dinar-dev/dinar/internal/cache"
	"github.com/dinar-dev/dinar/internal/log"
	"github.com/dinar-dev/dinar/internal/model"
)

const (
	defaultTimeout = 30 * time.Second

	userCacheSize = 256
	userCacheTTL  = 5 * time.Minute
)

// Client talks to the bank API. The zero value is not usable; construct with
// New. Safe for concurrent use once the token is set.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *log.Logger
	users   *cache.TTL[model.User]
}

// New creates a client for the API at baseURL.
func New(baseURL string, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  logger.WithComponent(log.ComponentAPI),
		users:   cache.NewTTL[model.User](userCacheSize, userCacheTTL),
	}
}

// SetToken sets the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetTimeout overrides the default per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpc.Timeout = d
}

// Login exchanges credentials for a bearer token and installs it on the
// client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return "", errors.New("login: empty token in response")
	}
	c.token = resp.Token
	return resp.Token, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u, false); err != nil {
		return model.User{}, fmt.Errorf("fetching current user: %w", err)
	}
	return u, nil
}

// Balance returns the authenticated user's balance in KWD.
func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	var resp struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, "/account/balance", nil, &resp, false); err != nil {
		return decimal.Decimal{}, fmt.Errorf("fetching balance: %w", err)
	}
	return resp.Balance, nil
}

// Transactions lists the authenticated user's transactions. Transient
// failures get one automatic retry.
func (c *Client) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &txns, true); err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	return txns, nil
}

// Users lists all known users. Transient failures get one automatic retry.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users, true); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

// UserByID fetches one user by ID. This path never retries: the resolver
// treats any failure as "user unknown" and moves on, so a second attempt only
// adds latency. Results are cached briefly.
func (c *Client) UserByID(ctx context.Context, id string) (model.User, error) {
	if u, ok := c.users.Get(id); ok {
		return u, nil
	}
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, &u, false); err != nil {
		return model.User{}, fmt.Errorf("fetching user %s: %w", id, err)
	}
	c.users.Set(id, u)
	return u, nil
}

// Transfer sends amount KWD to another user (by username or ID).
func (c *Client) Transfer(ctx context.Context, to string, amount decimal.Decimal) error {
	body := map[string]any{"to": to, "amount": amount}
	if err := c.do(ctx, http.MethodPost, "/transactions/transfer", body, nil, false); err != nil {
		return fmt.Errorf("transfer to %s: %w", to, err)
	}
	return nil
}

// Deposit adds amount KWD to the authenticated user's balance.
func (c *Client) Deposit(ctx context.Context, amount decimal.Decimal) error {
	body := map[string]any{"amount": amount}
	if err := c.do(ctx, http.MethodPost, "/transactions/deposit", body, nil, false); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	return nil
}

// Withdraw removes amount KWD from the authenticated user's balance.
func (c *Client) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	body := map[string]any{"amount": amount}
	if err := c.do(ctx, http.MethodPost, "/transactions/withdraw", body, nil, false); err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	return nil
}

// do performs one API call, decoding a JSON response into out when out is
// non-nil. With retry set, a transport error or 5xx gets exactly one more
// attempt.
func (c *Client) do(ctx context.Context, method, path string, body, out any, retry bool) error {
	err := c.once(ctx, method, path, body, out)
	if err == nil || !retry {
		return err
	}
	if !errors.Is(err, ErrServer) && !isTransport(err) {
		return err
	}
	c.logger.Warn("retrying request",
		log.FieldEndpoint, path, log.FieldAttempt, 2, log.FieldError, err)
	return c.once(ctx, method, path, body, out)
}

func (c *Client) once(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return statusError(resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// transportError marks a failure before any HTTP status was received.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return "sending request: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isTransport(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}
