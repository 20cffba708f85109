// Package gateway translates vendor workflow intents into calls against the
// procurement API. Every call carries the session's bearer token and is attempted
// exactly once.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"procurement/models"
)

// TokenSource supplies the bearer token. An empty token is sent as is.
type TokenSource interface {
	Token() (string, error)
}

// Query is the page/limit/search triple of the list endpoints.
type Query struct {
	Page   int
	Limit  int
	Search string
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("search", q.Search)
	return v
}

type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      *models.AppUser `json:"user"`
}

type Client struct {
	client  *http.Client
	baseURL string
	tokens  TokenSource
	timeout time.Duration
	logger  *slog.Logger
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		timeout: 30 * time.Second,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client.Timeout = c.timeout
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// ListVendors fetches one page of vendors.
func (c *Client) ListVendors(ctx context.Context, q Query) (*models.VendorPage, error) {
	var page models.VendorPage
	if err := c.call(ctx, "list vendors", http.MethodGet, "/vendors?"+q.values().Encode(), nil, &page); err != nil {
		return nil, err
	}
	if page.Vendors == nil {
		page.Vendors = []models.Vendor{}
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return &page, nil
}

func (c *Client) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	var resp struct {
		Data models.Vendor `json:"data"`
	}
	if err := c.call(ctx, "get vendor", http.MethodGet, "/vendors/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) UpdateVendor(ctx context.Context, id string, vendor models.Vendor) error {
	return c.call(ctx, "update vendor", http.MethodPut, "/vendors/"+url.PathEscape(id), vendor, nil)
}

// RegisterVendor creates the vendor together with its login.
func (c *Client) RegisterVendor(ctx context.Context, reg models.VendorRegistration) error {
	return c.call(ctx, "register vendor", http.MethodPost, "/auth/vendor-register", reg, nil)
}

func (c *Client) DeleteVendor(ctx context.Context, id string) error {
	return c.call(ctx, "delete vendor", http.MethodDelete, "/vendors/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	creds := map[string]string{"username": username, "password": password}
	var resp struct {
		Data LoginResult `json:"data"`
	}
	if err := c.call(ctx, "login", http.MethodPost, "/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Logout revokes the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, "logout", http.MethodPost, "/logout", nil, nil)
}

func (c *Client) ListItems(ctx context.Context, q Query) (*models.ItemPage, error) {
	var page models.ItemPage
	if err := c.call(ctx, "list items", http.MethodGet, "/items?"+q.values().Encode(), nil, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []models.Item{}
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return &page, nil
}

func (c *Client) call(ctx context.Context, op, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("HTTP request", "method", method, "path", path)
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("HTTP request failed", "op", op, "error", err)
		return &RequestError{Kind: KindNetwork, Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Kind: KindNetwork, Op: op, Status: resp.StatusCode, Err: err}
	}
	c.logger.Debug("HTTP response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &envelope)
		return &RequestError{
			Kind:    KindServer,
			Op:      op,
			Status:  resp.StatusCode,
			Message: envelope.Message,
		}
	}

	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return &RequestError{Kind: KindServer, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return nil
}
