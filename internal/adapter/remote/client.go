// Package remote implements the client for the remote data service: plain
// row-oriented CRUD over the orders, menu_items, and users collections.
// The service is the authoritative store; this client never caches.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/polkiloo/warungpos/internal/domain/errors"
	"github.com/polkiloo/warungpos/internal/wire"
)

// Client exposes the operations the synchronization engine needs.
type Client interface {
	FetchAll(ctx context.Context) (*wire.Bundle, error)
	Insert(ctx context.Context, collection string, row any) (string, error)
	Patch(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// HTTPClient implements Client against the bundled warungpos server (or
// anything speaking the same REST shape).
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates the HTTP client with a default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("remote url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// FetchAll performs the bulk read of all three collections.
func (c *HTTPClient) FetchAll(ctx context.Context) (*wire.Bundle, error) {
	var bundle wire.Bundle
	if err := c.get(ctx, wire.CollectionOrders, &bundle.Orders); err != nil {
		return nil, err
	}
	if err := c.get(ctx, wire.CollectionMenuItems, &bundle.MenuItems); err != nil {
		return nil, err
	}
	if err := c.get(ctx, wire.CollectionUsers, &bundle.Users); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// Insert creates a row and returns the id the server settled on, which may
// differ from a client-generated one.
func (c *HTTPClient) Insert(ctx context.Context, collection string, row any) (string, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return "", fmt.Errorf("encode %s row: %w", collection, err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.endpoint(collection), body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode %s insert response: %w", collection, err)
	}
	return created.ID, nil
}

// Patch updates a subset of snake_case fields on one row.
func (c *HTTPClient) Patch(ctx context.Context, collection, id string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", collection, err)
	}

	resp, err := c.do(ctx, http.MethodPatch, c.endpoint(collection, id), body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Delete removes one row by id.
func (c *HTTPClient) Delete(ctx context.Context, collection, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.endpoint(collection, id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *HTTPClient) get(ctx context.Context, collection string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint(collection), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (c *HTTPClient) endpoint(parts ...string) string {
	u := *c.baseURL
	u.Path = path.Join(append([]string{u.Path, "api"}, parts...)...)
	return u.String()
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domainErrors.ErrNotFound, resp.Status)
	default:
		body, _ := io.ReadAll(resp.Body)
		if len(body) > 0 {
			return fmt.Errorf("%w: %s: %s", domainErrors.ErrRemoteRejected, resp.Status, body)
		}
		return fmt.Errorf("%w: %s", domainErrors.ErrRemoteRejected, resp.Status)
	}
}
