// Package syncclient provides a client for the timetrack sync service.
//
// Example usage:
//
//	client := syncclient.New("http://tracker.example.com:8080", "secret")
//	data, err := client.Pull(ctx)
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthorized is returned when the peer rejects the configured
// password.
var ErrUnauthorized = errors.New("sync peer rejected the password")

const defaultTimeout = 30 * time.Second

// Client talks to a remote sync service.
type Client struct {
	baseURL    string
	password   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout replaces the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Client for the sync service at baseURL. The URL should
// include the scheme (e.g., "http://tracker.example.com:8080").
func New(baseURL, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		password:   password,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pull fetches the peer's ledger text from the unauthenticated root
// endpoint. An empty string means the peer has no ledger yet.
func (c *Client) Pull(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}

// Push replaces the peer's entire ledger with data.
func (c *Client) Push(ctx context.Context, data string) error {
	payload := struct {
		Password string `json:"password"`
		Data     string `json:"data"`
	}{
		Password: c.password,
		Data:     data,
	}
	_, err := c.post(ctx, "/sync", payload)
	return err
}

// Retrieve fetches the peer's ledger text via the authenticated
// endpoint.
func (c *Client) Retrieve(ctx context.Context) (string, error) {
	payload := struct {
		Password string `json:"password"`
	}{
		Password: c.password,
	}
	return c.post(ctx, "/retrieve", payload)
}

func (c *Client) post(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return string(respBody), nil
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	default:
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}
}
