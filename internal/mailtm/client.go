package mailtm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client is a thin HTTP client for the mail.tm REST API. It handles
// JSON (de)serialization and bearer authentication. It never retries:
// callers decide what a failure means.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a client for the API rooted at baseURL
// (e.g., https://api.mail.tm).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Domains lists the domains currently accepting new accounts.
func (c *Client) Domains(ctx context.Context) ([]Domain, error) {
	var page collection[Domain]
	if err := c.do(ctx, http.MethodGet, "/domains", "", nil, &page); err != nil {
		return nil, err
	}
	return page.Members, nil
}

// CreateAccount registers a new mailbox.
func (c *Client) CreateAccount(
	ctx context.Context,
	address, password string,
) (*Account, error) {
	var acct Account
	body := Credentials{Address: address, Password: password}
	if err := c.do(ctx, http.MethodPost, "/accounts", "", body, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Token exchanges credentials for a bearer token.
func (c *Client) Token(
	ctx context.Context,
	address, password string,
) (*Token, error) {
	var tok Token
	body := Credentials{Address: address, Password: password}
	if err := c.do(ctx, http.MethodPost, "/token", "", body, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Me returns the account the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*Account, error) {
	var acct Account
	if err := c.do(ctx, http.MethodGet, "/me", token, nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Messages returns the first page of messages in API order.
func (c *Client) Messages(ctx context.Context, token string) ([]Message, error) {
	var page collection[Message]
	if err := c.do(ctx, http.MethodGet, "/messages", token, nil, &page); err != nil {
		return nil, err
	}
	return page.Members, nil
}

// Message returns a single message with its bodies.
func (c *Client) Message(
	ctx context.Context,
	token, id string,
) (*MessageDetail, error) {
	var msg MessageDetail
	path := "/messages/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Source returns the raw RFC 5322 text of a message.
func (c *Client) Source(
	ctx context.Context,
	token, id string,
) (*Source, error) {
	var src Source
	path := "/sources/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &src); err != nil {
		return nil, err
	}
	return &src, nil
}

// do builds the request, applies auth, and decodes the JSON response.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	token string,
	body interface{},
	result interface{},
) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    errorMessage(respBody),
		}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}

// errorMessage picks the most descriptive field of an error body,
// falling back to the raw text.
func errorMessage(body []byte) string {
	var e errorResponse
	if json.Unmarshal(body, &e) == nil {
		for _, s := range []string{e.Description, e.Detail, e.Message, e.Title} {
			if s != "" {
				return s
			}
		}
	}
	return strings.TrimSpace(string(body))
}
