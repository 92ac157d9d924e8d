// Package client talks to the adminmarks admin API on behalf of one user.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/utils"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx answer carrying the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("adminmarks: HTTP %d", e.Status)
	}
	return fmt.Sprintf("adminmarks: HTTP %d %s: %s", e.Status, e.Code, e.Message)
}

// Options configures a Client.
type Options struct {
	// BaseURL is the server root (ex: "http://localhost:8080").
	BaseURL string

	// AdminBase is the admin mount point. Defaults to "/admin".
	AdminBase string

	// UserHeader names the identity header. Defaults to "X-Remote-User".
	UserHeader string

	// User is the actor id sent in UserHeader.
	User string

	// Language is sent as Accept-Language.
	Language string

	HTTPClient *http.Client
}

// Client is an admin API client.
type Client struct {
	opts Options
	base *url.URL
	http *http.Client
}

// New validates opts and returns a client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", opts.BaseURL)
	}
	if opts.User == "" {
		return nil, fmt.Errorf("user is required")
	}
	if opts.AdminBase == "" {
		opts.AdminBase = "/admin"
	}
	opts.AdminBase = domain.NewRoutes(opts.AdminBase).Base
	if opts.UserHeader == "" {
		opts.UserHeader = "X-Remote-User"
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{opts: opts, base: base, http: hc}, nil
}

// Bootstrap fetches the client configuration. screen is the active
// navigation handle, current the open item id (0 for none).
func (c *Client) Bootstrap(ctx context.Context, screen string, current int64) (*domain.ClientConfig, error) {
	q := url.Values{}
	if screen != "" {
		q.Set("screen", screen)
	}
	if current != 0 {
		q.Set("current", strconv.FormatInt(current, 10))
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/bootstrap", q, nil)
	if err != nil {
		return nil, err
	}

	var cfg domain.ClientConfig
	if err := c.do(req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Toggle flips the bookmark on itemID.
func (c *Client) Toggle(ctx context.Context, nonce string, itemID int64) (domain.ToggleResult, error) {
	form := url.Values{
		"action":  {domain.ToggleAction},
		"post_id": {strconv.FormatInt(itemID, 10)},
		"nonce":   {nonce},
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/ajax", nil, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.ToggleResult{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res domain.ToggleResult
	if err := c.do(req, &res); err != nil {
		return domain.ToggleResult{}, err
	}
	return res, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Request, error) {
	u := *c.base
	u.Path = c.base.Path + c.opts.AdminBase + path
	if q != nil {
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(c.opts.UserHeader, c.opts.User)
	if c.opts.Language != "" {
		req.Header.Set("Accept-Language", c.opts.Language)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&env) == nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
