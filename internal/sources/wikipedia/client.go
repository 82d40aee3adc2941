// Package wikipedia retrieves era-list markup from a MediaWiki site through
// the Action API's parse module, or from a local copy of the rendered page.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agentstation/eramap/pkg/constants"
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/logging"
)

// SourceName identifies this source in errors and logs.
const SourceName = "wikipedia"

// maxResponseBytes bounds the size of a parse response.
const maxResponseBytes = 32 << 20

// Client fetches the rendered HTML of one page.
type Client struct {
	APIURL  string
	Page    string
	Variant string
	Client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIURL sets the api.php endpoint.
func WithAPIURL(u string) Option {
	return func(c *Client) {
		c.APIURL = u
	}
}

// WithPage sets the page title.
func WithPage(page string) Option {
	return func(c *Client) {
		c.Page = page
	}
}

// WithVariant sets the language variant the page is rendered in.
func WithVariant(variant string) Option {
	return func(c *Client) {
		c.Variant = variant
	}
}

// WithTimeout bounds the whole request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.Client = &http.Client{Timeout: d}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.Client = hc
	}
}

// NewClient creates a client for the default page.
func NewClient(opts ...Option) *Client {
	c := &Client{
		APIURL:  constants.DefaultAPIURL,
		Page:    constants.DefaultPage,
		Variant: constants.DefaultVariant,
		Client:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the source name.
func (c *Client) Name() string {
	return SourceName
}

// Endpoint returns the request URL.
func (c *Client) Endpoint() string {
	q := url.Values{}
	q.Set("action", "parse")
	q.Set("page", c.Page)
	q.Set("prop", "text")
	q.Set("format", "json")
	q.Set("formatversion", "2")
	if c.Variant != "" {
		q.Set("variant", c.Variant)
	}
	return c.APIURL + "?" + q.Encode()
}

type parseResponse struct {
	Parse *struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// Fetch returns the page's rendered HTML. Every failure is an
// *errors.APIError.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	endpoint := c.Endpoint()
	logger := logging.FromContext(ctx)
	logger.Info().
		Str("page", c.Page).
		Str("variant", c.Variant).
		Msg("Fetching page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", c.apiError(0, "failed to create request", err)
	}
	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", c.apiError(0, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", c.apiError(resp.StatusCode, resp.Status, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", c.apiError(resp.StatusCode, "failed to read response", err)
	}

	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", c.apiError(resp.StatusCode, "malformed response", err)
	}
	if parsed.Error != nil {
		return "", c.apiError(resp.StatusCode, fmt.Sprintf("%s: %s", parsed.Error.Code, parsed.Error.Info), nil)
	}
	if parsed.Parse == nil || parsed.Parse.Text == "" {
		return "", c.apiError(resp.StatusCode, "response has no page text", nil)
	}

	logger.Debug().
		Int("bytes", len(parsed.Parse.Text)).
		Msg("Fetched page")
	return parsed.Parse.Text, nil
}

func (c *Client) apiError(status int, message string, err error) error {
	return &errors.APIError{
		Source:     SourceName,
		StatusCode: status,
		Message:    message,
		Endpoint:   c.APIURL,
		Err:        err,
	}
}
