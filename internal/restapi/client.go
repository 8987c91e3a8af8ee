// Package restapi is the raw REST access path to the Fathom API. It decodes
// whatever JSON the API returns without imposing a schema, which makes it the
// fallback when the typed client rejects or mishandles a request.
package restapi

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/samber/lo"
)

const DefaultTimeout = 30 * time.Second

var defaultHeaders = map[string]string{
	"User-Agent":      "fathomctl/0.1.0",
	"Accept":          "application/json",
	"Accept-Encoding": "gzip",
}

// Config holds the configuration for the REST client.
type Config struct {
	APIKey  string
	BaseURL string
	Headers map[string]string
	Timeout time.Duration
}

// Client issues plain GET requests against the API base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    map[string]string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	parsedURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url '%s': %w", cfg.BaseURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("base url must use http or https scheme, got: %s", parsedURL.Scheme)
	}

	headers := lo.Assign(defaultHeaders, cfg.Headers)
	headers["X-Api-Key"] = cfg.APIKey

	client := &Client{
		baseURL: parsedURL,
		headers: headers,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}

		client.httpClient = &http.Client{
			Transport: cleanhttp.DefaultPooledTransport(),
			Timeout:   timeout,
		}
	}

	return client, nil
}

func (c *Client) BaseURL() *url.URL {
	return c.baseURL
}

// Do injects default headers and executes the request.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for k, v := range c.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	return c.httpClient.Do(req)
}
