package fathomsdk

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.fathom.ai/external/v1"
	DefaultTimeout = 30 * time.Second
)

var defaultHeaders = map[string]string{
	"User-Agent":      "fathomctl/0.1.0",
	"Accept":          "application/json",
	"Accept-Encoding": "gzip",
}

// Config holds the configuration for the Fathom API client.
type Config struct {
	APIKey  string
	BaseURL string
	Headers map[string]string
	Timeout time.Duration

	// HTTPClient overrides the default client when set (used by tests).
	HTTPClient *http.Client

	// Logger receives request logs when Debug is enabled.
	Logger *zap.Logger
	Debug  bool
}

// Client is the typed Fathom API client.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    map[string]string
	apiKey     string
	logger     *zap.Logger
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

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url '%s': %w", baseURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("base url must use http or https scheme, got: %s", parsedURL.Scheme)
	}

	headers := lo.Assign(defaultHeaders, cfg.Headers)
	headers["X-Api-Key"] = cfg.APIKey

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &Client{
		baseURL: parsedURL,
		headers: headers,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil && cfg.HTTPClient != nil {
		client.httpClient = cfg.HTTPClient
	}

	if client.httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}

		var transport http.RoundTripper = cleanhttp.DefaultPooledTransport()
		if cfg.Debug {
			transport = &debugTransport{next: transport, logger: logger.Named("http")}
		}

		client.httpClient = &http.Client{
			Transport: transport,
			Timeout:   timeout,
		}
	} else if cfg.Debug {
		base := client.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		client.httpClient.Transport = &debugTransport{next: base, logger: logger.Named("http")}
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

func (c *Client) buildURL(path string, params url.Values) (*url.URL, error) {
	pathURL, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse path '%s': %w", path, err)
	}

	fullURL := c.baseURL.ResolveReference(pathURL)

	if len(params) > 0 {
		query := fullURL.Query()
		for k, vs := range params {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
		fullURL.RawQuery = query.Encode()
	}

	return fullURL, nil
}

// debugTransport logs requests before forwarding them. Credential-bearing
// headers are truncated to their first characters.
type debugTransport struct {
	next   http.RoundTripper
	logger *zap.Logger
}

func (t *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	}
	for key := range req.Header {
		fields = append(fields, zap.String("header."+strings.ToLower(key), redactHeader(key, req.Header.Get(key))))
	}
	t.logger.Debug("outbound request", fields...)

	return t.next.RoundTrip(req)
}

func redactHeader(key, value string) string {
	lower := strings.ToLower(key)
	if !strings.Contains(lower, "auth") && !strings.Contains(lower, "key") {
		return value
	}
	if len(value) <= 20 {
		return value
	}
	return value[:20] + "..."
}
