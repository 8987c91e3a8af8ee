package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/klauspost/compress/gzip"
)

// Reply is the outcome of a completed HTTP exchange. Data holds the decoded
// JSON payload on 2xx responses; Body holds the raw response text otherwise.
type Reply struct {
	StatusCode int
	Data       any
	Body       string
}

// OK reports whether the exchange returned a 2xx status.
func (r *Reply) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET request against path with the given query parameters.
// An error is returned only for transport-level failures; HTTP error
// statuses are reported through the Reply.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (*Reply, error) {
	reqURL, err := c.buildURL(path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build request url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	reply := &Reply{StatusCode: resp.StatusCode}

	if !reply.OK() {
		reply.Body = string(body)
		return reply, nil
	}

	var data any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}
	}
	reply.Data = data

	return reply, nil
}

func (c *Client) buildURL(path string, params map[string]string) (*url.URL, error) {
	pathURL, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse path '%s': %w", path, err)
	}

	fullURL := c.baseURL.ResolveReference(pathURL)

	if len(params) > 0 {
		query := fullURL.Query()
		for k, v := range params {
			query.Set(k, v)
		}
		fullURL.RawQuery = query.Encode()
	}

	return fullURL, nil
}

func readBody(contentEncoding string, body io.Reader) ([]byte, error) {
	if contentEncoding == "gzip" {
		gzipReader, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() { _ = gzipReader.Close() }()
		body = gzipReader
	}

	return io.ReadAll(body)
}
