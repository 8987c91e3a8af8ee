package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type getTest struct {
	name               string
	path               string
	params             map[string]string
	response           string
	responseStatusCode int // defaults to 200
	gzipResponse       bool
	expected           any    // if set, asserts Reply.Data equals this
	expectBody         string // asserts Reply.Body on non-2xx replies
	expectErr          string // if set, asserts error contains this
	validateReq        func(t *testing.T, req *http.Request)
}

func runGetTests(t *testing.T, tests []getTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusCode := tt.responseStatusCode
			if statusCode == 0 {
				statusCode = http.StatusOK
			}

			var capturedReq *http.Request
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedReq = r
				w.Header().Set("Content-Type", "application/json")
				if tt.gzipResponse {
					w.Header().Set("Content-Encoding", "gzip")
					w.WriteHeader(statusCode)
					gz := gzip.NewWriter(w)
					_, _ = gz.Write([]byte(tt.response))
					_ = gz.Close()
					return
				}
				w.WriteHeader(statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client, err := NewClient(Config{
				APIKey:  "test-key",
				BaseURL: server.URL,
			}, WithHTTPClient(server.Client()))
			require.NoError(t, err)

			reply, err := client.Get(t.Context(), tt.path, tt.params)

			if tt.validateReq != nil {
				tt.validateReq(t, capturedReq)
			}

			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, statusCode, reply.StatusCode)
			if tt.expected != nil {
				assert.Equal(t, tt.expected, reply.Data)
			}
			if tt.expectBody != "" {
				assert.Equal(t, tt.expectBody, reply.Body)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Run("request building", func(t *testing.T) {
		runGetTests(t, []getTest{
			{
				name:     "api key header set",
				path:     "teams",
				response: `{"items": []}`,
				validateReq: func(t *testing.T, req *http.Request) {
					assert.Equal(t, "test-key", req.Header.Get("X-Api-Key"))
					assert.Equal(t, "application/json", req.Header.Get("Accept"))
				},
			},
			{
				name:     "path resolved against base url",
				path:     "meetings",
				response: `{"items": []}`,
				validateReq: func(t *testing.T, req *http.Request) {
					assert.Equal(t, "/meetings", req.URL.Path)
				},
			},
			{
				name: "query params",
				path: "meetings",
				params: map[string]string{
					"limit":         "10",
					"created_after": "2026-01-01T00:00:00.000000Z",
				},
				response: `{"items": []}`,
				validateReq: func(t *testing.T, req *http.Request) {
					assert.Equal(t, "10", req.URL.Query().Get("limit"))
					assert.Equal(t, "2026-01-01T00:00:00.000000Z", req.URL.Query().Get("created_after"))
				},
			},
		})
	})

	t.Run("response handling", func(t *testing.T) {
		runGetTests(t, []getTest{
			{
				name:     "json decoded",
				path:     "meetings",
				response: `{"items": [], "limit": 10}`,
				expected: map[string]any{"items": []any{}, "limit": float64(10)},
			},
			{
				name:         "gzip response decoded",
				path:         "meetings",
				response:     `{"items": []}`,
				gzipResponse: true,
				expected:     map[string]any{"items": []any{}},
			},
			{
				name:      "invalid json",
				path:      "meetings",
				response:  "not valid json",
				expectErr: "failed to parse JSON",
			},
			{
				name:     "empty body",
				path:     "meetings",
				response: "",
				expected: nil,
			},
		})
	})

	t.Run("http errors reported in reply", func(t *testing.T) {
		runGetTests(t, []getTest{
			{
				name:               "401 unauthorized",
				path:               "meetings",
				response:           `{"message": "invalid api key"}`,
				responseStatusCode: http.StatusUnauthorized,
				expectBody:         `{"message": "invalid api key"}`,
			},
			{
				name:               "500 internal server error",
				path:               "meetings",
				response:           "Internal Server Error",
				responseStatusCode: http.StatusInternalServerError,
				expectBody:         "Internal Server Error",
			},
		})
	})
}

func TestGet_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Get(t.Context(), "teams", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute request")
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		expectErr string
	}{
		{
			name:      "missing api key",
			cfg:       Config{BaseURL: "https://api.fathom.ai/external/v1"},
			expectErr: "api key is required",
		},
		{
			name:      "missing base url",
			cfg:       Config{APIKey: "test-key"},
			expectErr: "base url is required",
		},
		{
			name:      "bad scheme",
			cfg:       Config{APIKey: "test-key", BaseURL: "ftp://example.com"},
			expectErr: "must use http or https",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}

func TestClient_HeaderOverride(t *testing.T) {
	var captured string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Headers: map[string]string{"Accept": "application/vnd.fathom+json"},
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	_, err = client.Get(t.Context(), "teams", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.fathom+json", captured)
}
