package fathomsdk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		expectErr string
	}{
		{
			name:      "missing api key",
			cfg:       Config{},
			expectErr: "api key is required",
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

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.BaseURL().String())
}

func TestClient_DefaultHeaders(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "fathomctl")
		w.Write([]byte(`{"items": []}`))
	})

	_, err := client.ListTeams(t.Context(), nil)
	require.NoError(t, err)
}

func TestDebugTransport_RedactsCredentials(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	var served bool
	client := newDebugTestClient(t, logger, func(w http.ResponseWriter, r *http.Request) {
		served = true
		w.Write([]byte(`{"items": []}`))
	})

	_, err := client.ListTeams(t.Context(), nil)
	require.NoError(t, err)
	require.True(t, served)

	entries := logs.FilterMessage("outbound request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])

	key, ok := fields["header.x-api-key"].(string)
	require.True(t, ok, "request log should include the api key header")
	assert.Contains(t, key, "...")
	assert.NotContains(t, key, "secret-suffix")
}

func newDebugTestClient(t *testing.T, logger *zap.Logger, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:  "test-key-0123456789-secret-suffix",
		BaseURL: server.URL,
		Logger:  logger,
		Debug:   true,
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return client
}
