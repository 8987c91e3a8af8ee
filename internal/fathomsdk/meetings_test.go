package fathomsdk

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return client, server
}

func TestListMeetingsOptions_Values(t *testing.T) {
	tests := []struct {
		name     string
		options  *ListMeetingsOptions
		expected map[string][]string
	}{
		{
			name:     "nil options",
			options:  nil,
			expected: map[string][]string{},
		},
		{
			name: "date range and limit",
			options: &ListMeetingsOptions{
				Limit:        25,
				CreatedAfter: "2026-01-01T00:00:00.000000Z",
			},
			expected: map[string][]string{
				"limit":         {"25"},
				"created_after": {"2026-01-01T00:00:00.000000Z"},
			},
		},
		{
			name: "domains type and detail flags",
			options: &ListMeetingsOptions{
				CalendarInviteesDomainsType: DomainsTypeOneOrMoreExternal,
				IncludeTranscript:           true,
				IncludeSummary:              true,
			},
			expected: map[string][]string{
				"calendar_invitees_domains_type": {"one_or_more_external"},
				"include_transcript":             {"true"},
				"include_summary":                {"true"},
			},
		},
		{
			name: "repeated invitee params",
			options: &ListMeetingsOptions{
				CalendarInvitees: []string{"a@example.com", "b@example.com"},
			},
			expected: map[string][]string{
				"calendar_invitees[]": {"a@example.com", "b@example.com"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := tt.options.Values()
			assert.Len(t, values, len(tt.expected))
			for key, expected := range tt.expected {
				assert.Equal(t, expected, values[key])
			}
		})
	}
}

func TestListMeetings_OptionValidation(t *testing.T) {
	tests := []struct {
		name    string
		options *ListMeetingsOptions
	}{
		{
			name:    "limit out of range",
			options: &ListMeetingsOptions{Limit: 500},
		},
		{
			name:    "unknown domains type",
			options: &ListMeetingsOptions{CalendarInviteesDomainsType: "some_external"},
		},
		{
			name: "meeting type conflicts with domains type",
			options: &ListMeetingsOptions{
				MeetingType:                 "all",
				CalendarInviteesDomainsType: DomainsTypeAll,
			},
		},
		{
			name:    "bad invitee email",
			options: &ListMeetingsOptions{CalendarInvitees: []string{"not-an-email"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requested := false
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				requested = true
			})

			_, err := client.ListMeetings(t.Context(), tt.options)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.False(t, requested, "no request should be sent for invalid options")
		})
	}
}

func TestListMeetings(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meetings", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "only_internal", r.URL.Query().Get("calendar_invitees_domains_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"limit": 10,
			"next_cursor": "cursor-2",
			"items": [
				{"title": "Weekly Sync", "recorded_by": {"email": "host@example.com"}},
				{"title": "Planning"}
			]
		}`))
	})

	resp, err := client.ListMeetings(t.Context(), &ListMeetingsOptions{
		CalendarInviteesDomainsType: DomainsTypeOnlyInternal,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Result)
	assert.Equal(t, 10, resp.Result.Limit)
	assert.Equal(t, "cursor-2", resp.Result.NextCursor)
	require.Len(t, resp.Result.Items, 2)
	assert.Equal(t, "Weekly Sync", resp.Result.Items[0].Title)
	assert.Equal(t, "host@example.com", resp.Result.Items[0].RecordedBy.Email)
}

func TestListMeetings_EmptyPage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"limit": 10, "items": []}`))
	})

	resp, err := client.ListMeetings(t.Context(), nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Empty(t, resp.Result.Items)
}

func TestListMeetings_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid api key"}`))
	})

	_, err := client.ListMeetings(t.Context(), nil)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, "invalid api key", authErr.Message)

	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr), "AuthError should unwrap to APIError")
}
