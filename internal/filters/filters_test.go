package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastNDaysAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name     string
		days     int
		expected string
	}{
		{
			name:     "thirty days",
			days:     30,
			expected: "2026-02-13T10:30:45.000000Z",
		},
		{
			name:     "seven days",
			days:     7,
			expected: "2026-03-08T10:30:45.000000Z",
		},
		{
			name:     "zero days keeps now",
			days:     0,
			expected: "2026-03-15T10:30:45.000000Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := LastNDaysAt(now, tt.days)
			require.Len(t, set, 1)
			assert.Equal(t, tt.expected, set["created_after"])
		})
	}
}

func TestLastNDaysAt_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, loc)

	set := LastNDaysAt(now, 1)
	assert.Equal(t, "2026-03-14T10:00:00.000000Z", set["created_after"])
}

func TestScenarioSets(t *testing.T) {
	tests := []struct {
		name     string
		set      Filters
		expected Filters
	}{
		{
			name:     "external meetings",
			set:      ExternalMeetings(),
			expected: Filters{"calendar_invitees_domains_type": "one_or_more_external"},
		},
		{
			name:     "internal meetings",
			set:      InternalMeetings(),
			expected: Filters{"calendar_invitees_domains_type": "only_internal"},
		},
		{
			name: "with details",
			set:  WithDetails(),
			expected: Filters{
				"include_action_items": "true",
				"include_crm_matches":  "true",
				"include_summary":      "true",
				"include_transcript":   "true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.set)
		})
	}
}

func TestMerge(t *testing.T) {
	merged := Merge(
		Filters{"created_after": "2026-01-01T00:00:00.000000Z"},
		ExternalMeetings(),
		WithDetails(),
	)

	assert.Len(t, merged, 6)
	assert.Equal(t, "2026-01-01T00:00:00.000000Z", merged["created_after"])
	assert.Equal(t, "one_or_more_external", merged["calendar_invitees_domains_type"])
	assert.Equal(t, "true", merged["include_transcript"])
}

func TestMerge_LaterSetsWin(t *testing.T) {
	merged := Merge(InternalMeetings(), ExternalMeetings())
	assert.Equal(t, "one_or_more_external", merged["calendar_invitees_domains_type"])
}

func TestValues(t *testing.T) {
	set := Filters{
		"created_after": "2026-01-01T00:00:00.000000Z",
		"limit":         "25",
	}

	values := set.Values()
	assert.Equal(t, "2026-01-01T00:00:00.000000Z", values.Get("created_after"))
	assert.Equal(t, "25", values.Get("limit"))
}
