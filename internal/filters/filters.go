// Package filters builds query-parameter sets for common meeting listing
// scenarios. Helpers are pure and have no error paths; keys match the API's
// REST query parameters.
package filters

import (
	"net/url"
	"time"

	"github.com/samber/lo"
)

// Filters is a set of query parameters keyed by API parameter name.
type Filters map[string]string

// Timestamp layout used for created_after/created_before boundaries:
// ISO-8601 UTC with microsecond precision and a trailing Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Merge combines filter sets left to right, later sets winning on key
// collisions.
func Merge(sets ...Filters) Filters {
	maps := make([]map[string]string, len(sets))
	for i, set := range sets {
		maps[i] = set
	}
	return lo.Assign(maps...)
}

// Values converts the set to url.Values.
func (f Filters) Values() url.Values {
	params := url.Values{}
	for k, v := range f {
		params.Set(k, v)
	}
	return params
}

// LastNDays restricts results to meetings created in the last n days.
func LastNDays(n int) Filters {
	return LastNDaysAt(time.Now(), n)
}

// LastNDaysAt computes the created_after boundary relative to now: n whole
// days back, UTC, truncated to the second.
func LastNDaysAt(now time.Time, n int) Filters {
	boundary := now.UTC().Add(-time.Duration(n) * 24 * time.Hour).Truncate(time.Second)
	return Filters{"created_after": boundary.Format(TimestampLayout)}
}

// ExternalMeetings selects meetings with at least one external invitee.
func ExternalMeetings() Filters {
	return Filters{"calendar_invitees_domains_type": "one_or_more_external"}
}

// InternalMeetings selects meetings where every invitee is internal.
func InternalMeetings() Filters {
	return Filters{"calendar_invitees_domains_type": "only_internal"}
}

// WithDetails requests every optional detail section in the response.
func WithDetails() Filters {
	return Filters{
		"include_action_items": "true",
		"include_crm_matches":  "true",
		"include_summary":      "true",
		"include_transcript":   "true",
	}
}
