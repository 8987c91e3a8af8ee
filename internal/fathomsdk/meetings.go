package fathomsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Calendar invitee domain filters accepted by the meetings listing.
const (
	DomainsTypeAll               = "all"
	DomainsTypeOnlyInternal      = "only_internal"
	DomainsTypeOneOrMoreExternal = "one_or_more_external"
)

// Meeting represents a recorded Fathom meeting.
type Meeting struct {
	Title              string           `json:"title,omitempty"`
	MeetingTitle       string           `json:"meeting_title,omitempty"`
	URL                string           `json:"url,omitempty"`
	ShareURL           string           `json:"share_url,omitempty"`
	CreatedAt          string           `json:"created_at,omitempty"`
	ScheduledStartTime string           `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   string           `json:"scheduled_end_time,omitempty"`
	RecordingStartTime string           `json:"recording_start_time,omitempty"`
	RecordingEndTime   string           `json:"recording_end_time,omitempty"`
	CalendarInvitees   []Invitee        `json:"calendar_invitees,omitempty"`
	RecordedBy         *RecordedBy      `json:"recorded_by,omitempty"`
	Transcript         []TranscriptLine `json:"transcript,omitempty"`
	DefaultSummary     *Summary         `json:"default_summary,omitempty"`
	ActionItems        []ActionItem     `json:"action_items,omitempty"`
}

// Invitee is a calendar invitee on a meeting.
type Invitee struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	IsExternal bool   `json:"is_external,omitempty"`
}

// RecordedBy identifies the user who recorded the meeting.
type RecordedBy struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Team  string `json:"team,omitempty"`
}

// TranscriptLine is one speaker turn in a meeting transcript.
type TranscriptLine struct {
	Speaker *RecordedBy `json:"speaker,omitempty"`
	Text    string      `json:"text,omitempty"`
}

// Summary is the generated meeting summary.
type Summary struct {
	TemplateName      string `json:"template_name,omitempty"`
	MarkdownFormatted string `json:"markdown_formatted,omitempty"`
}

// ActionItem is a follow-up item extracted from a meeting.
type ActionItem struct {
	Description string      `json:"description,omitempty"`
	Completed   bool        `json:"completed,omitempty"`
	Assignee    *RecordedBy `json:"assignee,omitempty"`
}

// MeetingsPage is one page of the meetings listing.
type MeetingsPage struct {
	Limit      int       `json:"limit"`
	NextCursor string    `json:"next_cursor,omitempty"`
	Items      []Meeting `json:"items"`
}

// ListMeetingsResponse wraps the page so callers address data.result.items
// regardless of which access path produced it.
type ListMeetingsResponse struct {
	Result *MeetingsPage `json:"result"`
}

// ListMeetingsOptions carries the query parameters of the meetings listing.
// MeetingType is deprecated by the API and conflicts with
// CalendarInviteesDomainsType.
type ListMeetingsOptions struct {
	Cursor                      string   `validate:"omitempty"`
	Limit                       int      `validate:"omitempty,min=1,max=100"`
	CreatedAfter                string   `validate:"omitempty"`
	CreatedBefore               string   `validate:"omitempty"`
	CalendarInvitees            []string `validate:"omitempty,dive,email"`
	CalendarInviteesDomains     []string `validate:"omitempty,dive,fqdn"`
	CalendarInviteesDomainsType string   `validate:"omitempty,oneof=all only_internal one_or_more_external"`
	RecordedBy                  []string `validate:"omitempty,dive,email"`
	Teams                       []string `validate:"omitempty"`
	IncludeTranscript           bool
	IncludeCRMMatches           bool
	IncludeSummary              bool
	IncludeActionItems          bool
	MeetingType                 string `validate:"omitempty,excluded_with=CalendarInviteesDomainsType,oneof=all internal external"`
}

// Values encodes the options as API query parameters. Zero values are omitted.
func (o *ListMeetingsOptions) Values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}

	setIf := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}

	setIf("cursor", o.Cursor)
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	setIf("created_after", o.CreatedAfter)
	setIf("created_before", o.CreatedBefore)
	for _, invitee := range o.CalendarInvitees {
		params.Add("calendar_invitees[]", invitee)
	}
	for _, domain := range o.CalendarInviteesDomains {
		params.Add("calendar_invitees_domains[]", domain)
	}
	setIf("calendar_invitees_domains_type", o.CalendarInviteesDomainsType)
	for _, recorder := range o.RecordedBy {
		params.Add("recorded_by[]", recorder)
	}
	for _, team := range o.Teams {
		params.Add("teams[]", team)
	}
	if o.IncludeTranscript {
		params.Set("include_transcript", "true")
	}
	if o.IncludeCRMMatches {
		params.Set("include_crm_matches", "true")
	}
	if o.IncludeSummary {
		params.Set("include_summary", "true")
	}
	if o.IncludeActionItems {
		params.Set("include_action_items", "true")
	}
	setIf("meeting_type", o.MeetingType)

	return params
}

var optionsValidator = validator.New(validator.WithRequiredStructEnabled())

// ListMeetings returns one page of meetings matching the options. Options
// are validated before any request is sent; a *ValidationError reports
// rejected options.
func (c *Client) ListMeetings(ctx context.Context, options *ListMeetingsOptions) (*ListMeetingsResponse, error) {
	if options != nil {
		if err := optionsValidator.Struct(options); err != nil {
			return nil, &ValidationError{Err: err}
		}
	}

	reqURL, err := c.buildURL("meetings", options.Values())
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

	var page MeetingsPage
	if err := ParseResponse(resp, &page); err != nil {
		return nil, err
	}

	return &ListMeetingsResponse{Result: &page}, nil
}
