package fathomsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Team represents a Fathom team.
type Team struct {
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TeamsPage is one page of the teams listing.
type TeamsPage struct {
	Limit      int    `json:"limit"`
	NextCursor string `json:"next_cursor,omitempty"`
	Items      []Team `json:"items"`
}

// ListTeamsResponse wraps the page so callers address data.result.items
// regardless of which access path produced it.
type ListTeamsResponse struct {
	Result *TeamsPage `json:"result"`
}

// ListTeamsOptions carries the query parameters of the teams listing.
type ListTeamsOptions struct {
	Cursor string `validate:"omitempty"`
	Limit  int    `validate:"omitempty,min=1,max=100"`
}

// Values encodes the options as API query parameters.
func (o *ListTeamsOptions) Values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}

	if o.Cursor != "" {
		params.Set("cursor", o.Cursor)
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}

	return params
}

// ListTeams returns one page of teams.
func (c *Client) ListTeams(ctx context.Context, options *ListTeamsOptions) (*ListTeamsResponse, error) {
	if options != nil {
		if err := optionsValidator.Struct(options); err != nil {
			return nil, &ValidationError{Err: err}
		}
	}

	reqURL, err := c.buildURL("teams", options.Values())
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

	var page TeamsPage
	if err := ParseResponse(resp, &page); err != nil {
		return nil, err
	}

	return &ListTeamsResponse{Result: &page}, nil
}
