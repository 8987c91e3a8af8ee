// Package connection unifies the typed SDK client and the raw REST client
// behind one calling convention. Every operation returns a populated
// Envelope and never an error: SDK exceptions, HTTP error statuses, and
// transport failures all land in the envelope, and the combined operations
// fall back to the other access path when the first one fails.
package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fathomctl/fathomctl/internal/fathomsdk"
	"github.com/fathomctl/fathomctl/internal/filters"
	"github.com/fathomctl/fathomctl/internal/restapi"
	"go.uber.org/zap"
)

// Config holds the settings shared by both access paths.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	PreferREST bool
	Debug      bool

	// HTTPClient overrides the default transport on both paths (tests).
	HTTPClient *http.Client
}

// Connection holds one client per access path for the process lifetime.
type Connection struct {
	sdk        *fathomsdk.Client
	sdkErr     error
	rest       *restapi.Client
	logger     *zap.Logger
	apiKey     string
	preferREST bool
}

// New builds a connection from the given config. A missing API key is the
// only fatal condition; an SDK construction failure degrades the SDK path
// to failure envelopes instead (the REST path still works).
func New(cfg Config, logger *zap.Logger) (*Connection, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fathomsdk.DefaultBaseURL
	}

	var sdkOpts []fathomsdk.Option
	var restOpts []restapi.Option
	if cfg.HTTPClient != nil {
		sdkOpts = append(sdkOpts, fathomsdk.WithHTTPClient(cfg.HTTPClient))
		restOpts = append(restOpts, restapi.WithHTTPClient(cfg.HTTPClient))
	}

	sdk, sdkErr := fathomsdk.NewClient(fathomsdk.Config{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
		Timeout: cfg.Timeout,
		Logger:  logger.Named("sdk"),
		Debug:   cfg.Debug,
	}, sdkOpts...)
	if sdkErr != nil {
		logger.Warn("failed to initialize sdk client, sdk path disabled", zap.Error(sdkErr))
	}

	rest, err := restapi.NewClient(restapi.Config{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
		Timeout: cfg.Timeout,
	}, restOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create rest client: %w", err)
	}

	return &Connection{
		sdk:        sdk,
		sdkErr:     sdkErr,
		rest:       rest,
		logger:     logger,
		apiKey:     cfg.APIKey,
		preferREST: cfg.PreferREST,
	}, nil
}

// ListTeamsSDK lists teams through the typed client.
func (c *Connection) ListTeamsSDK(ctx context.Context) Envelope {
	if c.sdk == nil {
		return failure(MethodSDK, "sdk client not initialized: "+c.sdkErr.Error(), 0)
	}

	resp, err := c.sdk.ListTeams(ctx, nil)
	if err != nil {
		return sdkFailure(err)
	}

	return success(MethodSDK, resp, 0)
}

// ListMeetingsSDK lists meetings through the typed client with the given
// filters applied.
func (c *Connection) ListMeetingsSDK(ctx context.Context, f filters.Filters) Envelope {
	if c.sdk == nil {
		return failure(MethodSDK, "sdk client not initialized: "+c.sdkErr.Error(), 0)
	}

	options, err := meetingOptions(f)
	if err != nil {
		return failure(MethodSDK, err.Error(), 0)
	}

	resp, err := c.sdk.ListMeetings(ctx, options)
	if err != nil {
		return sdkFailure(err)
	}

	return success(MethodSDK, resp, 0)
}

// ListTeamsREST lists teams through the raw REST path.
func (c *Connection) ListTeamsREST(ctx context.Context) Envelope {
	return c.restGet(ctx, "teams", nil)
}

// ListMeetingsREST lists meetings through the raw REST path with the given
// filters sent verbatim as query parameters.
func (c *Connection) ListMeetingsREST(ctx context.Context, f filters.Filters) Envelope {
	return c.restGet(ctx, "meetings", f)
}

// ListTeams lists teams via the preferred path, falling back once to the
// other path when the first envelope reports failure.
func (c *Connection) ListTeams(ctx context.Context) Envelope {
	return c.combined(ctx,
		func(ctx context.Context) Envelope { return c.ListTeamsSDK(ctx) },
		func(ctx context.Context) Envelope { return c.ListTeamsREST(ctx) },
	)
}

// ListMeetings lists meetings via the preferred path, falling back once to
// the other path when the first envelope reports failure.
func (c *Connection) ListMeetings(ctx context.Context, f filters.Filters) Envelope {
	return c.combined(ctx,
		func(ctx context.Context) Envelope { return c.ListMeetingsSDK(ctx, f) },
		func(ctx context.Context) Envelope { return c.ListMeetingsREST(ctx, f) },
	)
}

func (c *Connection) combined(ctx context.Context, sdkCall, restCall func(context.Context) Envelope) Envelope {
	first, second := sdkCall, restCall
	if c.preferREST {
		first, second = restCall, sdkCall
	}

	result := first(ctx)
	if result.Success {
		return result
	}

	c.logger.Debug("primary path failed, falling back",
		zap.String("method", string(result.Method)),
		zap.String("error", result.Error))

	return second(ctx)
}

func (c *Connection) restGet(ctx context.Context, path string, f filters.Filters) Envelope {
	reply, err := c.rest.Get(ctx, path, f)
	if err != nil {
		return failure(MethodREST, err.Error(), 0)
	}

	if !reply.OK() {
		return failure(MethodREST, reply.Body, reply.StatusCode)
	}

	// Both paths expose the payload under data.result.
	return success(MethodREST, map[string]any{"result": reply.Data}, reply.StatusCode)
}

func sdkFailure(err error) Envelope {
	var apiErr *fathomsdk.APIError
	if errors.As(err, &apiErr) {
		return failure(MethodSDK, err.Error(), apiErr.StatusCode)
	}
	return failure(MethodSDK, err.Error(), 0)
}

// meetingOptions maps REST-style filter keys onto typed SDK options.
func meetingOptions(f filters.Filters) (*fathomsdk.ListMeetingsOptions, error) {
	if len(f) == 0 {
		return nil, nil
	}

	options := &fathomsdk.ListMeetingsOptions{}
	for key, value := range f {
		switch key {
		case "cursor":
			options.Cursor = value
		case "limit":
			limit, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid limit %q: %w", value, err)
			}
			options.Limit = limit
		case "created_after":
			options.CreatedAfter = value
		case "created_before":
			options.CreatedBefore = value
		case "calendar_invitees_domains_type":
			options.CalendarInviteesDomainsType = value
		case "meeting_type":
			options.MeetingType = value
		case "include_transcript":
			options.IncludeTranscript = value == "true"
		case "include_crm_matches":
			options.IncludeCRMMatches = value == "true"
		case "include_summary":
			options.IncludeSummary = value == "true"
		case "include_action_items":
			options.IncludeActionItems = value == "true"
		default:
			return nil, fmt.Errorf("unsupported filter key %q", key)
		}
	}

	return options, nil
}
