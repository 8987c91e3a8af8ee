package fathomsdk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/gzip"
)

// APIError is the base error type for Fathom API failures. Specific
// sub-types embed it, so errors.As(err, &apiErr) reaches the common fields
// regardless of the concrete type.
type APIError struct {
	// StatusCode is the HTTP status code from the response.
	StatusCode int

	// Status is the HTTP status line (e.g. "401 Unauthorized").
	Status string

	// Message is the error message extracted from the response body.
	Message string

	// RetryAfter is parsed from the Retry-After header on 429 responses.
	RetryAfter time.Duration

	// RawBody preserves the response body bytes for debugging.
	RawBody []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error: %d", e.StatusCode)
	if e.Message != "" {
		msg += " - " + e.Message
	}
	return msg
}

// AuthError is returned for HTTP 401 responses.
type AuthError struct {
	*APIError
}

func (e *AuthError) Unwrap() error { return e.APIError }

// ForbiddenError is returned for HTTP 403 responses.
type ForbiddenError struct {
	*APIError
}

func (e *ForbiddenError) Unwrap() error { return e.APIError }

// NotFoundError is returned for HTTP 404 responses.
type NotFoundError struct {
	*APIError
}

func (e *NotFoundError) Unwrap() error { return e.APIError }

// RateLimitError is returned for HTTP 429 responses. RetryAfter indicates
// how long the API asked us to wait.
type RateLimitError struct {
	*APIError
}

func (e *RateLimitError) Unwrap() error { return e.APIError }

// ValidationError reports options rejected before any request was sent.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	if verrs, ok := e.Err.(validator.ValidationErrors); ok {
		msg := "invalid options:"
		for _, fe := range verrs {
			msg += fmt.Sprintf(" %s failed '%s' validation;", fe.Field(), fe.Tag())
		}
		return msg
	}
	return "invalid options: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ParseResponse decodes a successful response body into out, or maps a
// non-2xx response to a typed API error. The response body is closed.
func ParseResponse(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := decodeBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    errorMessage(body),
		RawBody:    body,
	}

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			apiErr.RetryAfter = time.Duration(seconds) * time.Second
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{apiErr}
	case http.StatusForbidden:
		return &ForbiddenError{apiErr}
	case http.StatusNotFound:
		return &NotFoundError{apiErr}
	case http.StatusTooManyRequests:
		return &RateLimitError{apiErr}
	default:
		return apiErr
	}
}

func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func errorMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return string(body)
}
