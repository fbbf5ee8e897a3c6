package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
)

// RawResponse is an undecoded API reply.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Transport issues a single request for an API function.
type Transport interface {
	Request(ctx context.Context, function string, params url.Values, apiKey string) (*RawResponse, error)
}

// HTTPTransport is the default Transport: one GET against the query endpoint.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewHTTPTransport creates a transport for baseURL. A nil httpClient gets
// DefaultTimeout.
func NewHTTPTransport(baseURL string, httpClient *http.Client, logger arbor.ILogger) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPTransport{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Request sets function and apikey on a copy of params and performs the GET.
// Non-2xx replies are returned as-is for classification; a 2xx body that is
// not JSON is a *TransportError.
func (t *HTTPTransport) Request(ctx context.Context, function string, params url.Values, apiKey string) (*RawResponse, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = append([]string(nil), v...)
	}
	query.Set("function", function)
	query.Set("apikey", apiKey)

	reqURL := fmt.Sprintf("%s?%s", t.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Function: function, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := uuid.NewString()
	if t.logger != nil {
		t.logger.Debug().
			Str("request_id", requestID).
			Str("function", function).
			Str("url", t.baseURL).
			Msg("Alpha Vantage API request")
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Function: function, Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Function: function, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if t.logger != nil {
		t.logger.Debug().
			Str("request_id", requestID).
			Str("function", function).
			Int("status", resp.StatusCode).
			Int("bytes", len(body)).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("Alpha Vantage API response")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && !json.Valid(body) {
		return nil, &TransportError{Function: function, Err: errors.New("response body is not valid JSON")}
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
