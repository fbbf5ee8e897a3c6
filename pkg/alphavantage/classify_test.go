package alphavantage

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		expected []string
		wantKind ErrorKind
		wantMsg  string
	}{
		{
			name:     "data payload",
			body:     `{"Symbol":"IBM","Name":"International Business Machines"}`,
			status:   http.StatusOK,
			wantKind: KindUnknown,
		},
		{
			name:     "rate limit note",
			body:     `{"Note":"Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute and 500 calls per day."}`,
			status:   http.StatusOK,
			wantKind: KindRateLimit,
			wantMsg:  "call frequency",
		},
		{
			name:     "rate limit information",
			body:     `{"Information":"We have detected your API key as ABC123 and our standard API rate limit is 25 requests per day."}`,
			status:   http.StatusOK,
			wantKind: KindRateLimit,
		},
		{
			name:     "invalid api call",
			body:     `{"Error Message":"Invalid API call. Please retry or visit the documentation (https://www.alphavantage.co/documentation/) for TIME_SERIES_DAILY."}`,
			status:   http.StatusOK,
			wantKind: KindInvalidParameter,
			wantMsg:  "Invalid API call",
		},
		{
			name:     "other error message",
			body:     `{"Error Message":"the service is temporarily unavailable"}`,
			status:   http.StatusOK,
			wantKind: KindAPI,
		},
		{
			name:     "invalid key message",
			body:     `{"Error Message":"the parameter apikey is invalid or missing. Please claim your free API key on (https://www.alphavantage.co/support/#api-key)."}`,
			status:   http.StatusOK,
			wantKind: KindAPIKey,
		},
		{
			name:     "key rejection wins over rate limit",
			body:     `{"Information":"The demo API key is for demo purposes only. Please claim your free API key at https://www.alphavantage.co/support/#api-key to explore our full API offerings. It takes fewer than 20 seconds, and the rate limit is 25 requests per day."}`,
			status:   http.StatusOK,
			wantKind: KindAPIKey,
		},
		{
			name:     "unauthorized status",
			body:     `forbidden`,
			status:   http.StatusUnauthorized,
			wantKind: KindAPIKey,
		},
		{
			name:     "forbidden status",
			body:     `{}`,
			status:   http.StatusForbidden,
			wantKind: KindAPIKey,
		},
		{
			name:     "server error",
			body:     `{"message":"upstream timeout"}`,
			status:   http.StatusBadGateway,
			wantKind: KindAPI,
			wantMsg:  "upstream timeout",
		},
		{
			name:     "array payload",
			body:     `[1,2,3]`,
			status:   http.StatusOK,
			wantKind: KindAPI,
		},
		{
			name:     "information only",
			body:     `{"Information":"This is a premium endpoint."}`,
			status:   http.StatusOK,
			wantKind: KindAPI,
			wantMsg:  "premium endpoint",
		},
		{
			name:     "missing expected key",
			body:     `{"items":"0"}`,
			status:   http.StatusOK,
			expected: []string{"feed"},
			wantKind: KindAPI,
			wantMsg:  "feed",
		},
		{
			name:     "expected key with spaces",
			body:     `{"Meta Data":{},"Time Series (Daily)":{}}`,
			status:   http.StatusOK,
			expected: []string{"Meta Data"},
			wantKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify([]byte(tt.body), tt.status, tt.expected...)
			if tt.wantKind == KindUnknown {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err), "got %T: %v", err, err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClassifyServerErrorKeepsStatus(t *testing.T) {
	err := Classify([]byte(`oops`), http.StatusInternalServerError)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "oops", apiErr.Message)
}

func TestValidationErrorIsInvalidParameter(t *testing.T) {
	err := error(&ValidationError{Model: "CompanyOverview", Field: "Symbol", Reason: "required field is missing"})

	var paramErr *InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, "Symbol", paramErr.Param)
	assert.Equal(t, KindInvalidParameter, KindOf(err))
}

func TestKindOfWrapped(t *testing.T) {
	err := &TransportError{Function: "OVERVIEW", Err: errors.New("connection refused")}
	assert.Equal(t, KindTransport, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, "rate_limit", KindRateLimit.String())
}
