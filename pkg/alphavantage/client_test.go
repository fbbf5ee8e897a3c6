package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

// stubTransport records requests and replies with a fixed payload.
type stubTransport struct {
	mu       sync.Mutex
	calls    int
	function string
	params   url.Values
	apiKey   string
	status   int
	body     string
	err      error
}

func (s *stubTransport) Request(ctx context.Context, function string, params url.Values, apiKey string) (*RawResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.function = function
	s.params = params
	s.apiKey = apiKey
	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &RawResponse{StatusCode: status, Body: []byte(s.body)}, nil
}

func newStubClient(t *testing.T, stub *stubTransport) *Client {
	t.Helper()
	c, err := NewClient("test-key", WithTransport(stub), WithLogger(arbor.NewLogger()))
	require.NoError(t, err)
	return c
}

func TestNewClientKeyResolution(t *testing.T) {
	t.Run("argument wins over environment", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		stub := &stubTransport{body: overviewFixture}
		c, err := NewClient("arg-key", WithTransport(stub))
		require.NoError(t, err)

		_, err = c.GetCompanyOverview(context.Background(), "IBM")
		require.NoError(t, err)
		assert.Equal(t, "arg-key", stub.apiKey)
	})

	t.Run("environment used when argument empty", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		stub := &stubTransport{body: overviewFixture}
		c, err := NewClient("", WithTransport(stub))
		require.NoError(t, err)

		_, err = c.GetCompanyOverview(context.Background(), "IBM")
		require.NoError(t, err)
		assert.Equal(t, "env-key", stub.apiKey)
	})

	t.Run("no key anywhere", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		c, err := NewClient("")
		assert.Nil(t, c)

		var keyErr *APIKeyError
		require.True(t, errors.As(err, &keyErr))
		assert.Equal(t, KindAPIKey, KindOf(err))
	})
}

func TestHTTPWireParameters(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stockDailyFixture))
	}))
	defer server.Close()

	c, err := NewClient("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	series, err := c.GetTimeSeriesIntraday(context.Background(), "IBM",
		WithInterval("15min"),
		WithOutputSize("full"),
		WithAdjusted(false),
		WithExtendedHours(true),
		WithMonth("2023-06"),
	)
	require.NoError(t, err)
	assert.Len(t, series.Bars, 3)

	assert.Equal(t, "TIME_SERIES_INTRADAY", got.Get("function"))
	assert.Equal(t, "IBM", got.Get("symbol"))
	assert.Equal(t, "15min", got.Get("interval"))
	assert.Equal(t, "full", got.Get("outputsize"))
	assert.Equal(t, "false", got.Get("adjusted"))
	assert.Equal(t, "true", got.Get("extended_hours"))
	assert.Equal(t, "2023-06", got.Get("month"))
	assert.Equal(t, "test-key", got.Get("apikey"))
}

func TestEndpointFunctions(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		body     string
		call     func(c *Client) error
		function string
		params   map[string]string
	}{
		{
			name: "overview",
			body: overviewFixture,
			call: func(c *Client) error {
				_, err := c.GetCompanyOverview(ctx, "IBM")
				return err
			},
			function: "OVERVIEW",
			params:   map[string]string{"symbol": "IBM"},
		},
		{
			name: "income statement",
			body: incomeFixture,
			call: func(c *Client) error {
				_, err := c.GetIncomeStatement(ctx, "IBM")
				return err
			},
			function: "INCOME_STATEMENT",
			params:   map[string]string{"symbol": "IBM"},
		},
		{
			name: "balance sheet",
			body: `{"symbol":"IBM","annualReports":[],"quarterlyReports":[]}`,
			call: func(c *Client) error {
				_, err := c.GetBalanceSheet(ctx, "IBM")
				return err
			},
			function: "BALANCE_SHEET",
			params:   map[string]string{"symbol": "IBM"},
		},
		{
			name: "cash flow",
			body: `{"symbol":"IBM","annualReports":[],"quarterlyReports":[]}`,
			call: func(c *Client) error {
				_, err := c.GetCashFlow(ctx, "IBM")
				return err
			},
			function: "CASH_FLOW",
			params:   map[string]string{"symbol": "IBM"},
		},
		{
			name: "earnings",
			body: `{"symbol":"IBM","annualEarnings":[{"fiscalDateEnding":"2023-12-31","reportedEPS":"9.61"}],"quarterlyEarnings":[]}`,
			call: func(c *Client) error {
				_, err := c.GetEarnings(ctx, "IBM")
				return err
			},
			function: "EARNINGS",
			params:   map[string]string{"symbol": "IBM"},
		},
		{
			name: "daily",
			body: stockDailyFixture,
			call: func(c *Client) error {
				_, err := c.GetTimeSeriesDaily(ctx, "IBM", WithOutputSize("compact"))
				return err
			},
			function: "TIME_SERIES_DAILY",
			params:   map[string]string{"symbol": "IBM", "outputsize": "compact"},
		},
		{
			name: "forex intraday",
			body: forexFixture,
			call: func(c *Client) error {
				_, err := c.GetForexIntraday(ctx, "EUR", "USD", WithInterval("60min"))
				return err
			},
			function: "FX_INTRADAY",
			params:   map[string]string{"from_symbol": "EUR", "to_symbol": "USD", "interval": "60min"},
		},
		{
			name: "crypto daily",
			body: cryptoFixture,
			call: func(c *Client) error {
				_, err := c.GetCryptoDaily(ctx, "BTC", "EUR")
				return err
			},
			function: "DIGITAL_CURRENCY_DAILY",
			params:   map[string]string{"symbol": "BTC", "market": "EUR"},
		},
		{
			name: "dispatch adjusted weekly",
			body: stockDailyFixture,
			call: func(c *Client) error {
				_, err := c.GetTimeSeries(ctx, AssetStock, Weekly, TimeSeriesRequest{Symbol: "IBM", Options: []QueryOption{WithAdjusted(true)}})
				return err
			},
			function: "TIME_SERIES_WEEKLY_ADJUSTED",
			params:   map[string]string{"symbol": "IBM"},
		},
		{
			name: "dispatch crypto monthly",
			body: cryptoFixture,
			call: func(c *Client) error {
				_, err := c.GetTimeSeries(ctx, AssetCrypto, Monthly, TimeSeriesRequest{Symbol: "BTC", Market: "EUR"})
				return err
			},
			function: "DIGITAL_CURRENCY_MONTHLY",
			params:   map[string]string{"symbol": "BTC", "market": "EUR"},
		},
		{
			name: "news",
			body: newsFixture,
			call: func(c *Client) error {
				_, err := c.GetNewsSentiment(ctx,
					WithTickers("IBM", "MSFT"),
					WithTopics("earnings"),
					WithTimeRange(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), time.Time{}),
					WithSort("RELEVANCE"),
				)
				return err
			},
			function: "NEWS_SENTIMENT",
			params: map[string]string{
				"tickers":   "IBM,MSFT",
				"topics":    "earnings",
				"time_from": "20240101T0930",
				"sort":      "RELEVANCE",
				"limit":     "50",
			},
		},
		{
			name: "movers",
			body: moversFixture,
			call: func(c *Client) error {
				_, err := c.GetTopGainersLosers(ctx)
				return err
			},
			function: "TOP_GAINERS_LOSERS",
			params:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubTransport{body: tt.body}
			c := newStubClient(t, stub)

			require.NoError(t, tt.call(c))
			assert.Equal(t, 1, stub.calls)
			assert.Equal(t, tt.function, stub.function)
			for k, v := range tt.params {
				assert.Equal(t, v, stub.params.Get(k), "param %s", k)
			}
		})
	}
}

func TestLocalValidationSkipsTransport(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		param string
		call  func(c *Client) error
	}{
		{
			name:  "empty symbol",
			param: "symbol",
			call: func(c *Client) error {
				_, err := c.GetCompanyOverview(ctx, "")
				return err
			},
		},
		{
			name:  "symbol with whitespace",
			param: "symbol",
			call: func(c *Client) error {
				_, err := c.GetIncomeStatement(ctx, "IB M")
				return err
			},
		},
		{
			name:  "empty forex quote",
			param: "to_symbol",
			call: func(c *Client) error {
				_, err := c.GetForexDaily(ctx, "EUR", "")
				return err
			},
		},
		{
			name:  "empty crypto market",
			param: "market",
			call: func(c *Client) error {
				_, err := c.GetCryptoWeekly(ctx, "BTC", "")
				return err
			},
		},
		{
			name:  "bad interval",
			param: "interval",
			call: func(c *Client) error {
				_, err := c.GetTimeSeriesIntraday(ctx, "IBM", WithInterval("2min"))
				return err
			},
		},
		{
			name:  "bad output size",
			param: "outputsize",
			call: func(c *Client) error {
				_, err := c.GetTimeSeriesDaily(ctx, "IBM", WithOutputSize("huge"))
				return err
			},
		},
		{
			name:  "bad month",
			param: "month",
			call: func(c *Client) error {
				_, err := c.GetTimeSeriesIntraday(ctx, "IBM", WithMonth("June 2023"))
				return err
			},
		},
		{
			name:  "news limit too large",
			param: "limit",
			call: func(c *Client) error {
				_, err := c.GetNewsSentiment(ctx, WithLimit(5000))
				return err
			},
		},
		{
			name:  "bad sort",
			param: "sort",
			call: func(c *Client) error {
				_, err := c.GetNewsSentiment(ctx, WithSort("RANDOM"))
				return err
			},
		},
		{
			name:  "inverted time range",
			param: "time_to",
			call: func(c *Client) error {
				now := time.Now()
				_, err := c.GetNewsSentiment(ctx, WithTimeRange(now, now.Add(-time.Hour)))
				return err
			},
		},
		{
			name:  "unknown granularity",
			param: "granularity",
			call: func(c *Client) error {
				_, err := c.GetTimeSeries(ctx, AssetStock, Granularity("hourly"), TimeSeriesRequest{Symbol: "IBM"})
				return err
			},
		},
		{
			name:  "unknown asset class",
			param: "asset_class",
			call: func(c *Client) error {
				_, err := c.GetTimeSeries(ctx, AssetClass("bonds"), Daily, TimeSeriesRequest{Symbol: "IBM"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubTransport{body: `{}`}
			c := newStubClient(t, stub)

			err := tt.call(c)

			var paramErr *InvalidParameterError
			require.True(t, errors.As(err, &paramErr), "got %T: %v", err, err)
			assert.Equal(t, tt.param, paramErr.Param)
			assert.Equal(t, 0, stub.calls)
		})
	}
}

func TestRateLimitOnEveryEndpoint(t *testing.T) {
	ctx := context.Background()
	note := `{"Note":"Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute and 500 calls per day."}`

	calls := map[string]func(c *Client) error{
		"overview":  func(c *Client) error { _, err := c.GetCompanyOverview(ctx, "IBM"); return err },
		"income":    func(c *Client) error { _, err := c.GetIncomeStatement(ctx, "IBM"); return err },
		"balance":   func(c *Client) error { _, err := c.GetBalanceSheet(ctx, "IBM"); return err },
		"cash flow": func(c *Client) error { _, err := c.GetCashFlow(ctx, "IBM"); return err },
		"earnings":  func(c *Client) error { _, err := c.GetEarnings(ctx, "IBM"); return err },
		"intraday":  func(c *Client) error { _, err := c.GetTimeSeriesIntraday(ctx, "IBM"); return err },
		"monthly":   func(c *Client) error { _, err := c.GetTimeSeriesMonthly(ctx, "IBM"); return err },
		"fx weekly": func(c *Client) error { _, err := c.GetForexWeekly(ctx, "EUR", "USD"); return err },
		"crypto":    func(c *Client) error { _, err := c.GetCryptoIntraday(ctx, "BTC", "USD"); return err },
		"news":      func(c *Client) error { _, err := c.GetNewsSentiment(ctx); return err },
		"movers":    func(c *Client) error { _, err := c.GetTopGainersLosers(ctx); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			stub := &stubTransport{body: note}
			c := newStubClient(t, stub)

			err := call(c)

			var rateErr *RateLimitError
			require.True(t, errors.As(err, &rateErr), "got %T: %v", err, err)
			assert.Contains(t, rateErr.Message, "call frequency")
			assert.Equal(t, 1, stub.calls)
		})
	}
}

func TestInvalidAPICall(t *testing.T) {
	stub := &stubTransport{body: `{"Error Message":"Invalid API call. Please retry or visit the documentation for TIME_SERIES_DAILY."}`}
	c := newStubClient(t, stub)

	_, err := c.GetTimeSeriesDaily(context.Background(), "NOTASYMBOL")

	var paramErr *InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Contains(t, paramErr.Message, "Invalid API call")
}

func TestEmptyOverviewIsValidationError(t *testing.T) {
	stub := &stubTransport{body: `{}`}
	c := newStubClient(t, stub)

	_, err := c.GetCompanyOverview(context.Background(), "ZZZZ")

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Symbol", vErr.Field)
}

func TestAPIErrorCarriesFunction(t *testing.T) {
	stub := &stubTransport{status: http.StatusInternalServerError, body: `{"message":"boom"}`}
	c := newStubClient(t, stub)

	_, err := c.GetTopGainersLosers(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "TOP_GAINERS_LOSERS", apiErr.Function)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestHTTPUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad key"}`))
	}))
	defer server.Close()

	c, err := NewClient("bad-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.GetCompanyOverview(context.Background(), "IBM")

	var keyErr *APIKeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, "bad key", keyErr.Message)
}

func TestHTTPInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	c, err := NewClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = c.GetCompanyOverview(context.Background(), "IBM")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "OVERVIEW", transportErr.Function)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestHTTPTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := NewClient("test-key", WithBaseURL(server.URL), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = c.GetTopGainersLosers(context.Background())

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "got %T: %v", err, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestHTTPClientTimeoutKept(t *testing.T) {
	c, err := NewClient("test-key", WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.timeout)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)

	c, err = NewClient("test-key", WithHTTPClient(&http.Client{Timeout: 5 * time.Second}), WithTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.timeout)
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)

	c, err = NewClient("test-key", WithHTTPClient(&http.Client{}))
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestStubTransportErrorIsWrapped(t *testing.T) {
	stub := &stubTransport{err: errors.New("dial tcp: connection refused")}
	c := newStubClient(t, stub)

	_, err := c.GetEarnings(context.Background(), "IBM")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "EARNINGS", transportErr.Function)
	assert.Contains(t, err.Error(), "connection refused")
}
