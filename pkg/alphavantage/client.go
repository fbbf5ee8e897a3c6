package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

const (
	// DefaultBaseURL is the query endpoint of the Alpha Vantage API.
	DefaultBaseURL = "https://www.alphavantage.co/query"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// EnvAPIKey is consulted when NewClient is given an empty key.
	EnvAPIKey = "ALPHA_VANTAGE_API_KEY"
)

// Client is an Alpha Vantage API client. It is immutable after construction
// and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	timeoutSet bool
	logger     arbor.ILogger
	transport  Transport
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every call, including the time spent reading the body.
// Without it, a Timeout on the WithHTTPClient client is kept.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
		c.timeoutSet = timeout > 0
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTransport replaces the HTTP transport. WithBaseURL and WithHTTPClient
// have no effect when it is used.
func WithTransport(transport Transport) ClientOption {
	return func(c *Client) {
		c.transport = transport
	}
}

// NewClient creates a new Alpha Vantage API client. An empty apiKey falls
// back to the ALPHA_VANTAGE_API_KEY environment variable; when both are
// empty an *APIKeyError is returned.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}
	if apiKey == "" {
		return nil, &APIKeyError{Message: "no API key given and " + EnvAPIKey + " is not set"}
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if !c.timeoutSet && c.httpClient != nil && c.httpClient.Timeout > 0 {
		c.timeout = c.httpClient.Timeout
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	if c.transport == nil {
		httpClient := &http.Client{Timeout: c.timeout}
		if c.httpClient != nil {
			copied := *c.httpClient
			copied.Timeout = c.timeout
			httpClient = &copied
		}
		c.httpClient = httpClient
		c.transport = NewHTTPTransport(c.baseURL, c.httpClient, c.logger)
	}

	return c, nil
}

// call performs one request for function and decodes the classified payload
// into out.
func (c *Client) call(ctx context.Context, function string, params url.Values, expectedKeys []string, model string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.transport.Request(ctx, function, params, c.apiKey)
	if err != nil {
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			err = &TransportError{Function: function, Err: err}
		}
		if c.logger != nil {
			c.logger.Error().Err(err).Str("function", function).Msg("Alpha Vantage request failed")
		}
		return err
	}

	if err := Classify(resp.Body, resp.StatusCode, expectedKeys...); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.Function = function
		}
		if c.logger != nil {
			var rateErr *RateLimitError
			if errors.As(err, &rateErr) {
				c.logger.Warn().Str("function", function).Msg("Alpha Vantage rate limit reached")
			} else {
				c.logger.Debug().Err(err).Str("function", function).Msg("Alpha Vantage returned an error payload")
			}
		}
		return err
	}

	return decode(model, resp.Body, out)
}

// symbolParams validates a symbol and returns the base query for it.
func symbolParams(symbol string) (url.Values, error) {
	if err := checkSymbol("symbol", symbol); err != nil {
		return nil, err
	}
	return url.Values{"symbol": {symbol}}, nil
}

// GetCompanyOverview retrieves the company profile and key metrics.
func (c *Client) GetCompanyOverview(ctx context.Context, symbol string) (*CompanyOverview, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}

	var result CompanyOverview
	if err := c.call(ctx, "OVERVIEW", params, nil, "CompanyOverview", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetIncomeStatement retrieves annual and quarterly income statements.
func (c *Client) GetIncomeStatement(ctx context.Context, symbol string) (*IncomeStatement, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}

	var result IncomeStatement
	if err := c.call(ctx, "INCOME_STATEMENT", params, nil, "IncomeStatement", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBalanceSheet retrieves annual and quarterly balance sheets.
func (c *Client) GetBalanceSheet(ctx context.Context, symbol string) (*BalanceSheet, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}

	var result BalanceSheet
	if err := c.call(ctx, "BALANCE_SHEET", params, nil, "BalanceSheet", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCashFlow retrieves annual and quarterly cash flow statements.
func (c *Client) GetCashFlow(ctx context.Context, symbol string) (*CashFlow, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}

	var result CashFlow
	if err := c.call(ctx, "CASH_FLOW", params, nil, "CashFlow", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetEarnings retrieves annual and quarterly EPS with estimates and
// surprises.
func (c *Client) GetEarnings(ctx context.Context, symbol string) (*Earnings, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}

	var result Earnings
	if err := c.call(ctx, "EARNINGS", params, nil, "Earnings", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// series validates options, copies the accepted ones into params and
// decodes a TimeSeries.
func (c *Client) series(ctx context.Context, function string, params url.Values, opts []QueryOption, accepted ...string) (*TimeSeries, error) {
	p := newQueryParams(opts)
	if err := p.check(); err != nil {
		return nil, err
	}
	p.set(params, accepted...)

	var result TimeSeries
	if err := c.call(ctx, function, params, []string{metaDataKey}, "TimeSeries", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTimeSeriesIntraday retrieves intraday bars. Accepts WithInterval,
// WithOutputSize, WithAdjusted, WithExtendedHours and WithMonth.
func (c *Client) GetTimeSeriesIntraday(ctx context.Context, symbol string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "TIME_SERIES_INTRADAY", params, opts, "interval", "outputsize", "adjusted", "extended_hours", "month")
}

// GetTimeSeriesDaily retrieves raw daily bars. Accepts WithOutputSize.
func (c *Client) GetTimeSeriesDaily(ctx context.Context, symbol string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "TIME_SERIES_DAILY", params, opts, "outputsize")
}

// GetTimeSeriesDailyAdjusted retrieves daily bars with adjusted close,
// dividends and split coefficients. Accepts WithOutputSize.
func (c *Client) GetTimeSeriesDailyAdjusted(ctx context.Context, symbol string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "TIME_SERIES_DAILY_ADJUSTED", params, opts, "outputsize")
}

// GetTimeSeriesWeekly retrieves weekly bars.
func (c *Client) GetTimeSeriesWeekly(ctx context.Context, symbol string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "TIME_SERIES_WEEKLY", params, opts)
}

// GetTimeSeriesWeeklyAdjusted retrieves weekly adjusted bars.
func (c *Client) GetTimeSeriesWeeklyAdjusted(ctx context.Context, symbol string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "TIME_SERIES_WEEKLY_ADJUSTED", params, opts)
}

// GetTimeSeriesMonthly retrieves monthly bars.
func (c *Client) GetTimeSeriesMonthly(ctx context.Context, symbol string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "TIME_SERIES_MONTHLY", params, opts)
}

// GetTimeSeriesMonthlyAdjusted retrieves monthly adjusted bars.
func (c *Client) GetTimeSeriesMonthlyAdjusted(ctx context.Context, symbol string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "TIME_SERIES_MONTHLY_ADJUSTED", params, opts)
}

// forexParams validates a currency pair.
func forexParams(from, to string) (url.Values, error) {
	if err := checkSymbol("from_symbol", from); err != nil {
		return nil, err
	}
	if err := checkSymbol("to_symbol", to); err != nil {
		return nil, err
	}
	return url.Values{"from_symbol": {from}, "to_symbol": {to}}, nil
}

// GetForexIntraday retrieves intraday exchange rates for a currency pair.
// Accepts WithInterval and WithOutputSize.
func (c *Client) GetForexIntraday(ctx context.Context, from, to string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := forexParams(from, to)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "FX_INTRADAY", params, opts, "interval", "outputsize")
}

// GetForexDaily retrieves daily exchange rates. Accepts WithOutputSize.
func (c *Client) GetForexDaily(ctx context.Context, from, to string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := forexParams(from, to)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "FX_DAILY", params, opts, "outputsize")
}

// GetForexWeekly retrieves weekly exchange rates.
func (c *Client) GetForexWeekly(ctx context.Context, from, to string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := forexParams(from, to)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "FX_WEEKLY", params, opts)
}

// GetForexMonthly retrieves monthly exchange rates.
func (c *Client) GetForexMonthly(ctx context.Context, from, to string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := forexParams(from, to)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "FX_MONTHLY", params, opts)
}

// cryptoParams validates a digital currency and its quote market.
func cryptoParams(symbol, market string) (url.Values, error) {
	params, err := symbolParams(symbol)
	if err != nil {
		return nil, err
	}
	if err := checkSymbol("market", market); err != nil {
		return nil, err
	}
	params.Set("market", market)
	return params, nil
}

// GetCryptoIntraday retrieves intraday bars for a digital currency. Accepts
// WithInterval and WithOutputSize.
func (c *Client) GetCryptoIntraday(ctx context.Context, symbol, market string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := cryptoParams(symbol, market)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "CRYPTO_INTRADAY", params, opts, "interval", "outputsize")
}

// GetCryptoDaily retrieves daily bars for a digital currency.
func (c *Client) GetCryptoDaily(ctx context.Context, symbol, market string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := cryptoParams(symbol, market)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "DIGITAL_CURRENCY_DAILY", params, opts)
}

// GetCryptoWeekly retrieves weekly bars for a digital currency.
func (c *Client) GetCryptoWeekly(ctx context.Context, symbol, market string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := cryptoParams(symbol, market)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "DIGITAL_CURRENCY_WEEKLY", params, opts)
}

// GetCryptoMonthly retrieves monthly bars for a digital currency.
func (c *Client) GetCryptoMonthly(ctx context.Context, symbol, market string, opts ...QueryOption) (*TimeSeries, error) {
	params, err := cryptoParams(symbol, market)
	if err != nil {
		return nil, err
	}
	return c.series(ctx, "DIGITAL_CURRENCY_MONTHLY", params, opts)
}

// GetTimeSeries dispatches to the endpoint for asset and granularity. For
// stocks, WithAdjusted(true) selects the adjusted daily, weekly and monthly
// functions.
func (c *Client) GetTimeSeries(ctx context.Context, asset AssetClass, granularity Granularity, req TimeSeriesRequest) (*TimeSeries, error) {
	switch granularity {
	case Intraday, Daily, Weekly, Monthly:
	default:
		return nil, &InvalidParameterError{Param: "granularity", Message: fmt.Sprintf("must be one of [intraday daily weekly monthly], got %q", granularity)}
	}

	opts := req.Options
	switch asset {
	case AssetStock:
		adjusted := newQueryParams(opts).Adjusted
		if adjusted != nil && *adjusted {
			switch granularity {
			case Daily:
				return c.GetTimeSeriesDailyAdjusted(ctx, req.Symbol, opts...)
			case Weekly:
				return c.GetTimeSeriesWeeklyAdjusted(ctx, req.Symbol, opts...)
			case Monthly:
				return c.GetTimeSeriesMonthlyAdjusted(ctx, req.Symbol, opts...)
			}
		}
		switch granularity {
		case Intraday:
			return c.GetTimeSeriesIntraday(ctx, req.Symbol, opts...)
		case Daily:
			return c.GetTimeSeriesDaily(ctx, req.Symbol, opts...)
		case Weekly:
			return c.GetTimeSeriesWeekly(ctx, req.Symbol, opts...)
		default:
			return c.GetTimeSeriesMonthly(ctx, req.Symbol, opts...)
		}
	case AssetForex:
		switch granularity {
		case Intraday:
			return c.GetForexIntraday(ctx, req.Symbol, req.ToSymbol, opts...)
		case Daily:
			return c.GetForexDaily(ctx, req.Symbol, req.ToSymbol, opts...)
		case Weekly:
			return c.GetForexWeekly(ctx, req.Symbol, req.ToSymbol, opts...)
		default:
			return c.GetForexMonthly(ctx, req.Symbol, req.ToSymbol, opts...)
		}
	case AssetCrypto:
		switch granularity {
		case Intraday:
			return c.GetCryptoIntraday(ctx, req.Symbol, req.Market, opts...)
		case Daily:
			return c.GetCryptoDaily(ctx, req.Symbol, req.Market, opts...)
		case Weekly:
			return c.GetCryptoWeekly(ctx, req.Symbol, req.Market, opts...)
		default:
			return c.GetCryptoMonthly(ctx, req.Symbol, req.Market, opts...)
		}
	}
	return nil, &InvalidParameterError{Param: "asset_class", Message: fmt.Sprintf("must be one of [stock forex crypto], got %q", asset)}
}

// GetNewsSentiment retrieves news articles with sentiment scores. Accepts
// WithTickers, WithTopics, WithTimeRange, WithSort and WithLimit; the limit
// defaults to 50.
func (c *Client) GetNewsSentiment(ctx context.Context, opts ...QueryOption) (*NewsSentiment, error) {
	p := newQueryParams(opts)
	if err := p.check(); err != nil {
		return nil, err
	}

	params := url.Values{}
	p.set(params, "tickers", "topics", "time_from", "time_to", "sort", "limit")

	var result NewsSentiment
	if err := c.call(ctx, "NEWS_SENTIMENT", params, []string{"feed"}, "NewsSentiment", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTopGainersLosers retrieves the day's top gainers, top losers and most
// actively traded US tickers.
func (c *Client) GetTopGainersLosers(ctx context.Context) (*MarketMovers, error) {
	var result MarketMovers
	if err := c.call(ctx, "TOP_GAINERS_LOSERS", url.Values{}, []string{"top_gainers"}, "MarketMovers", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
