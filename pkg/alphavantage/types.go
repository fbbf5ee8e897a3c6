// Package alphavantage provides a typed client for the Alpha Vantage REST API.
// Each endpoint call issues one GET, classifies failure payloads into typed
// errors and decodes the data into validated models.
package alphavantage

import (
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Defaults applied when no option overrides them.
const (
	DefaultInterval  = "5min"
	DefaultNewsLimit = 50
	MaxNewsLimit     = 1000

	// NewsTimeLayout is the layout of time_from and time_to.
	NewsTimeLayout = "20060102T1504"
)

// QueryOption represents an optional parameter for API queries. Options an
// endpoint does not accept are ignored.
type QueryOption func(*queryParams)

// queryParams holds optional query parameters.
type queryParams struct {
	Interval      string `json:"interval" validate:"oneof=1min 5min 15min 30min 60min"`
	OutputSize    string `json:"outputsize" validate:"omitempty,oneof=compact full"`
	Adjusted      *bool  `json:"adjusted"`
	ExtendedHours *bool  `json:"extended_hours"`
	Month         string `json:"month" validate:"omitempty,datetime=2006-01"`
	Tickers       []string
	Topics        []string
	From          time.Time
	To            time.Time
	Sort          string `json:"sort" validate:"omitempty,oneof=LATEST EARLIEST RELEVANCE"`
	Limit         int    `json:"limit" validate:"min=1,max=1000"`
}

func newQueryParams(opts []QueryOption) *queryParams {
	p := &queryParams{
		Interval: DefaultInterval,
		Limit:    DefaultNewsLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithInterval sets the intraday bar width: 1min, 5min, 15min, 30min or 60min.
func WithInterval(interval string) QueryOption {
	return func(p *queryParams) {
		p.Interval = interval
	}
}

// WithOutputSize sets compact (latest 100 bars) or full output.
func WithOutputSize(size string) QueryOption {
	return func(p *queryParams) {
		p.OutputSize = size
	}
}

// WithAdjusted toggles split/dividend adjustment of intraday bars. For
// GetTimeSeries it also selects the *_ADJUSTED daily, weekly and monthly
// functions.
func WithAdjusted(adjusted bool) QueryOption {
	return func(p *queryParams) {
		p.Adjusted = &adjusted
	}
}

// WithExtendedHours toggles pre- and post-market bars.
func WithExtendedHours(extended bool) QueryOption {
	return func(p *queryParams) {
		p.ExtendedHours = &extended
	}
}

// WithMonth requests a historical intraday month (YYYY-MM).
func WithMonth(month string) QueryOption {
	return func(p *queryParams) {
		p.Month = month
	}
}

// WithTickers filters news to articles mentioning the given tickers.
func WithTickers(tickers ...string) QueryOption {
	return func(p *queryParams) {
		p.Tickers = append(p.Tickers, tickers...)
	}
}

// WithTopics filters news by topic (e.g. "technology", "earnings").
func WithTopics(topics ...string) QueryOption {
	return func(p *queryParams) {
		p.Topics = append(p.Topics, topics...)
	}
}

// WithTimeRange limits news to articles published between from and to.
// Either bound may be zero.
func WithTimeRange(from, to time.Time) QueryOption {
	return func(p *queryParams) {
		p.From = from
		p.To = to
	}
}

// WithSort sets the news order: LATEST, EARLIEST or RELEVANCE.
func WithSort(sort string) QueryOption {
	return func(p *queryParams) {
		p.Sort = sort
	}
}

// WithLimit sets the maximum number of news items (1 to 1000).
func WithLimit(limit int) QueryOption {
	return func(p *queryParams) {
		p.Limit = limit
	}
}

// check validates option values against the sets the API accepts.
func (p *queryParams) check() error {
	if err := validate.Struct(p); err != nil {
		return paramError(err)
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.To.Before(p.From) {
		return &InvalidParameterError{Param: "time_to", Message: "must not be before time_from"}
	}
	for _, t := range p.Tickers {
		if err := checkSymbol("tickers", t); err != nil {
			return err
		}
	}
	for _, t := range p.Topics {
		if err := checkSymbol("topics", t); err != nil {
			return err
		}
	}
	return nil
}

// set copies the named options that have values into params.
func (p *queryParams) set(params url.Values, names ...string) {
	for _, name := range names {
		switch name {
		case "interval":
			params.Set(name, p.Interval)
		case "outputsize":
			if p.OutputSize != "" {
				params.Set(name, p.OutputSize)
			}
		case "adjusted":
			if p.Adjusted != nil {
				params.Set(name, strconv.FormatBool(*p.Adjusted))
			}
		case "extended_hours":
			if p.ExtendedHours != nil {
				params.Set(name, strconv.FormatBool(*p.ExtendedHours))
			}
		case "month":
			if p.Month != "" {
				params.Set(name, p.Month)
			}
		case "tickers":
			if len(p.Tickers) > 0 {
				params.Set(name, strings.Join(p.Tickers, ","))
			}
		case "topics":
			if len(p.Topics) > 0 {
				params.Set(name, strings.Join(p.Topics, ","))
			}
		case "time_from":
			if !p.From.IsZero() {
				params.Set(name, p.From.UTC().Format(NewsTimeLayout))
			}
		case "time_to":
			if !p.To.IsZero() {
				params.Set(name, p.To.UTC().Format(NewsTimeLayout))
			}
		case "sort":
			if p.Sort != "" {
				params.Set(name, p.Sort)
			}
		case "limit":
			params.Set(name, strconv.Itoa(p.Limit))
		}
	}
}

// TimeSeriesRequest addresses one series for GetTimeSeries. Symbol is the
// stock symbol, the forex base currency or the digital currency. Market is
// the crypto quote market and ToSymbol the forex quote currency.
type TimeSeriesRequest struct {
	Symbol   string
	Market   string
	ToSymbol string
	Options  []QueryOption
}

// checkSymbol rejects empty values and values containing whitespace.
func checkSymbol(param, value string) error {
	if value == "" {
		return &InvalidParameterError{Param: param, Message: "must not be empty"}
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return &InvalidParameterError{Param: param, Message: "must not contain whitespace"}
	}
	return nil
}
