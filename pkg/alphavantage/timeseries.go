package alphavantage

import (
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// AssetClass selects the family of time-series functions.
type AssetClass string

const (
	AssetStock  AssetClass = "stock"
	AssetForex  AssetClass = "forex"
	AssetCrypto AssetClass = "crypto"
)

// Granularity selects the bar width of a time series.
type Granularity string

const (
	Intraday Granularity = "intraday"
	Daily    Granularity = "daily"
	Weekly   Granularity = "weekly"
	Monthly  Granularity = "monthly"
)

const (
	metaDataKey     = "Meta Data"
	seriesKeyMarker = "Time Series"
)

// numberedPrefix and currencySuffix match the ordinal prefix ("1. ", "1a. ")
// and currency suffix (" (USD)") the API puts on series keys.
var (
	numberedPrefix = regexp.MustCompile(`^\d+[a-z]?\.\s*`)
	currencySuffix = regexp.MustCompile(`\s*\([^)]*\)$`)
)

func normalizeKey(key string) string {
	key = numberedPrefix.ReplaceAllString(key, "")
	key = currencySuffix.ReplaceAllString(key, "")
	return strings.ToLower(strings.TrimSpace(key))
}

// SeriesMeta is the "Meta Data" block of a time-series payload. Fields that
// do not apply to an asset class are left empty.
type SeriesMeta struct {
	Information         string `json:"information,omitempty" yaml:"information,omitempty"`
	Symbol              string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	FromSymbol          string `json:"from_symbol,omitempty" yaml:"from_symbol,omitempty"`
	ToSymbol            string `json:"to_symbol,omitempty" yaml:"to_symbol,omitempty"`
	DigitalCurrencyCode string `json:"digital_currency_code,omitempty" yaml:"digital_currency_code,omitempty"`
	DigitalCurrencyName string `json:"digital_currency_name,omitempty" yaml:"digital_currency_name,omitempty"`
	MarketCode          string `json:"market_code,omitempty" yaml:"market_code,omitempty"`
	MarketName          string `json:"market_name,omitempty" yaml:"market_name,omitempty"`
	LastRefreshed       string `json:"last_refreshed,omitempty" yaml:"last_refreshed,omitempty"`
	Interval            string `json:"interval,omitempty" yaml:"interval,omitempty"`
	OutputSize          string `json:"output_size,omitempty" yaml:"output_size,omitempty"`
	TimeZone            string `json:"time_zone,omitempty" yaml:"time_zone,omitempty"`
}

// Subject returns the instrument the series describes: the symbol, the
// currency pair or the digital currency/market pair.
func (m SeriesMeta) Subject() string {
	switch {
	case m.Symbol != "":
		return m.Symbol
	case m.FromSymbol != "":
		return m.FromSymbol + "/" + m.ToSymbol
	case m.DigitalCurrencyCode != "":
		return m.DigitalCurrencyCode + "/" + m.MarketCode
	}
	return ""
}

func parseSeriesMeta(r gjson.Result) SeriesMeta {
	var m SeriesMeta
	r.ForEach(func(key, value gjson.Result) bool {
		v := value.String()
		switch normalizeKey(key.Str) {
		case "information":
			m.Information = v
		case "symbol":
			m.Symbol = v
		case "from symbol":
			m.FromSymbol = v
		case "to symbol":
			m.ToSymbol = v
		case "digital currency code":
			m.DigitalCurrencyCode = v
		case "digital currency name":
			m.DigitalCurrencyName = v
		case "market code":
			m.MarketCode = v
		case "market name":
			m.MarketName = v
		case "last refreshed":
			m.LastRefreshed = v
		case "interval":
			m.Interval = v
		case "output size":
			m.OutputSize = v
		case "time zone":
			m.TimeZone = v
		}
		return true
	})
	return m
}

// Bar is one OHLCV record. Fields an endpoint does not report are absent.
type Bar struct {
	Time             string `json:"time" yaml:"time" validate:"required"`
	Open             Float  `json:"open" yaml:"open"`
	High             Float  `json:"high" yaml:"high"`
	Low              Float  `json:"low" yaml:"low"`
	Close            Float  `json:"close" yaml:"close"`
	AdjustedClose    Float  `json:"adjusted_close" yaml:"adjusted_close"`
	Volume           Float  `json:"volume" yaml:"volume"`
	DividendAmount   Float  `json:"dividend_amount" yaml:"dividend_amount"`
	SplitCoefficient Float  `json:"split_coefficient" yaml:"split_coefficient"`
	MarketCap        Float  `json:"market_cap" yaml:"market_cap"`
}

// ParseTime parses the bar timestamp, which is a date for daily and longer
// series and a date-time for intraday ones.
func (b Bar) ParseTime() (time.Time, error) {
	if len(b.Time) == len(DateLayout) {
		return time.Parse(DateLayout, b.Time)
	}
	return time.Parse("2006-01-02 15:04:05", b.Time)
}

// parseBar reads the numbered OHLCV keys. When a key appears more than once
// after normalisation (crypto "1a. open (CNY)" and "1b. open (USD)"), the
// first occurrence wins.
func parseBar(ts string, r gjson.Result) Bar {
	b := Bar{Time: ts}
	seen := map[string]bool{}
	r.ForEach(func(key, value gjson.Result) bool {
		name := normalizeKey(key.Str)
		if seen[name] {
			return true
		}
		seen[name] = true
		switch name {
		case "open":
			b.Open = parseFloat(value)
		case "high":
			b.High = parseFloat(value)
		case "low":
			b.Low = parseFloat(value)
		case "close":
			b.Close = parseFloat(value)
		case "adjusted close":
			b.AdjustedClose = parseFloat(value)
		case "volume":
			b.Volume = parseFloat(value)
		case "dividend amount":
			b.DividendAmount = parseFloat(value)
		case "split coefficient":
			b.SplitCoefficient = parseFloat(value)
		case "market cap":
			b.MarketCap = parseFloat(value)
		}
		return true
	})
	return b
}

// TimeSeries is a decoded stock, forex or crypto series. Bars keep the
// order of the payload, which is newest first.
type TimeSeries struct {
	Meta  SeriesMeta `json:"meta" yaml:"meta"`
	Bars  []Bar      `json:"bars" yaml:"bars" validate:"dive"`
	index map[string]int
}

// UnmarshalJSON walks the payload in key order so that Bars matches the
// API ordering.
func (s *TimeSeries) UnmarshalJSON(data []byte) error {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return &ValidationError{Model: "TimeSeries", Field: "(payload)", Reason: "expected a JSON object"}
	}

	// Re-marshalled values carry the lowercase keys.
	if root.Get("bars").Exists() || root.Get("meta").Exists() {
		return s.unmarshalFlat(root)
	}

	var series gjson.Result
	var found bool
	root.ForEach(func(key, value gjson.Result) bool {
		if strings.Contains(key.Str, seriesKeyMarker) {
			series, found = value, true
			return false
		}
		return true
	})
	if !found {
		return &ValidationError{Model: "TimeSeries", Field: seriesKeyMarker, Reason: "required field is missing"}
	}
	if !series.IsObject() {
		return &ValidationError{Model: "TimeSeries", Field: seriesKeyMarker, Reason: "expected a JSON object"}
	}

	out := TimeSeries{
		Meta:  parseSeriesMeta(root.Get(gjson.Escape(metaDataKey))),
		index: map[string]int{},
	}
	var bad string
	series.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			bad = key.Str
			return false
		}
		out.index[key.Str] = len(out.Bars)
		out.Bars = append(out.Bars, parseBar(key.Str, value))
		return true
	})
	if bad != "" {
		return &ValidationError{Model: "TimeSeries", Field: seriesKeyMarker + "." + bad, Reason: "expected a JSON object"}
	}

	*s = out
	return nil
}

func (s *TimeSeries) unmarshalFlat(root gjson.Result) error {
	out := TimeSeries{index: map[string]int{}}
	meta := root.Get("meta")
	out.Meta = SeriesMeta{
		Information:         meta.Get("information").String(),
		Symbol:              meta.Get("symbol").String(),
		FromSymbol:          meta.Get("from_symbol").String(),
		ToSymbol:            meta.Get("to_symbol").String(),
		DigitalCurrencyCode: meta.Get("digital_currency_code").String(),
		DigitalCurrencyName: meta.Get("digital_currency_name").String(),
		MarketCode:          meta.Get("market_code").String(),
		MarketName:          meta.Get("market_name").String(),
		LastRefreshed:       meta.Get("last_refreshed").String(),
		Interval:            meta.Get("interval").String(),
		OutputSize:          meta.Get("output_size").String(),
		TimeZone:            meta.Get("time_zone").String(),
	}
	for _, r := range root.Get("bars").Array() {
		b := Bar{
			Time:             r.Get("time").String(),
			Open:             parseFloat(r.Get("open")),
			High:             parseFloat(r.Get("high")),
			Low:              parseFloat(r.Get("low")),
			Close:            parseFloat(r.Get("close")),
			AdjustedClose:    parseFloat(r.Get("adjusted_close")),
			Volume:           parseFloat(r.Get("volume")),
			DividendAmount:   parseFloat(r.Get("dividend_amount")),
			SplitCoefficient: parseFloat(r.Get("split_coefficient")),
			MarketCap:        parseFloat(r.Get("market_cap")),
		}
		out.index[b.Time] = len(out.Bars)
		out.Bars = append(out.Bars, b)
	}
	*s = out
	return nil
}

// Lookup returns the bar recorded at timestamp, exactly as it appears in the
// payload ("2024-01-05" or "2024-01-05 16:00:00").
func (s *TimeSeries) Lookup(timestamp string) (Bar, bool) {
	if s.index == nil {
		for _, b := range s.Bars {
			if b.Time == timestamp {
				return b, true
			}
		}
		return Bar{}, false
	}
	i, ok := s.index[timestamp]
	if !ok {
		return Bar{}, false
	}
	return s.Bars[i], true
}

// Latest returns the first bar of the series, which the API orders newest
// first.
func (s *TimeSeries) Latest() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[0], true
}
