package alphavantage

import (
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v6"
	"github.com/tidwall/gjson"
)

const (
	// DateLayout is the layout of calendar dates in Alpha Vantage payloads.
	DateLayout = "2006-01-02"

	// TimestampLayout is the layout of news publication times.
	TimestampLayout = "20060102T150405"
)

// absent reports whether s is one of the placeholders the API uses for
// "not reported".
func absent(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "-", "null", "n/a", "nan":
		return true
	}
	return false
}

// Float is a numeric field that the API renders as a JSON number, a numeric
// string or the literal "None". Unparseable input decodes to the absent
// value, never to zero.
type Float struct {
	null.Float
}

// FloatOf returns a present Float.
func FloatOf(v float64) Float {
	return Float{null.FloatFrom(v)}
}

// UnmarshalJSON never fails: malformed input leaves the field absent.
func (f *Float) UnmarshalJSON(data []byte) error {
	*f = parseFloat(gjson.ParseBytes(data))
	return nil
}

// MarshalYAML renders absent values as YAML null.
func (f Float) MarshalYAML() (interface{}, error) {
	if !f.Valid {
		return nil, nil
	}
	return f.ValueOrZero(), nil
}

func parseFloat(r gjson.Result) Float {
	switch r.Type {
	case gjson.Number:
		return FloatOf(r.Float())
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		if absent(s) {
			return Float{}
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Float{}
		}
		return FloatOf(v)
	}
	return Float{}
}

// Int is an integer field with the same tolerance rules as Float. Numeric
// strings with a fractional part of zero ("1200.0") are accepted.
type Int struct {
	null.Int
}

// IntOf returns a present Int.
func IntOf(v int64) Int {
	return Int{null.IntFrom(v)}
}

// UnmarshalJSON never fails: malformed input leaves the field absent.
func (i *Int) UnmarshalJSON(data []byte) error {
	*i = parseInt(gjson.ParseBytes(data))
	return nil
}

// MarshalYAML renders absent values as YAML null.
func (i Int) MarshalYAML() (interface{}, error) {
	if !i.Valid {
		return nil, nil
	}
	return i.ValueOrZero(), nil
}

func parseInt(r gjson.Result) Int {
	var s string
	switch r.Type {
	case gjson.Number:
		s = r.Raw
	case gjson.String:
		s = strings.TrimSpace(r.Str)
	default:
		return Int{}
	}
	if absent(s) {
		return Int{}
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntOf(v)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return Int{}
	}
	return IntOf(int64(f))
}

// Percent is a percentage rendered either as a number or as a string with
// a trailing "%" ("3.1416%"). The value is kept in percentage points.
type Percent struct {
	null.Float
}

// PercentOf returns a present Percent.
func PercentOf(v float64) Percent {
	return Percent{null.FloatFrom(v)}
}

// UnmarshalJSON never fails: malformed input leaves the field absent.
func (p *Percent) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	if r.Type == gjson.String {
		r = gjson.Result{Type: gjson.String, Str: strings.TrimSuffix(strings.TrimSpace(r.Str), "%")}
	}
	*p = Percent{parseFloat(r).Float}
	return nil
}

// MarshalYAML renders absent values as YAML null.
func (p Percent) MarshalYAML() (interface{}, error) {
	if !p.Valid {
		return nil, nil
	}
	return p.ValueOrZero(), nil
}

// Date is a calendar date ("2024-09-30"). Placeholders and unparseable
// strings decode to the absent value.
type Date struct {
	null.Time
}

// DateOf returns a present Date.
func DateOf(t time.Time) Date {
	return Date{null.TimeFrom(t)}
}

// UnmarshalJSON never fails: malformed input leaves the field absent.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date{parseTime(gjson.ParseBytes(data), DateLayout)}
	return nil
}

// MarshalJSON renders the date in DateLayout.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.String())), nil
}

// MarshalYAML renders the date in DateLayout.
func (d Date) MarshalYAML() (interface{}, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.String(), nil
}

// String returns the date in DateLayout, or "" when absent.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.ValueOrZero().Format(DateLayout)
}

// Timestamp is a news publication time ("20240105T143000"), interpreted
// as UTC.
type Timestamp struct {
	null.Time
}

// TimestampOf returns a present Timestamp.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{null.TimeFrom(t)}
}

// UnmarshalJSON never fails: malformed input leaves the field absent.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{parseTime(gjson.ParseBytes(data), TimestampLayout)}
	return nil
}

// MarshalJSON renders the time in TimestampLayout so the value decodes back
// unchanged.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(ts.ValueOrZero().UTC().Format(TimestampLayout))), nil
}

// MarshalYAML renders the time in RFC 3339.
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	if !ts.Valid {
		return nil, nil
	}
	return ts.ValueOrZero().Format(time.RFC3339), nil
}

func parseTime(r gjson.Result, layout string) null.Time {
	if r.Type != gjson.String || absent(r.Str) {
		return null.Time{}
	}
	t, err := time.Parse(layout, strings.TrimSpace(r.Str))
	if err != nil {
		return null.Time{}
	}
	return null.TimeFrom(t)
}
