package alphavantage

import (
	"errors"
	"fmt"
)

// ErrorKind tags the error categories surfaced by the client.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAPIKey
	KindRateLimit
	KindInvalidParameter
	KindAPI
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindAPIKey:
		return "api_key"
	case KindRateLimit:
		return "rate_limit"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindAPI:
		return "api"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// APIKeyError reports a missing or rejected API key.
type APIKeyError struct {
	Message string
}

func (e *APIKeyError) Error() string {
	return fmt.Sprintf("Alpha Vantage API key error: %s", e.Message)
}

// RateLimitError reports that the key's call quota has been exhausted.
// The client does not retry; callers decide whether and when to.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Alpha Vantage rate limit exceeded: %s", e.Message)
}

// InvalidParameterError reports bad caller input, either rejected locally
// before any request or reported as invalid by the API.
type InvalidParameterError struct {
	Param   string
	Message string
}

func (e *InvalidParameterError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("Alpha Vantage invalid parameter: %s", e.Message)
	}
	return fmt.Sprintf("Alpha Vantage invalid parameter %q: %s", e.Param, e.Message)
}

// ValidationError reports a payload that could not be turned into a model,
// typically because its primary field (symbol, ticker, fiscal date) is
// missing. It unwraps to an *InvalidParameterError.
type ValidationError struct {
	Model  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Alpha Vantage %s validation failed on %s: %s", e.Model, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return &InvalidParameterError{Param: e.Field, Message: e.Reason}
}

// APIError is the catch-all for failure payloads that match no known
// signature.
type APIError struct {
	StatusCode int
	Message    string
	Function   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, function: %s)", e.Message, e.StatusCode, e.Function)
}

// TransportError reports a failed round trip or an undecodable body.
type TransportError struct {
	Function string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Alpha Vantage transport error (function: %s): %v", e.Function, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// KindOf returns the category of err, looking through wrapping.
func KindOf(err error) ErrorKind {
	var (
		keyErr       *APIKeyError
		rateErr      *RateLimitError
		paramErr     *InvalidParameterError
		apiErr       *APIError
		transportErr *TransportError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &keyErr):
		return KindAPIKey
	case errors.As(err, &rateErr):
		return KindRateLimit
	case errors.As(err, &paramErr):
		return KindInvalidParameter
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &transportErr):
		return KindTransport
	}
	return KindUnknown
}
