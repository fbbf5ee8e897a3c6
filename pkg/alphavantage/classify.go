package alphavantage

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Message keys the API uses instead of data when something is wrong.
const (
	keyErrorMessage = "Error Message"
	keyNote         = "Note"
	keyInformation  = "Information"
)

var (
	keyRejectionPattern = regexp.MustCompile(`(?i)(api ?key (is )?(invalid|missing|not valid)|invalid api ?key|demo\W*api ?key|claim your free api ?key)`)
	rateLimitPattern    = regexp.MustCompile(`(?i)(call frequency|rate limit|(requests|calls) per (day|minute|second))`)
	invalidParamPattern = regexp.MustCompile(`(?i)(invalid api call|invalid (symbol|parameter|interval|market|currency)|does not exist|not found)`)
)

// Classify inspects a raw payload and its HTTP status for known failure
// signatures. It returns nil when the payload looks like data and contains
// every key in expectedKeys.
func Classify(body []byte, statusCode int, expectedKeys ...string) error {
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return &APIKeyError{Message: firstNonEmpty(messageOf(body), http.StatusText(statusCode))}
	}

	root := gjson.ParseBytes(body)
	errorMessage := root.Get(gjson.Escape(keyErrorMessage)).String()
	note := root.Get(keyNote).String()
	information := root.Get(keyInformation).String()

	// Key rejection wins over rate limiting when a message mentions both.
	for _, msg := range []string{errorMessage, note, information} {
		if msg != "" && keyRejectionPattern.MatchString(msg) {
			return &APIKeyError{Message: msg}
		}
	}

	for _, msg := range []string{note, information} {
		if msg != "" && rateLimitPattern.MatchString(msg) {
			return &RateLimitError{Message: msg}
		}
	}

	if errorMessage != "" {
		if invalidParamPattern.MatchString(errorMessage) {
			return &InvalidParameterError{Message: errorMessage}
		}
		return &APIError{StatusCode: statusCode, Message: errorMessage}
	}

	if statusCode < 200 || statusCode >= 300 {
		return &APIError{StatusCode: statusCode, Message: firstNonEmpty(messageOf(body), http.StatusText(statusCode))}
	}

	if !root.IsObject() {
		return &APIError{StatusCode: statusCode, Message: "unexpected payload: " + truncate(string(body), 200)}
	}

	dataKeys := 0
	root.ForEach(func(key, _ gjson.Result) bool {
		switch key.Str {
		case keyErrorMessage, keyNote, keyInformation:
		default:
			dataKeys++
		}
		return true
	})
	if dataKeys == 0 && (note != "" || information != "") {
		return &APIError{StatusCode: statusCode, Message: firstNonEmpty(information, note)}
	}

	for _, key := range expectedKeys {
		if !root.Get(gjson.Escape(key)).Exists() {
			return &APIError{
				StatusCode: statusCode,
				Message:    firstNonEmpty(information, note, "response is missing expected key "+key),
			}
		}
	}

	return nil
}

// messageOf extracts a human-readable message from an error body, whether
// or not it is JSON.
func messageOf(body []byte) string {
	if gjson.ValidBytes(body) {
		root := gjson.ParseBytes(body)
		for _, key := range []string{keyErrorMessage, keyInformation, keyNote, "message", "error"} {
			if v := root.Get(gjson.Escape(key)); v.Type == gjson.String && v.Str != "" {
				return v.Str
			}
		}
	}
	return truncate(strings.TrimSpace(string(body)), 200)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
