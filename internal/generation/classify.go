package generation

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// ErrorKind labels a failed attempt for logs. It never changes control flow:
// every failure moves the executor on to the next model.
type ErrorKind string

const (
	KindTransport  ErrorKind = "transport"
	KindAuth       ErrorKind = "auth"
	KindRateLimit  ErrorKind = "rate_limit"
	KindServer     ErrorKind = "server"
	KindBadRequest ErrorKind = "bad_request"
	KindTimeout    ErrorKind = "timeout"
	KindCanceled   ErrorKind = "canceled"
	KindEmptyReply ErrorKind = "empty_reply"
	KindUnknown    ErrorKind = "unknown"
)

// ClassifyError determines the kind of an attempt failure, preferring the
// status code carried by *ProviderError and falling back to the error text.
// A nil error has no kind.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrEmptyReply):
		return KindEmptyReply
	case errors.Is(err, ErrContentBlocked):
		return KindBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	}

	var perr *ProviderError
	if errors.As(err, &perr) && perr.StatusCode != 0 {
		if kind := kindForStatus(perr.StatusCode); kind != KindUnknown {
			return kind
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindTransport
	}

	return kindForMessage(err.Error())
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return KindTimeout
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindBadRequest
	default:
		return KindUnknown
	}
}

func kindForMessage(msg string) ErrorKind {
	m := strings.ToLower(msg)
	switch {
	case containsAny(m, "rate limit", "rate_limit", "too many requests", "quota"):
		return KindRateLimit
	case containsAny(m, "unauthorized", "invalid api key", "incorrect api key", "invalid_api_key", "permission denied", "forbidden"):
		return KindAuth
	case containsAny(m, "timeout", "timed out", "deadline"):
		return KindTimeout
	case containsAny(m, "connection refused", "connection reset", "no such host", "eof", "tls"):
		return KindTransport
	case containsAny(m, "overloaded", "internal server error", "bad gateway", "service unavailable"):
		return KindServer
	default:
		return KindUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
