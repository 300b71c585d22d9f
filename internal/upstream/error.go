package upstream

import (
	"errors"
	"log/slog"
	"net/http"

	"roomstay-admin/internal/pkg/errs"
)

type ErrorKind string

type APIError struct {
	Kind ErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e APIError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e APIError) Unwrap() error {
	return e.err
}

// Message is the upstream's own human-readable explanation, verbatim
// where the envelope carried one.
func (e APIError) Message() string {
	return e.msg
}

func WrapAPIErr(slogger *slog.Logger, kind ErrorKind, msg string, err error) error {
	slogger.Error("Upstream error: "+msg, slog.String("kind", string(kind)))

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return APIError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind ErrorKind) bool {
	var e APIError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Upstream-specific error kinds
const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindValidation   ErrorKind = "VALIDATION"
	KindServer       ErrorKind = "SERVER_ERROR"
	KindUnavailable  ErrorKind = "UNAVAILABLE"
)

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// authoritative reports whether an error settles the logical call: a
// wrong candidate path shows up as NOT_FOUND/UNAVAILABLE noise, but a
// permission or validation answer is about the payload, not the path.
func authoritative(err error) bool {
	return IsKind(err, KindForbidden) ||
		IsKind(err, KindUnauthorized) ||
		IsKind(err, KindValidation)
}
