package xerrors

import (
	"errors"
	"net/http"
	"time"
)

type Error struct {
	StatusCode int
	Message    string
	Cause      error
	RateLimit  *RateLimitInfo
}

type RateLimitInfo struct {
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func BadRequest(opts ...Option) *Error       { return newErr(http.StatusBadRequest, opts) }
func Unauthorized(opts ...Option) *Error     { return newErr(http.StatusUnauthorized, opts) }
func MethodNotAllowed(opts ...Option) *Error { return newErr(http.StatusMethodNotAllowed, opts) }
func TooManyRequests(opts ...Option) *Error  { return newErr(http.StatusTooManyRequests, opts) }
func Internal(opts ...Option) *Error         { return newErr(http.StatusInternalServerError, opts) }

func newErr(status int, opts []Option) *Error {
	e := &Error{StatusCode: status, Message: http.StatusText(status)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithCause(err error) Option    { return func(e *Error) { e.Cause = err } }

func WithRetryAfter(d time.Duration) Option {
	return func(e *Error) {
		if e.RateLimit == nil {
			e.RateLimit = &RateLimitInfo{}
		}
		e.RateLimit.RetryAfter = d
	}
}

func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
