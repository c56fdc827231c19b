package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error kind in API responses.
type Code string

const (
	CodeConfiguration       Code = "CONFIGURATION_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"
	CodeBadUpstreamResponse Code = "BAD_UPSTREAM_RESPONSE"
	CodeValidationFailed    Code = "VALIDATION_FAILED"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// Kind sentinels. Every AppError matches the sentinel of its code via errors.Is.
var (
	ErrConfiguration       = errors.New("configuration error")
	ErrNotFound            = errors.New("not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrBadUpstreamResponse = errors.New("bad upstream response")
	ErrValidation          = errors.New("validation failed")
	ErrRateLimited         = errors.New("rate limited")
	ErrUnauthorized        = errors.New("unauthorized")
)

var sentinels = map[Code]error{
	CodeConfiguration:       ErrConfiguration,
	CodeNotFound:            ErrNotFound,
	CodeUpstreamUnavailable: ErrUpstreamUnavailable,
	CodeBadUpstreamResponse: ErrBadUpstreamResponse,
	CodeValidationFailed:    ErrValidation,
	CodeRateLimited:         ErrRateLimited,
	CodeUnauthorized:        ErrUnauthorized,
}

// AppError is the error type surfaced to API callers.
type AppError struct {
	Code     Code   `json:"code"`
	Message  string `json:"message"`
	Details  any    `json:"details,omitempty"`
	Err      error  `json:"-"`
	HTTPCode int    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches the kind sentinel for e.Code.
func (e *AppError) Is(target error) bool {
	s, ok := sentinels[e.Code]
	return ok && s == target
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func New(code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPCode: httpCode}
}

func NotFound(format string, args ...any) *AppError {
	return New(CodeNotFound, fmt.Sprintf(format, args...), http.StatusNotFound)
}

func Configuration(format string, args ...any) *AppError {
	return New(CodeConfiguration, fmt.Sprintf(format, args...), http.StatusInternalServerError)
}

func Validation(format string, args ...any) *AppError {
	return New(CodeValidationFailed, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

func UpstreamUnavailable(err error, format string, args ...any) *AppError {
	return Wrap(err, CodeUpstreamUnavailable, fmt.Sprintf(format, args...), http.StatusBadGateway)
}

func BadUpstreamResponse(format string, args ...any) *AppError {
	return New(CodeBadUpstreamResponse, fmt.Sprintf(format, args...), http.StatusBadGateway)
}

func RateLimited(message string) *AppError {
	return New(CodeRateLimited, message, http.StatusTooManyRequests)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternal, "internal server error", http.StatusInternalServerError)
}

// From converts any error into an AppError; unknown errors become internal errors.
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
