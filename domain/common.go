package domain

import (
	"errors"
	"fmt"
	"os"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")

	ErrMissingAPIKey   = errors.New("service credential not configured")
	ErrUpstreamTimeout = errors.New("upstream request timed out")
)

// UpstreamError carries the status and message of a failed dependent HTTP
// call so handlers can pass the upstream status through.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream call failed: %d %s", e.StatusCode, e.Message)
}

// UpstreamBlockedError is returned when the AI service declines to answer.
type UpstreamBlockedError struct {
	Reason string
}

func (e *UpstreamBlockedError) Error() string {
	return fmt.Sprintf("upstream service declined to answer: %s", e.Reason)
}

// UpstreamFormatError is returned when the AI service replies with JSON that
// cannot be parsed or is missing mandatory fields. Raw keeps the unparsed
// reply for diagnostics.
type UpstreamFormatError struct {
	Raw string
	Err error
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("unexpected upstream reply format: %v", e.Err)
}

func (e *UpstreamFormatError) Unwrap() error { return e.Err }
