package models

import "fmt"

const (
	// ErrCodeFetchFailed: no engine returned a 200 page with a body.
	ErrCodeFetchFailed = "FETCH_FAILED"
	// ErrCodeBlocked: every fetch attempt came back as an anti-bot page.
	ErrCodeBlocked = "BLOCKED"
	// ErrCodeStrategyFailed: one cascade strategy errored or panicked. The
	// message is the strategy's method name and the cascade moves on.
	ErrCodeStrategyFailed = "STRATEGY_FAILED"

	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ExtractError carries one of the codes above through fetch, cascade and
// handler layers.
type ExtractError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ExtractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

func NewExtractError(code, message string, err error) *ExtractError {
	return &ExtractError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ExtractError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
