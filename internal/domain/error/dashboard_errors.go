// Package error defines domain-specific errors for the RealtyTrack application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidRange is returned when the reporting range is not month, quarter or year.
	ErrInvalidRange = errors.New("range must be: month, quarter, or year")

	// ErrChartUnavailable is returned when there is no trend data to draw.
	ErrChartUnavailable = errors.New("no trend data to chart")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRange DashboardErrorCode = "DSH-010004"

	// Data errors (02XXXX)
	ErrCodeChartUnavailable DashboardErrorCode = "DSH-020001"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
