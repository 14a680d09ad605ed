package errors

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	// Input validation errors
	ErrInvalidHorizon     = errors.New("forecast horizon must be positive")
	ErrInvalidSeries      = errors.New("invalid demand series")
	ErrInvalidObservation = errors.New("invalid demand observation")
	ErrInsufficientData   = errors.New("insufficient historical observations")
	ErrUnknownMethod      = errors.New("unknown forecast method")
	ErrLengthMismatch     = errors.New("actual and predicted series lengths differ")

	// Numerical errors
	ErrNumericalDegeneracy = errors.New("numerical degeneracy in input series")

	// Forecast errors
	ErrForecastFailed  = errors.New("demand forecast failed")
	ErrStrategyFailed  = errors.New("forecast strategy failed")
	ErrEnsembleAborted = errors.New("ensemble forecast aborted")

	// Optimization errors
	ErrOptimizationFailed = errors.New("demand optimization failed")
	ErrInvalidPricing     = errors.New("current pricing must be positive")
	ErrEmptyForecast      = errors.New("forecast contains no points")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrConfigurationLoad    = errors.New("failed to load configuration")

	// Internal errors
	ErrInternal = errors.New("internal error")
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeForecast      ErrorType = "forecast"
	ErrorTypeNumerical     ErrorType = "numerical"
	ErrorTypeOptimization  ErrorType = "optimization"
	ErrorTypeEvaluation    ErrorType = "evaluation"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents an application-specific error with additional context
type AppError struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with application context
func WrapError(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *AppError {
	return NewAppError(ErrorTypeValidation, code, message)
}

// NewForecastError creates a forecast error
func NewForecastError(code, message string) *AppError {
	return NewAppError(ErrorTypeForecast, code, message)
}

// NewOptimizationError creates an optimization error
func NewOptimizationError(code, message string) *AppError {
	return NewAppError(ErrorTypeOptimization, code, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, CodeInternalError, message)
}

// NewInsufficientDataError reports fewer observations than the forecast
// minimum. Raised before any computation begins.
func NewInsufficientDataError(got, want int) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    CodeInsufficientData,
		Message: fmt.Sprintf("at least %d historical observations required, got %d", want, got),
		Cause:   ErrInsufficientData,
	}
}

// NewUnknownMethodError reports an unrecognized forecast method name.
func NewUnknownMethodError(method string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    CodeUnknownMethod,
		Message: fmt.Sprintf("unknown forecast method %q", method),
		Cause:   ErrUnknownMethod,
	}
}

// NewLengthMismatchError reports actual/predicted sequences of unequal length.
func NewLengthMismatchError(actual, predicted int) *AppError {
	return &AppError{
		Type:    ErrorTypeEvaluation,
		Code:    CodeLengthMismatch,
		Message: fmt.Sprintf("actual has %d values, predicted has %d", actual, predicted),
		Cause:   ErrLengthMismatch,
	}
}

// NewNumericalDegeneracyError reports a degenerate numeric input (zero
// denominators, zero-mean series) that the configured policy chose to
// surface rather than substitute.
func NewNumericalDegeneracyError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNumerical,
		Code:    CodeNumericalDegeneracy,
		Message: message,
		Cause:   ErrNumericalDegeneracy,
	}
}

// IsInsufficientData reports whether err is an insufficient-data error.
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

// IsUnknownMethod reports whether err is an unknown-method error.
func IsUnknownMethod(err error) bool {
	return errors.Is(err, ErrUnknownMethod)
}

// IsLengthMismatch reports whether err is a length-mismatch error.
func IsLengthMismatch(err error) bool {
	return errors.Is(err, ErrLengthMismatch)
}

// Error codes for different error scenarios
const (
	// Validation error codes
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidHorizon   = "INVALID_HORIZON"
	CodeInvalidSeries    = "INVALID_SERIES"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeUnknownMethod    = "UNKNOWN_METHOD"

	// Forecast error codes
	CodeForecastFailed  = "FORECAST_FAILED"
	CodeStrategyFailed  = "STRATEGY_FAILED"
	CodeEnsembleAborted = "ENSEMBLE_ABORTED"

	// Numerical error codes
	CodeNumericalDegeneracy = "NUMERICAL_DEGENERACY"

	// Optimization error codes
	CodeOptimizationFailed = "OPTIMIZATION_FAILED"
	CodeInvalidPricing     = "INVALID_PRICING"
	CodeEmptyForecast      = "EMPTY_FORECAST"

	// Evaluation error codes
	CodeLengthMismatch = "LENGTH_MISMATCH"

	// Configuration error codes
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeConfigurationLoad    = "CONFIGURATION_LOAD"

	// Internal error codes
	CodeInternalError = "INTERNAL_ERROR"
)
