package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Validation errors
	ErrInvalidChar     ErrorCode = "INVALID_CHAR"
	ErrInvalidWidth    ErrorCode = "INVALID_WIDTH"
	ErrInvalidBBox     ErrorCode = "INVALID_BBOX"
	ErrDimensions      ErrorCode = "HETEROGENEOUS_DIMENSIONS"
	ErrEmptyTable      ErrorCode = "EMPTY_TABLE"
	ErrMissingProperty ErrorCode = "MISSING_PROPERTY"
	ErrNoGeometry      ErrorCode = "NO_GEOMETRY"

	// Type errors
	ErrGeometryType ErrorCode = "GEOMETRY_TYPE"

	// Configuration errors
	ErrUnknownStyle     ErrorCode = "UNKNOWN_STYLE"
	ErrPaletteExhausted ErrorCode = "PALETTE_EXHAUSTED"
	ErrLayerMismatch    ErrorCode = "LAYER_MISMATCH"
	ErrConfigLoad       ErrorCode = "CONFIG_LOAD"
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"

	// Source errors
	ErrSourceOpen    ErrorCode = "SOURCE_OPEN"
	ErrSourceParse   ErrorCode = "SOURCE_PARSE"
	ErrLayerNotFound ErrorCode = "LAYER_NOT_FOUND"
)

// Category groups error codes the way callers handle them
type Category string

const (
	CategoryValidation    Category = "validation"
	CategoryType          Category = "type"
	CategoryConfiguration Category = "configuration"
	CategorySource        Category = "source"
	CategoryOther         Category = "other"
)

// CategoryOf returns the category an error code belongs to
func CategoryOf(code ErrorCode) Category {
	switch code {
	case ErrInvalidInput, ErrInvalidChar, ErrInvalidWidth, ErrInvalidBBox,
		ErrDimensions, ErrEmptyTable, ErrMissingProperty, ErrNoGeometry:
		return CategoryValidation
	case ErrGeometryType:
		return CategoryType
	case ErrUnknownStyle, ErrPaletteExhausted, ErrLayerMismatch, ErrConfigLoad, ErrConfigParse:
		return CategoryConfiguration
	case ErrSourceOpen, ErrSourceParse, ErrLayerNotFound:
		return CategorySource
	default:
		return CategoryOther
	}
}

// GeoError represents a structured error with code and details
type GeoError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GeoError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GeoError) Unwrap() error {
	return e.Wrapped
}

// Is matches any GeoError carrying the same code
func (e *GeoError) Is(target error) bool {
	var targetErr *GeoError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GeoError with the given code and message
func New(code ErrorCode, message string) *GeoError {
	return &GeoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GeoError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GeoError {
	return &GeoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GeoError
func Wrap(err error, code ErrorCode, message string) *GeoError {
	if err == nil {
		return nil
	}
	return &GeoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GeoError {
	if err == nil {
		return nil
	}
	return &GeoError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GeoError) WithDetail(key string, value interface{}) *GeoError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var geoErr *GeoError
	if errors.As(err, &geoErr) {
		return geoErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GeoError
func GetErrorCode(err error) ErrorCode {
	var geoErr *GeoError
	if errors.As(err, &geoErr) {
		return geoErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GeoError
func GetErrorDetails(err error) map[string]interface{} {
	var geoErr *GeoError
	if errors.As(err, &geoErr) {
		return geoErr.Details
	}
	return nil
}
