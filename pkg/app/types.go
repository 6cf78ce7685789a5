package app

import (
	"errors"
	"fmt"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// OutputFormats lists the accepted values for --output
var OutputFormats = []string{FormatTable, FormatJSON, FormatYAML}

// ValidOutputFormat reports whether format is supported
func ValidOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeInvalidConfig = "INVALID_CONFIG"
	ErrCodeFileNotFound  = "FILE_NOT_FOUND"
	ErrCodeFileAccess    = "FILE_ACCESS"
	ErrCodeNoPartitions  = "NO_PARTITIONS"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode extracts the code from a CommonError anywhere in err's chain
func ErrorCode(err error) string {
	var ce *CommonError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
