package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the base interface for all sink errors
type AppError interface {
	error
	HTTPStatus() int
	Code() string
}

// ConfigurationError represents invalid or missing sink configuration.
// It is raised synchronously at construction, before any connection attempt.
type ConfigurationError struct {
	Option  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("configuration error on option '%s': %s", e.Option, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *ConfigurationError) Code() string {
	return "CONFIGURATION_ERROR"
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(option, message string) *ConfigurationError {
	return &ConfigurationError{Option: option, Message: message}
}

// SchemaError represents a failed table-creation statement.
// Construction of the sink must fail when this is returned.
type SchemaError struct {
	Table string
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("failed to ensure table '%s': %v", e.Table, e.Cause)
}

func (e *SchemaError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *SchemaError) Code() string {
	return "SCHEMA_ERROR"
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(table string, cause error) *SchemaError {
	return &SchemaError{Table: table, Cause: cause}
}

// WriteError represents a failed insert. The database error is carried
// unmodified in Cause; no retry is attempted.
type WriteError struct {
	Table string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write log record to '%s': %v", e.Table, e.Cause)
}

func (e *WriteError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *WriteError) Code() string {
	return "WRITE_ERROR"
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// NewWriteError creates a new WriteError
func NewWriteError(table string, cause error) *WriteError {
	return &WriteError{Table: table, Cause: cause}
}

// ReadError represents a failed select or count statement
type ReadError struct {
	Table string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to query '%s': %v", e.Table, e.Cause)
}

func (e *ReadError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *ReadError) Code() string {
	return "READ_ERROR"
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// NewReadError creates a new ReadError
func NewReadError(table string, cause error) *ReadError {
	return &ReadError{Table: table, Cause: cause}
}

// ValidationError represents invalid caller input (unknown column, bad
// operator, malformed request body)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

func (e *ValidationError) Code() string {
	return "VALIDATION_ERROR"
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Helper functions for error checking

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var cfg *ConfigurationError
	return errors.As(err, &cfg)
}

// IsSchema checks if an error is a SchemaError
func IsSchema(err error) bool {
	var schema *SchemaError
	return errors.As(err, &schema)
}

// IsWrite checks if an error is a WriteError
func IsWrite(err error) bool {
	var write *WriteError
	return errors.As(err, &write)
}

// IsRead checks if an error is a ReadError
func IsRead(err error) bool {
	var read *ReadError
	return errors.As(err, &read)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}

// GetHTTPStatus returns the HTTP status code for an error
// Returns 500 if the error doesn't implement AppError
func GetHTTPStatus(err error) int {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// GetErrorCode returns the error code for an error
// Returns "UNKNOWN_ERROR" if the error doesn't implement AppError
func GetErrorCode(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}
	return "UNKNOWN_ERROR"
}
