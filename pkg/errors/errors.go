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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Download errors
	ErrDownload     ErrorCode = "DOWNLOAD"
	ErrFetchVersion ErrorCode = "FETCH_VERSION"

	// Installer archive errors
	ErrNoArchive     ErrorCode = "NO_ARCHIVE"
	ErrEntryNotFound ErrorCode = "ENTRY_NOT_FOUND"
	ErrZipRead       ErrorCode = "ZIP_READ"
	ErrZipExtract    ErrorCode = "ZIP_EXTRACT"

	// Install/uninstall errors
	ErrSymlinkConflict ErrorCode = "SYMLINK_CONFLICT"
	ErrSymlinkCreate   ErrorCode = "SYMLINK_CREATE"

	// Shader repository errors
	ErrGitMissing     ErrorCode = "GIT_MISSING"
	ErrRepoNotFound   ErrorCode = "REPO_NOT_FOUND"
	ErrBranchNotFound ErrorCode = "BRANCH_NOT_FOUND"
	ErrMergeConflict  ErrorCode = "MERGE_CONFLICT"
	ErrRepoSync       ErrorCode = "REPO_SYNC"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// ReshaderError represents a structured error with code and details
type ReshaderError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ReshaderError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReshaderError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ReshaderError) Is(target error) bool {
	var targetErr *ReshaderError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ReshaderError with the given code and message
func New(code ErrorCode, message string) *ReshaderError {
	return &ReshaderError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ReshaderError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ReshaderError {
	return &ReshaderError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ReshaderError
func Wrap(err error, code ErrorCode, message string) *ReshaderError {
	if err == nil {
		return nil
	}
	return &ReshaderError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ReshaderError {
	if err == nil {
		return nil
	}
	return &ReshaderError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ReshaderError) WithDetail(key string, value interface{}) *ReshaderError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rerr *ReshaderError
	if errors.As(err, &rerr) {
		return rerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ReshaderError
func GetErrorCode(err error) ErrorCode {
	var rerr *ReshaderError
	if errors.As(err, &rerr) {
		return rerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ReshaderError
func GetErrorDetails(err error) map[string]interface{} {
	var rerr *ReshaderError
	if errors.As(err, &rerr) {
		return rerr.Details
	}
	return nil
}
