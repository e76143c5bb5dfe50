// Package errors provides a hierarchical error system for urimap operations.
// It implements typed errors that can be inspected and handled differently
// based on their category, enabling more precise error handling and reporting.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ErrorType represents the category of error for classification and handling.
// This enables different error handling strategies based on error type
// (e.g., skipping unreadable files vs. aborting on configuration errors).
type ErrorType string

// Error type constants define the categories of errors that can occur during
// urimap operations. Configuration, rules and pattern errors are fatal and
// stop the run before any file is touched; file and backup errors are
// isolated per target so one bad file never blocks its siblings.
const (
	ErrTypeConfig  ErrorType = "config"
	ErrTypeRules   ErrorType = "rules"
	ErrTypePattern ErrorType = "pattern"
	ErrTypeFile    ErrorType = "file"
	ErrTypeBackup  ErrorType = "backup"
)

// UrimapError is the base error type that provides structured error information.
// It implements a hierarchical error system where specific error types can be
// identified and handled appropriately. The embedded path and cause information
// enables precise error reporting and debugging.
type UrimapError struct {
	Type    ErrorType
	Path    string
	Message string
	Cause   error
}

func (e *UrimapError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *UrimapError) Unwrap() error {
	return e.Cause
}

// Is implements error identity checking for Go 1.13+ error handling.
// This method enables errors.Is() calls to work correctly with typed errors,
// allowing callers to check for specific error types in error chains.
func (e *UrimapError) Is(target error) bool {
	t, ok := target.(*UrimapError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// ConfigError represents command-line option validation errors.
// This error type enables early validation failures to halt execution
// before resource-intensive operations begin, improving user experience.
type ConfigError struct {
	*UrimapError
}

// NewConfigError creates a configuration error without path context.
// This constructor is used for general option validation failures
// that don't relate to specific files (e.g., conflicting flags).
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		UrimapError: &UrimapError{
			Type:    ErrTypeConfig,
			Message: message,
			Cause:   cause,
		},
	}
}

// NewConfigErrorWithPath creates a configuration error with file context.
// This constructor is used when configuration errors relate to specific
// files, enabling more precise error reporting and debugging.
func NewConfigErrorWithPath(path, message string, cause error) *ConfigError {
	return &ConfigError{
		UrimapError: &UrimapError{
			Type:    ErrTypeConfig,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// RulesError represents errors while loading or validating the rules file.
// This error type distinguishes malformed search/replace rules from other
// I/O errors, enabling specific error messages for bad JSON/YAML/TOML input
// and for invalid protocol values.
type RulesError struct {
	*UrimapError
}

// NewRulesError creates a rules loading or validation error.
// This constructor provides detailed context for rules file failures,
// helping users identify and fix malformed search/replace specifications.
func NewRulesError(path, message string, cause error) *RulesError {
	return &RulesError{
		UrimapError: &UrimapError{
			Type:    ErrTypeRules,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// PatternError represents a hostname or path fragment that does not compile.
// The fragments are spliced verbatim into the composite URI expression, so a
// broken fragment invalidates the whole pattern and must stop the run before
// any file is touched.
type PatternError struct {
	*UrimapError
}

// NewPatternError creates a pattern compilation error.
// The message names the offending fragment so users can tell which of the
// two rules file fragments (hostname or path) needs fixing.
func NewPatternError(message string, cause error) *PatternError {
	return &PatternError{
		UrimapError: &UrimapError{
			Type:    ErrTypePattern,
			Message: message,
			Cause:   cause,
		},
	}
}

// FileError represents file system operation errors and embeds UrimapError
// to provide file-specific context. This enables callers to distinguish
// between file errors and other types for appropriate handling strategies.
type FileError struct {
	*UrimapError
}

// NewFileError creates a file operation error with context.
// This constructor ensures consistent error classification and enables
// type-based error handling patterns throughout the application.
func NewFileError(path, message string, cause error) *FileError {
	return &FileError{
		UrimapError: &UrimapError{
			Type:    ErrTypeFile,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// FileNotFoundError represents errors when files cannot be located.
// This specialized error type lets the processor report missing targets
// distinctly from permission or write failures.
type FileNotFoundError struct {
	*FileError
}

// NewFileNotFoundError creates a file not found error.
func NewFileNotFoundError(path string, cause error) *FileNotFoundError {
	return &FileNotFoundError{
		FileError: NewFileError(path, "file not found", cause),
	}
}

// FileNotWritableError represents errors when files cannot be written to.
// This enables permission-based error handling and helps identify when
// backup restoration or alternative write strategies are needed.
type FileNotWritableError struct {
	*FileError
}

// NewFileNotWritableError creates a file write permission error.
func NewFileNotWritableError(path string, cause error) *FileNotWritableError {
	return &FileNotWritableError{
		FileError: NewFileError(path, "file not writable", cause),
	}
}

// FileNotReadableError represents errors when files cannot be read from.
// This specialized error enables skip-and-continue strategies during
// bulk file processing operations when some files are inaccessible.
type FileNotReadableError struct {
	*FileError
}

// NewFileNotReadableError creates a file read permission error.
func NewFileNotReadableError(path string, cause error) *FileNotReadableError {
	return &FileNotReadableError{
		FileError: NewFileError(path, "file not readable", cause),
	}
}

// BackupError represents errors during backup and restore operations.
// This error type enables specific handling of backup failures, allowing
// operations to continue with warnings or implement alternative backup strategies.
type BackupError struct {
	*UrimapError
}

// NewBackupError creates a backup operation error.
func NewBackupError(path, message string, cause error) *BackupError {
	return &BackupError{
		UrimapError: &UrimapError{
			Type:    ErrTypeBackup,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// WrapFileError converts standard Go errors into typed UrimapError instances.
// This function provides centralized error classification logic, ensuring
// consistent error typing across the application and enabling precise error handling.
func WrapFileError(path string, err error) error {
	if err == nil {
		return nil
	}

	absPath, _ := filepath.Abs(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return NewFileNotFoundError(absPath, err)
	case stderrors.Is(err, fs.ErrPermission):
		return NewFileNotReadableError(absPath, err)
	default:
		return NewFileError(absPath, "file operation failed", err)
	}
}
