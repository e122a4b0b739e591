package model

import (
	"fmt"
	"strings"
)

// LanguageAll is the language filter value that disables extension filtering.
// The comparison is exact: "ALL" is treated as an extension list.
const LanguageAll = "all"

// SortMode selects the ordering of files in the bundle.
type SortMode string

const (
	// SortFilename orders files by their full path, ascending.
	SortFilename SortMode = "filename"

	// SortExtension orders files by their extension (including the leading
	// dot), ascending. Files sharing an extension keep traversal order.
	SortExtension SortMode = "extension"
)

// String returns the string representation of SortMode.
func (s SortMode) String() string {
	return string(s)
}

// IsValid checks whether the SortMode value is one of the predefined modes.
func (s SortMode) IsValid() bool {
	switch s {
	case SortFilename, SortExtension:
		return true
	default:
		return false
	}
}

// ParseSortMode converts a string to a SortMode, ignoring case.
// The returned error carries ExitConfigurationError.
func ParseSortMode(s string) (SortMode, error) {
	mode := SortMode(strings.ToLower(s))
	if !mode.IsValid() {
		return "", NewCLIError(ExitConfigurationError, "sort must be filename or extension")
	}
	return mode, nil
}

// ExcludeMode controls how the build directories (bin, debug, obj) are
// matched against candidate paths.
type ExcludeMode string

const (
	// ExcludePrefix drops every path whose string starts with <root>/bin,
	// <root>/debug or <root>/obj, ignoring case. This also drops unrelated
	// entries such as <root>/binaries/x or <root>/objects.txt.
	ExcludePrefix ExcludeMode = "prefix"

	// ExcludeSegment drops only paths whose first segment below the root
	// is exactly one of the excluded directory names, ignoring case.
	ExcludeSegment ExcludeMode = "segment"
)

// String returns the string representation of ExcludeMode.
func (m ExcludeMode) String() string {
	return string(m)
}

// IsValid checks whether the ExcludeMode value is one of the predefined modes.
func (m ExcludeMode) IsValid() bool {
	switch m {
	case ExcludePrefix, ExcludeSegment:
		return true
	default:
		return false
	}
}

// ParseExcludeMode converts a string to an ExcludeMode, ignoring case.
func ParseExcludeMode(s string) (ExcludeMode, error) {
	mode := ExcludeMode(strings.ToLower(s))
	if !mode.IsValid() {
		return "", NewCLIError(ExitConfigurationError,
			fmt.Sprintf("exclude-match must be prefix or segment, got %q", s))
	}
	return mode, nil
}

// ExcludedDirs lists the build output directory names that never
// contribute files to a bundle.
var ExcludedDirs = []string{"bin", "debug", "obj"}

// BundleRequest holds every option of a single bundle invocation.
// It is built once by the CLI layer and not modified afterwards.
type BundleRequest struct {
	// Root is the directory whose tree is bundled. Relative paths in
	// source notes are computed against it.
	Root string

	// Language is either LanguageAll or a space-separated list of
	// extensions such as ".go .md".
	Language string

	// Output is the path of the bundle file. It is created or truncated.
	Output string

	// Sort is the raw sort option as given by the user. Validate parses it.
	Sort string

	// Note prepends a "// From: <relative path>" line to each file.
	Note bool

	// RemoveEmptyLines drops zero-length lines from each file.
	RemoveEmptyLines bool

	// Author, when non-empty, is written as the first line of the bundle.
	Author string

	// Exclude selects how excluded directories are matched.
	// The zero value behaves as ExcludePrefix.
	Exclude ExcludeMode
}

// Validate checks the request invariants and returns the parsed sort mode.
// Checks run in a fixed order so the first failing option is reported.
func (r *BundleRequest) Validate() (SortMode, error) {
	if r.Language == "" {
		return "", NewCLIError(ExitConfigurationError, "must be value in language")
	}
	if r.Output == "" {
		return "", NewCLIError(ExitConfigurationError, "must be value in output")
	}
	mode, err := ParseSortMode(r.Sort)
	if err != nil {
		return "", err
	}
	if r.Exclude != "" && !r.Exclude.IsValid() {
		return "", NewCLIError(ExitConfigurationError,
			fmt.Sprintf("exclude-match must be prefix or segment, got %q", r.Exclude))
	}
	return mode, nil
}

// Extensions returns the extension tokens of the language filter, or nil
// when the filter is LanguageAll.
func (r *BundleRequest) Extensions() []string {
	if r.Language == LanguageAll {
		return nil
	}
	return strings.Fields(r.Language)
}

// ResponseAnswers holds the six values collected by the create-rsp prompts.
type ResponseAnswers struct {
	Language         string
	Output           string
	Sort             string
	Note             bool
	RemoveEmptyLines bool
	Author           string
}

// ExitCode defines the process exit codes of the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers unexpected failures and argument parsing errors.
	ExitGeneralError ExitCode = 1

	// ExitConfigurationError indicates a missing or invalid option value.
	ExitConfigurationError ExitCode = 2

	// ExitIOError indicates a filesystem access failure.
	ExitIOError ExitCode = 3
)

// Prefix returns the console prefix printed before an error of this code.
func (c ExitCode) Prefix() string {
	switch c {
	case ExitConfigurationError:
		return "boolean error"
	case ExitIOError:
		return "i/o error"
	default:
		return "error"
	}
}

// CLIError is a custom error type that carries an exit code.
// The code doubles as the error category.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
