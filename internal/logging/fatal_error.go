package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrorType classifies a fatal error
type ErrorType string

const (
	// ErrorTypeInvalidArguments represents a missing or malformed program argument
	ErrorTypeInvalidArguments ErrorType = "invalid_arguments"
	// ErrorTypeHomeUnavailable represents a home directory that cannot be determined
	ErrorTypeHomeUnavailable ErrorType = "home_directory_unavailable"
	// ErrorTypeConfigParsing represents tool configuration parsing failures
	ErrorTypeConfigParsing ErrorType = "config_parsing_failed"
	// ErrorTypeLogSetup represents log handler or log file setup failures
	ErrorTypeLogSetup ErrorType = "log_setup_failed"
	// ErrorTypeListFile represents an unreadable or malformed list file
	ErrorTypeListFile ErrorType = "list_file_invalid"
	// ErrorTypeDefaultCollision represents a white list entry that is also black listed
	ErrorTypeDefaultCollision ErrorType = "default_list_collision"
	// ErrorTypeProgramNotFound represents a program missing from PATH
	ErrorTypeProgramNotFound ErrorType = "program_not_found"
	// ErrorTypeExec represents a failed process replacement
	ErrorTypeExec ErrorType = "exec_failed"
)

// Records tagged with this message type were already written to stderr by
// HandleFatal; the DiagnosticHandler drops them.
const (
	messageTypeKey   = "message_type"
	fatalMessageType = "fatal_error"
)

// ExitCode is the status the process terminates with after a fatal error.
const ExitCode = 1

// FatalError is an error that ends the run before or instead of exec.
type FatalError struct {
	Type      ErrorType
	Message   string
	Component string
	RunID     string
	Err       error
}

// Error implements the error interface
func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v (component: %s, run_id: %s)", e.Type, e.Message, e.Err, e.Component, e.RunID)
	}
	return fmt.Sprintf("%s: %s (component: %s, run_id: %s)", e.Type, e.Message, e.Component, e.RunID)
}

// Is matches any *FatalError, so errors.Is(err, &FatalError{}) detects the class.
func (e *FatalError) Is(target error) bool {
	_, ok := target.(*FatalError)
	return ok
}

// Unwrap implements error wrapping for errors.Unwrap
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Detail is the human-readable part of the diagnostic.
func (e *FatalError) Detail() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

// HandleFatal writes the diagnostic block for err to w and records it through
// logger. The caller is expected to exit with ExitCode afterwards.
func HandleFatal(w io.Writer, logger *slog.Logger, err *FatalError) {
	// Build the block first so it reaches w in one write
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:EXIT: %s\n", DiagnosticPrefix, err.Detail())
	fmt.Fprintf(&sb, "%s:EXIT:   type: %s\n", DiagnosticPrefix, err.Type)
	if err.Component != "" {
		fmt.Fprintf(&sb, "%s:EXIT:   component: %s\n", DiagnosticPrefix, err.Component)
	}
	if err.RunID != "" {
		fmt.Fprintf(&sb, "%s:EXIT:   run_id: %s\n", DiagnosticPrefix, err.RunID)
	}
	_, _ = io.WriteString(w, sb.String())

	if logger == nil {
		return
	}
	logger.Error("Fatal error occurred",
		"error_type", string(err.Type),
		"error_message", err.Detail(),
		"component", err.Component,
		"run_id", err.RunID,
		messageTypeKey, fatalMessageType,
	)
}
