// Package errors defines the stable error codes used across the engine.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// RevisionInvalid indicates a revision string failed allow-list validation
	RevisionInvalid ErrorCode = "REVISION_INVALID"
	// RevisionUnresolved indicates a revision does not resolve to a commit
	RevisionUnresolved ErrorCode = "REVISION_UNRESOLVED"
	// RootMissing indicates the repository root path does not exist
	RootMissing ErrorCode = "ROOT_MISSING"
	// SchemaUnsupported indicates a persisted graph has an unrecognized schema version
	SchemaUnsupported ErrorCode = "SCHEMA_UNSUPPORTED"
	// GraphUnreadable indicates the persisted graph file could not be read
	GraphUnreadable ErrorCode = "GRAPH_UNREADABLE"
	// GitUnavailable indicates the git subprocess could not be run
	GitUnavailable ErrorCode = "GIT_UNAVAILABLE"
	// ParserUnavailable indicates no syntax provider is compiled in
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Safe        bool   `json:"safe,omitempty"`
	Description string `json:"description,omitempty"`
}

// EngineError represents a routelens error with code, message, and suggestions
type EngineError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new EngineError
func New(code ErrorCode, message string, cause error) *EngineError {
	return &EngineError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: errorActions[code],
	}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *EngineError) WithDetails(details interface{}) *EngineError {
	e.Details = details
	return e
}

// errorActions maps error codes to suggested fix actions
var errorActions = map[ErrorCode][]FixAction{
	RevisionUnresolved: {
		{
			Command:     "git fetch --all",
			Safe:        true,
			Description: "Fetch remote refs so the revision can resolve",
		},
	},
	GraphUnreadable: {
		{
			Command:     "routelens extract",
			Safe:        true,
			Description: "Rebuild the interaction graph",
		},
	},
	SchemaUnsupported: {
		{
			Command:     "routelens extract",
			Safe:        true,
			Description: "Regenerate the graph with the current schema version",
		},
	},
	GitUnavailable: {
		{
			Command:     "git status",
			Safe:        true,
			Description: "Verify git is installed and the directory is a repository",
		},
	},
}
