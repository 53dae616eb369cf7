package errors

import (
	"fmt"
)

// ParseError represents a template document parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures user input or configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFoundError reports a lookup of a template, checklist or task that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
	Err  error
}

// NewNotFoundError constructs a NotFoundError for the given entity kind.
func NewNotFoundError(kind, id string, err error) error {
	return &NotFoundError{Kind: kind, ID: id, Err: err}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Kind)
}

// Unwrap exposes the root error.
func (e *NotFoundError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConstraintError indicates an operation refused because it would break a data rule,
// such as removing the last task of a checklist.
type ConstraintError struct {
	Rule    string
	Message string
	Err     error
}

// NewConstraintError constructs a ConstraintError for the given rule.
func NewConstraintError(rule, message string, err error) error {
	return &ConstraintError{Rule: rule, Message: message, Err: err}
}

func (e *ConstraintError) Error() string {
	if e == nil {
		return ""
	}
	if e.Rule != "" {
		return fmt.Sprintf("constraint error [%s]: %s", e.Rule, e.Message)
	}
	return fmt.Sprintf("constraint error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConstraintError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
