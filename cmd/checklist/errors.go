package main

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/checklist/internal/app"
	"github.com/alexisbeaulieu97/checklist/internal/domain"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	if e.suggestion == "" {
		return fmt.Sprintf("Failed to %s: %s\n\nError: %v", e.operation, e.context, e.cause)
	}
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// suggestionFor picks a hint for the common failure kinds.
func suggestionFor(err error) string {
	var validationErr *checklisterrors.ValidationError
	var parseErr *checklisterrors.ParseError
	switch {
	case errors.Is(err, app.ErrDuplicateActive):
		return "Pass --force to start another checklist anyway."
	case errors.Is(err, domain.ErrLastTask):
		return "Delete the whole checklist instead."
	case errors.Is(err, domain.ErrNotFound):
		return "Run the matching list command to see the available IDs."
	case errors.As(err, &parseErr):
		return "Fix the file at the reported line and try again."
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Provide a valid value for %q.", validationErr.Field)
	default:
		return ""
	}
}

func failed(operation, context string, err error) error {
	return newCommandError(operation, context, err, suggestionFor(err))
}
