package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("morning.yaml", 4, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "morning.yaml", parseErr.Path)
	require.Equal(t, 4, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: morning.yaml:4: unexpected token", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("morning.yaml", 0, stdErrors.New("empty document"))
	require.Equal(t, "parse error: morning.yaml: empty document", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("task", "task cannot be empty", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "task", validationErr.Field)
	require.Equal(t, "validation error: task: task cannot be empty", err.Error())

	err = NewValidationError("", "bad input", nil)
	require.Equal(t, "validation error: bad input", err.Error())
}

func TestNotFoundErrorIncludesKindAndID(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("no rows")
	err := NewNotFoundError("template", "abc", underlying)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "template", notFound.Kind)
	require.Equal(t, "abc", notFound.ID)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "template not found: abc", err.Error())
}

func TestConstraintErrorIncludesRule(t *testing.T) {
	t.Parallel()

	err := NewConstraintError("last_task", "cannot delete the last task", nil)

	var constraintErr *ConstraintError
	require.ErrorAs(t, err, &constraintErr)
	require.Equal(t, "last_task", constraintErr.Rule)
	require.Contains(t, err.Error(), "cannot delete the last task")
}

func TestNilReceiversAreSafe(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var validationErr *ValidationError
	var notFound *NotFoundError
	var constraintErr *ConstraintError

	require.Empty(t, parseErr.Error())
	require.Nil(t, parseErr.Unwrap())
	require.Empty(t, validationErr.Error())
	require.Nil(t, validationErr.Unwrap())
	require.Empty(t, notFound.Error())
	require.Nil(t, notFound.Unwrap())
	require.Empty(t, constraintErr.Error())
	require.Nil(t, constraintErr.Unwrap())
}
