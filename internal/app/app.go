// Package app holds the use cases shared by the CLI and the terminal UI.
package app

import (
	"errors"
	"fmt"
)

// ErrDuplicateActive is wrapped by DuplicateActiveError.
var ErrDuplicateActive = errors.New("template already has an active checklist")

// DuplicateActiveError reports that starting a checklist would create another
// live instance of the same template.
type DuplicateActiveError struct {
	TemplateID   string
	TemplateName string
	Active       int
}

func (e *DuplicateActiveError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%q already has %d active checklist(s)", e.TemplateName, e.Active)
}

// Unwrap exposes ErrDuplicateActive.
func (e *DuplicateActiveError) Unwrap() error {
	return ErrDuplicateActive
}
