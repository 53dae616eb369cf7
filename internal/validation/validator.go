// Package validation holds the validator instance shared by the config and
// template document packages, plus the conversion of its errors into the
// project's typed ValidationError.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	levelNames    = map[string]struct{}{"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "disabled": {}}
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			_, ok := levelNames[strings.ToLower(fl.Field().String())]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// Struct validates s and returns the first failure as a ValidationError.
func Struct(s any) error {
	return Convert(Validator().Struct(s), "document")
}

// Convert maps validator errors onto ValidationError. fallback names the field
// for errors that did not come from the validator.
func Convert(err error, fallback string) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := FieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return checklisterrors.NewValidationError(field, msg, err)
	}

	return checklisterrors.NewValidationError(fallback, err.Error(), err)
}

// FieldName renders the failing field as a lower-cased dotted path without the
// root struct name, e.g. "steps[1]" or "editor.rowheight".
func FieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
