package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/checklist/internal/app"
	"github.com/alexisbeaulieu97/checklist/internal/domain"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

// resolveTemplate accepts a full ID, a unique ID prefix or a template name.
func resolveTemplate(ctx context.Context, svc *app.TemplateService, ref string) (domain.Template, error) {
	if err := requireRef("template", ref); err != nil {
		return domain.Template{}, err
	}
	list, err := svc.List(ctx)
	if err != nil {
		return domain.Template{}, err
	}

	var matches []domain.Template
	for _, t := range list {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) || strings.EqualFold(t.Name, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Template{}, checklisterrors.NewNotFoundError("template", ref, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return domain.Template{}, checklisterrors.NewValidationError("template",
			fmt.Sprintf("%q matches %d templates, use a longer ID", ref, len(matches)), nil)
	}
}

// resolveChecklist accepts a full ID, a unique ID prefix or the name of the
// template the checklist was started from.
func resolveChecklist(ctx context.Context, svc *app.ChecklistService, ref string) (domain.Checklist, error) {
	if err := requireRef("checklist", ref); err != nil {
		return domain.Checklist{}, err
	}
	list, err := svc.List(ctx)
	if err != nil {
		return domain.Checklist{}, err
	}

	var matches []domain.Checklist
	for _, c := range list {
		if c.ID == ref {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) || strings.EqualFold(c.TemplateName, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Checklist{}, checklisterrors.NewNotFoundError("checklist", ref, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return domain.Checklist{}, checklisterrors.NewValidationError("checklist",
			fmt.Sprintf("%q matches %d checklists, use a longer ID", ref, len(matches)), nil)
	}
}

// requireRef rejects a blank reference, which would prefix-match every ID.
func requireRef(kind, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return checklisterrors.NewValidationError(kind, kind+" ID or name cannot be empty", nil)
	}
	return nil
}

// taskByNumber looks a task up by its 1-based position.
func taskByNumber(c domain.Checklist, arg string) (domain.Task, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(c.Tasks) {
		return domain.Task{}, checklisterrors.NewValidationError("task",
			fmt.Sprintf("task number must be between 1 and %d, got %q", len(c.Tasks), arg), nil)
	}
	return c.Tasks[n-1], nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
