package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is wrapped by repositories when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLastTask is returned when deleting the only task of a checklist.
	ErrLastTask = errors.New("cannot delete the last task")
)

// TemplateRepository persists templates and their ordered steps.
type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]Template, error)
	GetTemplate(ctx context.Context, id string) (Template, error)
	CreateTemplate(ctx context.Context, name string) (string, error)
	// UpdateTemplate replaces the name and the full ordered step list.
	UpdateTemplate(ctx context.Context, t Template) error
	DeleteTemplate(ctx context.Context, id string) error
}

// ChecklistRepository persists checklists and their tasks.
type ChecklistRepository interface {
	ListChecklists(ctx context.Context) ([]Checklist, error)
	GetChecklist(ctx context.Context, id string) (Checklist, error)
	CreateChecklistFromTemplate(ctx context.Context, templateID string) (string, error)
	SetTaskCompleted(ctx context.Context, checklistID, taskID string, completed bool) error
	UpdateTaskText(ctx context.Context, checklistID, taskID, text string) error
	AddTask(ctx context.Context, checklistID, text string) (string, error)
	DeleteTask(ctx context.Context, checklistID, taskID string) error
	DeleteChecklist(ctx context.Context, id string) error
	CountChecklistsForTemplate(ctx context.Context, templateID string) (int, error)
}
