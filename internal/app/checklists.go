package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/logger"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

// ChecklistService runs live checklists.
type ChecklistService struct {
	checklists domain.ChecklistRepository
	templates  domain.TemplateRepository
	log        *logger.Logger
}

// NewChecklistService wires the service to its repositories.
func NewChecklistService(checklists domain.ChecklistRepository, templates domain.TemplateRepository, log *logger.Logger) *ChecklistService {
	return &ChecklistService{checklists: checklists, templates: templates, log: log}
}

// StartOptions tunes Start.
type StartOptions struct {
	// Force starts another checklist even when the template already has one.
	Force bool
}

// Start creates a checklist from a template. Without Force it refuses when the
// template already has an active checklist and returns a *DuplicateActiveError.
func (s *ChecklistService) Start(ctx context.Context, templateID string, opts StartOptions) (domain.Checklist, error) {
	t, err := s.templates.GetTemplate(ctx, templateID)
	if err != nil {
		return domain.Checklist{}, err
	}
	if len(domain.NonBlank(t.Steps)) == 0 {
		return domain.Checklist{}, checklisterrors.NewValidationError("steps", fmt.Sprintf("template %q has no steps", t.Name), nil)
	}

	if !opts.Force {
		active, err := s.checklists.CountChecklistsForTemplate(ctx, templateID)
		if err != nil {
			return domain.Checklist{}, err
		}
		if active > 0 {
			return domain.Checklist{}, &DuplicateActiveError{TemplateID: templateID, TemplateName: t.Name, Active: active}
		}
	}

	id, err := s.checklists.CreateChecklistFromTemplate(ctx, templateID)
	if err != nil {
		return domain.Checklist{}, err
	}
	s.log.WithFields(map[string]any{"checklist_id": id, "template_id": templateID}).Info("checklist started")
	return s.checklists.GetChecklist(ctx, id)
}

// List returns all live checklists.
func (s *ChecklistService) List(ctx context.Context) ([]domain.Checklist, error) {
	return s.checklists.ListChecklists(ctx)
}

// Get returns one checklist.
func (s *ChecklistService) Get(ctx context.Context, id string) (domain.Checklist, error) {
	return s.checklists.GetChecklist(ctx, id)
}

// TaskUpdate is the checklist after a completion change.
type TaskUpdate struct {
	Checklist domain.Checklist
	// JustCompleted is set when this change finished the checklist.
	JustCompleted bool
}

// SetTaskCompleted ticks or unticks one task.
func (s *ChecklistService) SetTaskCompleted(ctx context.Context, checklistID, taskID string, completed bool) (TaskUpdate, error) {
	before, err := s.checklists.GetChecklist(ctx, checklistID)
	if err != nil {
		return TaskUpdate{}, err
	}
	if _, ok := before.Task(taskID); !ok {
		return TaskUpdate{}, checklisterrors.NewNotFoundError("task", taskID, domain.ErrNotFound)
	}

	if err := s.checklists.SetTaskCompleted(ctx, checklistID, taskID, completed); err != nil {
		return TaskUpdate{}, err
	}
	after, err := s.checklists.GetChecklist(ctx, checklistID)
	if err != nil {
		return TaskUpdate{}, err
	}

	update := TaskUpdate{Checklist: after, JustCompleted: !before.IsCompleted() && after.IsCompleted()}
	if update.JustCompleted {
		s.log.WithFields(map[string]any{"checklist_id": checklistID}).Info("checklist completed")
	}
	return update, nil
}

// ToggleTask flips the completion of one task.
func (s *ChecklistService) ToggleTask(ctx context.Context, checklistID, taskID string) (TaskUpdate, error) {
	c, err := s.checklists.GetChecklist(ctx, checklistID)
	if err != nil {
		return TaskUpdate{}, err
	}
	task, ok := c.Task(taskID)
	if !ok {
		return TaskUpdate{}, checklisterrors.NewNotFoundError("task", taskID, domain.ErrNotFound)
	}
	return s.SetTaskCompleted(ctx, checklistID, taskID, !task.Completed)
}

func taskText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", checklisterrors.NewValidationError("task", "task cannot be empty", nil)
	}
	return trimmed, nil
}

// AddTask appends a task to a running checklist.
func (s *ChecklistService) AddTask(ctx context.Context, checklistID, text string) (string, error) {
	trimmed, err := taskText(text)
	if err != nil {
		return "", err
	}
	return s.checklists.AddTask(ctx, checklistID, trimmed)
}

// UpdateTask rewrites the text of a task.
func (s *ChecklistService) UpdateTask(ctx context.Context, checklistID, taskID, text string) error {
	trimmed, err := taskText(text)
	if err != nil {
		return err
	}
	return s.checklists.UpdateTaskText(ctx, checklistID, taskID, trimmed)
}

// DeleteTask removes a task. The last task of a checklist cannot be removed.
func (s *ChecklistService) DeleteTask(ctx context.Context, checklistID, taskID string) error {
	err := s.checklists.DeleteTask(ctx, checklistID, taskID)
	if errors.Is(err, domain.ErrLastTask) {
		s.log.WithFields(map[string]any{"checklist_id": checklistID}).Debug("refused to delete last task")
	}
	return err
}

// Delete removes a checklist.
func (s *ChecklistService) Delete(ctx context.Context, id string) error {
	if err := s.checklists.DeleteChecklist(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(map[string]any{"checklist_id": id}).Info("checklist deleted")
	return nil
}

// CompletionWatcher reports the moment a checklist becomes complete, once per
// transition. Unticking a task re-arms it.
type CompletionWatcher struct {
	completed map[string]bool
}

// NewCompletionWatcher returns a watcher that has seen nothing yet.
func NewCompletionWatcher() *CompletionWatcher {
	return &CompletionWatcher{completed: map[string]bool{}}
}

// Observe records the checklist's state and reports whether it just became
// complete. The first observation of an already complete checklist does not
// count as a transition.
func (w *CompletionWatcher) Observe(c domain.Checklist) bool {
	was, seen := w.completed[c.ID]
	now := c.IsCompleted()
	w.completed[c.ID] = now
	return seen && !was && now
}

// Forget drops what the watcher knows about a checklist.
func (w *CompletionWatcher) Forget(id string) {
	delete(w.completed, id)
}
