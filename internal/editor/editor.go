// Package editor holds the state of the template editor: the template name and
// the ordered step sequence that the drag list reorders.
//
// The public surface is index based. Internally every step carries a stable
// ID so a step keeps its identity while it moves.
package editor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/logger"
	"github.com/alexisbeaulieu97/checklist/internal/reorder"
	"github.com/alexisbeaulieu97/checklist/internal/textimport"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

type step struct {
	id   string
	text string
}

// Editor is the step sequence owner. It is not safe for concurrent use.
type Editor struct {
	log   *logger.Logger
	newID func() string

	templateID string
	name       string
	steps      []step
	dirty      bool
	saving     bool
	revision   int
}

// Option customises an Editor.
type Option func(*Editor)

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(e *Editor) { e.log = log }
}

// WithIDGenerator overrides how step IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

// New returns an editor for a new, unnamed template with one blank step.
func New(opts ...Option) *Editor {
	e := &Editor{newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	e.reset("", "", nil)
	return e
}

func (e *Editor) reset(templateID, name string, steps []string) {
	e.templateID = templateID
	e.name = name
	e.steps = e.steps[:0]
	for _, text := range steps {
		e.steps = append(e.steps, step{id: e.newID(), text: text})
	}
	if len(e.steps) == 0 {
		e.steps = append(e.steps, step{id: e.newID()})
	}
	e.dirty = false
	e.saving = false
	e.revision++
}

// Load replaces the editor state with the stored template. An empty id starts
// a new template.
func (e *Editor) Load(ctx context.Context, repo domain.TemplateRepository, id string) error {
	if id == "" {
		e.reset("", "", nil)
		return nil
	}

	t, err := repo.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	e.reset(t.ID, t.Name, t.Steps)
	e.log.WithFields(map[string]any{"template_id": id, "steps": len(t.Steps)}).Debug("template loaded into editor")
	return nil
}

// TemplateID is empty until a new template has been saved.
func (e *Editor) TemplateID() string { return e.templateID }

// IsNew reports whether the template has never been saved.
func (e *Editor) IsNew() bool { return e.templateID == "" }

// Name returns the template name as typed.
func (e *Editor) Name() string { return e.name }

// Steps returns a copy of the step texts in order.
func (e *Editor) Steps() []string {
	out := make([]string, len(e.steps))
	for i, s := range e.steps {
		out[i] = s.text
	}
	return out
}

// StepIDs returns the stable step identities in order.
func (e *Editor) StepIDs() []string {
	out := make([]string, len(e.steps))
	for i, s := range e.steps {
		out[i] = s.id
	}
	return out
}

// Len is the number of steps, never less than one.
func (e *Editor) Len() int { return len(e.steps) }

// HasUnsavedChanges reports edits since the last load or save.
func (e *Editor) HasUnsavedChanges() bool { return e.dirty }

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool { return e.saving }

// CanSave requires a non-blank name, at least one non-blank step and no save in flight.
func (e *Editor) CanSave() bool {
	if e.saving || strings.TrimSpace(e.name) == "" {
		return false
	}
	return slices.ContainsFunc(e.steps, func(s step) bool {
		return strings.TrimSpace(s.text) != ""
	})
}

func (e *Editor) touch() {
	e.dirty = true
	e.revision++
}

// SetName renames the template.
func (e *Editor) SetName(name string) {
	if name == e.name {
		return
	}
	e.name = name
	e.touch()
}

// UpdateStepText replaces the text of step index. Out-of-range indices are ignored.
func (e *Editor) UpdateStepText(index int, text string) {
	if !reorder.InRange(index, len(e.steps)) || e.steps[index].text == text {
		return
	}
	e.steps[index].text = text
	e.touch()
}

// AddStep appends a blank step.
func (e *Editor) AddStep() {
	e.steps = append(e.steps, step{id: e.newID()})
	e.touch()
}

// DeleteStep removes step index. The last remaining step is never removed.
func (e *Editor) DeleteStep(index int) {
	if !reorder.InRange(index, len(e.steps)) || len(e.steps) <= 1 {
		return
	}
	e.steps = slices.Delete(e.steps, index, index+1)
	e.touch()
}

// ReorderStep moves the step at from to position to, shifting the steps in
// between by one. Out-of-range indices leave the sequence unchanged.
func (e *Editor) ReorderStep(from, to int) {
	if from == to || !reorder.InRange(from, len(e.steps)) || !reorder.InRange(to, len(e.steps)) {
		return
	}
	e.steps = reorder.Move(e.steps, from, to)
	e.touch()
}

// Callbacks binds the drag list's callbacks to this editor.
func (e *Editor) Callbacks() reorder.Callbacks {
	return reorder.Callbacks{
		OnStepTextChange: e.UpdateStepText,
		OnStepDelete:     e.DeleteStep,
		OnStepsReorder:   e.ReorderStep,
	}
}

// ImportText merges pasted text into the editor and reports whether anything
// was imported. A parsed name is adopted only while the current name is blank.
// Parsed steps replace a lone blank step and are appended otherwise.
func (e *Editor) ImportText(text string) bool {
	parsed := textimport.Parse(text)
	if len(parsed.Steps) == 0 {
		return false
	}

	if parsed.Name != nil && strings.TrimSpace(e.name) == "" {
		e.name = *parsed.Name
	}
	if len(e.steps) == 1 && strings.TrimSpace(e.steps[0].text) == "" {
		e.steps = e.steps[:0]
	}
	for _, s := range parsed.Steps {
		e.steps = append(e.steps, step{id: e.newID(), text: s})
	}
	e.touch()
	return true
}

// Draft is a snapshot of the editor taken for saving.
type Draft struct {
	TemplateID string
	Name       string
	Steps      []string
	revision   int
}

// BeginSave validates the editor, marks a save in flight and returns the
// snapshot to persist. Blank steps are dropped.
func (e *Editor) BeginSave() (Draft, error) {
	if e.saving {
		return Draft{}, checklisterrors.NewValidationError("template", "save already in progress", nil)
	}
	if strings.TrimSpace(e.name) == "" {
		return Draft{}, checklisterrors.NewValidationError("name", "template name cannot be empty", nil)
	}
	if !e.CanSave() {
		return Draft{}, checklisterrors.NewValidationError("steps", "template needs at least one step", nil)
	}

	e.saving = true
	return Draft{
		TemplateID: e.templateID,
		Name:       e.name,
		Steps:      domain.NonBlank(e.Steps()),
		revision:   e.revision,
	}, nil
}

// Persist writes the draft, creating the template first when it is new, and
// returns the template ID. It touches no editor state.
func (d Draft) Persist(ctx context.Context, repo domain.TemplateRepository) (string, error) {
	id := d.TemplateID
	if id == "" {
		created, err := repo.CreateTemplate(ctx, d.Name)
		if err != nil {
			return "", fmt.Errorf("create template: %w", err)
		}
		id = created
	}
	if err := repo.UpdateTemplate(ctx, domain.Template{ID: id, Name: d.Name, Steps: d.Steps}); err != nil {
		return "", fmt.Errorf("save template %q: %w", id, err)
	}
	return id, nil
}

// FinishSave records the outcome of persisting d. Unsaved changes are cleared
// only when nothing was edited while the save was in flight.
func (e *Editor) FinishSave(d Draft, id string, err error) {
	e.saving = false
	if err != nil {
		e.log.Error(err, "template save failed")
		return
	}
	if e.templateID == "" {
		e.templateID = id
	}
	if e.revision == d.revision {
		e.dirty = false
	}
	e.log.WithFields(map[string]any{"template_id": id, "steps": len(d.Steps)}).Info("template saved")
}

// Save runs BeginSave, Persist and FinishSave in one call.
func (e *Editor) Save(ctx context.Context, repo domain.TemplateRepository) (string, error) {
	d, err := e.BeginSave()
	if err != nil {
		return "", err
	}
	id, err := d.Persist(ctx, repo)
	e.FinishSave(d, id, err)
	return id, err
}
