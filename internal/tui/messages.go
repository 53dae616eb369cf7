package tui

import (
	"github.com/alexisbeaulieu97/checklist/internal/app"
	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/editor"
)

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewTabs ViewMode = iota
	ViewEditor
	ViewImport
	ViewTaskInput
	ViewConfirm
	ViewHelp
)

// Tab is one of the three main tabs.
type Tab int

const (
	TabTemplates Tab = iota
	TabActive
	TabCurrent
)

var tabTitles = []string{"Templates", "Active", "Current"}

func (t Tab) String() string {
	if int(t) < 0 || int(t) >= len(tabTitles) {
		return "unknown"
	}
	return tabTitles[t]
}

// confirmAction names what a confirmation dialog will do when accepted.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteTemplate
	confirmDeleteChecklist
	confirmDeleteTask
	confirmDiscardChanges
	confirmDuplicateChecklist
)

// Data messages

// TemplatesLoadedMsg carries a fresh template list.
type TemplatesLoadedMsg struct {
	Templates []domain.Template
}

// ChecklistsLoadedMsg carries a fresh checklist list.
type ChecklistsLoadedMsg struct {
	Checklists []domain.Checklist
}

// ChecklistLoadedMsg carries the checklist shown on the Current tab.
type ChecklistLoadedMsg struct {
	Checklist domain.Checklist
}

// ChecklistStartedMsg is sent when a checklist was created from a template.
type ChecklistStartedMsg struct {
	Checklist domain.Checklist
}

// DuplicateChecklistMsg asks whether to start another checklist for a template.
type DuplicateChecklistMsg struct {
	Err *app.DuplicateActiveError
}

// TaskUpdatedMsg is sent after a task was ticked or unticked.
type TaskUpdatedMsg struct {
	Update app.TaskUpdate
}

// TemplateDeletedMsg is sent after a template was removed.
type TemplateDeletedMsg struct {
	ID string
}

// ChecklistDeletedMsg is sent after a checklist was removed.
type ChecklistDeletedMsg struct {
	ID string
}

// ChecklistChangedMsg is sent after a structural edit of a checklist.
type ChecklistChangedMsg struct {
	ID string
}

// Editor messages

// EditorLoadedMsg opens the template editor.
type EditorLoadedMsg struct {
	Editor *editor.Editor
}

// TemplateSavedMsg reports the outcome of saving the editor's draft.
type TemplateSavedMsg struct {
	Draft editor.Draft
	ID    string
	Err   error
}

// Banner messages

// ErrorMsg shows the error banner.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg dismisses the error banner.
type ClearErrorMsg struct{}
