package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/editor"
	"github.com/alexisbeaulieu97/checklist/internal/reorder"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// System messages
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.Width = msg.Width
		m.help.Width = msg.Width
		m.importArea.SetWidth(max(msg.Width-4, 20))
		m.importArea.SetHeight(max(msg.Height-8, 5))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.viewMode == ViewEditor {
			m.handleMouse(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// Data messages
	case TemplatesLoadedMsg:
		m.loading = false
		m.templateList = msg.Templates
		m.templateCursor = clampCursor(m.templateCursor, len(m.templateList))
		return m, nil

	case ChecklistsLoadedMsg:
		m.checklistList = msg.Checklists
		m.checklistCursor = clampCursor(m.checklistCursor, len(m.checklistList))
		for _, c := range msg.Checklists {
			m.watcher.Observe(c)
		}
		return m, nil

	case ChecklistLoadedMsg:
		m.showChecklist(msg.Checklist)
		return m, nil

	case ChecklistStartedMsg:
		m.showChecklist(msg.Checklist)
		m.successMsg = fmt.Sprintf("Started %q", msg.Checklist.TemplateName)
		return m, loadChecklistsCmd(m.checklists)

	case DuplicateChecklistMsg:
		m.askConfirm(confirmDuplicateChecklist, msg.Err.TemplateID,
			fmt.Sprintf("%q already has %d active checklist(s). Start another?", msg.Err.TemplateName, msg.Err.Active))
		return m, nil

	case TaskUpdatedMsg:
		c := msg.Update.Checklist
		justCompleted := m.watcher.Observe(c)
		if m.current != nil && m.current.ID == c.ID {
			m.current = &c
			m.taskCursor = clampCursor(m.taskCursor, len(c.Tasks))
		}
		if msg.Update.JustCompleted || justCompleted {
			m.successMsg = fmt.Sprintf("%s complete!", c.TemplateName)
			return m, tea.Batch(loadChecklistsCmd(m.checklists), ringBellCmd(m.bell))
		}
		return m, loadChecklistsCmd(m.checklists)

	case ChecklistChangedMsg:
		return m, tea.Batch(loadChecklistCmd(m.checklists, msg.ID), loadChecklistsCmd(m.checklists))

	case TemplateDeletedMsg:
		if m.current != nil && m.current.TemplateID == msg.ID {
			m.current = nil
		}
		m.successMsg = "Template deleted"
		return m, tea.Batch(loadTemplatesCmd(m.templates), loadChecklistsCmd(m.checklists))

	case ChecklistDeletedMsg:
		m.watcher.Forget(msg.ID)
		if m.current != nil && m.current.ID == msg.ID {
			m.current = nil
			m.checklistEditMode = false
			if m.tab == TabCurrent {
				m.tab = TabActive
			}
		}
		m.successMsg = "Checklist deleted"
		return m, loadChecklistsCmd(m.checklists)

	// Editor messages
	case EditorLoadedMsg:
		m.openEditor(msg.Editor)
		return m, nil

	case TemplateSavedMsg:
		if m.editor == nil {
			return m, nil
		}
		m.editor.FinishSave(msg.Draft, msg.ID, msg.Err)
		if msg.Err != nil {
			m.setError(msg.Err)
			return m, nil
		}
		m.successMsg = fmt.Sprintf("Saved %q", msg.Draft.Name)
		return m, loadTemplatesCmd(m.templates)

	// Banner messages
	case ErrorMsg:
		m.setError(msg.Err)
		return m, nil

	case ClearErrorMsg:
		m.clearError()
		return m, nil
	}

	return m, nil
}

func (m *Model) showChecklist(c domain.Checklist) {
	m.current = &c
	m.watcher.Observe(c)
	m.taskCursor = clampCursor(m.taskCursor, len(c.Tasks))
	m.tab = TabCurrent
	m.viewMode = ViewTabs
}

// Editor lifecycle

func (m *Model) openEditor(ed *editor.Editor) {
	m.editor = ed
	m.steps = reorder.NewList(m.layout.Geometry(), ed.Callbacks())
	m.steps.Render(ed.Steps())
	m.stepCursor = 0
	m.nameInput.SetValue(ed.Name())
	m.stepInput.Blur()
	m.nameFocus = ed.IsNew()
	if m.nameFocus {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
	m.viewMode = ViewEditor
}

func (m *Model) closeEditor() {
	m.editor = nil
	m.steps = nil
	m.nameInput.Blur()
	m.stepInput.Blur()
	m.viewMode = ViewTabs
}

// syncSteps hands the editor's sequence back to the list after any change.
func (m *Model) syncSteps() {
	if m.editor == nil || m.steps == nil {
		return
	}
	m.steps.Render(m.editor.Steps())
	m.stepCursor = clampCursor(m.stepCursor, m.steps.Len())
	if _, _, ok := m.steps.Editing(); !ok && m.stepInput.Focused() {
		m.stepInput.Blur()
	}
}

func (m *Model) beginStepEdit(index int) {
	if !m.steps.BeginEdit(index) {
		return
	}
	_, text, _ := m.steps.Editing()
	m.stepCursor = index
	m.stepInput.SetValue(text)
	m.stepInput.CursorEnd()
	m.stepInput.Focus()
	m.blurName()
}

func (m *Model) commitStepEdit() {
	if _, _, ok := m.steps.Editing(); !ok {
		return
	}
	m.steps.CommitEdit(m.stepInput.Value())
	m.stepInput.Blur()
	m.syncSteps()
}

func (m *Model) cancelStepEdit() {
	m.steps.CancelEdit()
	m.stepInput.Blur()
}

func (m *Model) focusName() {
	m.commitStepEdit()
	m.nameFocus = true
	m.nameInput.Focus()
}

func (m *Model) blurName() {
	if !m.nameFocus {
		return
	}
	m.nameFocus = false
	m.nameInput.Blur()
	m.editor.SetName(m.nameInput.Value())
}

func (m *Model) moveStep(delta int) {
	to := m.stepCursor + delta
	if !reorder.InRange(to, m.editor.Len()) {
		return
	}
	m.editor.ReorderStep(m.stepCursor, to)
	m.stepCursor = to
	m.syncSteps()
}

func (m Model) saveEditor() (tea.Model, tea.Cmd) {
	m.blurName()
	m.commitStepEdit()
	draft, err := m.editor.BeginSave()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.clearError()
	return m, saveTemplateCmd(m.templates, draft)
}

func (m Model) leaveEditor() (tea.Model, tea.Cmd) {
	m.blurName()
	m.commitStepEdit()
	if m.editor.HasUnsavedChanges() {
		m.askConfirm(confirmDiscardChanges, m.editor.TemplateID(), "Discard unsaved changes?")
		return m, nil
	}
	m.closeEditor()
	return m, nil
}

// Mouse

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.steps == nil {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if msg.Y == editorNameLine {
			m.focusName()
			return
		}
		index, region := m.layout.HitTest(msg.X, msg.Y, m.steps.Len())
		if index < 0 {
			return
		}
		m.blurName()
		if m.steps.DragStart(index, region) {
			m.dragLastY = msg.Y
			m.stepCursor = index
			return
		}
		if editing, _, ok := m.steps.Editing(); ok && editing == index && region == reorder.RegionBody {
			return
		}
		m.commitStepEdit()
		if region == reorder.RegionBody {
			m.beginStepEdit(index)
			return
		}
		m.steps.Tap(index, region)
		m.syncSteps()

	case tea.MouseActionMotion:
		if !m.steps.Session().Active() {
			return
		}
		dy := msg.Y - m.dragLastY
		m.dragLastY = msg.Y
		if dy == 0 {
			return
		}
		m.steps.DragMove(float64(dy))
		if index, ok := m.steps.Session().DraggedIndex(); ok {
			m.stepCursor = index
		}
		m.syncSteps()

	case tea.MouseActionRelease:
		if m.steps.Session().Active() {
			m.steps.DragEnd()
		}
	}
}

// Keyboard

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewEditor:
		return m.handleEditorKeys(msg)
	case ViewImport:
		return m.handleImportKeys(msg)
	case ViewTaskInput:
		return m.handleTaskInputKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	case ViewHelp:
		m.viewMode = m.prevMode
		return m, nil
	}

	m.successMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.prevMode = m.viewMode
		m.viewMode = ViewHelp
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.showError {
			m.clearError()
			return m, nil
		}
		if m.checklistEditMode {
			m.checklistEditMode = false
		}
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = Tab((int(m.tab) + 1) % len(tabTitles))
		m.checklistEditMode = false
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = Tab((int(m.tab) + len(tabTitles) - 1) % len(tabTitles))
		m.checklistEditMode = false
		return m, nil
	}

	switch m.tab {
	case TabTemplates:
		return m.handleTemplateKeys(msg)
	case TabActive:
		return m.handleActiveKeys(msg)
	default:
		return m.handleCurrentKeys(msg)
	}
}

func (m Model) handleTemplateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.templateCursor = moveCursor(m.templateCursor, -1, len(m.templateList))
	case key.Matches(msg, m.keys.Down):
		m.templateCursor = moveCursor(m.templateCursor, 1, len(m.templateList))
	case key.Matches(msg, m.keys.New):
		return m, openEditorCmd(m.templates, "", m.log)
	case key.Matches(msg, m.keys.Open):
		if t, ok := m.selectedTemplate(); ok {
			return m, startChecklistCmd(m.checklists, t.ID, false)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selectedTemplate(); ok {
			return m, openEditorCmd(m.templates, t.ID, m.log)
		}
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selectedTemplate()
		if !ok {
			return m, nil
		}
		if !m.confirmDeletes {
			return m, deleteTemplateCmd(m.templates, t.ID)
		}
		m.askConfirm(confirmDeleteTemplate, t.ID,
			fmt.Sprintf("Delete template %q and all of its checklists?", t.Name))
	}
	return m, nil
}

func (m Model) handleActiveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.checklistCursor = moveCursor(m.checklistCursor, -1, len(m.checklistList))
	case key.Matches(msg, m.keys.Down):
		m.checklistCursor = moveCursor(m.checklistCursor, 1, len(m.checklistList))
	case key.Matches(msg, m.keys.Open):
		if c, ok := m.selectedChecklist(); ok {
			return m, loadChecklistCmd(m.checklists, c.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		c, ok := m.selectedChecklist()
		if !ok {
			return m, nil
		}
		if !m.confirmDeletes {
			return m, deleteChecklistCmd(m.checklists, c.ID)
		}
		m.askConfirm(confirmDeleteChecklist, c.ID, fmt.Sprintf("Delete checklist %q?", c.TemplateName))
	}
	return m, nil
}

func (m Model) handleCurrentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	n := len(m.current.Tasks)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.taskCursor = moveCursor(m.taskCursor, -1, n)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.taskCursor = moveCursor(m.taskCursor, 1, n)
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		m.checklistEditMode = !m.checklistEditMode
		return m, nil
	}

	if !m.checklistEditMode {
		if key.Matches(msg, m.keys.Toggle) {
			if t, ok := m.selectedTask(); ok {
				return m, toggleTaskCmd(m.checklists, m.current.ID, t.ID)
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.openTaskInput("", "")
	case key.Matches(msg, m.keys.Open):
		if t, ok := m.selectedTask(); ok {
			m.openTaskInput(t.ID, t.Text)
		}
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if n <= 1 {
			m.setError(domain.ErrLastTask)
			return m, nil
		}
		if !m.confirmDeletes {
			return m, deleteTaskCmd(m.checklists, m.current.ID, t.ID)
		}
		m.askConfirm(confirmDeleteTask, t.ID, fmt.Sprintf("Delete task %q?", t.Text))
	}
	return m, nil
}

func (m *Model) openTaskInput(taskID, text string) {
	m.taskEditID = taskID
	m.taskInput.SetValue(text)
	m.taskInput.CursorEnd()
	m.taskInput.Focus()
	m.prevMode = m.viewMode
	m.viewMode = ViewTaskInput
}

func (m Model) handleTaskInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.taskInput.Blur()
		m.viewMode = ViewTabs
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.taskInput.Value())
		if text == "" || m.current == nil {
			return m, nil
		}
		m.taskInput.Blur()
		m.viewMode = ViewTabs
		if m.taskEditID == "" {
			return m, addTaskCmd(m.checklists, m.current.ID, text)
		}
		return m, updateTaskCmd(m.checklists, m.current.ID, m.taskEditID, text)
	}

	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		action, id := m.confirm, m.confirmID
		m.closeConfirm()
		return m.runConfirmed(action, id)
	case key.Matches(msg, m.keys.No):
		m.closeConfirm()
	}
	return m, nil
}

func (m Model) runConfirmed(action confirmAction, id string) (tea.Model, tea.Cmd) {
	switch action {
	case confirmDeleteTemplate:
		return m, deleteTemplateCmd(m.templates, id)
	case confirmDeleteChecklist:
		return m, deleteChecklistCmd(m.checklists, id)
	case confirmDeleteTask:
		if m.current == nil {
			return m, nil
		}
		return m, deleteTaskCmd(m.checklists, m.current.ID, id)
	case confirmDiscardChanges:
		m.closeEditor()
	case confirmDuplicateChecklist:
		return m, startChecklistCmd(m.checklists, id, true)
	}
	return m, nil
}

func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Save) {
		return m.saveEditor()
	}

	if m.nameFocus {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyTab, tea.KeyDown:
			m.blurName()
			return m, nil
		case tea.KeyEsc:
			m.nameInput.SetValue(m.editor.Name())
			m.nameFocus = false
			m.nameInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	if _, _, ok := m.steps.Editing(); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.commitStepEdit()
			return m, nil
		case tea.KeyEsc:
			m.cancelStepEdit()
			return m, nil
		case tea.KeyTab:
			m.commitStepEdit()
			if m.stepCursor+1 < m.steps.Len() {
				m.beginStepEdit(m.stepCursor + 1)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.stepInput, cmd = m.stepInput.Update(msg)
		return m, cmd
	}

	m.successMsg = ""
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.showError {
			m.clearError()
			return m, nil
		}
		return m.leaveEditor()
	case key.Matches(msg, m.keys.MoveUp):
		m.moveStep(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveStep(1)
	case key.Matches(msg, m.keys.Up):
		m.stepCursor = max(m.stepCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.stepCursor = min(m.stepCursor+1, m.steps.Len()-1)
	case key.Matches(msg, m.keys.FocusName):
		m.focusName()
	case key.Matches(msg, m.keys.Open):
		m.beginStepEdit(m.stepCursor)
	case key.Matches(msg, m.keys.Add):
		m.editor.AddStep()
		m.syncSteps()
		m.beginStepEdit(m.steps.Len() - 1)
	case key.Matches(msg, m.keys.Delete):
		m.steps.Tap(m.stepCursor, reorder.RegionDelete)
		m.syncSteps()
	case key.Matches(msg, m.keys.Import):
		m.importArea.Reset()
		m.importArea.Focus()
		m.viewMode = ViewImport
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m.leaveEditor()
	}
	return m, nil
}

var errNothingToImport = errors.New("no steps found in the pasted text")

func (m Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.importArea.Blur()
		m.viewMode = ViewEditor
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if !m.editor.ImportText(m.importArea.Value()) {
			m.setError(errNothingToImport)
			return m, nil
		}
		m.clearError()
		m.nameInput.SetValue(m.editor.Name())
		m.syncSteps()
		m.importArea.Blur()
		m.viewMode = ViewEditor
		return m, nil
	}

	var cmd tea.Cmd
	m.importArea, cmd = m.importArea.Update(msg)
	return m, cmd
}
