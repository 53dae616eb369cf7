// Package tui is the interactive terminal front end: template and checklist
// tabs plus the template editor with its drag-reorderable step list.
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/checklist/internal/app"
	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/editor"
	"github.com/alexisbeaulieu97/checklist/internal/logger"
	"github.com/alexisbeaulieu97/checklist/internal/reorder"
)

// Editor screen lines. Rows of the step list start at editorTop.
const (
	editorNameLine = 2
	editorTop      = 4
)

// Options configures the model.
type Options struct {
	// Geometry is measured in terminal lines.
	Geometry       reorder.Geometry
	ConfirmDeletes bool
	Logger         *logger.Logger
	// Bell receives a BEL when a checklist is completed. Nil disables it.
	Bell io.Writer
}

// Model is the root bubbletea model.
type Model struct {
	templates  *app.TemplateService
	checklists *app.ChecklistService
	log        *logger.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	loading bool

	viewMode ViewMode
	prevMode ViewMode
	tab      Tab

	// Templates and Active tabs
	templateList    []domain.Template
	templateCursor  int
	checklistList   []domain.Checklist
	checklistCursor int

	// Current tab
	current           *domain.Checklist
	taskCursor        int
	checklistEditMode bool
	watcher           *app.CompletionWatcher
	taskInput         textinput.Model
	taskEditID        string

	// Editor
	editor     *editor.Editor
	steps      *reorder.List
	layout     reorder.Layout
	stepCursor int
	nameInput  textinput.Model
	stepInput  textinput.Model
	nameFocus  bool
	dragLastY  int
	importArea textarea.Model

	// Confirmation
	confirm        confirmAction
	confirmID      string
	confirmMessage string

	// Banners
	showError  bool
	errorMsg   string
	successMsg string

	width          int
	height         int
	confirmDeletes bool
	bell           io.Writer
}

// NewModel builds the model around the application services.
func NewModel(templates *app.TemplateService, checklists *app.ChecklistService, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	rowHeight := max(int(opts.Geometry.RowHeight), 1)
	rowSpacing := max(int(opts.Geometry.RowSpacing), 0)

	nameInput := textinput.New()
	nameInput.Placeholder = "Template name"
	nameInput.CharLimit = 120
	nameInput.Prompt = ""

	stepInput := textinput.New()
	stepInput.CharLimit = 500
	stepInput.Prompt = ""

	taskInput := textinput.New()
	taskInput.CharLimit = 500
	taskInput.Placeholder = "Task"

	area := textarea.New()
	area.Placeholder = "*Template name*\n- first step\n- second step"
	area.ShowLineNumbers = false
	area.CharLimit = 0

	return Model{
		templates:  templates,
		checklists: checklists,
		log:        opts.Logger,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		loading:    true,
		viewMode:   ViewTabs,
		tab:        TabTemplates,
		watcher:    app.NewCompletionWatcher(),
		taskInput:  taskInput,
		nameInput:  nameInput,
		stepInput:  stepInput,
		importArea: area,
		layout: reorder.Layout{
			Top:         editorTop,
			RowHeight:   rowHeight,
			RowSpacing:  rowSpacing,
			HandleWidth: 3,
			DeleteWidth: 3,
			Width:       80,
		},
		width:          80,
		height:         24,
		confirmDeletes: opts.ConfirmDeletes,
		bell:           opts.Bell,
	}
}

// Init loads both lists.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadTemplatesCmd(m.templates),
		loadChecklistsCmd(m.checklists),
	)
}

// ViewMode returns the screen being shown.
func (m Model) ViewMode() ViewMode { return m.viewMode }

// Tab returns the selected tab.
func (m Model) Tab() Tab { return m.tab }

// Editor returns the open template editor, or nil.
func (m Model) Editor() *editor.Editor { return m.editor }

// Current returns the checklist on the Current tab.
func (m Model) Current() (domain.Checklist, bool) {
	if m.current == nil {
		return domain.Checklist{}, false
	}
	return *m.current, true
}

// ErrorMessage returns the text of the error banner, if shown.
func (m Model) ErrorMessage() string {
	if !m.showError {
		return ""
	}
	return m.errorMsg
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.showError = true
	m.errorMsg = err.Error()
	m.log.Error(err, "operation failed")
}

func (m *Model) clearError() {
	m.showError = false
	m.errorMsg = ""
}

func (m *Model) selectedTemplate() (domain.Template, bool) {
	if m.templateCursor < 0 || m.templateCursor >= len(m.templateList) {
		return domain.Template{}, false
	}
	return m.templateList[m.templateCursor], true
}

func (m *Model) selectedChecklist() (domain.Checklist, bool) {
	if m.checklistCursor < 0 || m.checklistCursor >= len(m.checklistList) {
		return domain.Checklist{}, false
	}
	return m.checklistList[m.checklistCursor], true
}

func (m *Model) selectedTask() (domain.Task, bool) {
	if m.current == nil || m.taskCursor < 0 || m.taskCursor >= len(m.current.Tasks) {
		return domain.Task{}, false
	}
	return m.current.Tasks[m.taskCursor], true
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func moveCursor(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	return (cursor + delta + n) % n
}

func (m *Model) askConfirm(action confirmAction, id, message string) {
	m.confirm = action
	m.confirmID = id
	m.confirmMessage = message
	m.prevMode = m.viewMode
	m.viewMode = ViewConfirm
}

func (m *Model) closeConfirm() {
	m.confirm = confirmNone
	m.confirmID = ""
	m.confirmMessage = ""
	m.viewMode = m.prevMode
}
