package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/tui/components"
)

// View renders the current model state
func (m Model) View() string {
	switch m.viewMode {
	case ViewEditor:
		return m.renderEditorView()
	case ViewImport:
		return m.renderImportView()
	case ViewTaskInput:
		return m.renderTaskInputView()
	case ViewConfirm:
		return m.renderConfirmView()
	case ViewHelp:
		return m.renderHelpView()
	default:
		return m.renderTabsView()
	}
}

func (m Model) renderTabsView() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n\n")

	switch m.tab {
	case TabTemplates:
		content.WriteString(m.renderTemplateList())
	case TabActive:
		content.WriteString(m.renderChecklistList())
	default:
		content.WriteString(m.renderCurrentChecklist())
	}
	content.WriteString("\n")

	content.WriteString(m.renderBanners())
	content.WriteString(m.renderFooter())
	return content.String()
}

func (m Model) renderHeader() string {
	parts := []string{titleStyle.Render("✓ Checklist")}
	for i, title := range tabTitles {
		if Tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(title))
		} else {
			parts = append(parts, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderTemplateList() string {
	if m.loading {
		return itemStyle.Render(m.spinner.View() + " Loading...")
	}
	if len(m.templateList) == 0 {
		return itemStyle.Render(mutedStyle.Render("No templates yet. Press n to create one."))
	}

	var b strings.Builder
	for i, t := range m.templateList {
		line := fmt.Sprintf("%s %s", t.Name, mutedStyle.Render(fmt.Sprintf("(%d steps)", len(t.Steps))))
		b.WriteString(renderItem(line, i == m.templateCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderChecklistList() string {
	if len(m.checklistList) == 0 {
		return itemStyle.Render(mutedStyle.Render("No active checklists. Start one from a template with enter."))
	}

	var b strings.Builder
	for i, c := range m.checklistList {
		line := fmt.Sprintf("%s  %s", c.TemplateName, components.NewProgress(len(c.Tasks), 20).View(c.CompletedCount()))
		b.WriteString(renderItem(line, i == m.checklistCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCurrentChecklist() string {
	if m.current == nil {
		return itemStyle.Render(mutedStyle.Render("No checklist open. Pick one on the Active tab."))
	}
	c := m.current

	var b strings.Builder
	title := selectedItemStyle.Render(c.TemplateName)
	if m.checklistEditMode {
		title += " " + dirtyStyle.Render("[editing]")
	}
	b.WriteString(itemStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(itemStyle.Render(components.NewProgress(len(c.Tasks), 30).View(c.CompletedCount())))
	b.WriteString("\n")
	b.WriteString(itemStyle.Render(mutedStyle.Render(checklistSummary(*c).View())))
	b.WriteString("\n\n")

	for i, t := range c.Tasks {
		box, text := "[ ]", t.Text
		if t.Completed {
			box = progressDoneStyle.Render("[x]")
			text = doneStyle.Render(text)
		}
		b.WriteString(renderItem(box+" "+text, i == m.taskCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func renderItem(line string, selected bool) string {
	if selected {
		return selectedItemStyle.Render("▸ ") + line
	}
	return itemStyle.Render(line)
}

func checklistSummary(c domain.Checklist) components.Summary {
	data := components.SummaryData{
		Total:     len(c.Tasks),
		Completed: c.CompletedCount(),
		StartedAt: c.CreatedAt,
	}
	if c.IsCompleted() {
		for _, t := range c.Tasks {
			if t.CompletedAt != nil && t.CompletedAt.After(data.CompletedAt) {
				data.CompletedAt = *t.CompletedAt
			}
		}
	}
	return components.NewSummary(data)
}

func (m Model) renderBanners() string {
	var b strings.Builder
	if m.showError {
		b.WriteString(errorBannerStyle.Render("Error: " + m.errorMsg))
		b.WriteString("\n")
	}
	if m.successMsg != "" {
		b.WriteString(successBannerStyle.Render(m.successMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	return footerStyle.Render(m.help.View(m.helpKeys()))
}

// Editor

// renderEditorView keeps the name on editorNameLine and the first row on
// editorTop so mouse coordinates line up with the layout.
func (m Model) renderEditorView() string {
	if m.editor == nil || m.steps == nil {
		return ""
	}

	var content strings.Builder

	title := "New template"
	if !m.editor.IsNew() {
		title = "Edit template"
	}
	header := titleStyle.Render(title)
	switch {
	case m.editor.Saving():
		header += mutedStyle.Render("saving...")
	case m.editor.HasUnsavedChanges():
		header += dirtyStyle.Render("● unsaved")
	}
	content.WriteString(header)
	content.WriteString("\n\n")

	label := "Name: "
	if m.nameFocus {
		label = selectedItemStyle.Render(label)
	}
	content.WriteString(label + m.nameInput.View())
	content.WriteString("\n\n")

	content.WriteString(m.renderSteps())
	content.WriteString("\n\n")

	content.WriteString(m.renderBanners())
	content.WriteString(m.renderFooter())
	return content.String()
}

// renderSteps draws every row at its slot plus the drag offset. The dragged
// row is drawn last so it stays on top of the sibling it is passing.
func (m Model) renderSteps() string {
	n := m.steps.Len()
	height := max(m.layout.RowHeight, 1)
	pitch := height + max(m.layout.RowSpacing, 0)
	total := n*pitch - max(m.layout.RowSpacing, 0)
	if total <= 0 {
		return ""
	}
	lines := make([]string, total)

	place := func(k int) {
		offset := math.Max(-float64(total), math.Min(float64(total), m.steps.RowOffset(k)))
		y := k*pitch + int(math.Round(offset))
		y = max(0, min(y, total-height))
		for i, line := range m.renderRow(k, height) {
			lines[y+i] = line
		}
	}

	dragged, dragging := m.steps.Session().DraggedIndex()
	for k := 0; k < n; k++ {
		if dragging && k == dragged {
			continue
		}
		place(k)
	}
	if dragging {
		place(dragged)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(k, height int) []string {
	steps := m.steps.Steps()
	bodyWidth := max(m.layout.Width-m.layout.HandleWidth-m.layout.DeleteWidth, 10)

	var body string
	editing, _, isEditing := m.steps.Editing()
	switch {
	case isEditing && editing == k:
		body = m.stepInput.View()
	case strings.TrimSpace(steps[k]) == "":
		body = mutedStyle.Render("(empty step)")
	default:
		body = steps[k]
	}
	body = lipgloss.NewStyle().Width(bodyWidth).MaxWidth(bodyWidth).MaxHeight(1).Render(body)

	dragged, dragging := m.steps.Session().DraggedIndex()
	row := handleStyle.Render(" ≡ ") + body + deleteStyle.Render(" ✕ ")
	switch {
	case dragging && dragged == k:
		row = draggingStyle.Render(row)
	case k == m.stepCursor && !m.nameFocus:
		row = selectedItemStyle.Render(" ≡ ") + body + deleteStyle.Render(" ✕ ")
	}

	out := []string{row}
	for len(out) < height {
		out = append(out, "")
	}
	return out
}

func (m Model) renderImportView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Import steps"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("One step per line. A first line like *Name* sets the template name."))
	b.WriteString("\n\n")
	b.WriteString(m.importArea.View())
	dialog := dialogBoxStyle.Render(b.String())

	return dialog + "\n" + m.renderBanners() + footerStyle.Render("ctrl+s import • esc cancel")
}

func (m Model) renderTaskInputView() string {
	title := "Add task"
	if m.taskEditID != "" {
		title = "Edit task"
	}
	dialog := dialogBoxStyle.Render(titleStyle.Render(title) + "\n\n" + m.taskInput.View())
	return dialog + "\n" + footerStyle.Render("enter save • esc cancel")
}

func (m Model) renderConfirmView() string {
	box := confirmBoxStyle.Render(m.confirmMessage + "\n\n" + mutedStyle.Render("y confirm • n cancel"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHelpView() string {
	h := m.help
	h.ShowAll = true
	return titleStyle.Render("Keys") + "\n\n" + h.View(m.helpKeys()) + "\n\n" +
		mutedStyle.Render("Drag a step by its ≡ handle with the mouse. Press any key to go back.")
}
