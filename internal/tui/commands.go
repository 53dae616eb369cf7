package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/checklist/internal/app"
	"github.com/alexisbeaulieu97/checklist/internal/editor"
	"github.com/alexisbeaulieu97/checklist/internal/logger"
)

func loadTemplatesCmd(svc *app.TemplateService) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.List(context.Background())
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return TemplatesLoadedMsg{Templates: list}
	}
}

func loadChecklistsCmd(svc *app.ChecklistService) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.List(context.Background())
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ChecklistsLoadedMsg{Checklists: list}
	}
}

func loadChecklistCmd(svc *app.ChecklistService, id string) tea.Cmd {
	return func() tea.Msg {
		c, err := svc.Get(context.Background(), id)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ChecklistLoadedMsg{Checklist: c}
	}
}

func startChecklistCmd(svc *app.ChecklistService, templateID string, force bool) tea.Cmd {
	return func() tea.Msg {
		c, err := svc.Start(context.Background(), templateID, app.StartOptions{Force: force})
		if err != nil {
			var dup *app.DuplicateActiveError
			if errors.As(err, &dup) {
				return DuplicateChecklistMsg{Err: dup}
			}
			return ErrorMsg{Err: err}
		}
		return ChecklistStartedMsg{Checklist: c}
	}
}

func toggleTaskCmd(svc *app.ChecklistService, checklistID, taskID string) tea.Cmd {
	return func() tea.Msg {
		u, err := svc.ToggleTask(context.Background(), checklistID, taskID)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return TaskUpdatedMsg{Update: u}
	}
}

func addTaskCmd(svc *app.ChecklistService, checklistID, text string) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.AddTask(context.Background(), checklistID, text); err != nil {
			return ErrorMsg{Err: err}
		}
		return ChecklistChangedMsg{ID: checklistID}
	}
}

func updateTaskCmd(svc *app.ChecklistService, checklistID, taskID, text string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.UpdateTask(context.Background(), checklistID, taskID, text); err != nil {
			return ErrorMsg{Err: err}
		}
		return ChecklistChangedMsg{ID: checklistID}
	}
}

func deleteTaskCmd(svc *app.ChecklistService, checklistID, taskID string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeleteTask(context.Background(), checklistID, taskID); err != nil {
			return ErrorMsg{Err: err}
		}
		return ChecklistChangedMsg{ID: checklistID}
	}
}

func deleteChecklistCmd(svc *app.ChecklistService, id string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Delete(context.Background(), id); err != nil {
			return ErrorMsg{Err: err}
		}
		return ChecklistDeletedMsg{ID: id}
	}
}

func deleteTemplateCmd(svc *app.TemplateService, id string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Delete(context.Background(), id); err != nil {
			return ErrorMsg{Err: err}
		}
		return TemplateDeletedMsg{ID: id}
	}
}

func openEditorCmd(svc *app.TemplateService, templateID string, log *logger.Logger) tea.Cmd {
	return func() tea.Msg {
		ed := editor.New(editor.WithLogger(log))
		if err := ed.Load(context.Background(), svc.Repository(), templateID); err != nil {
			return ErrorMsg{Err: err}
		}
		return EditorLoadedMsg{Editor: ed}
	}
}

func saveTemplateCmd(svc *app.TemplateService, d editor.Draft) tea.Cmd {
	return func() tea.Msg {
		id, err := d.Persist(context.Background(), svc.Repository())
		return TemplateSavedMsg{Draft: d, ID: id, Err: err}
	}
}

// ringBellCmd writes a terminal bell, which still reaches the terminal while
// the alt screen is active.
func ringBellCmd(w io.Writer) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		_, _ = w.Write([]byte{'\a'})
		return nil
	}
}
