package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/checklist/internal/tui"
)

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	a, err := openApp(cmd, flags, logToFile)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Log.Info("launching terminal ui")

	var bell io.Writer
	if a.Config.TUI.CompletionBell {
		bell = os.Stdout
	}

	m := tui.NewModel(a.Templates, a.Checklists, tui.Options{
		Geometry:       a.Config.Geometry(),
		ConfirmDeletes: a.Config.TUI.ConfirmDeletes,
		Logger:         a.Log.WithFields(map[string]any{"component": "tui"}),
		Bell:           bell,
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		a.Log.Error(err, "terminal ui failed")
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}

	a.Log.Info("terminal ui closed")
	return nil
}
