// Package components holds small render helpers shared by the terminal UI screens.
package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Progress renders checklist completion as a count followed by a bar.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a progress component for total tasks drawn width cells wide.
func NewProgress(total, width int) Progress {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = max(width, 1)
	return Progress{bar: bar, total: total}
}

// View renders the bar for the provided number of completed tasks.
func (p Progress) View(completed int) string {
	ratio := 0.0
	if p.total > 0 {
		ratio = math.Min(1.0, float64(completed)/float64(p.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", completed, p.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, p.bar.ViewAs(ratio), " ", label)
}
