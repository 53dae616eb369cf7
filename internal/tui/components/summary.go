package components

import (
	"fmt"
	"strings"
	"time"
)

// SummaryData aggregates the counts shown under a checklist.
type SummaryData struct {
	Total       int
	Completed   int
	StartedAt   time.Time
	CompletedAt time.Time
}

// Summary renders a short textual status of a checklist.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// Done reports whether every task is ticked.
func (s Summary) Done() bool {
	return s.data.Total > 0 && s.data.Completed >= s.data.Total
}

// View renders the summary.
func (s Summary) View() string {
	if s.data.Total == 0 {
		return "No tasks"
	}

	var lines []string
	switch remaining := s.data.Total - s.data.Completed; {
	case s.Done():
		line := "All tasks done"
		if !s.data.StartedAt.IsZero() && !s.data.CompletedAt.IsZero() && s.data.CompletedAt.After(s.data.StartedAt) {
			line += fmt.Sprintf(" in %s", s.data.CompletedAt.Sub(s.data.StartedAt).Round(time.Minute))
		}
		lines = append(lines, line)
	case remaining == 1:
		lines = append(lines, "1 task remaining")
	default:
		lines = append(lines, fmt.Sprintf("%d tasks remaining", remaining))
	}

	if !s.data.StartedAt.IsZero() {
		lines = append(lines, "Started "+s.data.StartedAt.Local().Format("Jan 2 15:04"))
	}
	return strings.Join(lines, " · ")
}
