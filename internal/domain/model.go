package domain

import (
	"strings"
	"time"
)

// Template is a reusable, ordered list of steps.
type Template struct {
	ID        string
	Name      string
	Steps     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Task is one line item of a live checklist.
type Task struct {
	ID          string
	Text        string
	Completed   bool
	CompletedAt *time.Time
	OrderIndex  int
}

// Checklist is a live instance of a template.
type Checklist struct {
	ID           string
	TemplateID   string
	TemplateName string
	Tasks        []Task
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Progress returns the completed fraction in [0, 1].
func (c Checklist) Progress() float64 {
	if len(c.Tasks) == 0 {
		return 0
	}
	return float64(c.CompletedCount()) / float64(len(c.Tasks))
}

// CompletedCount counts ticked tasks.
func (c Checklist) CompletedCount() int {
	done := 0
	for _, t := range c.Tasks {
		if t.Completed {
			done++
		}
	}
	return done
}

// IsCompleted is true once every task is ticked. An empty checklist is never complete.
func (c Checklist) IsCompleted() bool {
	return len(c.Tasks) > 0 && c.CompletedCount() == len(c.Tasks)
}

// Task looks a task up by ID.
func (c Checklist) Task(id string) (Task, bool) {
	for _, t := range c.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// NonBlank drops entries that are empty or whitespace only, keeping order.
func NonBlank(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
