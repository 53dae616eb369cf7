package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
)

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func progressBar(done, total, width int, unicode bool) string {
	full, empty := "#", "-"
	if unicode {
		full, empty = "█", "░"
	}
	if total <= 0 {
		return strings.Repeat(empty, width)
	}
	filled := done * width / total
	return strings.Repeat(full, filled) + strings.Repeat(empty, width-filled)
}

func checkbox(done, unicode bool) string {
	switch {
	case done && unicode:
		return "☑"
	case done:
		return "[x]"
	case unicode:
		return "☐"
	default:
		return "[ ]"
	}
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "never"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}

	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}

func renderChecklist(w io.Writer, c domain.Checklist, unicode bool) {
	fmt.Fprintf(w, "%s (%s)\n", c.TemplateName, shortID(c.ID))
	fmt.Fprintf(w, "%s %d/%d\n\n", progressBar(c.CompletedCount(), len(c.Tasks), 20, unicode), c.CompletedCount(), len(c.Tasks))
	for i, t := range c.Tasks {
		fmt.Fprintf(w, "%3d. %s %s\n", i+1, checkbox(t.Completed, unicode), t.Text)
	}
}

type templateJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Steps     []string  `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type taskJSON struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type checklistJSON struct {
	ID           string     `json:"id"`
	TemplateID   string     `json:"template_id"`
	TemplateName string     `json:"template_name"`
	Progress     float64    `json:"progress"`
	Tasks        []taskJSON `json:"tasks"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toTemplateJSON(t domain.Template) templateJSON {
	return templateJSON{ID: t.ID, Name: t.Name, Steps: t.Steps, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func toChecklistJSON(c domain.Checklist) checklistJSON {
	out := checklistJSON{
		ID:           c.ID,
		TemplateID:   c.TemplateID,
		TemplateName: c.TemplateName,
		Progress:     c.Progress(),
		Tasks:        make([]taskJSON, len(c.Tasks)),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for i, t := range c.Tasks {
		out.Tasks[i] = taskJSON{ID: t.ID, Text: t.Text, Completed: t.Completed, CompletedAt: t.CompletedAt}
	}
	return out
}
