// Package textimport turns pasted plain text into template steps.
//
// One step per line. Leading dashes and surrounding whitespace are stripped
// and blank lines are dropped. A first line wrapped in asterisks, such as
// "*Morning Routine*", names the template instead of becoming a step.
package textimport

import "strings"

// Parsed is the result of Parse. Name is nil when the text carried no name line.
type Parsed struct {
	Name  *string
	Steps []string
}

// HasName reports whether a name line was found.
func (p Parsed) HasName() bool {
	return p.Name != nil
}

// Parse splits text into an optional name and ordered steps.
func Parse(text string) Parsed {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return Parsed{Steps: []string{}}
	}

	first := lines[0]
	if len(first) > 2 && strings.HasPrefix(first, "*") && strings.HasSuffix(first, "*") {
		name := strings.TrimSpace(first[1 : len(first)-1])
		return Parsed{Name: &name, Steps: lines[1:]}
	}
	return Parsed{Steps: lines}
}
