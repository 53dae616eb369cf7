package textimport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
		hasName  bool
		steps    []string
	}{
		{
			name:  "empty",
			input: "",
			steps: []string{},
		},
		{
			name:  "only blank lines",
			input: "\n   \n\t\n",
			steps: []string{},
		},
		{
			name:  "plain steps",
			input: "Boil water\nAdd tea\n",
			steps: []string{"Boil water", "Add tea"},
		},
		{
			name:     "name line",
			input:    "*Morning Routine*\n- Wake up\n- Stretch",
			wantName: "Morning Routine",
			hasName:  true,
			steps:    []string{"Wake up", "Stretch"},
		},
		{
			name:     "name line with padding",
			input:    "  * Packing *  \nSocks",
			wantName: "Packing",
			hasName:  true,
			steps:    []string{"Socks"},
		},
		{
			name:  "two asterisks is not a name",
			input: "**\nstep",
			steps: []string{"**", "step"},
		},
		{
			name:  "name only recognised on first line",
			input: "first\n*Not a name*",
			steps: []string{"first", "*Not a name*"},
		},
		{
			name:  "dashes and whitespace stripped",
			input: "  --- one  \r\n-two\n - three",
			steps: []string{"one", "two", "three"},
		},
		{
			name:  "dash only lines dropped",
			input: "---\nreal\n -  ",
			steps: []string{"real"},
		},
		{
			name:     "name without steps",
			input:    "*Empty*",
			wantName: "Empty",
			hasName:  true,
			steps:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Parse(tc.input)
			require.Equal(t, tc.hasName, got.HasName())
			if tc.hasName {
				require.Equal(t, tc.wantName, *got.Name)
			}
			require.Equal(t, tc.steps, got.Steps)
		})
	}
}
