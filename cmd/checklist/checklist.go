package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/checklist/internal/app"
	"github.com/alexisbeaulieu97/checklist/internal/domain"
)

func newChecklistCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"checklists", "c"},
		Short:   "Run checklists started from templates",
	}

	cmd.AddCommand(newChecklistStartCmd(flags))
	cmd.AddCommand(newChecklistListCmd(flags))
	cmd.AddCommand(newChecklistShowCmd(flags))
	cmd.AddCommand(newChecklistMarkCmd(flags, "check", "Tick a task", true))
	cmd.AddCommand(newChecklistMarkCmd(flags, "uncheck", "Untick a task", false))
	cmd.AddCommand(newChecklistAddTaskCmd(flags))
	cmd.AddCommand(newChecklistEditTaskCmd(flags))
	cmd.AddCommand(newChecklistDeleteTaskCmd(flags))
	cmd.AddCommand(newChecklistDeleteCmd(flags))

	return cmd
}

func newChecklistStartCmd(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "start <template>",
		Short: "Start a checklist from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				t, err := resolveTemplate(cmd.Context(), a.Templates, args[0])
				if err != nil {
					return failed("start checklist", fmt.Sprintf("finding %q", args[0]), err)
				}
				c, err := a.Checklists.Start(cmd.Context(), t.ID, app.StartOptions{Force: force})
				if err != nil {
					return failed("start checklist", fmt.Sprintf("starting %q", t.Name), err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✓ Started %q with %d tasks\n", c.TemplateName, len(c.Tasks))
				fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", c.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Start even when the template already has an active checklist")

	return cmd
}

func newChecklistListCmd(flags *rootFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active checklists, most recently touched first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				list, err := a.Checklists.List(cmd.Context())
				if err != nil {
					return failed("list checklists", "loading checklists", err)
				}
				return renderChecklistList(cmd, list, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func renderChecklistList(cmd *cobra.Command, list []domain.Checklist, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		payload := make([]checklistJSON, len(list))
		for i, c := range list {
			payload[i] = toChecklistJSON(c)
		}
		return writeJSON(out, payload)
	}

	if len(list) == 0 {
		fmt.Fprintln(out, "No active checklists.")
		fmt.Fprintln(out, "\nRun 'checklist checklist start <template>' to start one.")
		return nil
	}

	unicode := isTerminal(out)
	table := newTable(out)
	fmt.Fprintln(table, "ID\tTEMPLATE\tPROGRESS\tUPDATED")
	for _, c := range list {
		fmt.Fprintf(table, "%s\t%s\t%s %d/%d\t%s\n",
			shortID(c.ID), c.TemplateName,
			progressBar(c.CompletedCount(), len(c.Tasks), 10, unicode), c.CompletedCount(), len(c.Tasks),
			formatRelativeTime(c.UpdatedAt))
	}
	return table.Flush()
}

func newChecklistShowCmd(flags *rootFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <checklist>",
		Short: "Print a checklist with numbered tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				c, err := resolveChecklist(cmd.Context(), a.Checklists, args[0])
				if err != nil {
					return failed("show checklist", fmt.Sprintf("finding %q", args[0]), err)
				}
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), toChecklistJSON(c))
				}
				renderChecklist(cmd.OutOrStdout(), c, isTerminal(cmd.OutOrStdout()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func newChecklistMarkCmd(flags *rootFlags, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <checklist> <task-number>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				c, err := resolveChecklist(cmd.Context(), a.Checklists, args[0])
				if err != nil {
					return failed(use+" task", fmt.Sprintf("finding %q", args[0]), err)
				}
				task, err := taskByNumber(c, args[1])
				if err != nil {
					return failed(use+" task", "reading task number", err)
				}
				update, err := a.Checklists.SetTaskCompleted(cmd.Context(), c.ID, task.ID, completed)
				if err != nil {
					return failed(use+" task", fmt.Sprintf("updating %q", task.Text), err)
				}

				out := cmd.OutOrStdout()
				renderChecklist(out, update.Checklist, isTerminal(out))
				if update.JustCompleted {
					fmt.Fprintf(out, "\n🎉 %s complete!\n", update.Checklist.TemplateName)
				}
				return nil
			})
		},
	}
}

func newChecklistAddTaskCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add-task <checklist> <text...>",
		Short: "Append a task to a running checklist",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				c, err := resolveChecklist(cmd.Context(), a.Checklists, args[0])
				if err != nil {
					return failed("add task", fmt.Sprintf("finding %q", args[0]), err)
				}
				text := strings.Join(args[1:], " ")
				if _, err := a.Checklists.AddTask(cmd.Context(), c.ID, text); err != nil {
					return failed("add task", fmt.Sprintf("adding to %q", c.TemplateName), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Added task %d to %q\n", len(c.Tasks)+1, c.TemplateName)
				return nil
			})
		},
	}
}

func newChecklistEditTaskCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit-task <checklist> <task-number> <text...>",
		Short: "Rewrite a task's text",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				c, err := resolveChecklist(cmd.Context(), a.Checklists, args[0])
				if err != nil {
					return failed("edit task", fmt.Sprintf("finding %q", args[0]), err)
				}
				task, err := taskByNumber(c, args[1])
				if err != nil {
					return failed("edit task", "reading task number", err)
				}
				if err := a.Checklists.UpdateTask(cmd.Context(), c.ID, task.ID, strings.Join(args[2:], " ")); err != nil {
					return failed("edit task", fmt.Sprintf("updating %q", task.Text), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated task %s\n", args[1])
				return nil
			})
		},
	}
}

func newChecklistDeleteTaskCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-task <checklist> <task-number>",
		Short: "Remove a task from a running checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				c, err := resolveChecklist(cmd.Context(), a.Checklists, args[0])
				if err != nil {
					return failed("delete task", fmt.Sprintf("finding %q", args[0]), err)
				}
				task, err := taskByNumber(c, args[1])
				if err != nil {
					return failed("delete task", "reading task number", err)
				}
				if err := a.Checklists.DeleteTask(cmd.Context(), c.ID, task.ID); err != nil {
					return failed("delete task", fmt.Sprintf("deleting %q", task.Text), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted task %q\n", task.Text)
				return nil
			})
		},
	}
}

func newChecklistDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <checklist>",
		Aliases: []string{"rm"},
		Short:   "Delete a checklist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				c, err := resolveChecklist(cmd.Context(), a.Checklists, args[0])
				if err != nil {
					return failed("delete checklist", fmt.Sprintf("finding %q", args[0]), err)
				}
				if err := a.Checklists.Delete(cmd.Context(), c.ID); err != nil {
					return failed("delete checklist", fmt.Sprintf("deleting %q", c.TemplateName), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted checklist %q\n", c.TemplateName)
				return nil
			})
		},
	}
}
