package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
)

func newTemplateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "t"},
		Short:   "Manage checklist templates",
	}

	cmd.AddCommand(newTemplateListCmd(flags))
	cmd.AddCommand(newTemplateShowCmd(flags))
	cmd.AddCommand(newTemplateImportCmd(flags))
	cmd.AddCommand(newTemplateExportCmd(flags))
	cmd.AddCommand(newTemplateDeleteCmd(flags))

	return cmd
}

func newTemplateListCmd(flags *rootFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				templates, err := a.Templates.List(cmd.Context())
				if err != nil {
					return failed("list templates", "loading templates", err)
				}
				return renderTemplateList(cmd, templates, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func renderTemplateList(cmd *cobra.Command, templates []domain.Template, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		payload := make([]templateJSON, len(templates))
		for i, t := range templates {
			payload[i] = toTemplateJSON(t)
		}
		return writeJSON(out, payload)
	}

	if len(templates) == 0 {
		fmt.Fprintln(out, "No templates yet.")
		fmt.Fprintln(out, "\nRun 'checklist template import <file>' or open the editor with 'checklist'.")
		return nil
	}

	table := newTable(out)
	fmt.Fprintln(table, "ID\tNAME\tSTEPS\tUPDATED")
	for _, t := range templates {
		fmt.Fprintf(table, "%s\t%s\t%d\t%s\n", shortID(t.ID), t.Name, len(t.Steps), formatRelativeTime(t.UpdatedAt))
	}
	return table.Flush()
}

func newTemplateShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <template>",
		Short: "Print a template's steps in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				t, err := resolveTemplate(cmd.Context(), a.Templates, args[0])
				if err != nil {
					return failed("show template", fmt.Sprintf("finding %q", args[0]), err)
				}
				active, err := a.Templates.ActiveChecklists(cmd.Context(), t.ID)
				if err != nil {
					return failed("show template", "counting checklists", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", t.Name, shortID(t.ID))
				fmt.Fprintf(out, "Active checklists: %d\n\n", active)
				for i, s := range t.Steps {
					fmt.Fprintf(out, "%3d. %s\n", i+1, s)
				}
				return nil
			})
		},
	}
}

func newTemplateImportCmd(flags *rootFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Create a template from a YAML document or a plain text list",
		Long: `Create a template from a file.

Files ending in .yaml or .yml are read as template documents. Anything else is
read as plain text: one step per line, with an optional first line such as
*Morning Routine* naming the template. Use - to read plain text from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := readInput(cmd, path)
			if err != nil {
				return newCommandError("import template", fmt.Sprintf("reading %s", path), err, "Check that the file exists and you have permission to read it.")
			}

			return withApp(cmd, flags, func(a *AppContext) error {
				var t domain.Template
				if path == "-" || name != "" {
					fallback := name
					if fallback == "" {
						fallback = "Imported"
					}
					t, err = a.Templates.ImportText(cmd.Context(), string(data), fallback)
				} else {
					t, err = a.Templates.ImportFile(cmd.Context(), path, data)
				}
				if err != nil {
					return failed("import template", fmt.Sprintf("importing %s", path), err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported template %q with %d steps\n", t.Name, len(t.Steps))
				fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", t.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name to use when the text does not carry one (forces plain text parsing)")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func newTemplateExportCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <template>",
		Short: "Write a template as a YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				t, err := resolveTemplate(cmd.Context(), a.Templates, args[0])
				if err != nil {
					return failed("export template", fmt.Sprintf("finding %q", args[0]), err)
				}

				var buf bytes.Buffer
				if err := a.Templates.Export(cmd.Context(), t.ID, &buf); err != nil {
					return failed("export template", fmt.Sprintf("encoding %q", t.Name), err)
				}

				if output == "" || output == "-" {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
					return newCommandError("export template", "creating output directory", err, "Check the output path.")
				}
				if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
					return newCommandError("export template", fmt.Sprintf("writing %s", output), err, "Check disk space and file permissions, then retry.")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %q to %s\n", t.Name, output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func newTemplateDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <template>",
		Aliases: []string{"rm"},
		Short:   "Delete a template and every checklist started from it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *AppContext) error {
				t, err := resolveTemplate(cmd.Context(), a.Templates, args[0])
				if err != nil {
					return failed("delete template", fmt.Sprintf("finding %q", args[0]), err)
				}
				if err := a.Templates.Delete(cmd.Context(), t.ID); err != nil {
					return failed("delete template", fmt.Sprintf("deleting %q", t.Name), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted template %q\n", t.Name)
				return nil
			})
		},
	}
}
