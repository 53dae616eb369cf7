package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/logger"
	"github.com/alexisbeaulieu97/checklist/internal/templatefile"
	"github.com/alexisbeaulieu97/checklist/internal/textimport"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

// TemplateService manages stored templates.
type TemplateService struct {
	templates  domain.TemplateRepository
	checklists domain.ChecklistRepository
	log        *logger.Logger
}

// NewTemplateService wires the service to its repositories.
func NewTemplateService(templates domain.TemplateRepository, checklists domain.ChecklistRepository, log *logger.Logger) *TemplateService {
	return &TemplateService{templates: templates, checklists: checklists, log: log}
}

// Repository exposes the template repository for the editor.
func (s *TemplateService) Repository() domain.TemplateRepository {
	return s.templates
}

// List returns all templates, most recently updated first.
func (s *TemplateService) List(ctx context.Context) ([]domain.Template, error) {
	return s.templates.ListTemplates(ctx)
}

// Get returns one template.
func (s *TemplateService) Get(ctx context.Context, id string) (domain.Template, error) {
	return s.templates.GetTemplate(ctx, id)
}

// ActiveChecklists counts the live checklists that deleting id would remove.
func (s *TemplateService) ActiveChecklists(ctx context.Context, id string) (int, error) {
	return s.checklists.CountChecklistsForTemplate(ctx, id)
}

// Delete removes a template and every checklist started from it.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if _, err := s.templates.GetTemplate(ctx, id); err != nil {
		return err
	}
	if err := s.templates.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(map[string]any{"template_id": id}).Info("template deleted")
	return nil
}

// Create stores a new template with the given steps, dropping blank ones.
func (s *TemplateService) Create(ctx context.Context, name string, steps []string) (domain.Template, error) {
	name = strings.TrimSpace(name)
	steps = domain.NonBlank(steps)
	if name == "" {
		return domain.Template{}, checklisterrors.NewValidationError("name", "template name cannot be empty", nil)
	}
	if len(steps) == 0 {
		return domain.Template{}, checklisterrors.NewValidationError("steps", "template needs at least one step", nil)
	}

	id, err := s.templates.CreateTemplate(ctx, name)
	if err != nil {
		return domain.Template{}, fmt.Errorf("create template: %w", err)
	}
	t := domain.Template{ID: id, Name: name, Steps: steps}
	if err := s.templates.UpdateTemplate(ctx, t); err != nil {
		return domain.Template{}, fmt.Errorf("store steps of template %q: %w", id, err)
	}

	s.log.WithFields(map[string]any{"template_id": id, "steps": len(steps)}).Info("template created")
	return s.templates.GetTemplate(ctx, id)
}

// ImportText creates a template from pasted text. fallbackName is used when
// the text has no "*Name*" line.
func (s *TemplateService) ImportText(ctx context.Context, text, fallbackName string) (domain.Template, error) {
	parsed := textimport.Parse(text)
	name := fallbackName
	if parsed.Name != nil && strings.TrimSpace(*parsed.Name) != "" {
		name = *parsed.Name
	}
	return s.Create(ctx, name, parsed.Steps)
}

// ImportFile creates a template from a YAML document (.yaml, .yml) or a plain
// text file. Text files without a name line are named after the file.
func (s *TemplateService) ImportFile(ctx context.Context, path string, data []byte) (domain.Template, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err := templatefile.Parse(path, data)
		if err != nil {
			return domain.Template{}, err
		}
		t := doc.Template()
		return s.Create(ctx, t.Name, t.Steps)
	default:
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return s.ImportText(ctx, string(data), base)
	}
}

// Export writes a template as a YAML document.
func (s *TemplateService) Export(ctx context.Context, id string, w io.Writer) error {
	t, err := s.templates.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	return templatefile.Encode(w, templatefile.FromTemplate(t))
}
