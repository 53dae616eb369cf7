// Package templatefile reads and writes templates as YAML documents.
//
//	version: "1.0"
//	name: Morning Routine
//	steps:
//	  - Wake up
//	  - Stretch
package templatefile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/validation"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

// CurrentVersion is written by Encode.
const CurrentVersion = "1.0"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Document is the on-disk form of a template.
type Document struct {
	Version string   `yaml:"version" validate:"required,semver"`
	Name    string   `yaml:"name" validate:"notblank"`
	Steps   []string `yaml:"steps" validate:"min=1,dive,notblank"`
}

// FromTemplate builds a document from a stored template, dropping blank steps.
func FromTemplate(t domain.Template) Document {
	return Document{
		Version: CurrentVersion,
		Name:    t.Name,
		Steps:   domain.NonBlank(t.Steps),
	}
}

// Template converts the document into an unsaved template with trimmed text.
func (d Document) Template() domain.Template {
	steps := make([]string, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, strings.TrimSpace(s))
	}
	return domain.Template{Name: strings.TrimSpace(d.Name), Steps: steps}
}

// ParseFile reads and validates the document at path.
func ParseFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, checklisterrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates data. path is only used in error messages.
func Parse(path string, data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return Document{}, checklisterrors.NewParseError(path, 0, fmt.Errorf("empty document"))
		}
		return Document{}, checklisterrors.NewParseError(path, extractLine(err), err)
	}

	if err := validation.Struct(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Encode writes doc as YAML.
func Encode(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode template document: %w", err)
	}
	return enc.Close()
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
