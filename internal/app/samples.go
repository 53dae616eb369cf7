package app

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/logger"
	"github.com/alexisbeaulieu97/checklist/internal/textimport"
)

//go:embed samples/*.txt
var embeddedSamples embed.FS

// SampleLoader seeds starter templates into an empty database.
type SampleLoader struct {
	templates domain.TemplateRepository
	fsys      fs.FS
	log       *logger.Logger
}

// NewSampleLoader uses the bundled samples.
func NewSampleLoader(templates domain.TemplateRepository, log *logger.Logger) *SampleLoader {
	sub, err := fs.Sub(embeddedSamples, "samples")
	if err != nil {
		panic(fmt.Sprintf("embedded samples: %v", err))
	}
	return NewSampleLoaderFS(templates, sub, log)
}

// NewSampleLoaderFS reads *.txt samples from the root of fsys.
func NewSampleLoaderFS(templates domain.TemplateRepository, fsys fs.FS, log *logger.Logger) *SampleLoader {
	return &SampleLoader{templates: templates, fsys: fsys, log: log}
}

// Load creates one template per sample file, but only when no templates exist
// yet. Samples that cannot be read or parsed are skipped. It returns the
// number of templates created.
func (l *SampleLoader) Load(ctx context.Context) (int, error) {
	existing, err := l.templates.ListTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list templates: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return 0, fmt.Errorf("read samples: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	created := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		log := l.log.WithFields(map[string]any{"sample": entry.Name()})

		data, err := fs.ReadFile(l.fsys, path.Clean(entry.Name()))
		if err != nil {
			log.Warn("skipping unreadable sample")
			continue
		}

		parsed := textimport.Parse(string(data))
		if parsed.Name == nil || strings.TrimSpace(*parsed.Name) == "" || len(parsed.Steps) == 0 {
			log.Warn("skipping sample without a name or steps")
			continue
		}

		id, err := l.templates.CreateTemplate(ctx, *parsed.Name)
		if err != nil {
			log.Error(err, "skipping sample")
			continue
		}
		if err := l.templates.UpdateTemplate(ctx, domain.Template{ID: id, Name: *parsed.Name, Steps: parsed.Steps}); err != nil {
			log.Error(err, "skipping sample")
			_ = l.templates.DeleteTemplate(ctx, id)
			continue
		}
		created++
	}

	l.log.WithFields(map[string]any{"created": created}).Info("sample templates loaded")
	return created, nil
}
