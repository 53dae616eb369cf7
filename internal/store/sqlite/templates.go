package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

func templateNotFound(id string) error {
	return checklisterrors.NewNotFoundError("template", id, domain.ErrNotFound)
}

// ListTemplates returns every template, most recently updated first.
func (s *Store) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM templates ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Template, 0)
	index := make(map[string]int)
	for rows.Next() {
		var t domain.Template
		var created, updated int64
		if err := rows.Scan(&t.ID, &t.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}
		t.CreatedAt = fromStamp(created)
		t.UpdatedAt = fromStamp(updated)
		t.Steps = []string{}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template rows: %w", err)
	}
	rows.Close()

	stepRows, err := s.db.QueryContext(ctx, `SELECT template_id, text FROM template_steps ORDER BY template_id, order_index`)
	if err != nil {
		return nil, fmt.Errorf("list template steps: %w", err)
	}
	defer stepRows.Close()

	for stepRows.Next() {
		var templateID, text string
		if err := stepRows.Scan(&templateID, &text); err != nil {
			return nil, fmt.Errorf("scan template step row: %w", err)
		}
		if i, ok := index[templateID]; ok {
			out[i].Steps = append(out[i].Steps, text)
		}
	}
	if err := stepRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template step rows: %w", err)
	}
	return out, nil
}

// GetTemplate loads one template with its steps in order.
func (s *Store) GetTemplate(ctx context.Context, id string) (domain.Template, error) {
	var t domain.Template
	var created, updated int64
	err := s.db.QueryRowContext(ctx, `SELECT id, name, created_at, updated_at FROM templates WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Template{}, templateNotFound(id)
		}
		return domain.Template{}, fmt.Errorf("query template %q: %w", id, err)
	}
	t.CreatedAt = fromStamp(created)
	t.UpdatedAt = fromStamp(updated)

	steps, err := s.templateSteps(ctx, s.db, id)
	if err != nil {
		return domain.Template{}, err
	}
	t.Steps = steps
	return t, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) templateSteps(ctx context.Context, q querier, templateID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT text FROM template_steps WHERE template_id = ? ORDER BY order_index`, templateID)
	if err != nil {
		return nil, fmt.Errorf("query steps of template %q: %w", templateID, err)
	}
	defer rows.Close()

	steps := make([]string, 0)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan template step: %w", err)
		}
		steps = append(steps, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template steps: %w", err)
	}
	return steps, nil
}

// CreateTemplate inserts an empty template and returns its ID.
func (s *Store) CreateTemplate(ctx context.Context, name string) (string, error) {
	id := s.newID()
	now := s.stamp()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO templates (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, now, now,
	); err != nil {
		return "", fmt.Errorf("create template: %w", err)
	}

	s.log.WithFields(map[string]any{"template_id": id}).Debug("template created")
	return id, nil
}

// UpdateTemplate rewrites the name and replaces all steps, numbering them by position.
func (s *Store) UpdateTemplate(ctx context.Context, t domain.Template) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE templates SET name = ?, updated_at = ? WHERE id = ?`, t.Name, s.stamp(), t.ID)
		if err != nil {
			return fmt.Errorf("update template: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return templateNotFound(t.ID)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM template_steps WHERE template_id = ?`, t.ID); err != nil {
			return fmt.Errorf("clear template steps: %w", err)
		}
		for i, text := range t.Steps {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO template_steps (id, template_id, text, order_index) VALUES (?, ?, ?, ?)`,
				s.newID(), t.ID, text, i,
			); err != nil {
				return fmt.Errorf("insert template step %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(map[string]any{"template_id": t.ID, "steps": len(t.Steps)}).Debug("template updated")
	return nil
}

// DeleteTemplate removes a template together with its steps and checklists.
// Deleting a missing template is not an error.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	s.log.WithFields(map[string]any{"template_id": id}).Debug("template deleted")
	return nil
}
