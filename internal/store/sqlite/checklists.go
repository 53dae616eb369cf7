package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

func checklistNotFound(id string) error {
	return checklisterrors.NewNotFoundError("checklist", id, domain.ErrNotFound)
}

func taskNotFound(id string) error {
	return checklisterrors.NewNotFoundError("task", id, domain.ErrNotFound)
}

// ListChecklists returns every checklist with its tasks, most recently touched first.
func (s *Store) ListChecklists(ctx context.Context) ([]domain.Checklist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, template_id, template_name, created_at, updated_at FROM checklists ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Checklist, 0)
	index := make(map[string]int)
	for rows.Next() {
		c, err := scanChecklist(rows)
		if err != nil {
			return nil, err
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checklist rows: %w", err)
	}
	rows.Close()

	taskRows, err := s.db.QueryContext(ctx,
		`SELECT checklist_id, id, text, completed, completed_at, order_index FROM checklist_tasks ORDER BY checklist_id, order_index`)
	if err != nil {
		return nil, fmt.Errorf("list checklist tasks: %w", err)
	}
	defer taskRows.Close()

	for taskRows.Next() {
		var checklistID string
		task, err := scanTask(taskRows, &checklistID)
		if err != nil {
			return nil, err
		}
		if i, ok := index[checklistID]; ok {
			out[i].Tasks = append(out[i].Tasks, task)
		}
	}
	if err := taskRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checklist task rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChecklist(row scanner) (domain.Checklist, error) {
	var c domain.Checklist
	var created, updated int64
	if err := row.Scan(&c.ID, &c.TemplateID, &c.TemplateName, &created, &updated); err != nil {
		return domain.Checklist{}, err
	}
	c.CreatedAt = fromStamp(created)
	c.UpdatedAt = fromStamp(updated)
	c.Tasks = []domain.Task{}
	return c, nil
}

func scanTask(row scanner, checklistID *string) (domain.Task, error) {
	var t domain.Task
	var completed int
	var completedAt sql.NullInt64
	dest := []any{&t.ID, &t.Text, &completed, &completedAt, &t.OrderIndex}
	if checklistID != nil {
		dest = append([]any{checklistID}, dest...)
	}
	if err := row.Scan(dest...); err != nil {
		return domain.Task{}, fmt.Errorf("scan checklist task: %w", err)
	}
	t.Completed = completed != 0
	if completedAt.Valid {
		at := fromStamp(completedAt.Int64)
		t.CompletedAt = &at
	}
	return t, nil
}

// GetChecklist loads one checklist with its tasks in order.
func (s *Store) GetChecklist(ctx context.Context, id string) (domain.Checklist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, template_id, template_name, created_at, updated_at FROM checklists WHERE id = ?`, id)
	c, err := scanChecklist(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Checklist{}, checklistNotFound(id)
		}
		return domain.Checklist{}, fmt.Errorf("query checklist %q: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, completed, completed_at, order_index FROM checklist_tasks WHERE checklist_id = ? ORDER BY order_index`, id)
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("query tasks of checklist %q: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows, nil)
		if err != nil {
			return domain.Checklist{}, err
		}
		c.Tasks = append(c.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return domain.Checklist{}, fmt.Errorf("iterate checklist tasks: %w", err)
	}
	return c, nil
}

// CreateChecklistFromTemplate copies the template's steps, in order, into a new checklist.
func (s *Store) CreateChecklistFromTemplate(ctx context.Context, templateID string) (string, error) {
	id := s.newID()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var name string
		err := tx.QueryRowContext(ctx, `SELECT name FROM templates WHERE id = ?`, templateID).Scan(&name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return templateNotFound(templateID)
			}
			return fmt.Errorf("query template %q: %w", templateID, err)
		}

		steps, err := s.templateSteps(ctx, tx, templateID)
		if err != nil {
			return err
		}

		now := s.stamp()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO checklists (id, template_id, template_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			id, templateID, name, now, now,
		); err != nil {
			return fmt.Errorf("insert checklist: %w", err)
		}
		for i, text := range steps {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO checklist_tasks (id, checklist_id, text, completed, completed_at, order_index) VALUES (?, ?, ?, 0, NULL, ?)`,
				s.newID(), id, text, i,
			); err != nil {
				return fmt.Errorf("insert checklist task %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.WithFields(map[string]any{"checklist_id": id, "template_id": templateID}).Debug("checklist created")
	return id, nil
}

// SetTaskCompleted ticks or unticks a task, stamping the completion time.
func (s *Store) SetTaskCompleted(ctx context.Context, checklistID, taskID string, completed bool) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		now := s.stamp()
		var completedAt any
		flag := 0
		if completed {
			completedAt = now
			flag = 1
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE checklist_tasks SET completed = ?, completed_at = ? WHERE id = ? AND checklist_id = ?`,
			flag, completedAt, taskID, checklistID)
		if err != nil {
			return fmt.Errorf("update task status: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return taskNotFound(taskID)
		}
		return touchChecklist(ctx, tx, checklistID, now)
	})
}

// UpdateTaskText replaces a task's text.
func (s *Store) UpdateTaskText(ctx context.Context, checklistID, taskID, text string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE checklist_tasks SET text = ? WHERE id = ? AND checklist_id = ?`, text, taskID, checklistID)
		if err != nil {
			return fmt.Errorf("update task text: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return taskNotFound(taskID)
		}
		return touchChecklist(ctx, tx, checklistID, s.stamp())
	})
}

// AddTask appends a task after the current last one.
func (s *Store) AddTask(ctx context.Context, checklistID, text string) (string, error) {
	id := s.newID()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireChecklist(ctx, tx, checklistID); err != nil {
			return err
		}

		var maxOrder int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(order_index), -1) FROM checklist_tasks WHERE checklist_id = ?`, checklistID,
		).Scan(&maxOrder); err != nil {
			return fmt.Errorf("query max task order: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO checklist_tasks (id, checklist_id, text, completed, completed_at, order_index) VALUES (?, ?, ?, 0, NULL, ?)`,
			id, checklistID, text, maxOrder+1,
		); err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		return touchChecklist(ctx, tx, checklistID, s.stamp())
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteTask removes a task and renumbers the remaining ones contiguously.
// The last task of a checklist cannot be deleted.
func (s *Store) DeleteTask(ctx context.Context, checklistID, taskID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireChecklist(ctx, tx, checklistID); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id, order_index FROM checklist_tasks WHERE checklist_id = ? ORDER BY order_index`, checklistID)
		if err != nil {
			return fmt.Errorf("query tasks: %w", err)
		}
		type entry struct {
			id    string
			order int
		}
		var tasks []entry
		for rows.Next() {
			var e entry
			if err := rows.Scan(&e.id, &e.order); err != nil {
				rows.Close()
				return fmt.Errorf("scan task: %w", err)
			}
			tasks = append(tasks, e)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("iterate tasks: %w", err)
		}
		rows.Close()

		if len(tasks) <= 1 {
			return checklisterrors.NewConstraintError("last_task", domain.ErrLastTask.Error(), domain.ErrLastTask)
		}

		found := false
		remaining := make([]entry, 0, len(tasks)-1)
		for _, e := range tasks {
			if e.id == taskID {
				found = true
				continue
			}
			remaining = append(remaining, e)
		}
		if !found {
			return taskNotFound(taskID)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM checklist_tasks WHERE id = ?`, taskID); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		for i, e := range remaining {
			if e.order == i {
				continue
			}
			if _, err := tx.ExecContext(ctx, `UPDATE checklist_tasks SET order_index = ? WHERE id = ?`, i, e.id); err != nil {
				return fmt.Errorf("renumber task: %w", err)
			}
		}
		return touchChecklist(ctx, tx, checklistID, s.stamp())
	})
}

// DeleteChecklist removes a checklist and its tasks. Missing checklists are ignored.
func (s *Store) DeleteChecklist(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM checklists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete checklist: %w", err)
	}
	s.log.WithFields(map[string]any{"checklist_id": id}).Debug("checklist deleted")
	return nil
}

// CountChecklistsForTemplate counts live checklists started from a template.
func (s *Store) CountChecklistsForTemplate(ctx context.Context, templateID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checklists WHERE template_id = ?`, templateID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count checklists: %w", err)
	}
	return n, nil
}

func requireChecklist(ctx context.Context, tx *sql.Tx, id string) error {
	var exists int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM checklists WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return checklistNotFound(id)
		}
		return fmt.Errorf("query checklist %q: %w", id, err)
	}
	return nil
}

func touchChecklist(ctx context.Context, tx *sql.Tx, id string, now int64) error {
	if _, err := tx.ExecContext(ctx, `UPDATE checklists SET updated_at = ? WHERE id = ?`, now, id); err != nil {
		return fmt.Errorf("touch checklist: %w", err)
	}
	return nil
}
