package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	"github.com/alexisbeaulieu97/checklist/internal/reorder"
	"github.com/alexisbeaulieu97/checklist/internal/store/sqlite"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

// memRepo is an in-memory TemplateRepository.
type memRepo struct {
	templates map[string]domain.Template
	nextID    int
	failOn    string
}

func newMemRepo() *memRepo {
	return &memRepo{templates: map[string]domain.Template{}}
}

func (r *memRepo) ListTemplates(context.Context) ([]domain.Template, error) {
	out := make([]domain.Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	return out, nil
}

func (r *memRepo) GetTemplate(_ context.Context, id string) (domain.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return domain.Template{}, checklisterrors.NewNotFoundError("template", id, domain.ErrNotFound)
	}
	return t, nil
}

func (r *memRepo) CreateTemplate(_ context.Context, name string) (string, error) {
	if r.failOn == "create" {
		return "", errors.New("disk full")
	}
	r.nextID++
	id := fmt.Sprintf("t%d", r.nextID)
	r.templates[id] = domain.Template{ID: id, Name: name, Steps: []string{}}
	return id, nil
}

func (r *memRepo) UpdateTemplate(_ context.Context, t domain.Template) error {
	if r.failOn == "update" {
		return errors.New("disk full")
	}
	if _, ok := r.templates[t.ID]; !ok {
		return checklisterrors.NewNotFoundError("template", t.ID, domain.ErrNotFound)
	}
	r.templates[t.ID] = t
	return nil
}

func (r *memRepo) DeleteTemplate(_ context.Context, id string) error {
	delete(r.templates, id)
	return nil
}

func withSteps(steps ...string) *Editor {
	e := New()
	for i, s := range steps {
		if i > 0 {
			e.AddStep()
		}
		e.UpdateStepText(i, s)
	}
	return e
}

func TestNewEditorStartsWithOneBlankStep(t *testing.T) {
	t.Parallel()

	e := New()
	assert.Equal(t, []string{""}, e.Steps())
	assert.True(t, e.IsNew())
	assert.False(t, e.HasUnsavedChanges())
	assert.False(t, e.CanSave())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemRepo()
	repo.templates["a"] = domain.Template{ID: "a", Name: "Trip", Steps: []string{"Pack", "Go"}}
	repo.templates["empty"] = domain.Template{ID: "empty", Name: "Empty"}

	e := New()
	e.SetName("scratch")
	require.NoError(t, e.Load(ctx, repo, "a"))
	assert.Equal(t, "Trip", e.Name())
	assert.Equal(t, []string{"Pack", "Go"}, e.Steps())
	assert.Equal(t, "a", e.TemplateID())
	assert.False(t, e.HasUnsavedChanges())

	require.NoError(t, e.Load(ctx, repo, "empty"))
	assert.Equal(t, []string{""}, e.Steps())

	require.NoError(t, e.Load(ctx, repo, ""))
	assert.True(t, e.IsNew())
	assert.Equal(t, "", e.Name())

	err := e.Load(ctx, repo, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStepMutations(t *testing.T) {
	t.Parallel()

	e := withSteps("A", "B", "C")
	assert.Equal(t, []string{"A", "B", "C"}, e.Steps())
	assert.True(t, e.HasUnsavedChanges())

	e.UpdateStepText(5, "ignored")
	e.UpdateStepText(-1, "ignored")
	assert.Equal(t, []string{"A", "B", "C"}, e.Steps())

	e.DeleteStep(1)
	assert.Equal(t, []string{"A", "C"}, e.Steps())
	e.DeleteStep(7)
	assert.Equal(t, []string{"A", "C"}, e.Steps())

	e.DeleteStep(0)
	e.DeleteStep(0)
	assert.Equal(t, []string{"C"}, e.Steps(), "the last step is never removed")
}

func TestReorderStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		want     []string
		dirty    bool
	}{
		{name: "down", from: 0, to: 2, want: []string{"B", "C", "A", "D"}, dirty: true},
		{name: "up", from: 3, to: 1, want: []string{"A", "D", "B", "C"}, dirty: true},
		{name: "same slot", from: 2, to: 2, want: []string{"A", "B", "C", "D"}},
		{name: "from out of range", from: 4, to: 0, want: []string{"A", "B", "C", "D"}},
		{name: "to out of range", from: 0, to: -1, want: []string{"A", "B", "C", "D"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			repo := newMemRepo()
			repo.templates["x"] = domain.Template{ID: "x", Name: "X", Steps: []string{"A", "B", "C", "D"}}
			e := New()
			require.NoError(t, e.Load(ctx, repo, "x"))
			ids := e.StepIDs()

			e.ReorderStep(tc.from, tc.to)
			assert.Equal(t, tc.want, e.Steps())
			assert.Equal(t, tc.dirty, e.HasUnsavedChanges())
			assert.Len(t, e.StepIDs(), 4)
			if tc.dirty {
				assert.Equal(t, ids[tc.from], e.StepIDs()[tc.to], "step identity travels with the step")
			}
		})
	}
}

// dragThroughList runs a mouse gesture through the drag list bound to the editor.
func dragThroughList(l *reorder.List, e *Editor, index int, dy float64) {
	l.DragStart(index, reorder.RegionHandle)
	for remaining := dy; remaining != 0; {
		d := 8.0
		if remaining < 0 {
			d = -8
		}
		if (d > 0 && remaining < d) || (d < 0 && remaining > d) {
			d = remaining
		}
		l.DragMove(d)
		l.Render(e.Steps())
		remaining -= d
	}
	l.DragEnd()
	l.Render(e.Steps())
}

func TestDragListDrivesEditor(t *testing.T) {
	t.Parallel()

	pitch := reorder.DefaultGeometry.SlotPitch()

	t.Run("boundary move to last slot", func(t *testing.T) {
		t.Parallel()

		e := withSteps("A", "B", "C", "D")
		l := reorder.NewList(reorder.DefaultGeometry, e.Callbacks())
		l.Render(e.Steps())

		dragThroughList(l, e, 0, 3*pitch)
		assert.Equal(t, []string{"B", "C", "D", "A"}, e.Steps())
	})

	t.Run("upward move", func(t *testing.T) {
		t.Parallel()

		e := withSteps("A", "B", "C", "D")
		l := reorder.NewList(reorder.DefaultGeometry, e.Callbacks())
		l.Render(e.Steps())

		dragThroughList(l, e, 1, -pitch)
		assert.Equal(t, []string{"B", "A", "C", "D"}, e.Steps())
	})

	t.Run("small drag does nothing", func(t *testing.T) {
		t.Parallel()

		e := withSteps("A", "B", "C", "D")
		l := reorder.NewList(reorder.DefaultGeometry, e.Callbacks())
		l.Render(e.Steps())
		revisionSteps := e.Steps()

		dragThroughList(l, e, 0, 20)
		assert.Equal(t, revisionSteps, e.Steps())
	})

	t.Run("reversal sequence", func(t *testing.T) {
		t.Parallel()

		e := withSteps("A", "B", "C", "D")
		l := reorder.NewList(reorder.DefaultGeometry, e.Callbacks())
		l.Render(e.Steps())

		dragThroughList(l, e, 3, -3*pitch)
		assert.Equal(t, []string{"D", "A", "B", "C"}, e.Steps())
		dragThroughList(l, e, 3, -2*pitch)
		assert.Equal(t, []string{"D", "C", "A", "B"}, e.Steps())
		dragThroughList(l, e, 3, -pitch)
		assert.Equal(t, []string{"D", "C", "B", "A"}, e.Steps())
	})

	t.Run("tap delete and edit", func(t *testing.T) {
		t.Parallel()

		e := withSteps("A", "B", "C")
		l := reorder.NewList(reorder.DefaultGeometry, e.Callbacks())
		l.Render(e.Steps())

		l.Tap(1, reorder.RegionDelete)
		l.Render(e.Steps())
		assert.Equal(t, []string{"A", "C"}, e.Steps())

		l.Tap(0, reorder.RegionBody)
		l.CommitEdit("Alpha")
		l.Render(e.Steps())
		assert.Equal(t, []string{"Alpha", "C"}, e.Steps())
	})
}

func TestImportText(t *testing.T) {
	t.Parallel()

	t.Run("replaces the lone blank step and adopts the name", func(t *testing.T) {
		t.Parallel()

		e := New()
		require.True(t, e.ImportText("*Morning*\n- Wake\n- Stretch"))
		assert.Equal(t, "Morning", e.Name())
		assert.Equal(t, []string{"Wake", "Stretch"}, e.Steps())
		assert.True(t, e.HasUnsavedChanges())
	})

	t.Run("appends and keeps the existing name", func(t *testing.T) {
		t.Parallel()

		e := withSteps("Existing")
		e.SetName("Mine")
		require.True(t, e.ImportText("*Other*\nNew"))
		assert.Equal(t, "Mine", e.Name())
		assert.Equal(t, []string{"Existing", "New"}, e.Steps())
	})

	t.Run("nothing to import", func(t *testing.T) {
		t.Parallel()

		e := New()
		assert.False(t, e.ImportText("*Only a name*\n\n"))
		assert.Equal(t, "", e.Name())
		assert.False(t, e.HasUnsavedChanges())
	})
}

func TestCanSave(t *testing.T) {
	t.Parallel()

	e := New()
	assert.False(t, e.CanSave())
	e.SetName("  ")
	e.UpdateStepText(0, "step")
	assert.False(t, e.CanSave())
	e.SetName("Name")
	assert.True(t, e.CanSave())
	e.UpdateStepText(0, "   ")
	assert.False(t, e.CanSave())
}

func TestSaveNewTemplate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemRepo()
	e := withSteps("Pack", "", "Go")
	e.SetName("Trip")

	id, err := e.Save(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, id, e.TemplateID())
	assert.False(t, e.HasUnsavedChanges())
	assert.False(t, e.Saving())
	assert.Equal(t, []string{"Pack", "Go"}, repo.templates[id].Steps)
	assert.Equal(t, []string{"Pack", "", "Go"}, e.Steps(), "the editor keeps blank rows")

	e.ReorderStep(2, 0)
	again, err := e.Save(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Len(t, repo.templates, 1)
	assert.Equal(t, []string{"Go", "Pack"}, repo.templates[id].Steps)
}

func TestSaveRejectsInvalidState(t *testing.T) {
	t.Parallel()

	e := New()
	_, err := e.Save(context.Background(), newMemRepo())
	var ve *checklisterrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	e.SetName("x")
	_, err = e.Save(context.Background(), newMemRepo())
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "steps", ve.Field)
}

func TestSaveFailureKeepsChanges(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	repo.failOn = "create"
	e := withSteps("A")
	e.SetName("N")

	_, err := e.Save(context.Background(), repo)
	require.Error(t, err)
	assert.True(t, e.HasUnsavedChanges())
	assert.False(t, e.Saving())
	assert.True(t, e.IsNew())
}

func TestEditsDuringSaveStayDirty(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	e := withSteps("A")
	e.SetName("N")

	d, err := e.BeginSave()
	require.NoError(t, err)
	assert.True(t, e.Saving())
	assert.False(t, e.CanSave())
	_, err = e.BeginSave()
	require.Error(t, err)

	e.AddStep()
	id, err := d.Persist(context.Background(), repo)
	require.NoError(t, err)
	e.FinishSave(d, id, nil)

	assert.True(t, e.HasUnsavedChanges())
	assert.Equal(t, id, e.TemplateID())
}

func TestSaveRoundTripThroughSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "checklist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	e := withSteps("One", "Two", "Three")
	e.SetName("Ordered")
	e.ReorderStep(0, 2)
	id, err := e.Save(ctx, store)
	require.NoError(t, err)

	reloaded := New()
	require.NoError(t, reloaded.Load(ctx, store, id))
	assert.Equal(t, []string{"Two", "Three", "One"}, reloaded.Steps())
	assert.Equal(t, "Ordered", reloaded.Name())
}
