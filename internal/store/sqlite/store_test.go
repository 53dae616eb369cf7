package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/checklist/internal/domain"
	checklisterrors "github.com/alexisbeaulieu97/checklist/pkg/errors"
)

// tickingClock advances one second per call so ordering by time is deterministic.
type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func openTestStore(t *testing.T) *Store {
	t.Helper()

	clock := &tickingClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store, err := Open(filepath.Join(t.TempDir(), "data", "checklist.db"), WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createTemplate(t *testing.T, s *Store, name string, steps ...string) string {
	t.Helper()

	ctx := context.Background()
	id, err := s.CreateTemplate(ctx, name)
	require.NoError(t, err)
	require.NoError(t, s.UpdateTemplate(ctx, domain.Template{ID: id, Name: name, Steps: steps}))
	return id
}

func TestTemplateRoundTripPreservesOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	id := createTemplate(t, s, "Morning", "Wake up", "Drink water", "Exercise")

	got, err := s.GetTemplate(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Morning", got.Name)
	require.Equal(t, []string{"Wake up", "Drink water", "Exercise"}, got.Steps)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))

	got.Steps = []string{"Exercise", "Wake up", "Drink water"}
	got.Name = "Morning v2"
	require.NoError(t, s.UpdateTemplate(ctx, got))

	reloaded, err := s.GetTemplate(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Morning v2", reloaded.Name)
	require.Equal(t, []string{"Exercise", "Wake up", "Drink water"}, reloaded.Steps)
}

func TestTemplatesPersistAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "checklist.db")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.CreateTemplate(ctx, "Travel")
	require.NoError(t, err)
	require.NoError(t, s.UpdateTemplate(ctx, domain.Template{ID: id, Name: "Travel", Steps: []string{"Passport", "Charger"}}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetTemplate(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"Passport", "Charger"}, got.Steps)
}

func TestListTemplatesNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	first := createTemplate(t, s, "First", "a")
	second := createTemplate(t, s, "Second", "b", "c")
	empty, err := s.CreateTemplate(ctx, "Empty")
	require.NoError(t, err)

	list, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, empty, list[0].ID)
	require.Empty(t, list[0].Steps)
	require.Equal(t, second, list[1].ID)
	require.Equal(t, []string{"b", "c"}, list[1].Steps)
	require.Equal(t, first, list[2].ID)
}

func TestTemplateNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.GetTemplate(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	var notFound *checklisterrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "template", notFound.Kind)

	err = s.UpdateTemplate(ctx, domain.Template{ID: "missing", Name: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.DeleteTemplate(ctx, "missing"))
}

func TestDeleteTemplateCascadesToChecklists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	id := createTemplate(t, s, "Packing", "Socks", "Shoes")
	checklistID, err := s.CreateChecklistFromTemplate(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTemplate(ctx, id))

	_, err = s.GetChecklist(ctx, checklistID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	list, err := s.ListChecklists(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateChecklistFromTemplate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	templateID := createTemplate(t, s, "Release", "Tag", "Build", "Publish")
	id, err := s.CreateChecklistFromTemplate(ctx, templateID)
	require.NoError(t, err)

	c, err := s.GetChecklist(ctx, id)
	require.NoError(t, err)
	require.Equal(t, templateID, c.TemplateID)
	require.Equal(t, "Release", c.TemplateName)
	require.Len(t, c.Tasks, 3)
	for i, want := range []string{"Tag", "Build", "Publish"} {
		require.Equal(t, want, c.Tasks[i].Text)
		require.Equal(t, i, c.Tasks[i].OrderIndex)
		require.False(t, c.Tasks[i].Completed)
		require.Nil(t, c.Tasks[i].CompletedAt)
	}

	n, err := s.CountChecklistsForTemplate(ctx, templateID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = s.CreateChecklistFromTemplate(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskCompletion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateChecklistFromTemplate(ctx, createTemplate(t, s, "T", "one", "two"))
	require.NoError(t, err)
	c, err := s.GetChecklist(ctx, id)
	require.NoError(t, err)
	before := c.UpdatedAt

	require.NoError(t, s.SetTaskCompleted(ctx, id, c.Tasks[0].ID, true))
	c, err = s.GetChecklist(ctx, id)
	require.NoError(t, err)
	require.True(t, c.Tasks[0].Completed)
	require.NotNil(t, c.Tasks[0].CompletedAt)
	require.True(t, c.UpdatedAt.After(before))
	require.InDelta(t, 0.5, c.Progress(), 1e-9)

	require.NoError(t, s.SetTaskCompleted(ctx, id, c.Tasks[0].ID, false))
	c, err = s.GetChecklist(ctx, id)
	require.NoError(t, err)
	require.False(t, c.Tasks[0].Completed)
	require.Nil(t, c.Tasks[0].CompletedAt)

	err = s.SetTaskCompleted(ctx, id, "missing", true)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddAndEditTasks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateChecklistFromTemplate(ctx, createTemplate(t, s, "T", "one"))
	require.NoError(t, err)

	taskID, err := s.AddTask(ctx, id, "two")
	require.NoError(t, err)
	require.NoError(t, s.UpdateTaskText(ctx, id, taskID, "second"))

	c, err := s.GetChecklist(ctx, id)
	require.NoError(t, err)
	require.Len(t, c.Tasks, 2)
	require.Equal(t, "second", c.Tasks[1].Text)
	require.Equal(t, 1, c.Tasks[1].OrderIndex)

	_, err = s.AddTask(ctx, "missing", "x")
	require.ErrorIs(t, err, domain.ErrNotFound)
	err = s.UpdateTaskText(ctx, id, "missing", "x")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTaskRenumbersAndProtectsLast(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateChecklistFromTemplate(ctx, createTemplate(t, s, "T", "a", "b", "c"))
	require.NoError(t, err)
	c, err := s.GetChecklist(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, id, c.Tasks[0].ID))
	c, err = s.GetChecklist(ctx, id)
	require.NoError(t, err)
	require.Len(t, c.Tasks, 2)
	require.Equal(t, "b", c.Tasks[0].Text)
	require.Equal(t, 0, c.Tasks[0].OrderIndex)
	require.Equal(t, 1, c.Tasks[1].OrderIndex)

	require.NoError(t, s.DeleteTask(ctx, id, c.Tasks[1].ID))
	c, err = s.GetChecklist(ctx, id)
	require.NoError(t, err)
	require.Len(t, c.Tasks, 1)

	err = s.DeleteTask(ctx, id, c.Tasks[0].ID)
	require.ErrorIs(t, err, domain.ErrLastTask)
	var constraint *checklisterrors.ConstraintError
	require.ErrorAs(t, err, &constraint)
	require.Equal(t, "last_task", constraint.Rule)

	err = s.DeleteTask(ctx, "missing", "x")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTaskUnknownID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.CreateChecklistFromTemplate(ctx, createTemplate(t, s, "T", "a", "b"))
	require.NoError(t, err)

	err = s.DeleteTask(ctx, id, "nope")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListChecklistsMostRecentlyTouchedFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	templateID := createTemplate(t, s, "T", "a", "b")
	older, err := s.CreateChecklistFromTemplate(ctx, templateID)
	require.NoError(t, err)
	newer, err := s.CreateChecklistFromTemplate(ctx, templateID)
	require.NoError(t, err)

	list, err := s.ListChecklists(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{newer, older}, []string{list[0].ID, list[1].ID})

	olderChecklist, err := s.GetChecklist(ctx, older)
	require.NoError(t, err)
	require.NoError(t, s.SetTaskCompleted(ctx, older, olderChecklist.Tasks[0].ID, true))

	list, err = s.ListChecklists(ctx)
	require.NoError(t, err)
	require.Equal(t, older, list[0].ID)
	require.Len(t, list[0].Tasks, 2)
	require.True(t, list[0].Tasks[0].Completed)

	require.NoError(t, s.DeleteChecklist(ctx, older))
	require.NoError(t, s.DeleteChecklist(ctx, older))
	n, err := s.CountChecklistsForTemplate(ctx, templateID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
