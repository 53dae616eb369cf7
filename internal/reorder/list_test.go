package reorder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pitch = 96.0

// owner plays the caller that holds the sequence and applies reorders.
type owner struct {
	steps    []string
	reorders [][2]int
	deletes  []int
	edits    map[int]string
}

func newOwner(steps ...string) *owner {
	return &owner{steps: steps, edits: map[int]string{}}
}

func (o *owner) callbacks() Callbacks {
	return Callbacks{
		OnStepsReorder: func(from, to int) {
			o.reorders = append(o.reorders, [2]int{from, to})
			o.steps = Move(o.steps, from, to)
		},
		OnStepDelete: func(index int) {
			o.deletes = append(o.deletes, index)
		},
		OnStepTextChange: func(index int, text string) {
			o.edits[index] = text
			o.steps[index] = text
		},
	}
}

func newHarness(steps ...string) (*List, *owner) {
	o := newOwner(steps...)
	l := NewList(DefaultGeometry, o.callbacks())
	l.Render(o.steps)
	return l, o
}

// drag runs a full gesture on slot index moving dy in small increments,
// re-rendering after every event like a UI frame loop would.
func drag(l *List, o *owner, index int, dy float64) {
	l.DragStart(index, RegionHandle)
	const step = 8.0
	remaining := dy
	for math.Abs(remaining) > 0 {
		d := math.Copysign(math.Min(step, math.Abs(remaining)), remaining)
		l.DragMove(d)
		l.Render(o.steps)
		remaining -= d
	}
	l.DragEnd()
	l.Render(o.steps)
}

func TestSlotPitch(t *testing.T) {
	t.Parallel()

	require.Equal(t, 96.0, DefaultGeometry.SlotPitch())
	require.Equal(t, 3.0, Geometry{RowHeight: 2, RowSpacing: 1}.SlotPitch())
	require.Equal(t, 1.0, Geometry{}.SlotPitch())
}

func TestDragFollowsCurrentPositionNotIdentity(t *testing.T) {
	t.Parallel()

	l, o := newHarness("Apple", "Banana", "Cherry", "Date")

	drag(l, o, 0, 2*pitch)
	require.Equal(t, []string{"Banana", "Cherry", "Apple", "Date"}, o.steps)
	require.Equal(t, [][2]int{{0, 1}, {1, 2}}, o.reorders)

	drag(l, o, 0, 3*pitch)
	require.Equal(t, []string{"Cherry", "Apple", "Date", "Banana"}, o.steps)
	require.Equal(t, "Apple", o.steps[1], "the second drag must not move Apple")

	drag(l, o, 1, -pitch)
	require.Equal(t, []string{"Apple", "Cherry", "Date", "Banana"}, o.steps)
}

func TestSingleLargeMoveCommitsDirectly(t *testing.T) {
	t.Parallel()

	l, o := newHarness("Apple", "Banana", "Cherry", "Date")

	require.True(t, l.DragStart(0, RegionHandle))
	l.DragMove(2 * pitch)

	require.Equal(t, [][2]int{{0, 2}}, o.reorders)
	idx, ok := l.Session().DraggedIndex()
	require.True(t, ok)
	require.Equal(t, 2, idx)
	require.InDelta(t, 0, l.Session().Offset(), 1e-9)
	require.Equal(t, o.steps, l.Steps())
}

func TestCountConservation(t *testing.T) {
	t.Parallel()

	l, o := newHarness("Item 1", "Item 2", "Item 3", "Item 4")
	original := map[string]bool{}
	for _, s := range o.steps {
		original[s] = true
	}

	moves := [][2]int{{0, 3}, {2, 1}, {3, 0}, {1, 2}, {0, 1}, {3, 2}, {2, 0}, {1, 3}, {0, 2}, {3, 1}}
	for _, mv := range moves {
		dragged := o.steps[mv[0]]
		drag(l, o, mv[0], float64(mv[1]-mv[0])*pitch)

		require.Len(t, o.steps, 4)
		require.Equal(t, dragged, o.steps[mv[1]])
		seen := map[string]bool{}
		for _, s := range o.steps {
			require.True(t, original[s])
			require.False(t, seen[s], "duplicate %q", s)
			seen[s] = true
		}
	}
}

func TestSmallDragDoesNotReorder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index int
		dy    float64
	}{
		{name: "twenty pixels down", index: 0, dy: 20},
		{name: "just under half a slot", index: 0, dy: 47.9},
		{name: "exactly half a slot up", index: 1, dy: -48},
		{name: "zero length", index: 2, dy: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, o := newHarness("One", "Two", "Three")
			require.True(t, l.DragStart(tc.index, RegionHandle))
			l.DragMove(tc.dy)
			l.DragEnd()

			require.Empty(t, o.reorders)
			require.Equal(t, []string{"One", "Two", "Three"}, o.steps)
		})
	}
}

func TestHalfSlotDownRoundsUp(t *testing.T) {
	t.Parallel()

	l, o := newHarness("One", "Two", "Three")
	l.DragStart(0, RegionHandle)
	l.DragMove(48)

	require.Equal(t, [][2]int{{0, 1}}, o.reorders)
	require.InDelta(t, -48, l.Session().Offset(), 1e-9)
}

func TestBoundaryMoveFirstToLast(t *testing.T) {
	t.Parallel()

	l, o := newHarness("First", "Second", "Third", "Fourth")
	drag(l, o, 0, 3*pitch)

	require.Equal(t, []string{"Second", "Third", "Fourth", "First"}, o.steps)
}

func TestUpwardMove(t *testing.T) {
	t.Parallel()

	l, o := newHarness("Start", "Middle", "End")
	drag(l, o, 1, -pitch)

	require.Equal(t, []string{"Middle", "Start", "End"}, o.steps)
}

func TestReversalThenPositionalDrag(t *testing.T) {
	t.Parallel()

	l, o := newHarness("A", "B", "C", "D")

	drag(l, o, 3, -3*pitch)
	require.Equal(t, []string{"D", "A", "B", "C"}, o.steps)
	drag(l, o, 3, -3*pitch)
	require.Equal(t, []string{"C", "D", "A", "B"}, o.steps)
	drag(l, o, 3, -3*pitch)
	require.Equal(t, []string{"B", "C", "D", "A"}, o.steps)

	drag(l, o, 0, 2*pitch)
	require.Equal(t, []string{"C", "D", "B", "A"}, o.steps)
}

func TestDragPastEdgesPinsAndStopsReordering(t *testing.T) {
	t.Parallel()

	t.Run("bottom", func(t *testing.T) {
		t.Parallel()

		l, o := newHarness("a", "b", "c")
		drag(l, o, 0, 10*pitch)

		require.Equal(t, [][2]int{{0, 1}, {1, 2}}, o.reorders)
		require.Equal(t, []string{"b", "c", "a"}, o.steps)
	})

	t.Run("top", func(t *testing.T) {
		t.Parallel()

		l, o := newHarness("a", "b", "c")
		l.DragStart(2, RegionHandle)
		l.DragMove(-10 * pitch)
		l.DragMove(-pitch)
		l.DragMove(-pitch)

		require.Equal(t, [][2]int{{2, 0}}, o.reorders)
		idx, _ := l.Session().DraggedIndex()
		require.Equal(t, 0, idx)
	})
}

func TestHugeDeltaPinsToNearerEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		start    int
		dy       float64
		reorders [][2]int
		want     []string
		pinned   int
	}{
		{name: "down", start: 1, dy: 1e300, reorders: [][2]int{{1, 3}}, want: []string{"a", "c", "d", "b"}, pinned: 3},
		{name: "up", start: 2, dy: -1e300, reorders: [][2]int{{2, 0}}, want: []string{"c", "a", "b", "d"}, pinned: 0},
		{name: "max float down", start: 0, dy: math.MaxFloat64, reorders: [][2]int{{0, 3}}, want: []string{"b", "c", "d", "a"}, pinned: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, o := newHarness("a", "b", "c", "d")
			l.DragStart(tc.start, RegionHandle)
			l.DragMove(tc.dy)
			l.DragMove(tc.dy)
			l.DragMove(math.Copysign(pitch, tc.dy))

			require.Equal(t, tc.reorders, o.reorders)
			require.Equal(t, tc.want, o.steps)
			require.Equal(t, tc.want, l.Steps())
			idx, active := l.Session().DraggedIndex()
			require.True(t, active)
			require.Equal(t, tc.pinned, idx)
			require.False(t, math.IsInf(l.Session().Offset(), 0))
		})
	}
}

func TestReorderCallbackMayRenderSynchronously(t *testing.T) {
	t.Parallel()

	steps := []string{"a", "b", "c"}
	var l *List
	l = NewList(DefaultGeometry, Callbacks{
		OnStepsReorder: func(from, to int) {
			steps = Move(steps, from, to)
			l.Render(steps)
		},
	})
	l.Render(steps)
	l.BeginEdit(2)

	l.DragStart(0, RegionHandle)
	l.DragMove(pitch)
	require.Equal(t, []string{"b", "a", "c"}, steps)
	require.Equal(t, steps, l.Steps())
	idx, text, ok := l.Editing()
	require.True(t, ok)
	require.Equal(t, 2, idx)
	require.Equal(t, "c", text)

	l.DragMove(pitch)
	require.Equal(t, []string{"b", "c", "a"}, steps)
	require.Equal(t, steps, l.Steps())
	_, _, ok = l.Editing()
	require.False(t, ok)

	dragged, _ := l.Session().DraggedIndex()
	require.Equal(t, 2, dragged)
	require.InDelta(t, 0, l.Session().Offset(), 1e-9)
}

func TestOnlyHandleStartsDrag(t *testing.T) {
	t.Parallel()

	for _, region := range []Region{RegionNone, RegionBody, RegionDelete} {
		l, o := newHarness("a", "b", "c")

		require.False(t, l.DragStart(0, region), region.String())
		l.DragMove(3 * pitch)

		_, active := l.Session().DraggedIndex()
		require.False(t, active)
		require.Empty(t, o.reorders)
	}
}

func TestDragStartIgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	l, _ := newHarness("a", "b")
	require.False(t, l.DragStart(-1, RegionHandle))
	require.False(t, l.DragStart(2, RegionHandle))
	require.False(t, l.Session().Active())

	empty := NewList(DefaultGeometry, Callbacks{})
	require.False(t, empty.DragStart(0, RegionHandle))
}

func TestDragEndResetsSession(t *testing.T) {
	t.Parallel()

	l, _ := newHarness("a", "b", "c")
	l.DragStart(1, RegionHandle)
	l.DragMove(30)
	require.InDelta(t, 30, l.Session().Offset(), 1e-9)

	l.DragEnd()
	_, active := l.Session().DraggedIndex()
	require.False(t, active)
	require.Zero(t, l.Session().Offset())

	_, ok := l.CurrentPosition()
	require.False(t, ok)
}

func TestNewSessionOverwritesStaleOne(t *testing.T) {
	t.Parallel()

	l, o := newHarness("a", "b", "c")
	l.DragStart(0, RegionHandle)
	l.DragMove(40)

	// pointer cancelled without an end event
	require.True(t, l.DragStart(2, RegionHandle))
	idx, _ := l.Session().DraggedIndex()
	require.Equal(t, 2, idx)
	require.Zero(t, l.Session().Offset())

	l.DragMove(-20)
	require.Empty(t, o.reorders)
}

func TestMalformedMoveIsIgnored(t *testing.T) {
	t.Parallel()

	l, o := newHarness("a", "b", "c")
	l.DragMove(500)
	require.Empty(t, o.reorders)

	l.DragStart(0, RegionHandle)
	l.DragMove(math.NaN())
	l.DragMove(math.Inf(1))
	require.Zero(t, l.Session().Offset())
	require.Empty(t, o.reorders)
}

func TestOffsetCompensationKeepsRowContinuous(t *testing.T) {
	t.Parallel()

	l, _ := newHarness("a", "b", "c", "d")
	l.DragStart(0, RegionHandle)

	total := 0.0
	for i := 0; i < 30; i++ {
		l.DragMove(7)
		total += 7

		idx, _ := l.Session().DraggedIndex()
		absolute := float64(idx)*pitch + l.Session().Offset()
		require.InDelta(t, total, absolute, 1e-9)
	}
}

func TestRowOffsetForDraggedRowAndSiblings(t *testing.T) {
	t.Parallel()

	l, _ := newHarness("a", "b", "c", "d")
	require.Zero(t, l.RowOffset(0))

	// a frame where the dragged row sits past a sibling's midpoint
	l.session = Session{index: 1, offset: 60, active: true}
	assert.Equal(t, 60.0, l.RowOffset(1))
	assert.Equal(t, -pitch, l.RowOffset(2))
	assert.Zero(t, l.RowOffset(3))
	assert.Zero(t, l.RowOffset(0))

	l.session = Session{index: 2, offset: -60, active: true}
	assert.Equal(t, pitch, l.RowOffset(1))
	assert.Zero(t, l.RowOffset(0))
	assert.Zero(t, l.RowOffset(3))

	assert.Zero(t, l.RowOffset(-1))
	assert.Zero(t, l.RowOffset(4))
}

func TestRowOffsetsAfterEagerCommitAreSettled(t *testing.T) {
	t.Parallel()

	l, _ := newHarness("a", "b", "c", "d")
	l.DragStart(1, RegionHandle)
	l.DragMove(50)

	idx, _ := l.Session().DraggedIndex()
	require.Equal(t, 2, idx)
	for k := 0; k < 4; k++ {
		if k == idx {
			continue
		}
		require.Zero(t, l.RowOffset(k), "row %d", k)
	}
}

func TestRenderDropsSessionForVanishedSlot(t *testing.T) {
	t.Parallel()

	l, _ := newHarness("a", "b", "c")
	l.DragStart(2, RegionHandle)
	l.Render([]string{"a", "b"})

	require.False(t, l.Session().Active())
}

func TestEditAffordance(t *testing.T) {
	t.Parallel()

	t.Run("commit reports text", func(t *testing.T) {
		t.Parallel()

		l, o := newHarness("a", "b")
		l.Tap(1, RegionBody)
		idx, text, ok := l.Editing()
		require.True(t, ok)
		require.Equal(t, 1, idx)
		require.Equal(t, "b", text)

		l.CommitEdit("bee")
		require.Equal(t, "bee", o.edits[1])
		_, _, ok = l.Editing()
		require.False(t, ok)
	})

	t.Run("reset when slot content changes", func(t *testing.T) {
		t.Parallel()

		l, o := newHarness("a", "b", "c")
		l.BeginEdit(0)
		l.Render([]string{"x", "b", "c"})
		_, _, ok := l.Editing()
		require.False(t, ok)

		l.BeginEdit(1)
		l.CommitEdit("new")
		require.Equal(t, "new", o.edits[1])
	})

	t.Run("reset when a reorder moves another row into the slot", func(t *testing.T) {
		t.Parallel()

		l, o := newHarness("a", "b", "c")
		l.BeginEdit(0)
		drag(l, o, 0, pitch)

		_, _, ok := l.Editing()
		require.False(t, ok)
		l.CommitEdit("ignored")
		require.Empty(t, o.edits)
	})

	t.Run("editing leaves the drag session intact", func(t *testing.T) {
		t.Parallel()

		l, _ := newHarness("a", "b", "c")
		l.DragStart(2, RegionHandle)
		l.DragMove(-10)
		l.BeginEdit(0)
		l.CancelEdit()

		idx, active := l.Session().DraggedIndex()
		require.True(t, active)
		require.Equal(t, 2, idx)
		require.InDelta(t, -10, l.Session().Offset(), 1e-9)
	})
}

func TestTapDelete(t *testing.T) {
	t.Parallel()

	l, o := newHarness("a", "b", "c")
	l.Tap(1, RegionDelete)
	l.Tap(7, RegionDelete)
	l.Tap(-1, RegionDelete)
	l.Tap(0, RegionHandle)

	require.Equal(t, []int{1}, o.deletes)
}

func TestNilCallbacksAreSkipped(t *testing.T) {
	t.Parallel()

	l := NewList(DefaultGeometry, Callbacks{})
	l.Render([]string{"a", "b"})

	require.NotPanics(t, func() {
		l.DragStart(0, RegionHandle)
		l.DragMove(pitch)
		l.Tap(0, RegionDelete)
		l.BeginEdit(0)
		l.CommitEdit("x")
	})
	require.Equal(t, []string{"b", "a"}, l.Steps())
}
