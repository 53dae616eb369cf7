// Package reorder implements an ordered step list whose rows can be dragged by a
// handle and reordered live while the pointer moves.
//
// The list never owns the step sequence. The caller hands it the current steps
// through Render and applies structural changes when OnStepsReorder fires. The
// reorder is committed eagerly, as soon as the dragged row crosses the midpoint
// of a neighbouring slot, so a drag session always follows the row's current
// slot and never the identity it started with.
package reorder

import "math"

// Region identifies which part of a row a pointer landed on.
type Region int

const (
	RegionNone Region = iota
	RegionHandle
	RegionBody
	RegionDelete
)

func (r Region) String() string {
	switch r {
	case RegionHandle:
		return "handle"
	case RegionBody:
		return "body"
	case RegionDelete:
		return "delete"
	default:
		return "none"
	}
}

// Callbacks are the only way the list changes anything outside itself.
// Nil callbacks are skipped.
type Callbacks struct {
	OnStepTextChange func(index int, text string)
	OnStepDelete     func(index int)
	OnStepsReorder   func(from, to int)
}

// Session describes an in-progress drag gesture.
type Session struct {
	index  int
	offset float64
	active bool
}

// DraggedIndex returns the slot currently under the pointer.
func (s Session) DraggedIndex() (int, bool) {
	if !s.active {
		return -1, false
	}
	return s.index, true
}

// Offset is the signed displacement of the dragged row from its slot's canonical position.
func (s Session) Offset() float64 {
	return s.offset
}

// Active reports whether a drag gesture is in progress.
func (s Session) Active() bool {
	return s.active
}

type editState struct {
	active bool
	index  int
	text   string
}

// List is the drag-reorderable step list. It is not safe for concurrent use;
// all calls are expected from the UI event loop.
type List struct {
	geometry  Geometry
	callbacks Callbacks
	steps     []string
	session   Session
	edit      editState
}

// NewList constructs a list with the given row geometry and callbacks.
func NewList(geometry Geometry, callbacks Callbacks) *List {
	return &List{geometry: geometry, callbacks: callbacks}
}

// Render supplies the caller's current step sequence.
// A drag whose slot no longer exists is dropped, and a local text edit is
// abandoned when the text under its slot changed.
func (l *List) Render(steps []string) {
	l.steps = append(l.steps[:0], steps...)
	if l.session.active && !InRange(l.session.index, len(l.steps)) {
		l.session = Session{}
	}
	l.syncEdit()
}

// Steps returns a copy of the last rendered sequence.
func (l *List) Steps() []string {
	return append([]string(nil), l.steps...)
}

// Len returns the number of rendered rows.
func (l *List) Len() int {
	return len(l.steps)
}

// Geometry returns the row geometry in use.
func (l *List) Geometry() Geometry {
	return l.geometry
}

// Session returns a snapshot of the drag session.
func (l *List) Session() Session {
	return l.session
}

// DragStart begins a drag for the row at index. Only a press on the handle
// starts a session; any earlier session is discarded first.
func (l *List) DragStart(index int, region Region) bool {
	if region != RegionHandle || !InRange(index, len(l.steps)) {
		return false
	}
	l.session = Session{index: index, active: true}
	return true
}

// DragMove applies a vertical pointer delta. When the dragged row's position
// rounds to a different slot the reorder is committed immediately and the
// offset is compensated so the row does not jump on screen.
func (l *List) DragMove(dy float64) {
	if !l.session.active || math.IsNaN(dy) || math.IsInf(dy, 0) {
		return
	}
	n := len(l.steps)
	if n == 0 {
		l.session = Session{}
		return
	}

	offset := l.session.offset + dy
	if math.IsInf(offset, 0) {
		return
	}
	l.session.offset = offset

	pitch := l.geometry.SlotPitch()
	from := l.session.index
	target := slotAt(float64(from)+offset/pitch, n)
	if target == from {
		return
	}

	// Local state is settled before the callback; a Render from inside it
	// replaces the rows with the owner's sequence.
	l.steps = Move(l.steps, from, target)
	l.session.offset -= float64(target-from) * pitch
	l.session.index = target
	l.syncEdit()

	if l.callbacks.OnStepsReorder != nil {
		l.callbacks.OnStepsReorder(from, target)
	}
}

// DragEnd finishes the gesture whatever its state.
func (l *List) DragEnd() {
	l.session = Session{}
}

// DragCancel handles an aborted pointer; it behaves exactly like DragEnd.
func (l *List) DragCancel() {
	l.DragEnd()
}

// CurrentPosition is the dragged row's continuous slot position.
func (l *List) CurrentPosition() (float64, bool) {
	if !l.session.active {
		return 0, false
	}
	return float64(l.session.index) + l.session.offset/l.geometry.SlotPitch(), true
}

// RowOffset returns the vertical displacement to draw row k with.
// The dragged row follows the pointer; siblings whose midpoint the dragged
// row has crossed shift one slot toward the gap.
func (l *List) RowOffset(k int) float64 {
	if !l.session.active || !InRange(k, len(l.steps)) {
		return 0
	}
	dragged := l.session.index
	if k == dragged {
		return l.session.offset
	}

	pitch := l.geometry.SlotPitch()
	pos, _ := l.CurrentPosition()
	switch {
	case k > dragged && pos > float64(k)-0.5:
		return -pitch
	case k < dragged && pos < float64(k)+0.5:
		return pitch
	default:
		return 0
	}
}

// Tap handles a press that did not become a drag.
func (l *List) Tap(index int, region Region) {
	if !InRange(index, len(l.steps)) {
		return
	}
	switch region {
	case RegionBody:
		l.BeginEdit(index)
	case RegionDelete:
		if l.edit.active && l.edit.index == index {
			l.edit = editState{}
		}
		if l.callbacks.OnStepDelete != nil {
			l.callbacks.OnStepDelete(index)
		}
	}
}

// BeginEdit opens the local text edit affordance on a row.
func (l *List) BeginEdit(index int) bool {
	if !InRange(index, len(l.steps)) {
		return false
	}
	l.edit = editState{active: true, index: index, text: l.steps[index]}
	return true
}

// Editing returns the row being edited and the text it held when editing began.
func (l *List) Editing() (int, string, bool) {
	if !l.edit.active {
		return -1, "", false
	}
	return l.edit.index, l.edit.text, true
}

// CommitEdit reports the new text for the edited row and closes the affordance.
func (l *List) CommitEdit(text string) {
	if !l.edit.active {
		return
	}
	index := l.edit.index
	l.edit = editState{}
	if !InRange(index, len(l.steps)) {
		return
	}
	if l.callbacks.OnStepTextChange != nil {
		l.callbacks.OnStepTextChange(index, text)
	}
}

// CancelEdit closes the affordance without reporting anything.
func (l *List) CancelEdit() {
	l.edit = editState{}
}

// syncEdit drops the edit affordance when its slot now shows different text.
func (l *List) syncEdit() {
	if !l.edit.active {
		return
	}
	if !InRange(l.edit.index, len(l.steps)) || l.steps[l.edit.index] != l.edit.text {
		l.edit = editState{}
	}
}
