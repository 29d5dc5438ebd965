package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSurface is a ListSurface backed by a slice of keys; it mirrors the
// notifications onto the slice the way a list view would.
type sliceSurface struct {
	keys    []string
	pending []testItem
	onCall  func()
}

func (s *sliceSurface) NotifyInsert(pos int) {
	s.call()
	s.keys = append(s.keys, "")
	copy(s.keys[pos+1:], s.keys[pos:])
	s.keys[pos] = "?"
}

func (s *sliceSurface) NotifyRemove(pos int) {
	s.call()
	s.keys = append(s.keys[:pos], s.keys[pos+1:]...)
}

func (s *sliceSurface) NotifyMove(from, to int) {
	s.call()
	k := s.keys[from]
	s.keys = append(s.keys[:from], s.keys[from+1:]...)
	s.keys = append(s.keys, "")
	copy(s.keys[to+1:], s.keys[to:])
	s.keys[to] = k
}

func (s *sliceSurface) NotifyChange(pos int) {
	s.call()
	s.keys[pos] = s.keys[pos] + "*"
}

func (s *sliceSurface) Len() int { return len(s.keys) }

func (s *sliceSurface) call() {
	if s.onCall != nil {
		s.onCall()
	}
}

func TestDispatch_ReplaysOneToOne(t *testing.T) {
	old := []testItem{{Key: "A"}, {Key: "B"}, {Key: "C", Ver: 1}}
	new := []testItem{{Key: "C", Ver: 2}, {Key: "A"}, {Key: "D"}}

	script := ComputeKeyed(old, new, keyOf, sameVer)
	rec := NewRecorder(len(old))
	Dispatch(rec, script)

	calls := rec.Notifications()
	require.Len(t, calls, script.Len())
	for i, e := range script.Edits {
		assert.Equal(t, e.Op, calls[i].Op)
		assert.Equal(t, e.Position, calls[i].Pos)
		if e.Op == OpMove {
			assert.Equal(t, e.ToPosition, calls[i].To)
		}
	}
	assert.Equal(t, len(new), rec.Len())
}

func TestDispatch_SurfaceEndsInNewOrder(t *testing.T) {
	old := items("A", "B", "C", "D")
	new := items("D", "B", "E")

	surface := &sliceSurface{keys: []string{"A", "B", "C", "D"}}
	script := Compute(old, new, byKey)
	Dispatch(surface, script)

	require.Len(t, surface.keys, 3)
	assert.Equal(t, "D", surface.keys[0])
	assert.Equal(t, "B", surface.keys[1])
	assert.Equal(t, "?", surface.keys[2])
}

func TestDispatch_EmptyScriptTouchesNothing(t *testing.T) {
	rec := NewRecorder(2)
	Dispatch(rec, Compute(items("A", "B"), items("A", "B"), byKey))
	Dispatch[testItem](rec, nil)
	assert.Empty(t, rec.Notifications())
}

func TestDispatch_DesyncPanics(t *testing.T) {
	script := Compute(items("A", "B", "C"), items("A", "B"), byKey)

	// The surface only has two items, so Remove(2) is out of range.
	rec := NewRecorder(2)
	err := recoverError(func() { Dispatch(rec, script) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDesync))
	assert.Empty(t, rec.Notifications())
}

func TestDispatcher_ConcurrentDispatchPanics(t *testing.T) {
	surface := &sliceSurface{}
	d := NewDispatcher(surface)

	var inner error
	surface.onCall = func() {
		surface.onCall = nil
		inner = recoverError(func() {
			DispatchTo(d, Compute(nil, items("X"), byKey))
		})
	}

	DispatchTo(d, Compute(nil, items("A"), byKey))
	assert.ErrorIs(t, inner, ErrConcurrentDispatch)

	// The guard is released once the outer dispatch returns.
	assert.NotPanics(t, func() {
		DispatchTo(d, Compute(items("A"), nil, byKey))
	})
	assert.Empty(t, surface.keys)
	assert.Same(t, surface, d.Target())
}

func TestApply_Desync(t *testing.T) {
	script := Compute(items("A", "B", "C"), items("C"), byKey)

	_, err := Apply(items("A"), script)
	require.Error(t, err)
	var de *DesyncError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, OpRemove, de.Edit)

	got, err := Apply(items("A"), (*Script[testItem])(nil))
	require.NoError(t, err)
	assert.Equal(t, items("A"), got)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	old := items("A", "B", "C")
	snapshot := append([]testItem(nil), old...)

	_, err := Apply(old, Compute(old, items("C", "B"), byKey))
	require.NoError(t, err)
	assert.Equal(t, snapshot, old)
}
