package reconcile

import (
	"sync"
	"sync/atomic"
)

// ListSurface is a mutable, position-indexed list representation that
// receives incremental update notifications (typically a UI list).
type ListSurface interface {
	NotifyInsert(pos int)
	NotifyRemove(pos int)
	NotifyMove(from, to int)
	NotifyChange(pos int)
}

// Sized is implemented by surfaces that can report their current length.
// Dispatch uses it to detect desynchronisation before notifying.
type Sized interface {
	Len() int
}

// Dispatch replays script against target, one notification per edit, in order.
//
// The target's state must equal the old sequence of the script. If target
// implements Sized, every position is checked against the running length and
// a mismatch panics with a DesyncError before the offending notification.
// Dispatch must not be called concurrently for the same target; use a
// Dispatcher to assert that.
func Dispatch[T any](target ListSurface, script *Script[T]) {
	if script == nil {
		return
	}

	length := -1
	if s, ok := target.(Sized); ok {
		length = s.Len()
	}

	for idx, e := range script.Edits {
		if length >= 0 {
			if err := checkEdit(idx, e.Op, e.Position, e.ToPosition, length); err != nil {
				panic(err)
			}
		}

		switch e.Op {
		case OpInsert:
			target.NotifyInsert(e.Position)
			length = grow(length, 1)
		case OpRemove:
			target.NotifyRemove(e.Position)
			length = grow(length, -1)
		case OpMove:
			target.NotifyMove(e.Position, e.ToPosition)
		case OpChange:
			target.NotifyChange(e.Position)
		}
	}
}

func grow(length, delta int) int {
	if length < 0 {
		return length
	}
	return length + delta
}

// Dispatcher serialises dispatches to one surface. Overlapping calls are a
// programming error and panic with ErrConcurrentDispatch.
type Dispatcher struct {
	target   ListSurface
	inFlight atomic.Bool
}

// NewDispatcher binds a dispatcher to target.
func NewDispatcher(target ListSurface) *Dispatcher {
	return &Dispatcher{target: target}
}

// Target returns the bound surface.
func (d *Dispatcher) Target() ListSurface {
	return d.target
}

// DispatchTo replays script against the dispatcher's surface.
func DispatchTo[T any](d *Dispatcher, script *Script[T]) {
	if !d.inFlight.CompareAndSwap(false, true) {
		panic(ErrConcurrentDispatch)
	}
	defer d.inFlight.Store(false)

	Dispatch(d.target, script)
}

// Notification is one recorded surface call.
type Notification struct {
	Op   Op  `json:"op"`
	Pos  int `json:"position"`
	To   int `json:"to_position"`
	Size int `json:"size"`
}

// Recorder is a ListSurface that tracks its length and records every
// notification it receives. It is safe for concurrent readers.
type Recorder struct {
	mu    sync.Mutex
	size  int
	calls []Notification
}

// NewRecorder returns a recorder whose list initially holds size items.
func NewRecorder(size int) *Recorder {
	return &Recorder{size: size}
}

func (r *Recorder) record(op Op, pos, to, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size += delta
	r.calls = append(r.calls, Notification{Op: op, Pos: pos, To: to, Size: r.size})
}

// NotifyInsert records an insert.
func (r *Recorder) NotifyInsert(pos int) { r.record(OpInsert, pos, 0, 1) }

// NotifyRemove records a remove.
func (r *Recorder) NotifyRemove(pos int) { r.record(OpRemove, pos, 0, -1) }

// NotifyMove records a move.
func (r *Recorder) NotifyMove(from, to int) { r.record(OpMove, from, to, 0) }

// NotifyChange records a change.
func (r *Recorder) NotifyChange(pos int) { r.record(OpChange, pos, 0, 0) }

// Len returns the current length.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Notifications returns a copy of the recorded calls.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.calls))
	copy(out, r.calls)
	return out
}
